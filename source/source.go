// Package source defines the emitting resource a playback handle drives and
// an ebiten-backed implementation of it.
package source

import (
	cfg "github.com/automoto/doomerang-audio/config"
	"github.com/automoto/doomerang-audio/mixer"
	"github.com/automoto/doomerang-audio/sequence"
	"github.com/yohamta/donburi/features/math"
)

// RolloffMode is how a spatialized source attenuates over distance.
type RolloffMode int

const (
	RolloffLogarithmic RolloffMode = iota
	RolloffLinear
	RolloffCustom
)

func (m RolloffMode) String() string {
	switch m {
	case RolloffLogarithmic:
		return "Logarithmic"
	case RolloffLinear:
		return "Linear"
	default:
		return "Custom"
	}
}

// Props is the per-resource property block a handle proxies onto.
type Props struct {
	BypassEffects         bool
	BypassListenerEffects bool
	BypassReverbZones     bool

	Volume        float64
	Pitch         float64
	PanStereo     float64
	SpatialBlend  float64
	ReverbZoneMix float64

	DopplerLevel float64
	Spread       float64
	Rolloff      RolloffMode
	MinDistance  float64
	MaxDistance  float64

	Position math.Vec2
}

// DefaultProps returns the property values a freshly reset resource has.
func DefaultProps() Props {
	return Props{
		Volume:        cfg.Source.Volume,
		Pitch:         cfg.Source.Pitch,
		PanStereo:     cfg.Source.PanStereo,
		SpatialBlend:  cfg.Source.SpatialBlend,
		ReverbZoneMix: cfg.Source.ReverbZoneMix,
		DopplerLevel:  cfg.Source.DopplerLevel,
		Spread:        cfg.Source.Spread,
		Rolloff:       RolloffLogarithmic,
		MinDistance:   cfg.Source.MinDistance,
		MaxDistance:   cfg.Source.MaxDistance,
	}
}

// Source is an audio-emitting resource. A handle owns one exclusively while
// it is live.
type Source interface {
	// Bind sets the sound the next Play starts. nil unbinds.
	Bind(s sequence.Sound) error
	Sound() sequence.Sound

	// Play starts the bound sound from the beginning.
	Play()
	Stop()
	Pause()
	UnPause()
	// IsPlaying reports whether the resource is currently emitting sound.
	IsPlaying() bool

	Bus() *mixer.Bus
	SetBus(b *mixer.Bus)

	Props() *Props

	// Update pushes property and bus changes to the output; called once per tick.
	Update()
	Close() error
}

// Reset stops the resource and restores every property to its default so it
// can be pooled.
func Reset(s Source) {
	s.Stop()
	_ = s.Bind(nil)
	s.SetBus(nil)
	*s.Props() = DefaultProps()
}
