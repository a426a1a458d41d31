package handle

import (
	"math"

	"github.com/automoto/doomerang-audio/mixer"
	"github.com/automoto/doomerang-audio/source"
	dmath "github.com/yohamta/donburi/features/math"
)

func (h *Handle) getFloat(f func(p *source.Props) float64) float64 {
	if !h.valid() {
		return math.NaN()
	}
	return f(h.src.Props())
}

func (h *Handle) getBool(f func(p *source.Props) bool) bool {
	if !h.valid() {
		return false
	}
	return f(h.src.Props())
}

func (h *Handle) set(f func(p *source.Props)) {
	if h.valid() {
		f(h.src.Props())
	}
}

func (h *Handle) Volume() float64 { return h.getFloat(func(p *source.Props) float64 { return p.Volume }) }
func (h *Handle) SetVolume(v float64) { h.set(func(p *source.Props) { p.Volume = v }) }

func (h *Handle) Pitch() float64 { return h.getFloat(func(p *source.Props) float64 { return p.Pitch }) }
func (h *Handle) SetPitch(v float64) { h.set(func(p *source.Props) { p.Pitch = v }) }

func (h *Handle) PanStereo() float64 {
	return h.getFloat(func(p *source.Props) float64 { return p.PanStereo })
}
func (h *Handle) SetPanStereo(v float64) { h.set(func(p *source.Props) { p.PanStereo = v }) }

func (h *Handle) SpatialBlend() float64 {
	return h.getFloat(func(p *source.Props) float64 { return p.SpatialBlend })
}
func (h *Handle) SetSpatialBlend(v float64) { h.set(func(p *source.Props) { p.SpatialBlend = v }) }

func (h *Handle) ReverbZoneMix() float64 {
	return h.getFloat(func(p *source.Props) float64 { return p.ReverbZoneMix })
}
func (h *Handle) SetReverbZoneMix(v float64) { h.set(func(p *source.Props) { p.ReverbZoneMix = v }) }

func (h *Handle) DopplerLevel() float64 {
	return h.getFloat(func(p *source.Props) float64 { return p.DopplerLevel })
}
func (h *Handle) SetDopplerLevel(v float64) { h.set(func(p *source.Props) { p.DopplerLevel = v }) }

func (h *Handle) Spread() float64 { return h.getFloat(func(p *source.Props) float64 { return p.Spread }) }
func (h *Handle) SetSpread(v float64) { h.set(func(p *source.Props) { p.Spread = v }) }

func (h *Handle) MinDistance() float64 {
	return h.getFloat(func(p *source.Props) float64 { return p.MinDistance })
}
func (h *Handle) SetMinDistance(v float64) { h.set(func(p *source.Props) { p.MinDistance = v }) }

func (h *Handle) MaxDistance() float64 {
	return h.getFloat(func(p *source.Props) float64 { return p.MaxDistance })
}
func (h *Handle) SetMaxDistance(v float64) { h.set(func(p *source.Props) { p.MaxDistance = v }) }

func (h *Handle) BypassEffects() bool {
	return h.getBool(func(p *source.Props) bool { return p.BypassEffects })
}
func (h *Handle) SetBypassEffects(v bool) { h.set(func(p *source.Props) { p.BypassEffects = v }) }

func (h *Handle) BypassListenerEffects() bool {
	return h.getBool(func(p *source.Props) bool { return p.BypassListenerEffects })
}
func (h *Handle) SetBypassListenerEffects(v bool) {
	h.set(func(p *source.Props) { p.BypassListenerEffects = v })
}

func (h *Handle) BypassReverbZones() bool {
	return h.getBool(func(p *source.Props) bool { return p.BypassReverbZones })
}
func (h *Handle) SetBypassReverbZones(v bool) { h.set(func(p *source.Props) { p.BypassReverbZones = v }) }

// RolloffMode returns RolloffCustom when the handle is disposed.
func (h *Handle) RolloffMode() source.RolloffMode {
	if !h.valid() {
		return source.RolloffCustom
	}
	return h.src.Props().Rolloff
}

// SetRolloffMode accepts only Linear and Logarithmic; anything else is
// rejected and the current mode kept.
func (h *Handle) SetRolloffMode(m source.RolloffMode) {
	if !h.valid() {
		return
	}
	switch m {
	case source.RolloffLinear, source.RolloffLogarithmic:
		h.src.Props().Rolloff = m
	default:
		h.logger.Warn().Stringer("rolloff", m).Msg(`rolloff mode can only be set to "Linear" or "Logarithmic"`)
	}
}

func (h *Handle) Position() dmath.Vec2 {
	if !h.valid() {
		return dmath.Vec2{}
	}
	return h.src.Props().Position
}

func (h *Handle) SetPosition(v dmath.Vec2) { h.set(func(p *source.Props) { p.Position = v }) }

// OutputChannel reports the channel the resource is routed to.
func (h *Handle) OutputChannel() mixer.Channel {
	if !h.valid() || h.router == nil {
		return mixer.Other
	}
	return h.router.ChannelOf(h.src.Bus())
}

func (h *Handle) SetOutputChannel(c mixer.Channel) {
	if !h.valid() || h.router == nil {
		return
	}
	h.router.Route(h.src, c)
}

// Length returns the sequence length in seconds, +Inf for infinite sequences
// and NaN when disposed.
func (h *Handle) Length() float64 {
	if !h.valid() {
		return math.NaN()
	}
	return h.seq.Length()
}
