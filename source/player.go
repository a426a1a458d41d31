package source

import (
	"errors"
	"fmt"

	"github.com/automoto/doomerang-audio/mixer"
	"github.com/automoto/doomerang-audio/sequence"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

var ErrNotPCM = errors.New("sound has no decoded PCM data")

// PCMSound is a Sound decoded to 16-bit stereo PCM at the audio context's
// sample rate.
type PCMSound interface {
	sequence.Sound
	PCM() []byte
}

// Player is a Source backed by an ebiten audio player. Pitch, doppler,
// spread and the bypass flags are stored for callers but not rendered.
type Player struct {
	ctx      *audio.Context
	listener *Listener

	sound  sequence.Sound
	player *audio.Player
	bus    *mixer.Bus
	props  Props
	paused bool
}

// NewPlayer creates an unbound player heard by the given listener (may be nil).
func NewPlayer(ctx *audio.Context, l *Listener) *Player {
	return &Player{
		ctx:      ctx,
		listener: l,
		props:    DefaultProps(),
	}
}

func (p *Player) Bind(s sequence.Sound) error {
	if p.player != nil {
		_ = p.player.Close()
		p.player = nil
	}
	p.sound = s
	p.paused = false
	if s == nil {
		return nil
	}

	pcm, ok := s.(PCMSound)
	if !ok {
		return fmt.Errorf("bind %s: %w", s.Name(), ErrNotPCM)
	}
	p.player = p.ctx.NewPlayerFromBytes(pcm.PCM())
	p.Update()
	return nil
}

func (p *Player) Sound() sequence.Sound { return p.sound }

func (p *Player) Play() {
	if p.player == nil {
		return
	}
	p.paused = false
	_ = p.player.SetPosition(0)
	p.Update()
	p.player.Play()
}

func (p *Player) Stop() {
	p.paused = false
	if p.player == nil {
		return
	}
	p.player.Pause()
	_ = p.player.SetPosition(0)
}

func (p *Player) Pause() {
	if p.player != nil && p.player.IsPlaying() {
		p.player.Pause()
		p.paused = true
	}
}

// UnPause continues a paused sound. A stopped or unstarted sound stays silent.
func (p *Player) UnPause() {
	if p.player == nil || !p.paused {
		return
	}
	p.paused = false
	p.player.Play()
}

func (p *Player) IsPlaying() bool {
	return p.player != nil && p.player.IsPlaying()
}

func (p *Player) Bus() *mixer.Bus     { return p.bus }
func (p *Player) SetBus(b *mixer.Bus) { p.bus = b }
func (p *Player) Props() *Props       { return &p.props }

// Gain is the volume actually sent to the output: the resource volume times
// the routed bus gain times distance attenuation.
func (p *Player) Gain() float64 {
	g := p.props.Volume
	if p.bus != nil {
		g *= p.bus.Gain()
	}
	g *= p.listener.Attenuation(&p.props)
	return min(max(g, 0), 1)
}

func (p *Player) Update() {
	if p.player == nil {
		return
	}
	p.player.SetVolume(p.Gain())
}

func (p *Player) Close() error {
	return p.Bind(nil)
}
