// Package audiotest provides test doubles for the emitting-resource boundary.
package audiotest

import (
	"time"

	"github.com/automoto/doomerang-audio/mixer"
	"github.com/automoto/doomerang-audio/sequence"
	"github.com/automoto/doomerang-audio/source"
)

// Sound is a named fake sound with a fixed duration.
type Sound struct {
	N string
	D time.Duration
}

func NewSound(name string, d time.Duration) *Sound {
	return &Sound{N: name, D: d}
}

func (s *Sound) Name() string            { return s.N }
func (s *Sound) Duration() time.Duration { return s.D }

// Source is a fake emitting resource. It keeps emitting after Play until the
// test calls Finish, which simulates the bound sound reaching its end.
type Source struct {
	sound   sequence.Sound
	playing bool
	paused  bool
	bus     *mixer.Bus
	props   source.Props

	Plays    []string // names of the sounds started, in order
	Stops    int
	UnPauses int // calls to UnPause, effective or not
	Updates  int
	Closed   bool
}

func NewSource() *Source {
	return &Source{props: source.DefaultProps()}
}

func (s *Source) Bind(snd sequence.Sound) error {
	s.sound = snd
	s.playing = false
	s.paused = false
	return nil
}

func (s *Source) Sound() sequence.Sound { return s.sound }

func (s *Source) Play() {
	if s.sound == nil {
		return
	}
	s.playing = true
	s.paused = false
	s.Plays = append(s.Plays, s.sound.Name())
}

func (s *Source) Stop() {
	s.playing = false
	s.paused = false
	s.Stops++
}

func (s *Source) Pause() {
	if s.playing {
		s.paused = true
	}
}

// UnPause continues only a paused sound, like the ebiten-backed player.
func (s *Source) UnPause() {
	s.UnPauses++
	if s.paused {
		s.paused = false
		s.playing = true
	}
}

func (s *Source) IsPlaying() bool { return s.playing && !s.paused }

// Paused reports whether Pause was called while emitting.
func (s *Source) Paused() bool { return s.paused }

// Finish ends the current playthrough of the bound sound.
func (s *Source) Finish() {
	s.playing = false
	s.paused = false
}

func (s *Source) Bus() *mixer.Bus      { return s.bus }
func (s *Source) SetBus(b *mixer.Bus)  { s.bus = b }
func (s *Source) Props() *source.Props { return &s.props }
func (s *Source) Update()              { s.Updates++ }

func (s *Source) Close() error {
	s.Closed = true
	return nil
}

var _ source.Source = (*Source)(nil)
