// Package sequence describes what a playback handle plays: an ordered list of
// sounds, each repeated a fixed number of times or forever.
package sequence

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrEmpty           = errors.New("sequence has no clips")
	ErrNilSound        = errors.New("clip has no sound")
	ErrUnreachableClip = errors.New("clip follows an infinitely looping clip and can never play")
)

// Sound is a loaded, playable piece of audio a Clip refers to.
type Sound interface {
	Name() string
	Duration() time.Duration
}

// Clip is one sound plus the number of extra times it repeats.
// Loops >= 0 plays the sound 1+Loops times, Loops < 0 loops it forever.
type Clip struct {
	sound Sound
	loops int
}

func NewClip(sound Sound, loops int) Clip {
	return Clip{sound: sound, loops: loops}
}

func (c Clip) Sound() Sound { return c.sound }
func (c Clip) Loops() int   { return c.loops }

// Infinite reports whether the clip repeats until stopped.
func (c Clip) Infinite() bool { return c.loops < 0 }

// Plays returns how many times the clip is played, or -1 for infinite clips.
func (c Clip) Plays() int {
	if c.Infinite() {
		return -1
	}
	return c.loops + 1
}

// Sequence is an ordered, immutable list of clips. It is shared read-only by
// every handle playing it.
type Sequence struct {
	name  string
	clips []Clip
}

// New builds a sequence from the given clips. The clip slice is copied.
func New(name string, clips ...Clip) (*Sequence, error) {
	if len(clips) == 0 {
		return nil, fmt.Errorf("sequence %q: %w", name, ErrEmpty)
	}
	for i, c := range clips {
		if c.sound == nil {
			return nil, fmt.Errorf("sequence %q clip %d: %w", name, i, ErrNilSound)
		}
	}
	cs := make([]Clip, len(clips))
	copy(cs, clips)
	return &Sequence{name: name, clips: cs}, nil
}

// Single wraps one sound into a one-clip sequence named after the sound.
func Single(sound Sound, loops int) (*Sequence, error) {
	name := ""
	if sound != nil {
		name = sound.Name()
	}
	return New(name, NewClip(sound, loops))
}

func (s *Sequence) Name() string { return s.name }
func (s *Sequence) Len() int     { return len(s.clips) }

// Clip returns the i-th clip.
func (s *Sequence) Clip(i int) Clip { return s.clips[i] }

// Clips returns a copy of the clip list.
func (s *Sequence) Clips() []Clip {
	cs := make([]Clip, len(s.clips))
	copy(cs, s.clips)
	return cs
}

// Sounds returns the distinct sounds in play order, for preloading.
func (s *Sequence) Sounds() []Sound {
	seen := make(map[Sound]struct{}, len(s.clips))
	sounds := make([]Sound, 0, len(s.clips))
	for _, c := range s.clips {
		if _, ok := seen[c.sound]; ok {
			continue
		}
		seen[c.sound] = struct{}{}
		sounds = append(sounds, c.sound)
	}
	return sounds
}

// Infinite reports whether any clip loops forever.
func (s *Sequence) Infinite() bool {
	for _, c := range s.clips {
		if c.Infinite() {
			return true
		}
	}
	return false
}

// Length returns the total playback time in seconds, or +Inf when any clip
// loops forever.
func (s *Sequence) Length() float64 {
	var total float64
	for _, c := range s.clips {
		if c.Infinite() {
			return math.Inf(1)
		}
		total += c.sound.Duration().Seconds() * float64(c.loops+1)
	}
	return total
}

// Validate reports authoring mistakes that do not stop playback: an infinite
// clip anywhere but last makes the clips after it unreachable.
func (s *Sequence) Validate() error {
	for i, c := range s.clips[:len(s.clips)-1] {
		if c.Infinite() {
			return fmt.Errorf("sequence %q clip %d: %w", s.name, i+1, ErrUnreachableClip)
		}
	}
	return nil
}
