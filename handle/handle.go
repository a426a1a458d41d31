// Package handle implements the playback handle: a recyclable session that
// plays one sequence on one emitting resource, stepped once per tick.
package handle

import (
	"github.com/automoto/doomerang-audio/mixer"
	"github.com/automoto/doomerang-audio/sequence"
	"github.com/automoto/doomerang-audio/source"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Recycler takes back the resource and the handle when a handle is freed.
type Recycler interface {
	ReleaseSource(s source.Source)
	ReleaseHandle(h *Handle)
}

type listener struct {
	id string
	fn func()
}

// Handle plays a sequence on a resource it owns exclusively while live.
//
// Lifecycle: activated (New or Activate) -> playing -> finished/stopped ->
// freed, after which the handle is disposed until it is activated again.
// Playback is an explicit state machine advanced by Advance; there is never
// more than one playback in flight, since Play, Stop and Free reset it.
type Handle struct {
	src      source.Source
	seq      *sequence.Sequence
	router   *mixer.Router
	recycler Recycler
	logger   zerolog.Logger

	listeners []listener
	notify    func()

	disposed  bool
	paused    bool
	inProcess bool
	gen       uint64

	clip   int // index of the clip being played
	looped int // completed playthroughs of the current clip
}

// New creates an activated handle. router and recycler may be nil; without a
// recycler a freed resource is closed.
func New(seq *sequence.Sequence, src source.Source, volume float64, router *mixer.Router, recycler Recycler, logger zerolog.Logger) *Handle {
	h := &Handle{
		router:   router,
		recycler: recycler,
		logger:   logger,
		disposed: true,
	}
	h.Activate(seq, src, volume)
	return h
}

// Activate binds a disposed handle to a sequence and resource. It does
// nothing on a live handle.
func (h *Handle) Activate(seq *sequence.Sequence, src source.Source, volume float64) {
	if !h.disposed {
		return
	}
	h.seq = seq
	h.src = src
	h.src.Props().Volume = volume
	h.disposed = false
	h.gen++
}

// Generation counts activations, so a recycled handle can be told apart from
// its previous life.
func (h *Handle) Generation() uint64 { return h.gen }

func (h *Handle) Disposed() bool { return h.disposed }

// Source returns the bound resource, nil once disposed.
func (h *Handle) Source() source.Source { return h.src }

// Sequence returns the bound sequence, nil once disposed.
func (h *Handle) Sequence() *sequence.Sequence { return h.seq }

func (h *Handle) valid() bool {
	if h.disposed {
		h.logger.Error().Msg("attempt to access a disposed handle")
		return false
	}
	return true
}

// Play (re)starts the sequence from its first clip, cancelling any playback
// already in flight.
func (h *Handle) Play() {
	if !h.valid() {
		return
	}
	h.paused = false
	h.inProcess = true
	h.clip = 0
	h.startClip()
}

// Stop halts playback without firing finished listeners.
func (h *Handle) Stop() {
	if !h.valid() {
		return
	}
	h.inProcess = false
	h.paused = false
	h.src.Stop()
}

// Pause suspends a running playback; the sequence position is kept.
func (h *Handle) Pause() {
	if !h.valid() || !h.inProcess {
		return
	}
	h.src.Pause()
	h.paused = true
}

// Resume lifts a pause on a running playback. A stopped or finished playback
// stays silent.
func (h *Handle) Resume() {
	if !h.valid() || !h.inProcess || !h.paused {
		return
	}
	h.src.UnPause()
	h.paused = false
}

// IsPlaying reports whether a playback is in flight and not paused.
func (h *Handle) IsPlaying() bool {
	if !h.valid() {
		return false
	}
	return h.inProcess && !h.paused
}

// Paused reports whether the handle is paused.
func (h *Handle) Paused() bool {
	return !h.disposed && h.paused
}

// Advance steps playback by one tick. While the resource is emitting or the
// handle is paused nothing happens; otherwise the current playthrough has
// ended and the handle restarts the clip, moves to the next clip, or
// finishes. At most one transition happens per tick.
func (h *Handle) Advance() {
	if h.disposed || !h.inProcess {
		return
	}
	h.src.Update()
	if h.paused || h.src.IsPlaying() {
		return
	}

	c := h.seq.Clip(h.clip)
	if !c.Infinite() {
		h.looped++
	}
	if h.looped <= c.Loops() {
		h.src.Play()
		return
	}

	h.clip++
	if h.clip < h.seq.Len() {
		h.startClip()
		return
	}
	h.finish()
}

func (h *Handle) startClip() {
	c := h.seq.Clip(h.clip)
	if err := h.src.Bind(c.Sound()); err != nil {
		h.logger.Error().Err(err).Str("sequence", h.seq.Name()).Int("clip", h.clip).Msg("failed to bind clip")
	}
	h.looped = 0
	if c.Infinite() {
		h.looped = c.Loops()
	}
	h.src.Play()
}

func (h *Handle) finish() {
	h.inProcess = false

	ls := make([]listener, len(h.listeners))
	copy(ls, h.listeners)
	notify := h.notify
	for _, l := range ls {
		l.fn()
	}
	if notify != nil {
		notify()
	}
}

// SetNotify installs an owner hook run after the finished listeners. Unlike
// listeners it survives ClearOnFinished and is dropped by Free.
func (h *Handle) SetNotify(fn func()) {
	if h.valid() {
		h.notify = fn
	}
}

// AddOnFinished registers fn to run when the sequence completes naturally and
// returns an id for RemoveOnFinished.
func (h *Handle) AddOnFinished(fn func()) string {
	if !h.valid() || fn == nil {
		return ""
	}
	id := uuid.NewString()
	h.listeners = append(h.listeners, listener{id: id, fn: fn})
	return id
}

// RemoveOnFinished unregisters the listener with the given id.
func (h *Handle) RemoveOnFinished(id string) bool {
	if !h.valid() {
		return false
	}
	for i, l := range h.listeners {
		if l.id == id {
			h.listeners = append(h.listeners[:i], h.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (h *Handle) ClearOnFinished() {
	if !h.valid() {
		return
	}
	h.listeners = nil
}

// Listeners returns the number of registered finished listeners.
func (h *Handle) Listeners() int { return len(h.listeners) }

// Free cancels playback, resets the resource and hands it back to the
// recycler, then disposes the handle and offers it back too.
func (h *Handle) Free() {
	if h.disposed {
		h.logger.Error().Msg("cannot free a handle that has already been disposed")
		return
	}

	h.inProcess = false
	h.paused = false

	src := h.src
	source.Reset(src)
	if h.recycler != nil {
		h.recycler.ReleaseSource(src)
	} else {
		_ = src.Close()
	}

	h.seq = nil
	h.src = nil
	h.listeners = nil
	h.notify = nil
	h.clip = 0
	h.looped = 0
	h.disposed = true

	if h.recycler != nil {
		h.recycler.ReleaseHandle(h)
	}
}
