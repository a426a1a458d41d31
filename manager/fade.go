package manager

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type fade struct {
	tween *gween.Tween
	out   bool
	free  bool    // free instead of stop when a fade out completes
	from  float64 // volume restored after a fade out stops the playback
}

// FadeOut ramps the playback volume to zero over frames ticks, then stops it
// (or frees it when free is set).
func (m *Manager) FadeOut(id string, frames int, free bool) {
	h, ok := m.lookup(id)
	if !ok {
		return
	}
	m.fades[id] = &fade{
		tween: gween.New(float32(h.Volume()), 0, float32(max(frames, 0)), ease.Linear),
		out:   true,
		free:  free,
		from:  h.Volume(),
	}
}

// FadeIn ramps the playback volume from zero to target over frames ticks.
func (m *Manager) FadeIn(id string, frames int, target float64) {
	h, ok := m.lookup(id)
	if !ok {
		return
	}
	h.SetVolume(0)
	m.fades[id] = &fade{
		tween: gween.New(0, float32(target), float32(max(frames, 0)), ease.Linear),
	}
}

// Fading reports whether a fade is in progress for id.
func (m *Manager) Fading(id string) bool {
	_, ok := m.fades[id]
	return ok
}

func (m *Manager) updateFades() {
	for id, f := range m.fades {
		h, ok := m.managed[id]
		if !ok {
			delete(m.fades, id)
			continue
		}

		v, done := f.tween.Update(1)
		h.SetVolume(float64(v))
		if !done {
			continue
		}

		delete(m.fades, id)
		if !f.out {
			continue
		}
		if f.free {
			m.Free(id)
		} else {
			h.Stop()
			h.SetVolume(f.from)
		}
	}
}
