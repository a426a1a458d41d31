package manager

import (
	"math"

	"github.com/automoto/doomerang-audio/mixer"
	"github.com/automoto/doomerang-audio/source"
	dmath "github.com/yohamta/donburi/features/math"
)

// Keyed accessors for per-playback properties. An unknown id logs a warning
// and returns the same sentinel a disposed handle would.

func (m *Manager) Volume(id string) float64 {
	if h, ok := m.lookup(id); ok {
		return h.Volume()
	}
	return math.NaN()
}

func (m *Manager) SetVolume(id string, v float64) {
	if h, ok := m.lookup(id); ok {
		h.SetVolume(v)
	}
}

func (m *Manager) Pitch(id string) float64 {
	if h, ok := m.lookup(id); ok {
		return h.Pitch()
	}
	return math.NaN()
}

func (m *Manager) SetPitch(id string, v float64) {
	if h, ok := m.lookup(id); ok {
		h.SetPitch(v)
	}
}

func (m *Manager) PanStereo(id string) float64 {
	if h, ok := m.lookup(id); ok {
		return h.PanStereo()
	}
	return math.NaN()
}

func (m *Manager) SetPanStereo(id string, v float64) {
	if h, ok := m.lookup(id); ok {
		h.SetPanStereo(v)
	}
}

func (m *Manager) SpatialBlend(id string) float64 {
	if h, ok := m.lookup(id); ok {
		return h.SpatialBlend()
	}
	return math.NaN()
}

func (m *Manager) SetSpatialBlend(id string, v float64) {
	if h, ok := m.lookup(id); ok {
		h.SetSpatialBlend(v)
	}
}

func (m *Manager) ReverbZoneMix(id string) float64 {
	if h, ok := m.lookup(id); ok {
		return h.ReverbZoneMix()
	}
	return math.NaN()
}

func (m *Manager) SetReverbZoneMix(id string, v float64) {
	if h, ok := m.lookup(id); ok {
		h.SetReverbZoneMix(v)
	}
}

func (m *Manager) DopplerLevel(id string) float64 {
	if h, ok := m.lookup(id); ok {
		return h.DopplerLevel()
	}
	return math.NaN()
}

func (m *Manager) SetDopplerLevel(id string, v float64) {
	if h, ok := m.lookup(id); ok {
		h.SetDopplerLevel(v)
	}
}

func (m *Manager) Spread(id string) float64 {
	if h, ok := m.lookup(id); ok {
		return h.Spread()
	}
	return math.NaN()
}

func (m *Manager) SetSpread(id string, v float64) {
	if h, ok := m.lookup(id); ok {
		h.SetSpread(v)
	}
}

func (m *Manager) RolloffMode(id string) source.RolloffMode {
	if h, ok := m.lookup(id); ok {
		return h.RolloffMode()
	}
	return source.RolloffCustom
}

func (m *Manager) SetRolloffMode(id string, mode source.RolloffMode) {
	if h, ok := m.lookup(id); ok {
		h.SetRolloffMode(mode)
	}
}

func (m *Manager) MinDistance(id string) float64 {
	if h, ok := m.lookup(id); ok {
		return h.MinDistance()
	}
	return math.NaN()
}

func (m *Manager) SetMinDistance(id string, v float64) {
	if h, ok := m.lookup(id); ok {
		h.SetMinDistance(v)
	}
}

func (m *Manager) MaxDistance(id string) float64 {
	if h, ok := m.lookup(id); ok {
		return h.MaxDistance()
	}
	return math.NaN()
}

func (m *Manager) SetMaxDistance(id string, v float64) {
	if h, ok := m.lookup(id); ok {
		h.SetMaxDistance(v)
	}
}

func (m *Manager) Position(id string) dmath.Vec2 {
	if h, ok := m.lookup(id); ok {
		return h.Position()
	}
	return dmath.Vec2{}
}

func (m *Manager) SetPosition(id string, v dmath.Vec2) {
	if h, ok := m.lookup(id); ok {
		h.SetPosition(v)
	}
}

func (m *Manager) BypassEffects(id string) bool {
	if h, ok := m.lookup(id); ok {
		return h.BypassEffects()
	}
	return false
}

func (m *Manager) SetBypassEffects(id string, v bool) {
	if h, ok := m.lookup(id); ok {
		h.SetBypassEffects(v)
	}
}

func (m *Manager) BypassListenerEffects(id string) bool {
	if h, ok := m.lookup(id); ok {
		return h.BypassListenerEffects()
	}
	return false
}

func (m *Manager) SetBypassListenerEffects(id string, v bool) {
	if h, ok := m.lookup(id); ok {
		h.SetBypassListenerEffects(v)
	}
}

func (m *Manager) BypassReverbZones(id string) bool {
	if h, ok := m.lookup(id); ok {
		return h.BypassReverbZones()
	}
	return false
}

func (m *Manager) SetBypassReverbZones(id string, v bool) {
	if h, ok := m.lookup(id); ok {
		h.SetBypassReverbZones(v)
	}
}

func (m *Manager) IsPlaying(id string) bool {
	if h, ok := m.lookup(id); ok {
		return h.IsPlaying()
	}
	return false
}

// Length returns the playback length in seconds, +Inf for infinite loops.
func (m *Manager) Length(id string) float64 {
	if h, ok := m.lookup(id); ok {
		return h.Length()
	}
	return math.NaN()
}

func (m *Manager) OutputChannel(id string) mixer.Channel {
	if h, ok := m.lookup(id); ok {
		return h.OutputChannel()
	}
	return mixer.Other
}
