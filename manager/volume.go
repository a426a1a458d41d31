package manager

import "github.com/automoto/doomerang-audio/mixer"

// setBusVolume clamps v to [0,1], stores it and pushes the decibel value to
// the bus.
func (m *Manager) setBusVolume(dst *float64, bus *mixer.Bus, v float64) {
	v = min(max(v, 0), 1)
	*dst = v
	bus.SetVolumeDB(mixer.LinearToDB(v))
	m.logger.Debug().Str("bus", bus.Path()).Float64("volume", v).Msg("bus volume changed")
}

func (m *Manager) MasterVolume() float64 { return m.masterVolume }
func (m *Manager) MusicVolume() float64  { return m.musicVolume }
func (m *Manager) SoundVolume() float64  { return m.soundVolume }
func (m *Manager) OtherVolume() float64  { return m.otherVolume }

func (m *Manager) SetMasterVolume(v float64) {
	m.setBusVolume(&m.masterVolume, m.router.Master(), v)
}

func (m *Manager) SetMusicVolume(v float64) {
	m.setBusVolume(&m.musicVolume, m.router.Bus(mixer.Music), v)
}

func (m *Manager) SetSoundVolume(v float64) {
	m.setBusVolume(&m.soundVolume, m.router.Bus(mixer.Sound), v)
}

func (m *Manager) SetOtherVolume(v float64) {
	m.setBusVolume(&m.otherVolume, m.router.Bus(mixer.Other), v)
}

// ChannelVolume returns the linear volume of a channel's bus.
func (m *Manager) ChannelVolume(ch mixer.Channel) float64 {
	switch ch {
	case mixer.Music:
		return m.musicVolume
	case mixer.Sound:
		return m.soundVolume
	default:
		return m.otherVolume
	}
}

// SetChannelVolume sets the linear volume of a channel's bus.
func (m *Manager) SetChannelVolume(ch mixer.Channel, v float64) {
	switch ch {
	case mixer.Music:
		m.SetMusicVolume(v)
	case mixer.Sound:
		m.SetSoundVolume(v)
	default:
		m.SetOtherVolume(v)
	}
}
