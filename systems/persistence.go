package systems

import (
	"encoding/json"

	cfg "github.com/automoto/doomerang-audio/config"
	"github.com/automoto/doomerang-audio/manager"
	"github.com/quasilyte/gdata"
)

// SavedSettings represents the bus volumes stored on disk
type SavedSettings struct {
	MasterVolume float64 `json:"masterVolume"`
	MusicVolume  float64 `json:"musicVolume"`
	SoundVolume  float64 `json:"soundVolume"`
	OtherVolume  float64 `json:"otherVolume"`
	Muted        bool    `json:"muted"`
}

// ItemStore is the subset of gdata.Manager used for settings.
type ItemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

var settingsStore ItemStore

// InitPersistence opens the gdata store for settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: cfg.Persistence.AppName,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("could not initialize persistence")
		return err
	}
	settingsStore = m
	return nil
}

// UseStore replaces the settings store.
func UseStore(s ItemStore) {
	settingsStore = s
}

// LoadSettings loads settings from disk. It returns nil, nil when nothing
// has been saved yet.
func LoadSettings() (*SavedSettings, error) {
	if settingsStore == nil {
		return nil, nil
	}

	data, err := settingsStore.LoadItem(cfg.Persistence.SettingsKey)
	if err != nil {
		logger.Warn().Err(err).Msg("could not load settings")
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		logger.Warn().Err(err).Msg("could not parse saved settings")
		return nil, err
	}
	return &settings, nil
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	if settingsStore == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		logger.Warn().Err(err).Msg("could not serialize settings")
		return err
	}

	if err := settingsStore.SaveItem(cfg.Persistence.SettingsKey, data); err != nil {
		logger.Warn().Err(err).Msg("could not save settings")
		return err
	}
	return nil
}

// CaptureSettings reads the current bus volumes of m.
func CaptureSettings(m *manager.Manager) *SavedSettings {
	return &SavedSettings{
		MasterVolume: m.MasterVolume(),
		MusicVolume:  m.MusicVolume(),
		SoundVolume:  m.SoundVolume(),
		OtherVolume:  m.OtherVolume(),
	}
}

// SaveCurrentSettings saves the bus volumes of m along with the mute flag.
func SaveCurrentSettings(m *manager.Manager, muted bool) error {
	s := CaptureSettings(m)
	s.Muted = muted
	return SaveSettings(s)
}

// ApplySavedSettings pushes loaded volumes onto the buses of m
func ApplySavedSettings(m *manager.Manager, saved *SavedSettings) {
	if saved == nil {
		return
	}

	m.SetMasterVolume(saved.MasterVolume)
	m.SetMusicVolume(saved.MusicVolume)
	m.SetSoundVolume(saved.SoundVolume)
	m.SetOtherVolume(saved.OtherVolume)

	if saved.Muted {
		m.SetMasterVolume(0)
	}
}
