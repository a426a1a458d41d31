package config

// Bus paths resolved from the mixer at startup. Every channel bus is a child of Master.
const (
	BusMaster = "Master"
	BusMusic  = "Master/Music"
	BusSound  = "Master/Sound"
	BusOther  = "Master/Other"
)

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	SampleRate int
	TPS        int // ticks per second the host drives the audio system at

	// Pools
	SourcePoolSize int // max idle emitting resources kept for reuse
	HandlePoolSize int // max idle playback handles kept for reuse
	PrewarmSources int // resources spawned up front when the manager starts

	// Mixer
	BusPaths         []string
	DefaultMasterVol float64
	DefaultMusicVol  float64
	DefaultSoundVol  float64
	DefaultOtherVol  float64

	FadeDuration int // frames for fades (60 = 1 second at 60fps)
}

// SourceDefaults are the values a resource is reset to before it goes back to the pool.
type SourceDefaults struct {
	Volume        float64
	Pitch         float64
	PanStereo     float64
	SpatialBlend  float64
	ReverbZoneMix float64
	DopplerLevel  float64
	Spread        float64
	MinDistance   float64
	MaxDistance   float64
}

// PersistenceConfig controls where settings are stored
type PersistenceConfig struct {
	AppName     string
	SettingsKey string
}

var Audio AudioConfig
var Source SourceDefaults
var Persistence PersistenceConfig

func init() {
	Audio = AudioConfig{
		SampleRate: 44100,
		TPS:        60,

		SourcePoolSize: 50,
		HandlePoolSize: 50,
		PrewarmSources: 10,

		BusPaths:         []string{BusMaster, BusMusic, BusSound, BusOther},
		DefaultMasterVol: 1.0,
		DefaultMusicVol:  1.0,
		DefaultSoundVol:  1.0,
		DefaultOtherVol:  1.0,

		FadeDuration: 60,
	}

	Source = SourceDefaults{
		Volume:        1.0,
		Pitch:         1.0,
		PanStereo:     0.0,
		SpatialBlend:  0.0,
		ReverbZoneMix: 1.0,
		DopplerLevel:  1.0,
		Spread:        0.0,
		MinDistance:   1.0,
		MaxDistance:   500.0,
	}

	Persistence = PersistenceConfig{
		AppName:     "doomerang-audio",
		SettingsKey: "audio_settings",
	}
}
