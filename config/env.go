package config

import (
	"os"
	"strconv"
)

// LoadEnv overrides the configuration from AUDIO_* environment variables.
// Unset or unparsable variables keep their current value.
func LoadEnv() {
	Audio.SampleRate = envInt("AUDIO_SAMPLE_RATE", Audio.SampleRate)
	Audio.TPS = envInt("AUDIO_TPS", Audio.TPS)
	Audio.SourcePoolSize = envInt("AUDIO_SOURCE_POOL_SIZE", Audio.SourcePoolSize)
	Audio.HandlePoolSize = envInt("AUDIO_HANDLE_POOL_SIZE", Audio.HandlePoolSize)
	Audio.PrewarmSources = envInt("AUDIO_PREWARM_SOURCES", Audio.PrewarmSources)
	Audio.DefaultMasterVol = envFloat("AUDIO_MASTER_VOLUME", Audio.DefaultMasterVol)
	Audio.DefaultMusicVol = envFloat("AUDIO_MUSIC_VOLUME", Audio.DefaultMusicVol)
	Audio.DefaultSoundVol = envFloat("AUDIO_SOUND_VOLUME", Audio.DefaultSoundVol)
	Audio.DefaultOtherVol = envFloat("AUDIO_OTHER_VOLUME", Audio.DefaultOtherVol)
	Audio.FadeDuration = envInt("AUDIO_FADE_FRAMES", Audio.FadeDuration)
	Persistence.AppName = envStr("AUDIO_APP_NAME", Persistence.AppName)
	Debug.LogLevel = envStr("AUDIO_LOG_LEVEL", Debug.LogLevel)
	Demo.ClipsDir = envStr("AUDIO_CLIPS_DIR", Demo.ClipsDir)
	Demo.LevelPath = envStr("AUDIO_LEVEL", Demo.LevelPath)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
