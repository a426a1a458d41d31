package config

import "github.com/yohamta/donburi/ecs"

// Default is the ECS layer every audio system runs on.
const Default ecs.LayerID = 0

// Config holds general window configuration for the demo
type Config struct {
	Width  int
	Height int
}

// DebugConfig contains logging options
type DebugConfig struct {
	LogLevel string // zerolog level name: trace, debug, info, warn, error
	Console  bool   // human readable console output instead of JSON
}

// DemoConfig contains options for the bundled audio demo
type DemoConfig struct {
	ClipsDir    string    // directory scanned for .wav/.ogg/.mp3 files
	LevelPath   string    // optional .tmx with an AudioEmitters object group
	VolumeSteps []float64 // bus volume presets cycled with the number keys
}

// Global configuration instances
var C *Config
var Debug DebugConfig
var Demo DemoConfig

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
	}

	Debug = DebugConfig{
		LogLevel: "info",
		Console:  true,
	}

	Demo = DemoConfig{
		ClipsDir:    "sounds",
		VolumeSteps: []float64{0, 0.25, 0.5, 0.75, 1.0},
	}
}
