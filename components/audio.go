package components

import (
	"github.com/automoto/doomerang-audio/assets"
	"github.com/automoto/doomerang-audio/events"
	"github.com/automoto/doomerang-audio/manager"
	"github.com/automoto/doomerang-audio/source"
	"github.com/yohamta/donburi"
)

// AudioData stores global audio state (singleton component)
type AudioData struct {
	Manager  *manager.Manager
	Loader   *assets.Loader
	Listener *source.Listener
	Events   *events.Bus

	MusicID  string // current music playback
	MusicKey string // loader path of the current music

	// Finished holds ids of managed playbacks that completed during the
	// current tick, in completion order.
	Finished []string
}

var Audio = donburi.NewComponentType[AudioData]()
