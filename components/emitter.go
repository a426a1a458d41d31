package components

import (
	"github.com/automoto/doomerang-audio/mixer"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// EmitterData is a sound placed in the world that keeps one playback id
// across plays.
type EmitterData struct {
	Name        string
	Sound       string // loader path
	Loops       int
	Channel     mixer.Channel
	Volume      float64
	PlayOnAwake bool
	Position    math.Vec2

	ID      string // live playback, empty until first played
	Awake   bool   // play-on-awake already handled
	Pending bool   // play requested, handled on the next audio tick
}

var Emitter = donburi.NewComponentType[EmitterData]()
