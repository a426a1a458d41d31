package tags

import "github.com/yohamta/donburi"

var (
	Emitter = donburi.NewTag().SetName("Emitter")
)
