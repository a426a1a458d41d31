package factory

import (
	"github.com/automoto/doomerang-audio/archetypes"
	"github.com/automoto/doomerang-audio/assets"
	"github.com/automoto/doomerang-audio/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

// CreateEmitter creates an audio emitter entity from a map spawn
func CreateEmitter(ecs *ecs.ECS, spawn assets.EmitterSpawn) *donburi.Entry {
	emitter := archetypes.Emitter.Spawn(ecs)

	components.Emitter.SetValue(emitter, components.EmitterData{
		Name:        spawn.Name,
		Sound:       spawn.Sound,
		Loops:       spawn.Loops,
		Channel:     spawn.Channel,
		Volume:      spawn.Volume,
		PlayOnAwake: spawn.PlayOnAwake,
		Position:    math.NewVec2(spawn.X, spawn.Y),
	})

	return emitter
}

// CreateEmitters creates one emitter per spawn
func CreateEmitters(ecs *ecs.ECS, spawns []assets.EmitterSpawn) []*donburi.Entry {
	entries := make([]*donburi.Entry, 0, len(spawns))
	for _, s := range spawns {
		entries = append(entries, CreateEmitter(ecs, s))
	}
	return entries
}
