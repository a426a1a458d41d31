package archetypes

import (
	"github.com/automoto/doomerang-audio/components"
	cfg "github.com/automoto/doomerang-audio/config"
	"github.com/automoto/doomerang-audio/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Audio = newArchetype(
		components.Audio,
	)
	Emitter = newArchetype(
		tags.Emitter,
		components.Emitter,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
