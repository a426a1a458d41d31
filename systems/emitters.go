package systems

import (
	"github.com/automoto/doomerang-audio/components"
	"github.com/automoto/doomerang-audio/sequence"
	"github.com/automoto/doomerang-audio/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateEmitters starts play-on-awake emitters, serves pending play requests
// and keeps each live playback at its emitter's position. It runs before
// UpdateAudio.
func UpdateEmitters(e *ecs.ECS) {
	a, ok := GetAudio(e)
	if !ok {
		return
	}

	tags.Emitter.Each(e.World, func(entry *donburi.Entry) {
		em := components.Emitter.Get(entry)

		if !em.Awake {
			em.Awake = true
			em.Pending = em.Pending || em.PlayOnAwake
		}
		if em.Pending {
			em.Pending = false
			playEmitter(a, em)
		}
		if em.ID != "" && a.Manager.Has(em.ID) {
			a.Manager.SetPosition(em.ID, em.Position)
		}
	})
}

// PlayEmitter requests playback of the emitter on the next audio tick.
func PlayEmitter(entry *donburi.Entry) {
	components.Emitter.Get(entry).Pending = true
}

// StopEmitter stops the emitter's playback, keeping its id for a later replay.
func StopEmitter(e *ecs.ECS, entry *donburi.Entry) {
	a, ok := GetAudio(e)
	if !ok {
		return
	}
	em := components.Emitter.Get(entry)
	em.Pending = false
	if em.ID != "" && a.Manager.Has(em.ID) {
		a.Manager.Stop(em.ID)
	}
}

// FreeEmitter releases the emitter's playback. The next play allocates a new one.
func FreeEmitter(e *ecs.ECS, entry *donburi.Entry) {
	a, ok := GetAudio(e)
	if !ok {
		return
	}
	em := components.Emitter.Get(entry)
	if em.ID != "" && a.Manager.Has(em.ID) {
		a.Manager.Free(em.ID)
	}
	em.ID = ""
}

// playEmitter replays a live playback in place, otherwise starts a new one
// with full spatial blend.
func playEmitter(a *components.AudioData, em *components.EmitterData) {
	if em.ID != "" && a.Manager.Has(em.ID) {
		a.Manager.Replay(em.ID)
		return
	}
	if a.Loader == nil {
		return
	}

	snd, err := a.Loader.Load(em.Sound)
	if err != nil {
		logger.Warn().Err(err).Str("emitter", em.Name).Str("sound", em.Sound).Msg("could not load emitter sound")
		return
	}
	seq, err := sequence.Single(snd, em.Loops)
	if err != nil {
		logger.Warn().Err(err).Str("emitter", em.Name).Msg("could not build emitter sequence")
		return
	}

	em.ID = a.Manager.Play(seq, em.Volume, em.Channel, nil)
	if em.ID == "" {
		return
	}
	a.Manager.SetSpatialBlend(em.ID, 1)
	a.Manager.SetPosition(em.ID, em.Position)
}
