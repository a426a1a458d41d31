package systems

import (
	"errors"
	"fmt"

	"github.com/automoto/doomerang-audio/archetypes"
	"github.com/automoto/doomerang-audio/assets"
	"github.com/automoto/doomerang-audio/components"
	cfg "github.com/automoto/doomerang-audio/config"
	"github.com/automoto/doomerang-audio/events"
	"github.com/automoto/doomerang-audio/manager"
	"github.com/automoto/doomerang-audio/mixer"
	"github.com/automoto/doomerang-audio/source"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi/ecs"
)

// FinishedEvent is broadcast on the audio event bus with the playback id
// whenever a managed playback completes on its own.
const FinishedEvent = "audio.finished"

var ErrAudioRunning = errors.New("audio already initialized for this world")

var logger = zerolog.Nop()

// SetLogger sets the logger used by every audio system.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// AudioSetup wires the host's resources into InitAudio.
type AudioSetup struct {
	// Spawn creates emitting resources for the manager's pool.
	Spawn    func() source.Source
	Loader   *assets.Loader
	Listener *source.Listener
}

// InitAudio creates the audio manager and stores it in the world's Audio
// singleton. A missing mixer bus is returned as an error the caller should
// treat as fatal.
func InitAudio(e *ecs.ECS, s AudioSetup) (*components.AudioData, error) {
	if _, ok := components.Audio.First(e.World); ok {
		return nil, ErrAudioRunning
	}

	m, err := manager.New(manager.Config{
		Spawn:          s.Spawn,
		Logger:         &logger,
		SourcePoolSize: manager.FromConfig,
		HandlePoolSize: manager.FromConfig,
		PrewarmSources: manager.FromConfig,
		OnFinished: func(id string) {
			if a, ok := GetAudio(e); ok {
				a.Finished = append(a.Finished, id)
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio: %w", err)
	}

	listener := s.Listener
	if listener == nil {
		listener = &source.Listener{}
	}

	entry := archetypes.Audio.Spawn(e)
	components.Audio.SetValue(entry, components.AudioData{
		Manager:  m,
		Loader:   s.Loader,
		Listener: listener,
		Events:   events.New(),
		Finished: make([]string, 0, 8),
	})
	return components.Audio.Get(entry), nil
}

// ShutdownAudio frees every playback, closes pooled resources and removes the
// Audio singleton.
func ShutdownAudio(e *ecs.ECS) {
	entry, ok := components.Audio.First(e.World)
	if !ok {
		return
	}
	a := components.Audio.Get(entry)
	a.Manager.Close()
	a.Events.ClearAll()
	e.World.Remove(entry.Entity())
}

// GetAudio returns the Audio singleton of the world.
func GetAudio(e *ecs.ECS) (*components.AudioData, bool) {
	entry, ok := components.Audio.First(e.World)
	if !ok {
		return nil, false
	}
	return components.Audio.Get(entry), true
}

// UpdateAudio ticks the manager once and publishes the playbacks that
// finished during the tick.
func UpdateAudio(e *ecs.ECS) {
	a, ok := GetAudio(e)
	if !ok {
		return
	}

	a.Manager.Update()

	for _, id := range a.Finished {
		components.PlaybackFinished.Publish(e.World, components.PlaybackFinishedEvent{ID: id})
		events.Broadcast(a.Events, FinishedEvent, id)
	}
	a.Finished = a.Finished[:0]
	components.PlaybackFinished.ProcessEvents(e.World)
}

// PlaySFX plays a sound effect once on the Sound channel.
func PlaySFX(e *ecs.ECS, path string) {
	a, ok := GetAudio(e)
	if !ok || a.Loader == nil {
		return
	}
	snd, err := a.Loader.Load(path)
	if err != nil {
		logger.Warn().Err(err).Str("sound", path).Msg("could not load sound effect")
		return
	}
	_ = a.Manager.PlayClipOneShot(snd, 1, mixer.Sound, nil)
}

// PlayMusic starts looping music at path on the Music channel, replacing the
// current track.
func PlayMusic(e *ecs.ECS, path string) {
	a, ok := GetAudio(e)
	if !ok || a.Loader == nil {
		return
	}

	// Already playing this music
	if a.MusicKey == path && a.Manager.Has(a.MusicID) {
		return
	}

	snd, err := a.Loader.Load(path)
	if err != nil {
		logger.Warn().Err(err).Str("sound", path).Msg("could not load music")
		return
	}

	StopMusic(e)
	a.MusicID = a.Manager.PlayClip(snd, -1, 1, mixer.Music, nil)
	a.MusicKey = path
}

// FadeOutMusic fades the current music out over config.Audio.FadeDuration
// frames and frees it.
func FadeOutMusic(e *ecs.ECS) {
	a, ok := GetAudio(e)
	if !ok || !a.Manager.Has(a.MusicID) {
		return
	}
	a.Manager.FadeOut(a.MusicID, cfg.Audio.FadeDuration, true)
	a.MusicKey = ""
}

// StopMusic immediately stops and frees the current music
func StopMusic(e *ecs.ECS) {
	a, ok := GetAudio(e)
	if !ok {
		return
	}
	if a.Manager.Has(a.MusicID) {
		a.Manager.Free(a.MusicID)
	}
	a.MusicID = ""
	a.MusicKey = ""
}

func PauseMusic(e *ecs.ECS) {
	if a, ok := GetAudio(e); ok && a.Manager.Has(a.MusicID) {
		a.Manager.Pause(a.MusicID)
	}
}

func ResumeMusic(e *ecs.ECS) {
	if a, ok := GetAudio(e); ok && a.Manager.Has(a.MusicID) {
		a.Manager.UnPause(a.MusicID)
	}
}
