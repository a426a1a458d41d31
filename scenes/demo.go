package scenes

import (
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/automoto/doomerang-audio/assets"
	"github.com/automoto/doomerang-audio/components"
	cfg "github.com/automoto/doomerang-audio/config"
	"github.com/automoto/doomerang-audio/events"
	"github.com/automoto/doomerang-audio/source"
	"github.com/automoto/doomerang-audio/systems"
	"github.com/automoto/doomerang-audio/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const listenerSpeed = 4.0

// DemoScene plays the clips of a directory through the audio manager.
// Space plays the next clip as a one-shot, M toggles looping music, F fades
// it out, P pauses it, E replays every map emitter, 1-5 pick a master volume,
// the arrow keys move the listener and S saves the bus volumes.
type DemoScene struct {
	ecs    *ecs.ECS
	ctx    *audio.Context
	loader *assets.Loader
	logger zerolog.Logger

	clips    []string
	next     int
	emitters []*donburi.Entry
	finished int
	paused   bool
	err      error

	once sync.Once
}

// NewDemoScene creates a demo scene reading clips and the optional level
// through loader.
func NewDemoScene(ctx *audio.Context, loader *assets.Loader, logger zerolog.Logger) *DemoScene {
	return &DemoScene{ctx: ctx, loader: loader, logger: logger}
}

// Err returns the initialization error, if any.
func (ds *DemoScene) Err() error { return ds.err }

func (ds *DemoScene) Update() {
	ds.once.Do(ds.configure)
	if ds.err != nil {
		return
	}
	ds.handleInput()
	ds.ecs.Update()
}

func (ds *DemoScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if ds.ecs == nil {
		return
	}
	ds.ecs.Draw(screen)
}

// Close releases every playback and pooled resource.
func (ds *DemoScene) Close() {
	if ds.ecs != nil {
		systems.ShutdownAudio(ds.ecs)
	}
}

func (ds *DemoScene) configure() {
	ds.ecs = ecs.NewECS(donburi.NewWorld())

	listener := &source.Listener{}
	a, err := systems.InitAudio(ds.ecs, systems.AudioSetup{
		Spawn:    func() source.Source { return source.NewPlayer(ds.ctx, listener) },
		Loader:   ds.loader,
		Listener: listener,
	})
	if err != nil {
		ds.err = err
		return
	}

	if saved, err := systems.LoadSettings(); err == nil && saved != nil {
		systems.ApplySavedSettings(a.Manager, saved)
	}

	events.AddListener(a.Events, systems.FinishedEvent, func(id string) {
		ds.finished++
		ds.logger.Debug().Str("id", id).Msg("playback finished")
	})

	clips, err := ds.loader.List(cfg.Demo.ClipsDir)
	if err != nil {
		ds.logger.Warn().Err(err).Msg("no clips to play")
	}
	ds.clips = clips
	if err := ds.loader.Preload(clips...); err != nil {
		ds.logger.Warn().Err(err).Msg("some clips failed to decode")
	}

	if cfg.Demo.LevelPath != "" {
		spawns, err := assets.LoadEmitters(ds.loader.FS(), cfg.Demo.LevelPath)
		if err != nil {
			ds.logger.Warn().Err(err).Str("level", cfg.Demo.LevelPath).Msg("could not load emitters")
		}
		ds.emitters = factory.CreateEmitters(ds.ecs, spawns)
	}

	// Emitters queue their plays before the manager ticks
	ds.ecs.AddSystem(systems.UpdateEmitters)
	ds.ecs.AddSystem(systems.UpdateAudio)

	ds.ecs.AddRenderer(cfg.Default, ds.drawHUD)
}

func (ds *DemoScene) handleInput() {
	a, ok := systems.GetAudio(ds.ecs)
	if !ok {
		return
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace) && len(ds.clips) > 0:
		systems.PlaySFX(ds.ecs, ds.clips[ds.next%len(ds.clips)])
		ds.next++
	case inpututil.IsKeyJustPressed(ebiten.KeyM) && len(ds.clips) > 0:
		if a.MusicID != "" && a.Manager.Has(a.MusicID) {
			systems.StopMusic(ds.ecs)
		} else {
			systems.PlayMusic(ds.ecs, ds.clips[0])
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		systems.FadeOutMusic(ds.ecs)
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		if ds.paused {
			systems.ResumeMusic(ds.ecs)
		} else {
			systems.PauseMusic(ds.ecs)
		}
		ds.paused = !ds.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		for _, em := range ds.emitters {
			systems.PlayEmitter(em)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		if err := systems.SaveCurrentSettings(a.Manager, a.Manager.MasterVolume() == 0); err == nil {
			ds.logger.Info().Msg("settings saved")
		}
	}

	for i, v := range cfg.Demo.VolumeSteps {
		if inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			a.Manager.SetMasterVolume(v)
		}
	}

	pos := &a.Listener.Position
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		pos.X -= listenerSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		pos.X += listenerSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		pos.Y -= listenerSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		pos.Y += listenerSpeed
	}
}

func (ds *DemoScene) drawHUD(e *ecs.ECS, screen *ebiten.Image) {
	a, ok := systems.GetAudio(e)
	if !ok {
		return
	}
	m := a.Manager

	var b strings.Builder
	fmt.Fprintf(&b, "clips: %d  next: %s\n", len(ds.clips), ds.nextClip())
	fmt.Fprintf(&b, "managed: %d  one-shots: %d  finished: %d\n", m.Managed(), m.OneShots(), ds.finished)
	fmt.Fprintf(&b, "pooled sources: %d/%d  handles: %d/%d\n",
		m.PooledSources(), m.SourcePoolSize(), m.PooledHandles(), m.HandlePoolSize())
	fmt.Fprintf(&b, "master %.2f  music %.2f  sound %.2f  other %.2f\n",
		m.MasterVolume(), m.MusicVolume(), m.SoundVolume(), m.OtherVolume())
	fmt.Fprintf(&b, "music: %s  playing: %v\n", a.MusicKey, a.MusicID != "" && m.Has(a.MusicID) && m.IsPlaying(a.MusicID))
	fmt.Fprintf(&b, "listener: (%.0f, %.0f)  emitters: %d\n", a.Listener.Position.X, a.Listener.Position.Y, countEmitters(e))
	b.WriteString("\n[space] sfx [m] music [f] fade [p] pause [e] emitters [1-5] master [s] save")

	ebitenutil.DebugPrint(screen, b.String())
}

func (ds *DemoScene) nextClip() string {
	if len(ds.clips) == 0 {
		return "-"
	}
	return ds.clips[ds.next%len(ds.clips)]
}

func countEmitters(e *ecs.ECS) int {
	n := 0
	components.Emitter.Each(e.World, func(*donburi.Entry) { n++ })
	return n
}
