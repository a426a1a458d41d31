// Package manager is the audio facade: it hands out opaque ids for
// playbacks, recycles handles and resources through bounded pools and keeps
// the per-bus volume state.
package manager

import (
	"errors"
	"fmt"

	cfg "github.com/automoto/doomerang-audio/config"
	"github.com/automoto/doomerang-audio/handle"
	"github.com/automoto/doomerang-audio/mixer"
	"github.com/automoto/doomerang-audio/pool"
	"github.com/automoto/doomerang-audio/sequence"
	"github.com/automoto/doomerang-audio/source"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrBusConfig       = errors.New("mixer is missing a required bus")
	ErrNoSpawn         = errors.New("manager needs a resource factory")
	ErrInfiniteOneShot = errors.New("cannot play an infinitely looping sequence as a one-shot")
	ErrNoSequence      = errors.New("nothing to play")
)

// FromConfig as a pool size or prewarm count takes the config.Audio value.
const FromConfig = -1

// Config configures a Manager.
type Config struct {
	// Spawn creates a new emitting resource when the pool has none idle.
	Spawn func() source.Source
	// Mixer must contain the master, music, sound and other buses. nil
	// creates one from config.Audio.BusPaths.
	Mixer *mixer.Mixer
	// OnFinished runs with the id of every managed playback that completes
	// naturally.
	OnFinished func(id string)
	Logger     *zerolog.Logger

	// Pool capacities and resources spawned up front. Zero is a valid value;
	// any negative value (FromConfig) takes the config.Audio default.
	SourcePoolSize int
	HandlePoolSize int
	PrewarmSources int
}

// Manager owns every handle, both pools and the bus volumes. It is driven by
// the host calling Update once per tick and is not safe for concurrent use.
type Manager struct {
	logger     zerolog.Logger
	mixer      *mixer.Mixer
	router     *mixer.Router
	spawn      func() source.Source
	onFinished func(id string)

	managed  map[string]*handle.Handle
	oneShots map[*handle.Handle]struct{}
	sources  *pool.Pool[source.Source]
	handles  *pool.Pool[*handle.Handle]
	fades    map[string]*fade

	masterVolume float64
	musicVolume  float64
	soundVolume  float64
	otherVolume  float64

	ticking []tick
}

// tick is a handle as seen when Update took its snapshot.
type tick struct {
	h   *handle.Handle
	gen uint64
}

// New builds a manager. It fails when any required mixer bus is missing,
// which callers should treat as fatal.
func New(c Config) (*Manager, error) {
	if c.Spawn == nil {
		return nil, ErrNoSpawn
	}

	logger := zerolog.Nop()
	if c.Logger != nil {
		logger = *c.Logger
	}

	mx := c.Mixer
	if mx == nil {
		mx = mixer.New(cfg.Audio.BusPaths...)
	}
	router, err := mixer.NewRouter(mx, mixer.RouterPaths{
		Master: cfg.BusMaster,
		Music:  cfg.BusMusic,
		Sound:  cfg.BusSound,
		Other:  cfg.BusOther,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBusConfig, err)
	}

	sourcePool := orDefault(c.SourcePoolSize, cfg.Audio.SourcePoolSize)
	handlePool := orDefault(c.HandlePoolSize, cfg.Audio.HandlePoolSize)
	prewarm := orDefault(c.PrewarmSources, cfg.Audio.PrewarmSources)

	m := &Manager{
		logger:     logger,
		mixer:      mx,
		router:     router,
		spawn:      c.Spawn,
		onFinished: c.OnFinished,
		managed:    make(map[string]*handle.Handle),
		oneShots:   make(map[*handle.Handle]struct{}),
		sources:    pool.New[source.Source](sourcePool),
		handles:    pool.New[*handle.Handle](handlePool),
		fades:      make(map[string]*fade),
	}

	for i := 0; i < min(prewarm, m.sources.Cap()); i++ {
		m.sources.Put(m.spawn())
	}

	m.SetMasterVolume(cfg.Audio.DefaultMasterVol)
	m.SetMusicVolume(cfg.Audio.DefaultMusicVol)
	m.SetSoundVolume(cfg.Audio.DefaultSoundVol)
	m.SetOtherVolume(cfg.Audio.DefaultOtherVol)

	m.logger.Info().
		Int("sourcePool", m.sources.Cap()).
		Int("handlePool", m.handles.Cap()).
		Int("prewarmed", m.sources.Len()).
		Msg("audio manager initialized")
	return m, nil
}

func orDefault(n, def int) int {
	if n < 0 {
		return def
	}
	return n
}

func (m *Manager) Mixer() *mixer.Mixer   { return m.mixer }
func (m *Manager) Router() *mixer.Router { return m.router }

// PlayClip starts a single sound repeated loops extra times (negative loops
// forever) and returns the id of the playback.
func (m *Manager) PlayClip(sound sequence.Sound, loops int, volume float64, ch mixer.Channel, onFinished func()) string {
	seq, err := sequence.Single(sound, loops)
	if err != nil {
		m.logger.Warn().Err(err).Msg("cannot play clip")
		return ""
	}
	return m.Play(seq, volume, ch, onFinished)
}

// Play starts a sequence and returns the id of the playback. The id stays
// valid until the playback is freed.
func (m *Manager) Play(seq *sequence.Sequence, volume float64, ch mixer.Channel, onFinished func()) string {
	if seq == nil {
		m.logger.Warn().Err(ErrNoSequence).Msg("cannot play sequence")
		return ""
	}
	m.checkAuthoring(seq)

	id := uuid.NewString()
	h := m.acquire(seq, volume, ch)
	h.AddOnFinished(onFinished)
	if m.onFinished != nil {
		notify := m.onFinished
		h.SetNotify(func() { notify(id) })
	}

	m.managed[id] = h
	h.Play()

	m.logger.Debug().Str("id", id).Str("sequence", seq.Name()).Stringer("channel", ch).Msg("playback started")
	return id
}

// PlayClipOneShot plays a sound once without returning an id.
func (m *Manager) PlayClipOneShot(sound sequence.Sound, volume float64, ch mixer.Channel, onFinished func()) error {
	seq, err := sequence.Single(sound, 0)
	if err != nil {
		m.logger.Warn().Err(err).Msg("cannot play clip")
		return err
	}
	return m.PlayOneShot(seq, volume, ch, onFinished)
}

// PlayOneShot plays a sequence that frees itself when it completes. Sequences
// with an infinitely looping clip are rejected before anything is acquired.
func (m *Manager) PlayOneShot(seq *sequence.Sequence, volume float64, ch mixer.Channel, onFinished func()) error {
	if seq == nil {
		m.logger.Warn().Err(ErrNoSequence).Msg("cannot play one-shot")
		return ErrNoSequence
	}
	if seq.Infinite() {
		err := fmt.Errorf("sequence %q: %w", seq.Name(), ErrInfiniteOneShot)
		m.logger.Error().Err(err).Msg("cannot play one-shot")
		return err
	}

	h := m.acquire(seq, volume, ch)
	h.AddOnFinished(func() {
		if onFinished != nil {
			onFinished()
		}
		h.Free()
		delete(m.oneShots, h)
	})

	m.oneShots[h] = struct{}{}
	h.Play()
	return nil
}

func (m *Manager) checkAuthoring(seq *sequence.Sequence) {
	if err := seq.Validate(); err != nil {
		m.logger.Warn().Err(err).Msg("sequence has unreachable clips")
	}
}

func (m *Manager) acquire(seq *sequence.Sequence, volume float64, ch mixer.Channel) *handle.Handle {
	src, ok := m.sources.TakeFunc(func(s source.Source) bool { return !s.IsPlaying() })
	if !ok {
		src = m.spawn()
	}

	var h *handle.Handle
	if h, ok = m.handles.Get(); ok {
		h.Activate(seq, src, volume)
	} else {
		h = handle.New(seq, src, volume, m.router, m, m.logger)
	}

	m.router.Route(src, ch)
	return h
}

// ReleaseSource takes a freed resource back, closing it when the pool is full.
func (m *Manager) ReleaseSource(s source.Source) {
	if !m.sources.Put(s) {
		_ = s.Close()
	}
}

// ReleaseHandle takes a disposed handle back, dropping it when the pool is full.
func (m *Manager) ReleaseHandle(h *handle.Handle) {
	m.handles.Put(h)
}

func (m *Manager) lookup(id string) (*handle.Handle, bool) {
	h, ok := m.managed[id]
	if id == "" || !ok {
		m.logger.Warn().Str("id", id).Msg("the given id is invalid")
		return nil, false
	}
	return h, true
}

// Has reports whether id names a registered playback. It does not log.
func (m *Manager) Has(id string) bool {
	_, ok := m.managed[id]
	return ok
}

// Replay restarts the playback from its first clip.
func (m *Manager) Replay(id string) {
	if h, ok := m.lookup(id); ok {
		h.Play()
	}
}

func (m *Manager) Stop(id string) {
	if h, ok := m.lookup(id); ok {
		delete(m.fades, id)
		h.Stop()
	}
}

func (m *Manager) Pause(id string) {
	if h, ok := m.lookup(id); ok {
		h.Pause()
	}
}

func (m *Manager) UnPause(id string) {
	if h, ok := m.lookup(id); ok {
		h.Resume()
	}
}

// Free releases the playback. The id is invalid afterwards.
func (m *Manager) Free(id string) {
	if h, ok := m.lookup(id); ok {
		delete(m.fades, id)
		delete(m.managed, id)
		h.Free()
	}
}

// FreeAll frees every managed playback and, when freeOneShot is set, every
// one-shot as well.
func (m *Manager) FreeAll(freeOneShot bool) {
	for id, h := range m.managed {
		delete(m.managed, id)
		h.Free()
	}
	clear(m.fades)

	if freeOneShot {
		m.FreeAllOneShot()
	}
}

func (m *Manager) FreeAllOneShot() {
	for h := range m.oneShots {
		delete(m.oneShots, h)
		h.Free()
	}
}

// AddOnPlayFinishedCallback registers a callback and returns its listener id.
func (m *Manager) AddOnPlayFinishedCallback(id string, callback func()) string {
	if h, ok := m.lookup(id); ok {
		return h.AddOnFinished(callback)
	}
	return ""
}

func (m *Manager) RemoveOnPlayFinishedCallback(id, listenerID string) bool {
	if h, ok := m.lookup(id); ok {
		return h.RemoveOnFinished(listenerID)
	}
	return false
}

func (m *Manager) ClearOnPlayFinishedCallback(id string) {
	if h, ok := m.lookup(id); ok {
		h.ClearOnFinished()
	}
}

// SetOutputChannel reroutes a playback to another channel's bus.
func (m *Manager) SetOutputChannel(id string, ch mixer.Channel) {
	if h, ok := m.lookup(id); ok {
		h.SetOutputChannel(ch)
	}
}

// RouteSource routes any resource, managed or not, to a channel's bus.
func (m *Manager) RouteSource(s source.Source, ch mixer.Channel) {
	m.router.Route(s, ch)
}

// Update advances fades and every live playback by one tick. A handle freed
// and reused by a callback during the tick starts stepping on the next one.
func (m *Manager) Update() {
	m.updateFades()

	for _, h := range m.managed {
		m.ticking = append(m.ticking, tick{h, h.Generation()})
	}
	for h := range m.oneShots {
		m.ticking = append(m.ticking, tick{h, h.Generation()})
	}
	for _, t := range m.ticking {
		if t.h.Generation() != t.gen {
			continue
		}
		t.h.Advance()
	}
	clear(m.ticking)
	m.ticking = m.ticking[:0]
}

// Close frees everything and closes every pooled resource.
func (m *Manager) Close() {
	m.FreeAll(true)
	m.sources.Drain(func(s source.Source) { _ = s.Close() })
	m.handles.Drain(nil)
	m.logger.Info().Msg("audio manager closed")
}

func (m *Manager) Managed() int       { return len(m.managed) }
func (m *Manager) OneShots() int      { return len(m.oneShots) }
func (m *Manager) PooledSources() int { return m.sources.Len() }
func (m *Manager) PooledHandles() int { return m.handles.Len() }

func (m *Manager) SourcePoolSize() int     { return m.sources.Cap() }
func (m *Manager) SetSourcePoolSize(n int) { m.sources.SetCap(n) }
func (m *Manager) HandlePoolSize() int     { return m.handles.Cap() }
func (m *Manager) SetHandlePoolSize(n int) { m.handles.SetCap(n) }
