package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/rs/zerolog"
)

var ErrUnsupportedFormat = errors.New("unsupported audio format")

// bytesPerFrame of decoded PCM: 16-bit little endian stereo.
const bytesPerFrame = 4

// Sound is a fully decoded clip ready to be bound to a player.
type Sound struct {
	name       string
	pcm        []byte
	sampleRate int
}

// NewSound wraps already decoded 16-bit stereo PCM.
func NewSound(name string, pcm []byte, sampleRate int) *Sound {
	return &Sound{name: name, pcm: pcm, sampleRate: sampleRate}
}

func (s *Sound) Name() string { return s.name }
func (s *Sound) PCM() []byte  { return s.pcm }

func (s *Sound) Duration() time.Duration {
	if s.sampleRate <= 0 {
		return 0
	}
	frames := int64(len(s.pcm) / bytesPerFrame)
	return time.Duration(frames) * time.Second / time.Duration(s.sampleRate)
}

// Loader handles loading and caching of decoded sounds
type Loader struct {
	fsys       fs.FS
	sampleRate int
	cache      map[string]*Sound
	logger     zerolog.Logger
}

// NewLoader creates a loader reading from fsys and resampling to sampleRate.
func NewLoader(fsys fs.FS, sampleRate int, logger zerolog.Logger) *Loader {
	return &Loader{
		fsys:       fsys,
		sampleRate: sampleRate,
		cache:      make(map[string]*Sound),
		logger:     logger,
	}
}

// Supported reports whether the file extension of p can be decoded.
func Supported(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".wav", ".ogg", ".mp3":
		return true
	}
	return false
}

// Load returns the decoded sound at p, decoding it on first use.
func (l *Loader) Load(p string) (*Sound, error) {
	if s, ok := l.cache[p]; ok {
		return s, nil
	}

	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", p, err)
	}

	pcm, err := l.decode(p, data)
	if err != nil {
		return nil, err
	}

	s := NewSound(p, pcm, l.sampleRate)
	l.cache[p] = s
	l.logger.Debug().Str("sound", p).Dur("duration", s.Duration()).Msg("sound decoded")
	return s, nil
}

func (l *Loader) decode(p string, data []byte) ([]byte, error) {
	var (
		stream io.Reader
		err    error
	)

	switch ext := strings.ToLower(path.Ext(p)); ext {
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(l.sampleRate, bytes.NewReader(data))
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(l.sampleRate, bytes.NewReader(data))
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(l.sampleRate, bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%s: %w %q", p, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", p, err)
	}

	decoded, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read decoded audio %s: %w", p, err)
	}
	return decoded, nil
}

// Preload decodes every path up front so the first play does not stall.
// It keeps going past failures and returns them joined.
func (l *Loader) Preload(paths ...string) error {
	var errs []error
	for _, p := range paths {
		if _, err := l.Load(p); err != nil {
			l.logger.Warn().Err(err).Str("sound", p).Msg("could not preload sound")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Unload drops the cached PCM of p. Playbacks already bound to it keep
// their own reference.
func (l *Loader) Unload(p string) bool {
	if _, ok := l.cache[p]; !ok {
		return false
	}
	delete(l.cache, p)
	return true
}

// FS returns the file system sounds are read from.
func (l *Loader) FS() fs.FS { return l.fsys }

// Loaded returns the number of cached sounds.
func (l *Loader) Loaded() int { return len(l.cache) }

// List returns the supported audio files directly inside dir, sorted.
func (l *Loader) List(dir string) ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		out = append(out, path.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// Info reads the duration of p from its header without decoding it.
func (l *Loader) Info(p string) (Info, error) {
	f, err := l.fsys.Open(p)
	if err != nil {
		return Info{}, fmt.Errorf("failed to open %s: %w", p, err)
	}
	defer f.Close()

	rs, ok := f.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(f)
		if err != nil {
			return Info{}, fmt.Errorf("failed to read %s: %w", p, err)
		}
		rs = bytes.NewReader(data)
	}
	return Probe(p, rs)
}
