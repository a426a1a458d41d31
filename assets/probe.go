package assets

import (
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	gowav "github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

// Info describes an audio file as stored, before resampling.
type Info struct {
	Name       string
	Format     string
	SampleRate int
	Duration   time.Duration
}

// Probe reads the header of an audio file to find its length. The format is
// picked from the extension of name.
func Probe(name string, r io.ReadSeeker) (Info, error) {
	info := Info{Name: name}

	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".wav":
		d := gowav.NewDecoder(r)
		if !d.IsValidFile() {
			return info, fmt.Errorf("%s: invalid wav file", name)
		}
		dur, err := d.Duration()
		if err != nil {
			return info, fmt.Errorf("failed to read wav duration %s: %w", name, err)
		}
		info.Format = "wav"
		info.SampleRate = int(d.SampleRate)
		info.Duration = dur

	case ".ogg":
		samples, format, err := oggvorbis.GetLength(r)
		if err != nil {
			return info, fmt.Errorf("failed to read ogg length %s: %w", name, err)
		}
		info.Format = "ogg"
		info.SampleRate = format.SampleRate
		if format.SampleRate > 0 {
			info.Duration = time.Duration(samples) * time.Second / time.Duration(format.SampleRate)
		}

	case ".mp3":
		d, err := gomp3.NewDecoder(r)
		if err != nil {
			return info, fmt.Errorf("failed to read mp3 header %s: %w", name, err)
		}
		info.Format = "mp3"
		info.SampleRate = d.SampleRate()
		if d.SampleRate() > 0 && d.Length() > 0 {
			frames := d.Length() / bytesPerFrame
			info.Duration = time.Duration(frames) * time.Second / time.Duration(d.SampleRate())
		}

	default:
		return info, fmt.Errorf("%s: %w %q", name, ErrUnsupportedFormat, ext)
	}

	return info, nil
}
