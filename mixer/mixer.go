// Package mixer models the host mixer: a tree of named buses, each carrying a
// decibel volume, and a router that maps output channels onto buses.
package mixer

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrBusNotFound = errors.New("mixer bus not found")

// MinLinear is the floor applied before converting a linear volume to
// decibels, so silence maps to -80 dB rather than -Inf.
const MinLinear = 0.0001

// LinearToDB converts a linear volume in [0,1] to decibels.
func LinearToDB(v float64) float64 {
	if v < MinLinear {
		v = MinLinear
	}
	return 20 * math.Log10(v)
}

// DBToLinear converts decibels back to a linear gain.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// Bus is one mixer group. Its effective gain includes every ancestor's gain.
type Bus struct {
	name     string
	path     string
	parent   *Bus
	volumeDB float64
}

func (b *Bus) Name() string { return b.name }
func (b *Bus) Path() string { return b.path }
func (b *Bus) Parent() *Bus { return b.parent }

func (b *Bus) VolumeDB() float64 { return b.volumeDB }

func (b *Bus) SetVolumeDB(db float64) { b.volumeDB = db }

// Gain returns the linear gain of this bus multiplied through its parents.
func (b *Bus) Gain() float64 {
	g := DBToLinear(b.volumeDB)
	if b.parent != nil {
		g *= b.parent.Gain()
	}
	return g
}

// Mixer holds buses by slash-separated path ("Master/Music").
type Mixer struct {
	buses map[string]*Bus
}

// New creates a mixer with the given bus paths. Parents are created as
// needed, so "Master/Music" also creates "Master".
func New(paths ...string) *Mixer {
	m := &Mixer{buses: make(map[string]*Bus)}
	for _, p := range paths {
		m.add(p)
	}
	return m
}

func (m *Mixer) add(path string) *Bus {
	path = strings.Trim(path, "/")
	if b, ok := m.buses[path]; ok {
		return b
	}

	var parent *Bus
	name := path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		parent = m.add(path[:i])
		name = path[i+1:]
	}

	b := &Bus{name: name, path: path, parent: parent}
	m.buses[path] = b
	return b
}

// FindBus looks a bus up by its path.
func (m *Mixer) FindBus(path string) (*Bus, error) {
	b, ok := m.buses[strings.Trim(path, "/")]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBusNotFound, path)
	}
	return b, nil
}

// Buses returns the number of buses in the mixer.
func (m *Mixer) Buses() int { return len(m.buses) }
