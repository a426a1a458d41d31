package mixer

import "fmt"

// Routable is anything with a bus slot, typically an emitting resource.
type Routable interface {
	Bus() *Bus
	SetBus(b *Bus)
}

// RouterPaths names the bus path backing each channel plus the master bus.
type RouterPaths struct {
	Master string
	Music  string
	Sound  string
	Other  string
}

// Router maps output channels to mixer buses.
type Router struct {
	master *Bus
	music  *Bus
	sound  *Bus
	other  *Bus
}

// NewRouter resolves every required bus. A missing bus is a configuration
// error the caller should treat as fatal.
func NewRouter(m *Mixer, paths RouterPaths) (*Router, error) {
	r := &Router{}
	for _, b := range []struct {
		dst  **Bus
		path string
	}{
		{&r.master, paths.Master},
		{&r.music, paths.Music},
		{&r.sound, paths.Sound},
		{&r.other, paths.Other},
	} {
		bus, err := m.FindBus(b.path)
		if err != nil {
			return nil, fmt.Errorf("resolve router bus: %w", err)
		}
		*b.dst = bus
	}
	return r, nil
}

func (r *Router) Master() *Bus { return r.master }

// Bus returns the bus a channel is routed to.
func (r *Router) Bus(c Channel) *Bus {
	switch c {
	case Music:
		return r.music
	case Sound:
		return r.sound
	default:
		return r.other
	}
}

// Route assigns the channel's bus to the target.
func (r *Router) Route(t Routable, c Channel) {
	t.SetBus(r.Bus(c))
}

// ChannelOf reports which channel a bus belongs to. Unknown buses are Other.
func (r *Router) ChannelOf(b *Bus) Channel {
	switch b {
	case r.music:
		return Music
	case r.sound:
		return Sound
	default:
		return Other
	}
}
