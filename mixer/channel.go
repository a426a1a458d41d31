package mixer

import "strings"

// Channel is a logical output group a playback is routed to.
type Channel int

const (
	Music Channel = iota
	Sound
	Other
)

func (c Channel) String() string {
	switch c {
	case Music:
		return "Music"
	case Sound:
		return "Sound"
	default:
		return "Other"
	}
}

// ParseChannel maps a channel name (case-insensitive) to a Channel.
// Unknown names fall back to Other.
func ParseChannel(name string) Channel {
	switch strings.ToLower(name) {
	case "music":
		return Music
	case "sound", "sfx":
		return Sound
	default:
		return Other
	}
}
