package components

import "github.com/yohamta/donburi/features/events"

// PlaybackFinishedEvent is published when a managed playback completes on its
// own. Stop and Free never publish it.
type PlaybackFinishedEvent struct {
	ID string
}

var PlaybackFinished = events.NewEventType[PlaybackFinishedEvent]()
