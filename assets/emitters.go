package assets

import (
	"fmt"
	"io/fs"

	"github.com/automoto/doomerang-audio/mixer"
	"github.com/lafriks/go-tiled"
)

// EmitterLayer is the Tiled object group holding audio emitters.
const EmitterLayer = "AudioEmitters"

// EmitterSpawn is an audio emitter placed in a Tiled map
type EmitterSpawn struct {
	Name        string
	X, Y        float64
	Sound       string
	Loops       int
	Channel     mixer.Channel
	Volume      float64
	PlayOnAwake bool
}

// LoadEmitters reads every object of the AudioEmitters group of the map at
// levelPath. Objects without a sound property are skipped.
func LoadEmitters(fsys fs.FS, levelPath string) ([]EmitterSpawn, error) {
	levelMap, err := tiled.LoadFile(levelPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("failed to load level %s: %w", levelPath, err)
	}

	var spawns []EmitterSpawn
	for _, og := range levelMap.ObjectGroups {
		if og.Name != EmitterLayer {
			continue
		}
		for _, o := range og.Objects {
			sound := o.Properties.GetString("sound")
			if sound == "" {
				continue
			}

			volume := 1.0
			if hasProperty(o.Properties, "volume") {
				volume = o.Properties.GetFloat("volume")
			}

			spawns = append(spawns, EmitterSpawn{
				Name:        o.Name,
				X:           o.X,
				Y:           o.Y,
				Sound:       sound,
				Loops:       o.Properties.GetInt("loops"),
				Channel:     mixer.ParseChannel(o.Properties.GetString("channel")),
				Volume:      volume,
				PlayOnAwake: o.Properties.GetBool("playOnAwake"),
			})
		}
	}
	return spawns, nil
}

func hasProperty(props tiled.Properties, name string) bool {
	for _, p := range props {
		if p.Name == name {
			return true
		}
	}
	return false
}
