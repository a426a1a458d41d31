package source

import (
	stdmath "math"

	"github.com/yohamta/donburi/features/math"
)

// Listener is the point in the world spatialized sources are heard from.
type Listener struct {
	Position math.Vec2
}

// Attenuation returns the distance gain in [0,1] for props heard by l,
// blended between 2D (1.0) and fully spatial by SpatialBlend.
func (l *Listener) Attenuation(p *Props) float64 {
	if l == nil || p.SpatialBlend <= 0 {
		return 1
	}

	dx := p.Position.X - l.Position.X
	dy := p.Position.Y - l.Position.Y
	dist := stdmath.Sqrt(dx*dx + dy*dy)

	var g float64
	switch {
	case dist <= p.MinDistance:
		g = 1
	case p.Rolloff == RolloffLinear:
		span := p.MaxDistance - p.MinDistance
		if span <= 0 || dist >= p.MaxDistance {
			g = 0
		} else {
			g = 1 - (dist-p.MinDistance)/span
		}
	default:
		d := stdmath.Min(dist, p.MaxDistance)
		if d <= 0 {
			g = 1
		} else {
			g = p.MinDistance / d
		}
	}

	blend := stdmath.Min(p.SpatialBlend, 1)
	return 1 - blend + blend*g
}
