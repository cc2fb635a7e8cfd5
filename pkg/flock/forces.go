package flock

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
)

// noTarget is the target distance reported when there is nothing to steer to.
const noTarget = -1

// compose turns the neighborhood of boids[self] and the steering targets into
// a clamped acceleration. It reads other boids but writes nothing.
func (e *Engine) compose(boids []Boid, self int, neighbors []Neighbor, p *Params, rnd Random) geometry.Vector3 {
	me := &boids[self]

	var sepSum, headingSum, positionSum geometry.Vector3
	for _, n := range neighbors {
		var strength float32
		if n.Distance > 0 {
			strength = p.Separation.Distance.Transform(n.Distance)
		}
		if n.Distance == 0 || !isFinite(strength) {
			// Exact overlap has no direction to push along, and an inverse
			// curve overflows for near overlap: pick a push at random.
			push := randomUnit(rnd).Mul(overlapPush)
			if e.planar {
				push.Z = 0
			}
			sepSum = sepSum.Add(push)
		} else {
			sepSum = sepSum.Add(n.Direction.Neg().Mul(strength))
		}
		headingSum = headingSum.Add(n.Boid.Velocity)
		positionSum = positionSum.Add(n.Boid.Position)
	}

	var separation, alignment, cohesion geometry.Vector3
	if k := float32(len(neighbors)); k > 0 {
		separation = sepSum.Mul(1 / k)
		alignment = headingSum.Mul(1 / k)
		cohesion = positionSum.Mul(1 / k).Sub(me.Position)
	}

	target, targetDistance := e.nearestTarget(me.Position, p.Steering.Distance)
	var steering geometry.Vector3
	if targetDistance != noTarget {
		steering = target.Sub(me.Position).Normalize().Mul(targetDistance)
	}

	acc := separation.Mul(p.Separation.Weight).
		Add(alignment.Mul(p.Alignment.Weight)).
		Add(cohesion.Mul(p.Cohesion.Weight)).
		Add(steering.Mul(p.Steering.Weight))
	return acc.ClampLen(p.MaxAcceleration)
}

// nearestTarget returns the target minimizing the transformed distance to pos,
// and that transformed distance. Ties keep the earliest target. Without targets
// it returns pos itself and noTarget.
func (e *Engine) nearestTarget(pos geometry.Vector3, dt DistanceType) (geometry.Vector3, float32) {
	best := pos
	bestDistance := float32(noTarget)
	for i, t := range e.targets {
		d := dt.Transform(t.DistanceTo(pos))
		if i == 0 || d < bestDistance {
			best, bestDistance = t, d
		}
	}
	return best, bestDistance
}

func isFinite(f float32) bool {
	return !math.IsInf(float64(f), 0) && !math.IsNaN(float64(f))
}
