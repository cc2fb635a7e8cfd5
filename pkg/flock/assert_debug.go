//go:build flockdebug

package flock

import "fmt"

func assertFinite(boids []Boid) {
	for i := range boids {
		b := &boids[i]
		if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
			panic(fmt.Sprintf("flock: boid %d has non-finite state pos=%v vel=%v", i, b.Position, b.Velocity))
		}
	}
}
