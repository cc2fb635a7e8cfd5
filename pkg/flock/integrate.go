package flock

// integrate advances velocity then position using the acceleration computed
// earlier in the step (semi-implicit Euler).
func integrate(b *Boid, dt, maxVelocity float32) {
	b.Velocity = b.Velocity.Add(b.Acceleration.Mul(dt)).ClampLen(maxVelocity)
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
}
