//go:build !flockdebug

package flock

// assertFinite is compiled out of regular builds; build with -tags flockdebug
// to trap non-finite state at the start of every step.
func assertFinite([]Boid) {}
