package flock

// Query appends to dst every boid within radius of boids[self], skipping the ones
// hidden in its rear blind spot, and returns the extended slice.
//
// The grid must have been rebuilt from the same slice with a cell size of at
// least radius: the 3x3x3 block around the boid's own cell then covers the
// whole perception sphere, wherever the boid sits inside its cell.
func (g *Grid) Query(boids []Boid, self int, radius, blindSpot float32, dst []Neighbor) []Neighbor {
	me := &boids[self]
	origin := g.CellFor(me.Position)
	behind := me.Velocity.Neg()
	moving := !me.Velocity.IsZero()

	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dz := int32(-1); dz <= 1; dz++ {
				key := Cell{X: origin.X + dx, Y: origin.Y + dy, Z: origin.Z + dz}
				for _, idx := range g.cells[key] {
					i := int(idx)
					if i == self {
						continue
					}
					other := &boids[i]

					diff := other.Position.Sub(me.Position)
					distance := diff.Len()
					if distance > radius {
						continue
					}

					// A stationary boid has no "behind". Coincident boids
					// have no direction at all and are always kept so the
					// overlap push can separate them.
					if moving && distance > 0 && behind.AngleTo(diff) < blindSpot {
						continue
					}

					dst = append(dst, Neighbor{
						Index:     i,
						Boid:      other,
						Direction: diff.Normalize(),
						Distance:  distance,
					})
				}
			}
		}
	}
	return dst
}
