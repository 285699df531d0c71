package system

// octant transform matrices.
// For each octant, a (dx, dy) sweep pair maps to a world offset via:
//
//	worldX = cx + dx*xx + dy*xy
//	worldY = cy + dx*yx + dy*yy
//
// where dx sweeps horizontally within the row and dy is the fixed row index.
// These match the standard RogueBasin recursive shadowcasting multipliers.
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// Shadowcast is a wall-aware field of view: recursive shadowcasting over a
// circle of radius d+1. Walls are visible but hide what lies behind them.
type Shadowcast struct{}

// Mask implements Shape.
func (Shadowcast) Mask(v View) Mask {
	m := newMask(v.Distance)
	m.set(0, 0)
	radius := v.Distance + 1
	for _, o := range octants {
		castLight(v, m, 1, 1.0, 0.0, radius, o[0], o[1], o[2], o[3])
	}
	return m
}

// castLight casts light for one octant using recursive shadowcasting.
//
//   - j is the current row (distance from origin along the main axis)
//   - dy = -j is fixed for the entire inner sweep (the row coordinate)
//   - dx sweeps from -j to 0 (the column coordinate within the row)
//   - lSlope = (dx - 0.5) / (dy + 0.5)   rSlope = (dx + 0.5) / (dy - 0.5)
func castLight(v View, m Mask, row int, start, end float64, radius, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	radiusSq := float64(radius * radius)
	newStart := start

	for j := row; j <= radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			offCol := dx*xx + dy*xy
			offRow := dx*yx + dy*yy
			loc := v.Origin.Offset(offCol, offRow)

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			if float64(dx*dx+dy*dy) < radiusSq {
				m.set(offRow, offCol)
			}

			// Off-map counts as wall.
			opaque := !v.Map.IsTransparent(loc)

			if blocked {
				if opaque {
					newStart = rSlope
				} else {
					blocked = false
					start = newStart
				}
			} else if opaque && j < radius {
				blocked = true
				castLight(v, m, j+1, start, lSlope, radius, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
