package system

import (
	"dungeon-of-doom/internal/gamemap"
)

// Look-reply glyphs that do not come from a tile.
const (
	GlyphUnknown = 'X' // outside the field of view
	GlyphOffMap  = '#' // inside the field of view but off the map
	GlyphPlayer  = 'P' // another living player
)

// View is everything the renderer needs to know about one observer.
type View struct {
	Map      *gamemap.GameMap
	Origin   gamemap.Location
	Distance int
	// Occupied reports whether a living player other than the observer
	// stands on loc. May be nil.
	Occupied func(loc gamemap.Location) bool
}

// Side returns the width and height of the look grid, 2d+1.
func (v View) Side() int {
	return 2*v.Distance + 1
}

// Mask is a square visibility grid centred on the observer, indexed by
// (row offset, col offset) in [-d, d].
type Mask struct {
	d     int
	cells []bool
}

func newMask(d int) Mask {
	side := 2*d + 1
	return Mask{d: d, cells: make([]bool, side*side)}
}

func (m Mask) index(dRow, dCol int) (int, bool) {
	if dRow < -m.d || dRow > m.d || dCol < -m.d || dCol > m.d {
		return 0, false
	}
	return (dRow+m.d)*(2*m.d+1) + (dCol + m.d), true
}

// Contains reports whether the offset is visible. Offsets outside the
// square are never visible.
func (m Mask) Contains(dRow, dCol int) bool {
	i, ok := m.index(dRow, dCol)
	return ok && m.cells[i]
}

func (m Mask) set(dRow, dCol int) {
	if i, ok := m.index(dRow, dCol); ok {
		m.cells[i] = true
	}
}

// Shape decides which offsets around an observer are visible.
type Shape interface {
	Mask(v View) Mask
}

// Diamond is the classic Dungeon of Doom field of view: an offset is visible
// when its Manhattan distance is at most d+1, which cuts the square's
// corners. Walls do not occlude.
type Diamond struct{}

// Mask implements Shape.
func (Diamond) Mask(v View) Mask {
	m := newMask(v.Distance)
	for dRow := -v.Distance; dRow <= v.Distance; dRow++ {
		for dCol := -v.Distance; dCol <= v.Distance; dCol++ {
			if abs(dRow)+abs(dCol) <= v.Distance+1 {
				m.set(dRow, dCol)
			}
		}
	}
	return m
}

// Look renders what the observer in v sees as exactly Side() rows of
// Side() characters. It reads the map every call; results must not be cached.
func Look(v View, shape Shape) []string {
	mask := shape.Mask(v)
	side := v.Side()
	rows := make([]string, 0, side)
	line := make([]byte, side)
	for dRow := -v.Distance; dRow <= v.Distance; dRow++ {
		for dCol := -v.Distance; dCol <= v.Distance; dCol++ {
			loc := v.Origin.Offset(dCol, dRow)
			var c byte
			switch {
			case !mask.Contains(dRow, dCol):
				c = GlyphUnknown
			case !v.Map.InBounds(loc):
				c = GlyphOffMap
			case v.Occupied != nil && v.Occupied(loc):
				c = GlyphPlayer
			default:
				c = v.Map.At(loc).Glyph()
			}
			line[dCol+v.Distance] = c
		}
		rows = append(rows, string(line))
	}
	return rows
}

// CanSee reports whether loc falls inside the observer's field of view.
func CanSee(v View, shape Shape, loc gamemap.Location) bool {
	return shape.Mask(v).Contains(loc.Row-v.Origin.Row, loc.Col-v.Origin.Col)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
