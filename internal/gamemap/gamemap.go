package gamemap

import (
	"errors"
	"fmt"
)

var (
	// ErrNotEnoughGold rejects maps whose gold can never satisfy the goal.
	ErrNotEnoughGold = errors.New("there isn't enough gold on this map to win")
	// ErrNoWalkableTile rejects maps where no player could ever be placed.
	ErrNoWalkableTile = errors.New("there is no walkable tile on this map")
)

// Rect is an axis-aligned rectangle used for generated rooms.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Intersects reports whether r overlaps other (inclusive edges).
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// GameMap holds the tile grid and the gold goal for one dungeon.
// The grid shape never changes after load; only tile items are mutated,
// and only by the game engine.
type GameMap struct {
	Name          string
	Width, Height int
	Goal          int
	Tiles         [][]Tile
	Rooms         []Rect
}

// New creates a GameMap filled with walls.
func New(width, height int) *GameMap {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = MakeWall()
		}
	}
	return &GameMap{Width: width, Height: height, Tiles: tiles}
}

// Validate checks the load-time invariants: enough gold for the goal and at
// least one walkable tile.
func (m *GameMap) Validate() error {
	if m.WalkableCount() == 0 {
		return ErrNoWalkableTile
	}
	if gold := m.RemainingGold(); gold < m.Goal {
		return fmt.Errorf("%w: goal %d, gold %d", ErrNotEnoughGold, m.Goal, gold)
	}
	return nil
}

// InBounds reports whether loc is within the map boundaries.
func (m *GameMap) InBounds(loc Location) bool {
	return loc.Col >= 0 && loc.Col < m.Width && loc.Row >= 0 && loc.Row < m.Height
}

// At returns a pointer to the tile at loc. Panics if out of bounds.
func (m *GameMap) At(loc Location) *Tile {
	return &m.Tiles[loc.Row][loc.Col]
}

// Set replaces the tile at loc.
func (m *GameMap) Set(loc Location, t Tile) {
	m.Tiles[loc.Row][loc.Col] = t
}

// IsWalkable returns true when loc is in bounds and walkable.
func (m *GameMap) IsWalkable(loc Location) bool {
	if !m.InBounds(loc) {
		return false
	}
	return m.Tiles[loc.Row][loc.Col].Walkable()
}

// IsTransparent returns true when loc is in bounds and transparent.
func (m *GameMap) IsTransparent(loc Location) bool {
	if !m.InBounds(loc) {
		return false
	}
	return m.Tiles[loc.Row][loc.Col].Transparent()
}

// IsExit returns true when loc is in bounds and an exit tile.
func (m *GameMap) IsExit(loc Location) bool {
	if !m.InBounds(loc) {
		return false
	}
	return m.Tiles[loc.Row][loc.Col].IsExit()
}

// RemainingGold sums the value of every gold item still on the map.
func (m *GameMap) RemainingGold() int {
	total := 0
	for y := range m.Tiles {
		for x := range m.Tiles[y] {
			if it := m.Tiles[y][x].Item; it != nil && it.Kind == ItemGold {
				total += it.Value
			}
		}
	}
	return total
}

// WalkableCount returns the number of tiles a player could stand on.
func (m *GameMap) WalkableCount() int {
	n := 0
	for y := range m.Tiles {
		for x := range m.Tiles[y] {
			if m.Tiles[y][x].Walkable() {
				n++
			}
		}
	}
	return n
}
