package system

import "dungeon-of-doom/internal/gamemap"

// MoveResult describes the outcome of a TryMove call.
type MoveResult uint8

const (
	MoveOK       MoveResult = iota // destination is free
	MoveBlocked                    // wall or out-of-bounds
	MoveOccupied                   // another living player stands there
)

// TryMove works out where a step from loc in dir would land and whether it is
// allowed. It does not move anything; occupied may be nil.
func TryMove(gmap *gamemap.GameMap, occupied func(gamemap.Location) bool, loc gamemap.Location, dir gamemap.Direction) (MoveResult, gamemap.Location) {
	dest := loc.Step(dir)
	if !gmap.IsWalkable(dest) {
		return MoveBlocked, dest
	}
	if occupied != nil && occupied(dest) {
		return MoveOccupied, dest
	}
	return MoveOK, dest
}
