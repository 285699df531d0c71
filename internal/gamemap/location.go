package gamemap

import (
	"errors"
	"strings"
)

// Location is a (row, col) grid coordinate. Row grows southwards, col eastwards.
type Location struct {
	Row, Col int
}

// Offset returns the location dx columns and dy rows away.
func (l Location) Offset(dx, dy int) Location {
	return Location{Row: l.Row + dy, Col: l.Col + dx}
}

// Step returns the neighbouring location in direction d.
func (l Location) Step(d Direction) Location {
	dx, dy := d.Delta()
	return l.Offset(dx, dy)
}

// Direction is one of the four compass directions accepted by MOVE and ATTACK.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// ErrBadDirection is returned by ParseDirection for anything but N, E, S or W.
var ErrBadDirection = errors.New("invalid direction")

// ParseDirection converts a protocol direction letter into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "N":
		return North, nil
	case "E":
		return East, nil
	case "S":
		return South, nil
	case "W":
		return West, nil
	}
	return 0, ErrBadDirection
}

// Delta converts a direction to (dx, dy).
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	}
	return "?"
}
