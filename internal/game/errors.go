package game

import "errors"

// CommandError is a recoverable failure of a player command. It is reported
// to the issuing player and changes no state beyond what the command's rules
// say (a missed attack still costs AP).
type CommandError struct {
	Reason string
}

func (e *CommandError) Error() string { return e.Reason }

var (
	ErrGameOver        = &CommandError{"the game is over"}
	ErrNotYourTurn     = &CommandError{"not your turn"}
	ErrNoAP            = &CommandError{"no action points left"}
	ErrWall            = &CommandError{"can't move into a wall"}
	ErrOccupied        = &CommandError{"can't move into another player"}
	ErrNoTarget        = &CommandError{"there is no one to attack here"}
	ErrMissed          = &CommandError{"attack missed"}
	ErrNothingHere     = &CommandError{"nothing to pick up"}
	ErrAlreadyHave     = &CommandError{"already have item"}
	ErrInvalidPosition = &CommandError{"invalid position"}
	ErrNotWalkable     = &CommandError{"cannot walk on this tile"}
	ErrDead            = &CommandError{"you are dead"}
	ErrNoFreeTile      = &CommandError{"there is no free tile to start on"}
)

// ErrNoSuchPlayer means a session used an id the engine never handed out.
var ErrNoSuchPlayer = errors.New("player has not been added")

// IsCommandError reports whether err is a recoverable command failure.
func IsCommandError(err error) bool {
	var ce *CommandError
	return errors.As(err, &ce)
}
