package mud

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"dungeon-of-doom/internal/game"
	"dungeon-of-doom/internal/gamemap"
)

// CommandKind is a client verb.
type CommandKind uint8

const (
	CmdHello CommandKind = iota
	CmdLook
	CmdMove
	CmdAttack
	CmdPickup
	CmdShout
	CmdEndTurn
	CmdSetPlayerPos
)

var verbNames = [...]string{
	CmdHello:        "HELLO",
	CmdLook:         "LOOK",
	CmdMove:         "MOVE",
	CmdAttack:       "ATTACK",
	CmdPickup:       "PICKUP",
	CmdShout:        "SHOUT",
	CmdEndTurn:      "ENDTURN",
	CmdSetPlayerPos: "SETPLAYERPOS",
}

var verbs = func() map[string]CommandKind {
	m := make(map[string]CommandKind, len(verbNames))
	for k, name := range verbNames {
		m[name] = CommandKind(k)
	}
	return m
}()

func (k CommandKind) String() string {
	if int(k) < len(verbNames) {
		return verbNames[k]
	}
	return "UNKNOWN"
}

// Command is one parsed client line. Only the fields used by Kind are set.
type Command struct {
	Kind CommandKind
	Arg  string            // HELLO name, SHOUT text
	Dir  gamemap.Direction // MOVE, ATTACK
	Loc  gamemap.Location  // SETPLAYERPOS
}

// Parse failures. They are reported to the client like any other failed
// command.
var (
	ErrInvalidCommand   = &game.CommandError{Reason: "invalid command"}
	ErrInvalidDirection = &game.CommandError{Reason: "invalid direction"}
	ErrNeedCoordinates  = &game.CommandError{Reason: "need two co-ordinates"}
	ErrBadCoordinates   = &game.CommandError{Reason: "co-ordinates must be integers"}
	ErrInvalidName      = &game.CommandError{Reason: "name has no usable characters"}
)

// ParseCommand splits line into a verb and at most one argument at the first
// whitespace, so names and chat text keep their inner spaces. Verbs are matched
// case-insensitively.
func ParseCommand(line string) (Command, error) {
	verb, arg := splitVerb(strings.TrimSpace(line))
	kind, ok := verbs[strings.ToUpper(verb)]
	if !ok {
		return Command{}, ErrInvalidCommand
	}
	cmd := Command{Kind: kind}
	hasArg := arg != ""

	switch kind {
	case CmdHello:
		if !hasArg {
			return cmd, needs("HELLO needs an argument")
		}
		cmd.Arg = arg
	case CmdLook, CmdPickup, CmdEndTurn:
		if hasArg {
			return cmd, needs(kind.String() + " does not take an argument")
		}
	case CmdMove, CmdAttack:
		if !hasArg {
			return cmd, needs(kind.String() + " needs a direction")
		}
		dir, err := gamemap.ParseDirection(arg)
		if err != nil {
			return cmd, ErrInvalidDirection
		}
		cmd.Dir = dir
	case CmdShout:
		if !hasArg {
			return cmd, needs("need something to shout")
		}
		cmd.Arg = arg
	case CmdSetPlayerPos:
		if !hasArg {
			return cmd, needs("need a position")
		}
		loc, err := parseColRow(arg)
		if err != nil {
			return cmd, err
		}
		cmd.Loc = loc
	}
	return cmd, nil
}

// splitVerb cuts s at its first whitespace rune.
func splitVerb(s string) (verb, arg string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	_, size := utf8.DecodeRuneInString(s[i:])
	return s[:i], s[i+size:]
}

func needs(reason string) error {
	return &game.CommandError{Reason: reason}
}

// parseColRow reads "col row".
func parseColRow(arg string) (gamemap.Location, error) {
	fields := strings.Fields(arg)
	if len(fields) != 2 {
		return gamemap.Location{}, ErrNeedCoordinates
	}
	col, errCol := strconv.Atoi(fields[0])
	row, errRow := strconv.Atoi(fields[1])
	if err := errors.Join(errCol, errRow); err != nil {
		return gamemap.Location{}, ErrBadCoordinates
	}
	return gamemap.Location{Row: row, Col: col}, nil
}
