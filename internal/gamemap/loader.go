package gamemap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMalformedMap is wrapped by every parse failure in Load.
var ErrMalformedMap = errors.New("malformed map")

// LoadFile reads a map in the text format understood by Load.
func LoadFile(path string) (*GameMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map: %w", err)
	}
	defer f.Close()
	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Load parses a map:
//
//	name Very small labyrinth of doom
//	win 2
//	#####
//	#.GE#
//	#####
//
// The header lines may come in any order; every grid row must have the same
// width. Gold tiles are worth 1 each. The result is validated.
func Load(r io.Reader) (*GameMap, error) {
	var (
		name    string
		goal    = -1
		rows    []string
		lineNum int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" && len(rows) == 0 {
			continue
		}
		switch {
		case len(rows) == 0 && strings.HasPrefix(line, "name "):
			name = strings.TrimSpace(strings.TrimPrefix(line, "name "))
		case len(rows) == 0 && strings.HasPrefix(line, "win "):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "win ")))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: line %d: bad goal %q", ErrMalformedMap, lineNum, line)
			}
			goal = n
		case line == "":
			// trailing blank lines
		default:
			if len(rows) > 0 && len(line) != len(rows[0]) {
				return nil, fmt.Errorf("%w: line %d: row width %d, want %d", ErrMalformedMap, lineNum, len(line), len(rows[0]))
			}
			rows = append(rows, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}
	if goal < 0 {
		return nil, fmt.Errorf("%w: missing win line", ErrMalformedMap)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no grid", ErrMalformedMap)
	}

	m := New(len(rows[0]), len(rows))
	m.Name = name
	m.Goal = goal
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			t, ok := tileFromGlyph(row[x])
			if !ok {
				return nil, fmt.Errorf("%w: unknown tile %q at row %d col %d", ErrMalformedMap, row[x], y, x)
			}
			m.Set(Location{Row: y, Col: x}, t)
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func tileFromGlyph(c byte) (Tile, bool) {
	switch c {
	case '#':
		return MakeWall(), true
	case '.':
		return MakeFloor(), true
	case 'E':
		return MakeExit(), true
	case 'G':
		return MakeItem(NewGold(1)), true
	case 'S':
		return MakeItem(&Item{Kind: ItemSword}), true
	case 'A':
		return MakeItem(&Item{Kind: ItemArmour}), true
	case 'L':
		return MakeItem(&Item{Kind: ItemLantern}), true
	case 'H':
		return MakeItem(&Item{Kind: ItemHealth}), true
	}
	return Tile{}, false
}
