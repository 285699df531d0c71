// Package generate builds Dungeon of Doom maps procedurally: BSP rooms joined
// by corridors, then exits, gold and items scattered over the rooms.
package generate

import (
	"fmt"
	"math/rand"

	"dungeon-of-doom/internal/gamemap"
)

// CorridorStyle selects the shape of connecting tunnels.
type CorridorStyle uint8

const (
	CorridorLShaped CorridorStyle = iota
	CorridorZShaped
	CorridorStraight
)

// Config drives generation of one map.
type Config struct {
	Name                string
	MapWidth, MapHeight int
	MinLeafSize         int
	MaxLeafSize         int
	MinRoomSize         int
	RoomPadding         int
	CorridorStyle       CorridorStyle

	Goal      int // gold needed to win
	GoldPiles int // each worth GoldValue
	GoldValue int
	Exits     int
	Swords    int
	Armour    int
	Lanterns  int
	Health    int

	Rand *rand.Rand
}

// DefaultConfig is a mid-sized dungeon for a handful of players.
func DefaultConfig(seed int64) *Config {
	return &Config{
		Name:        fmt.Sprintf("Generated dungeon %d", seed),
		MapWidth:    48,
		MapHeight:   24,
		MinLeafSize: 7,
		MaxLeafSize: 16,
		MinRoomSize: 4,
		RoomPadding: 1,
		Goal:        6,
		GoldPiles:   10,
		GoldValue:   1,
		Exits:       2,
		Swords:      2,
		Armour:      2,
		Lanterns:    2,
		Health:      3,
		Rand:        rand.New(rand.NewSource(seed)),
	}
}

// bspLeaf is a node in the BSP tree.
type bspLeaf struct {
	X, Y, W, H  int
	left, right *bspLeaf
	room        *gamemap.Rect
}

// split divides the leaf into two children, returning false when leaf is too small.
func (l *bspLeaf) split(cfg *Config) bool {
	if l.left != nil || l.right != nil {
		return false
	}
	// Horizontal when taller, vertical when wider.
	splitH := cfg.Rand.Intn(2) == 0
	if l.W > l.H && float64(l.W)/float64(l.H) >= 1.25 {
		splitH = false
	} else if l.H > l.W && float64(l.H)/float64(l.W) >= 1.25 {
		splitH = true
	}

	maxSize := l.H
	if !splitH {
		maxSize = l.W
	}
	if maxSize <= cfg.MinLeafSize*2 {
		return false
	}

	lo := cfg.MinLeafSize
	hi := maxSize - cfg.MinLeafSize
	if lo >= hi {
		return false
	}
	split := lo + cfg.Rand.Intn(hi-lo+1)

	if splitH {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: l.W, H: split}
		l.right = &bspLeaf{X: l.X, Y: l.Y + split, W: l.W, H: l.H - split}
	} else {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: split, H: l.H}
		l.right = &bspLeaf{X: l.X + split, Y: l.Y, W: l.W - split, H: l.H}
	}
	return true
}

// createRooms recursively carves rooms inside terminal leaves.
func (l *bspLeaf) createRooms(gmap *gamemap.GameMap, cfg *Config) {
	if l.left != nil || l.right != nil {
		if l.left != nil {
			l.left.createRooms(gmap, cfg)
		}
		if l.right != nil {
			l.right.createRooms(gmap, cfg)
		}
		return
	}
	pad := cfg.RoomPadding
	minSize := cfg.MinRoomSize

	availW := max(l.W-2*pad, minSize)
	availH := max(l.H-2*pad, minSize)

	rw := minSize + cfg.Rand.Intn(max(1, availW-minSize+1))
	rh := minSize + cfg.Rand.Intn(max(1, availH-minSize+1))
	rw = max(min(rw, l.W-2*pad), 3)
	rh = max(min(rh, l.H-2*pad), 3)

	rx := l.X + pad + cfg.Rand.Intn(max(1, l.W-rw-2*pad+1))
	ry := l.Y + pad + cfg.Rand.Intn(max(1, l.H-rh-2*pad+1))

	// Keep a solid border round the map.
	rx = max(rx, 1)
	ry = max(ry, 1)
	if rx+rw >= gmap.Width {
		rw = gmap.Width - rx - 1
	}
	if ry+rh >= gmap.Height {
		rh = gmap.Height - ry - 1
	}
	if rw < 3 || rh < 3 {
		return
	}

	room := gamemap.Rect{X1: rx, Y1: ry, X2: rx + rw - 1, Y2: ry + rh - 1}
	l.room = &room
	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			gmap.Set(gamemap.Location{Row: y, Col: x}, gamemap.MakeFloor())
		}
	}
	gmap.Rooms = append(gmap.Rooms, room)
}

// getRoom returns a room from this subtree.
func (l *bspLeaf) getRoom() *gamemap.Rect {
	if l.room != nil {
		return l.room
	}
	var lRoom, rRoom *gamemap.Rect
	if l.left != nil {
		lRoom = l.left.getRoom()
	}
	if l.right != nil {
		rRoom = l.right.getRoom()
	}
	if lRoom == nil {
		return rRoom
	}
	return lRoom
}

// connectChildren carves corridors between the two children of a split leaf.
func (l *bspLeaf) connectChildren(gmap *gamemap.GameMap, cfg *Config) {
	if l.left == nil || l.right == nil {
		return
	}
	l.left.connectChildren(gmap, cfg)
	l.right.connectChildren(gmap, cfg)

	lRoom := l.left.getRoom()
	rRoom := l.right.getRoom()
	if lRoom == nil || rRoom == nil {
		return
	}
	lCX, lCY := lRoom.Center()
	rCX, rCY := rRoom.Center()
	carveCorridor(gmap, lCX, lCY, rCX, rCY, cfg)
}

// Generate builds and populates a map. The result has passed
// gamemap.Validate, so it always holds enough gold for its goal.
func Generate(cfg *Config) (*gamemap.GameMap, error) {
	gmap := gamemap.New(cfg.MapWidth, cfg.MapHeight)
	gmap.Name = cfg.Name
	gmap.Goal = cfg.Goal

	root := &bspLeaf{X: 0, Y: 0, W: cfg.MapWidth, H: cfg.MapHeight}

	leaves := []*bspLeaf{root}
	splitAny := true
	for splitAny {
		splitAny = false
		var next []*bspLeaf
		for _, leaf := range leaves {
			if leaf.left != nil || leaf.right != nil {
				next = append(next, leaf.left, leaf.right)
				continue
			}
			if leaf.W > cfg.MaxLeafSize || leaf.H > cfg.MaxLeafSize ||
				cfg.Rand.Float64() > 0.25 {
				if leaf.split(cfg) {
					next = append(next, leaf.left, leaf.right)
					splitAny = true
					continue
				}
			}
			next = append(next, leaf)
		}
		leaves = next
	}

	root.createRooms(gmap, cfg)
	root.connectChildren(gmap, cfg)

	if err := Populate(gmap, cfg); err != nil {
		return nil, err
	}
	if err := gmap.Validate(); err != nil {
		return nil, fmt.Errorf("generated map: %w", err)
	}
	return gmap, nil
}
