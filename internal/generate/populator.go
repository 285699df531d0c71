package generate

import (
	"errors"

	"dungeon-of-doom/internal/gamemap"
)

// ErrNoRooms means the BSP pass produced nothing to populate.
var ErrNoRooms = errors.New("generate: no rooms carved")

// ErrCrowded means there are more things to place than free floor tiles.
var ErrCrowded = errors.New("generate: not enough floor for exits and items")

// Populate places exits, gold and items on distinct floor tiles. The first
// exit goes in the centre of the last room; everything else is spread over
// random rooms.
func Populate(gmap *gamemap.GameMap, cfg *Config) error {
	rooms := gmap.Rooms
	if len(rooms) == 0 {
		return ErrNoRooms
	}

	occupied := make(map[gamemap.Location]bool)
	place := func(t gamemap.Tile) error {
		loc, ok := pickFree(gmap, rooms[cfg.Rand.Intn(len(rooms))], cfg, occupied)
		if !ok {
			return ErrCrowded
		}
		occupied[loc] = true
		gmap.Set(loc, t)
		return nil
	}

	if cfg.Exits > 0 {
		x, y := rooms[len(rooms)-1].Center()
		loc := gamemap.Location{Row: y, Col: x}
		occupied[loc] = true
		gmap.Set(loc, gamemap.MakeExit())
		for i := 1; i < cfg.Exits; i++ {
			if err := place(gamemap.MakeExit()); err != nil {
				return err
			}
		}
	}

	for i := 0; i < cfg.GoldPiles; i++ {
		if err := place(gamemap.MakeItem(gamemap.NewGold(cfg.GoldValue))); err != nil {
			return err
		}
	}

	items := []struct {
		kind  gamemap.ItemKind
		count int
	}{
		{gamemap.ItemSword, cfg.Swords},
		{gamemap.ItemArmour, cfg.Armour},
		{gamemap.ItemLantern, cfg.Lanterns},
		{gamemap.ItemHealth, cfg.Health},
	}
	for _, it := range items {
		for i := 0; i < it.count; i++ {
			if err := place(gamemap.MakeItem(&gamemap.Item{Kind: it.kind})); err != nil {
				return err
			}
		}
	}
	return nil
}

// pickFree tries up to 20 random tiles inside room, then falls back to the
// first free floor tile anywhere on the map.
func pickFree(gmap *gamemap.GameMap, room gamemap.Rect, cfg *Config, occupied map[gamemap.Location]bool) (gamemap.Location, bool) {
	const maxAttempts = 20
	for range maxAttempts {
		x, y := randomInRoom(room, cfg)
		loc := gamemap.Location{Row: y, Col: x}
		if !occupied[loc] {
			return loc, true
		}
	}
	for y := 0; y < gmap.Height; y++ {
		for x := 0; x < gmap.Width; x++ {
			loc := gamemap.Location{Row: y, Col: x}
			t := gmap.At(loc)
			if t.Kind == gamemap.TileFloor && t.Item == nil && !occupied[loc] {
				return loc, true
			}
		}
	}
	return gamemap.Location{}, false
}

func randomInRoom(room gamemap.Rect, cfg *Config) (int, int) {
	// Keep off the outermost ring, where corridors join, unless the room is
	// too small for that.
	x1, y1 := room.X1+1, room.Y1+1
	x2, y2 := room.X2-1, room.Y2-1
	if x1 > x2 || y1 > y2 {
		x1, y1 = room.X1, room.Y1
		x2, y2 = room.X2, room.Y2
	}
	x := x1 + cfg.Rand.Intn(max(1, x2-x1+1))
	y := y1 + cfg.Rand.Intn(max(1, y2-y1+1))
	return x, y
}
