package system

import (
	"strings"
	"testing"

	"dungeon-of-doom/internal/gamemap"
)

// openMap creates a fully-open (all floor) map for FOV tests.
func openMap(width, height int) *gamemap.GameMap {
	gmap := gamemap.New(width, height)
	for y := range height {
		for x := range width {
			gmap.Set(gamemap.Location{Row: y, Col: x}, gamemap.MakeFloor())
		}
	}
	return gmap
}

func TestLookGridIsSquare(t *testing.T) {
	gmap := openMap(5, 5)
	for _, shape := range []Shape{Diamond{}, Shadowcast{}} {
		for d := 0; d <= 6; d++ {
			v := View{Map: gmap, Origin: gamemap.Location{Row: 2, Col: 2}, Distance: d}
			rows := Look(v, shape)
			if len(rows) != 2*d+1 {
				t.Fatalf("%T d=%d: got %d rows, want %d", shape, d, len(rows), 2*d+1)
			}
			for i, r := range rows {
				if len(r) != 2*d+1 {
					t.Errorf("%T d=%d row %d: width %d, want %d", shape, d, i, len(r), 2*d+1)
				}
			}
		}
	}
}

func TestDiamondLook(t *testing.T) {
	gmap := openMap(9, 9)
	gmap.Set(gamemap.Location{Row: 3, Col: 4}, gamemap.MakeItem(gamemap.NewGold(1)))
	gmap.Set(gamemap.Location{Row: 4, Col: 6}, gamemap.MakeExit())
	gmap.Set(gamemap.Location{Row: 5, Col: 3}, gamemap.MakeWall())
	other := gamemap.Location{Row: 6, Col: 4}

	v := View{
		Map:      gmap,
		Origin:   gamemap.Location{Row: 4, Col: 4},
		Distance: 2,
		Occupied: func(loc gamemap.Location) bool { return loc == other },
	}
	got := strings.Join(Look(v, Diamond{}), "\n")
	want := strings.Join([]string{
		"X...X",
		"..G..",
		"....E",
		".#...",
		"X.P.X",
	}, "\n")
	if got != want {
		t.Errorf("Look() =\n%s\nwant\n%s", got, want)
	}
}

func TestLookOffMapIsWall(t *testing.T) {
	gmap := openMap(3, 3)
	v := View{Map: gmap, Origin: gamemap.Location{Row: 0, Col: 0}, Distance: 2}
	rows := Look(v, Diamond{})
	want := []string{
		"X###X",
		"#####",
		"##...",
		"##...",
		"X#..X",
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, rows[i], want[i])
		}
	}
}

func TestUnknownHidesContents(t *testing.T) {
	// Corners of the diamond are unknown even when a player stands there.
	gmap := openMap(9, 9)
	corner := gamemap.Location{Row: 2, Col: 2}
	gmap.Set(corner, gamemap.MakeItem(gamemap.NewGold(5)))
	v := View{
		Map:      gmap,
		Origin:   gamemap.Location{Row: 4, Col: 4},
		Distance: 2,
		Occupied: func(loc gamemap.Location) bool { return loc == corner },
	}
	rows := Look(v, Diamond{})
	if rows[0][0] != GlyphUnknown {
		t.Errorf("corner = %q, want %q", rows[0][0], GlyphUnknown)
	}
}

func TestLookReadsLiveState(t *testing.T) {
	gmap := openMap(5, 5)
	v := View{Map: gmap, Origin: gamemap.Location{Row: 2, Col: 2}, Distance: 1}
	before := Look(v, Diamond{})
	gmap.Set(gamemap.Location{Row: 1, Col: 2}, gamemap.MakeItem(&gamemap.Item{Kind: gamemap.ItemSword}))
	after := Look(v, Diamond{})
	if before[0] == after[0] {
		t.Fatal("Look should reflect tile changes between calls")
	}
	if after[0][1] != 'S' {
		t.Errorf("expected sword glyph, got %q", after[0][1])
	}
}

func TestCanSee(t *testing.T) {
	gmap := openMap(20, 20)
	v := View{Map: gmap, Origin: gamemap.Location{Row: 10, Col: 10}, Distance: 2}
	cases := []struct {
		name string
		loc  gamemap.Location
		want bool
	}{
		{"self", gamemap.Location{Row: 10, Col: 10}, true},
		{"manhattan 3", gamemap.Location{Row: 8, Col: 11}, true},
		{"corner", gamemap.Location{Row: 8, Col: 12}, false},
		{"outside square", gamemap.Location{Row: 10, Col: 13}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanSee(v, Diamond{}, tc.loc); got != tc.want {
				t.Errorf("CanSee(%+v) = %v, want %v", tc.loc, got, tc.want)
			}
		})
	}
}

func TestShadowcastWallBlocksLight(t *testing.T) {
	gmap := openMap(11, 11)
	gmap.Set(gamemap.Location{Row: 4, Col: 5}, gamemap.MakeWall())
	v := View{Map: gmap, Origin: gamemap.Location{Row: 5, Col: 5}, Distance: 3}
	mask := Shadowcast{}.Mask(v)

	if !mask.Contains(0, 0) {
		t.Error("origin must always be visible")
	}
	if !mask.Contains(-1, 0) {
		t.Error("the wall itself should be visible")
	}
	if mask.Contains(-2, 0) {
		t.Error("tile behind the wall should be hidden")
	}
	if !mask.Contains(2, 0) {
		t.Error("open tile to the south should be visible")
	}
}

func TestShadowcastOpenMapMatchesRadius(t *testing.T) {
	gmap := openMap(20, 20)
	v := View{Map: gmap, Origin: gamemap.Location{Row: 10, Col: 10}, Distance: 3}
	mask := Shadowcast{}.Mask(v)
	for _, off := range [][2]int{{-3, 0}, {3, 0}, {0, -3}, {0, 3}, {2, 2}} {
		if !mask.Contains(off[0], off[1]) {
			t.Errorf("offset %v should be visible on an open map", off)
		}
	}
	// 3² + 3² = 18 ≥ 16: outside the circle.
	if mask.Contains(3, 3) {
		t.Error("corner (3,3) lies outside the radius-4 circle")
	}
}
