package game

import "dungeon-of-doom/internal/gamemap"

// Per-player defaults.
const (
	DefaultHP           = 3
	DefaultAP           = 6
	BaseLookDistance    = 2
	LanternLookDistance = 1 // added to BaseLookDistance while holding a lantern
)

// DeadLocation is where corpses go: off the map, so they never block a tile
// or show up in anyone's view.
var DeadLocation = gamemap.Location{Row: -10, Col: -10}

// Player is one seat at the table. The slot is never removed from the roster,
// so IDs stay valid for the life of the game.
type Player struct {
	ID       int
	Name     string
	Location gamemap.Location
	HP       int
	AP       int
	Gold     int
	Alive    bool
	Won      bool

	inventory map[gamemap.ItemKind]bool
	notify    Notifier
}

func newPlayer(id int, name string, loc gamemap.Location, notify Notifier) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		Location:  loc,
		HP:        DefaultHP,
		Alive:     true,
		inventory: make(map[gamemap.ItemKind]bool),
		notify:    notify,
	}
}

// Has reports whether the player holds a retainable item of kind k.
func (p *Player) Has(k gamemap.ItemKind) bool {
	return p.inventory[k]
}

// LookDistance is read at look time since it grows with a lantern.
func (p *Player) LookDistance() int {
	if p.Has(gamemap.ItemLantern) {
		return BaseLookDistance + LanternLookDistance
	}
	return BaseLookDistance
}

// Inventory lists the retainable items held, in a stable order.
func (p *Player) Inventory() []gamemap.ItemKind {
	var out []gamemap.ItemKind
	for _, k := range []gamemap.ItemKind{gamemap.ItemSword, gamemap.ItemArmour, gamemap.ItemLantern} {
		if p.inventory[k] {
			out = append(out, k)
		}
	}
	return out
}

func (p *Player) send(ev Event) {
	if p.notify != nil {
		p.notify(ev)
	}
}
