package gamemap

// TileKind identifies the type of a map tile.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileExit
)

// ItemKind identifies an item lying on a tile or held by a player.
type ItemKind uint8

const (
	ItemGold ItemKind = iota + 1
	ItemSword
	ItemArmour
	ItemLantern
	ItemHealth
)

// Retainable reports whether the item goes into a player's inventory.
// Gold and health are consumed on pickup instead.
func (k ItemKind) Retainable() bool {
	switch k {
	case ItemSword, ItemArmour, ItemLantern:
		return true
	}
	return false
}

// Glyph returns the look-reply character for the item.
func (k ItemKind) Glyph() byte {
	switch k {
	case ItemGold:
		return 'G'
	case ItemSword:
		return 'S'
	case ItemArmour:
		return 'A'
	case ItemLantern:
		return 'L'
	case ItemHealth:
		return 'H'
	}
	return '?'
}

func (k ItemKind) String() string {
	switch k {
	case ItemGold:
		return "gold"
	case ItemSword:
		return "sword"
	case ItemArmour:
		return "armour"
	case ItemLantern:
		return "lantern"
	case ItemHealth:
		return "health"
	}
	return "unknown"
}

// Item is something that can be picked up. Value only matters for gold.
type Item struct {
	Kind  ItemKind
	Value int
}

// NewGold returns a gold item worth v.
func NewGold(v int) *Item {
	return &Item{Kind: ItemGold, Value: v}
}

// Tile holds the kind and optional item for one map cell.
type Tile struct {
	Kind TileKind
	Item *Item
}

// Walkable reports whether a player may stand on the tile.
func (t Tile) Walkable() bool {
	return t.Kind == TileFloor || t.Kind == TileExit
}

// Transparent reports whether the tile lets light through.
func (t Tile) Transparent() bool {
	return t.Kind != TileWall
}

// IsExit reports whether the tile is an exit.
func (t Tile) IsExit() bool {
	return t.Kind == TileExit
}

// Glyph returns the look-reply character for the tile, items shown over floor.
func (t Tile) Glyph() byte {
	switch t.Kind {
	case TileWall:
		return '#'
	case TileExit:
		return 'E'
	}
	if t.Item != nil {
		return t.Item.Kind.Glyph()
	}
	return '.'
}

// MakeWall returns a blocking, opaque wall tile.
func MakeWall() Tile {
	return Tile{Kind: TileWall}
}

// MakeFloor returns a passable, transparent floor tile.
func MakeFloor() Tile {
	return Tile{Kind: TileFloor}
}

// MakeExit returns an exit tile.
func MakeExit() Tile {
	return Tile{Kind: TileExit}
}

// MakeItem returns a floor tile holding item.
func MakeItem(item *Item) Tile {
	return Tile{Kind: TileFloor, Item: item}
}
