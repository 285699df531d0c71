package game

// PlayerStatus is a read-only copy of one roster entry.
type PlayerStatus struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Row       int      `json:"row"`
	Col       int      `json:"col"`
	HP        int      `json:"hp"`
	AP        int      `json:"ap"`
	Gold      int      `json:"gold"`
	Alive     bool     `json:"alive"`
	Won       bool     `json:"won"`
	Inventory []string `json:"inventory,omitempty"`
}

// Status is a consistent snapshot of the whole game.
type Status struct {
	Map           string         `json:"map"`
	Goal          int            `json:"goal"`
	RemainingGold int            `json:"remaining_gold"`
	CurrentPlayer int            `json:"current_player"`
	Won           bool           `json:"won"`
	Players       []PlayerStatus `json:"players"`
}

// Snapshot copies the game state under the engine lock.
func (g *Game) Snapshot() Status {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := Status{
		Map:           g.gmap.Name,
		Goal:          g.gmap.Goal,
		RemainingGold: g.gmap.RemainingGold(),
		CurrentPlayer: g.current,
		Won:           g.won,
		Players:       make([]PlayerStatus, 0, len(g.players)),
	}
	for _, p := range g.players {
		ps := PlayerStatus{
			ID:    p.ID,
			Name:  p.Name,
			Row:   p.Location.Row,
			Col:   p.Location.Col,
			HP:    p.HP,
			AP:    p.AP,
			Gold:  p.Gold,
			Alive: p.Alive,
			Won:   p.Won,
		}
		for _, k := range p.Inventory() {
			ps.Inventory = append(ps.Inventory, k.String())
		}
		st.Players = append(st.Players, ps)
	}
	return st
}

// PlayerSnapshot returns a copy of one player's status.
func (g *Game) PlayerSnapshot(id int) (PlayerStatus, bool) {
	st := g.Snapshot()
	if id < 0 || id >= len(st.Players) {
		return PlayerStatus{}, false
	}
	return st.Players[id], true
}
