// Package game is the authoritative Dungeon of Doom engine. It owns the map
// and the player roster, and every mutation happens under a single lock, so
// commands from concurrent sessions are applied one at a time. Players learn
// about changes through the Notifier they registered at Join.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/sasha-s/go-deadlock"

	"dungeon-of-doom/internal/gamemap"
	"dungeon-of-doom/internal/system"
)

// Game is one running dungeon. Create it with New and share the pointer with
// every session; there is no package-level instance.
type Game struct {
	mu      deadlock.Mutex
	gmap    *gamemap.GameMap
	players []*Player
	current int // index into players; -1 until someone joins
	turnSeq uint64
	won     bool
	winner  int

	rng         *rand.Rand
	shape       system.Shape
	logger      *slog.Logger
	onTurnStart func(id int, seq uint64)
}

// Option configures a Game.
type Option func(*Game)

// WithRand sets the random source used for start positions and attack rolls.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithShape sets the field-of-view shape used by LOOK and CHANGE hints.
func WithShape(s system.Shape) Option {
	return func(g *Game) { g.shape = s }
}

// New creates a game on gmap. The map is validated: it must hold enough gold
// to reach the goal and at least one walkable tile.
func New(gmap *gamemap.GameMap, opts ...Option) (*Game, error) {
	if err := gmap.Validate(); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	g := &Game{
		gmap:    gmap,
		current: -1,
		winner:  -1,
		shape:   system.Diamond{},
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g, nil
}

// Goal returns the gold needed to win.
func (g *Game) Goal() int {
	return g.gmap.Goal
}

// Join adds a player at a random free walkable tile and returns its ID.
// The first player to join starts the game.
func (g *Game) Join(name string, notify Notifier) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	loc, ok := g.randomStartLocation()
	if !ok {
		return -1, ErrNoFreeTile
	}
	id := len(g.players)
	if name == "" {
		name = fmt.Sprintf("Player %d", id)
	}
	p := newPlayer(id, name, loc, notify)
	g.players = append(g.players, p)
	g.logger.Info("player joined", "player", id, "name", name, "row", loc.Row, "col", loc.Col)

	g.notifyChange(loc, loc, id)

	if g.current == -1 {
		g.current = id
		g.startTurn()
	}
	return id, nil
}

// Leave removes a player whose session ended. The player is marked dead in
// place and drops nothing. If it was their turn, the turn moves on unless the
// game has already been won.
func (g *Game) Leave(id int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.player(id)
	if err != nil {
		return err
	}
	p.notify = nil
	if !p.Alive {
		return nil
	}
	loc := p.Location
	p.Alive = false
	p.Location = DeadLocation
	g.logger.Info("player left", "player", id, "name", p.Name)
	g.notifyChange(loc, loc, id)

	// A won game is over; the turn pointer stays on the winner.
	if g.current == id && !g.won {
		g.advanceTurn(id)
	}
	return nil
}

// Hello sets the player's display name. The caller sanitizes it.
func (g *Game) Hello(id int, name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.player(id)
	if err != nil {
		return err
	}
	p.Name = name
	return nil
}

// Look renders what the player can currently see. It costs nothing and is
// allowed at any time.
func (g *Game) Look(id int) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.player(id)
	if err != nil {
		return nil, err
	}
	return system.Look(g.viewOf(p), g.shape), nil
}

// Move steps the player one tile in dir.
func (g *Game) Move(id int, dir gamemap.Direction) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.actor(id)
	if err != nil {
		return err
	}
	result, dest := system.TryMove(g.gmap, g.occupiedBy(id), p.Location, dir)
	switch result {
	case system.MoveBlocked:
		return ErrWall
	case system.MoveOccupied:
		return ErrOccupied
	}

	p.AP--
	from := p.Location
	p.Location = dest
	g.notifyChange(from, dest, id)

	g.advanceTurn(id)
	return nil
}

// Attack strikes whoever stands next to the player in dir. A miss still
// costs the action point and is reported as ErrMissed.
func (g *Game) Attack(id int, dir gamemap.Direction) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.actor(id)
	if err != nil {
		return err
	}
	target := g.playerAt(p.Location.Step(dir), id)
	if target == nil {
		return ErrNoTarget
	}

	hit, damage := system.ResolveAttack(p.Has(gamemap.ItemSword), target.Has(gamemap.ItemArmour), g.rng)
	if hit {
		g.logger.Debug("attack hit", "attacker", id, "defender", target.ID, "damage", damage)
		g.damage(target, damage)
	}

	p.AP--
	g.advanceTurn(id)
	if !hit {
		return ErrMissed
	}
	return nil
}

// Pickup takes the item on the player's tile.
func (g *Game) Pickup(id int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.actor(id)
	if err != nil {
		return err
	}
	tile := g.gmap.At(p.Location)
	item := tile.Item
	if item == nil {
		return ErrNothingHere
	}
	if item.Kind.Retainable() && p.Has(item.Kind) {
		return ErrAlreadyHave
	}

	switch item.Kind {
	case gamemap.ItemGold:
		p.Gold += item.Value
		p.send(Event{Kind: EventGoldChange, Delta: item.Value})
	case gamemap.ItemHealth:
		p.HP++
		p.send(Event{Kind: EventHPChange, Delta: 1})
	default:
		p.inventory[item.Kind] = true
		if item.Kind == gamemap.ItemLantern {
			p.send(Event{Kind: EventChange})
		}
	}
	tile.Item = nil
	g.notifyChange(p.Location, p.Location, id)

	p.AP--
	g.advanceTurn(id)
	return nil
}

// Shout sends text to every connected player, the sender included.
func (g *Game) Shout(id int, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.player(id)
	if err != nil {
		return err
	}
	g.broadcast(p.Name, text)
	return nil
}

// EndTurn gives up the rest of the player's action points.
func (g *Game) EndTurn(id int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.player(id)
	if err != nil {
		return err
	}
	if g.won {
		return ErrGameOver
	}
	if g.current != id {
		return ErrNotYourTurn
	}
	p.AP = 0
	g.advanceTurn(id)
	return nil
}

// SetPosition teleports a player, ignoring turns and action points. It is a
// debugging aid.
func (g *Game) SetPosition(id int, loc gamemap.Location) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.player(id)
	if err != nil {
		return err
	}
	switch {
	case g.won:
		return ErrGameOver
	case !p.Alive:
		return ErrDead
	case !g.gmap.InBounds(loc):
		return ErrInvalidPosition
	case !g.gmap.IsWalkable(loc):
		return ErrNotWalkable
	case g.playerAt(loc, id) != nil:
		return ErrOccupied
	}
	from := p.Location
	p.Location = loc
	g.notifyChange(from, loc, id)
	return nil
}

// ForceEndTurn ends the turn of player id, but only if the turn identified by
// seq is still running. It reports whether anything happened.
func (g *Game) ForceEndTurn(id int, seq uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.won || g.current != id || g.turnSeq != seq {
		return false
	}
	p := g.players[id]
	g.logger.Info("turn timed out", "player", id, "name", p.Name)
	p.send(Event{Kind: EventMessage, From: ServerName, Text: "your turn has timed out"})
	p.AP = 0
	g.advanceTurn(id)
	return true
}

// OnTurnStart registers fn to be called, under the engine lock, each time a
// turn begins. If a turn is already running fn is called for it immediately.
func (g *Game) OnTurnStart(fn func(id int, seq uint64)) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.onTurnStart = fn
	if fn != nil && g.current != -1 && !g.won {
		fn(g.current, g.turnSeq)
	}
}

// ─── helpers (caller holds g.mu) ─────────────────────────────────────────────

func (g *Game) player(id int) (*Player, error) {
	if id < 0 || id >= len(g.players) {
		return nil, fmt.Errorf("%w: id %d", ErrNoSuchPlayer, id)
	}
	return g.players[id], nil
}

// actor checks the shared preconditions of every AP-consuming command.
func (g *Game) actor(id int) (*Player, error) {
	p, err := g.player(id)
	if err != nil {
		return nil, err
	}
	if g.won {
		return nil, ErrGameOver
	}
	if g.current != id {
		return nil, ErrNotYourTurn
	}
	if p.AP < 1 {
		return nil, ErrNoAP
	}
	return p, nil
}

// playerAt returns the living player on loc other than exclude, or nil.
func (g *Game) playerAt(loc gamemap.Location, exclude int) *Player {
	for _, p := range g.players {
		if p.ID != exclude && p.Alive && p.Location == loc {
			return p
		}
	}
	return nil
}

func (g *Game) occupiedBy(exclude int) func(gamemap.Location) bool {
	return func(loc gamemap.Location) bool {
		return g.playerAt(loc, exclude) != nil
	}
}

func (g *Game) viewOf(p *Player) system.View {
	return system.View{
		Map:      g.gmap,
		Origin:   p.Location,
		Distance: p.LookDistance(),
		Occupied: g.occupiedBy(p.ID),
	}
}

// randomStartLocation draws random tiles until it finds a walkable one that
// nobody stands on. It gives up only when every walkable tile is taken.
func (g *Game) randomStartLocation() (gamemap.Location, bool) {
	alive := 0
	for _, p := range g.players {
		if p.Alive {
			alive++
		}
	}
	if alive >= g.gmap.WalkableCount() {
		return gamemap.Location{}, false
	}
	for {
		loc := gamemap.Location{
			Row: g.rng.Intn(g.gmap.Height),
			Col: g.rng.Intn(g.gmap.Width),
		}
		if g.gmap.IsWalkable(loc) && g.playerAt(loc, -1) == nil {
			return loc, true
		}
	}
}

// damage applies a hit to target and kills it when its hit points run out.
func (g *Game) damage(target *Player, amount int) {
	if amount == 0 {
		return
	}
	target.HP -= amount
	target.send(Event{Kind: EventHPChange, Delta: -amount})
	if target.HP <= 0 {
		g.kill(target)
	}
}

// kill handles a death in combat: the corpse's gold is dropped on its tile,
// merged with any gold already there, unless the tile is an exit, where it
// is lost. The corpse is moved off the map.
func (g *Game) kill(p *Player) {
	loc := p.Location
	tile := g.gmap.At(loc)
	if !tile.IsExit() {
		value := p.Gold
		if tile.Item != nil && tile.Item.Kind == gamemap.ItemGold {
			value += tile.Item.Value
		}
		if value > 0 {
			tile.Item = gamemap.NewGold(value)
		}
	}
	if p.Gold > 0 {
		p.send(Event{Kind: EventGoldChange, Delta: -p.Gold})
		p.Gold = 0
	}
	p.HP = 0
	p.Alive = false
	p.Location = DeadLocation
	g.logger.Info("player killed", "player", p.ID, "name", p.Name, "row", loc.Row, "col", loc.Col)

	p.send(Event{Kind: EventChange})
	p.send(Event{Kind: EventLose})
	g.notifyChange(loc, loc, p.ID)
}

// notifyChange sends CHANGE to every living player other than exclude whose
// field of view covers a or b.
func (g *Game) notifyChange(a, b gamemap.Location, exclude int) {
	for _, p := range g.players {
		if p.ID == exclude || !p.Alive || p.notify == nil {
			continue
		}
		v := g.viewOf(p)
		if system.CanSee(v, g.shape, a) || (b != a && system.CanSee(v, g.shape, b)) {
			p.send(Event{Kind: EventChange})
		}
	}
}

func (g *Game) broadcast(from, text string) {
	for _, p := range g.players {
		p.send(Event{Kind: EventMessage, From: from, Text: text})
	}
}
