package game

import (
	"errors"
	"fmt"
)

// errMultipleWinners marks a broken invariant: turn serialization should make
// a second winner impossible.
var errMultipleWinners = errors.New("game: second winner detected")

// advanceTurn runs after every action that costs AP and after ENDTURN.
// The acting player's win is checked first; otherwise the turn passes on once
// the player is out of AP or dead. Caller holds g.mu.
func (g *Game) advanceTurn(id int) {
	p := g.players[id]
	if p.Alive && p.Gold >= g.gmap.Goal && g.gmap.IsExit(p.Location) {
		g.declareWinner(p)
		return
	}
	if p.AP == 0 || !p.Alive {
		g.endTurn(p)
	}
}

func (g *Game) declareWinner(p *Player) {
	if g.won {
		if g.winner != p.ID {
			panic(fmt.Errorf("%w: %d after %d", errMultipleWinners, p.ID, g.winner))
		}
		return
	}
	g.won = true
	g.winner = p.ID
	p.Won = true
	g.logger.Info("player won", "player", p.ID, "name", p.Name, "gold", p.Gold)

	g.broadcast(ServerName, fmt.Sprintf("%s has won the game!", p.Name))
	p.send(Event{Kind: EventWin})
}

// endTurn hands the turn to the next living player in circular ID order.
// With one survivor that is the same player again. With none, the game goes
// idle until somebody joins.
func (g *Game) endTurn(p *Player) {
	p.AP = 0
	p.send(Event{Kind: EventEndTurn})

	next := g.nextAlive(g.current)
	if next == -1 {
		g.logger.Warn("no living players left; waiting for someone to join")
		g.current = -1
		return
	}
	g.current = next
	g.startTurn()
}

func (g *Game) nextAlive(from int) int {
	n := len(g.players)
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if g.players[idx].Alive {
			return idx
		}
	}
	return -1
}

func (g *Game) startTurn() {
	p := g.players[g.current]
	p.AP = DefaultAP
	g.turnSeq++
	g.logger.Debug("turn started", "player", p.ID, "seq", g.turnSeq)
	p.send(Event{Kind: EventStartTurn})
	if g.onTurnStart != nil {
		g.onTurnStart(p.ID, g.turnSeq)
	}
}
