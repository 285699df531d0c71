package game

import (
	"sync"
	"time"
)

// Watchdog ends a player's turn after they have held it for too long.
// It is a policy layered on the engine, which itself never times out.
type Watchdog struct {
	g       *Game
	timeout time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewWatchdog attaches a watchdog with the given per-turn timeout to g.
func NewWatchdog(g *Game, timeout time.Duration) *Watchdog {
	w := &Watchdog{g: g, timeout: timeout}
	g.OnTurnStart(w.arm)
	return w
}

// arm runs under the engine lock; the timer callback takes that lock itself,
// so it must never be called synchronously here.
func (w *Watchdog) arm(id int, seq uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.timeout, func() {
		w.g.ForceEndTurn(id, seq)
	})
}

// Stop detaches the watchdog and cancels any pending timer.
func (w *Watchdog) Stop() {
	w.g.OnTurnStart(nil)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
}
