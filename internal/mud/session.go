package mud

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"dungeon-of-doom/internal/game"
	"dungeon-of-doom/internal/runlog"
	"dungeon-of-doom/internal/transport"
)

// State is a session's place in its lifecycle.
type State uint8

const (
	StateAwaitingJoin State = iota
	StateActive
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateAwaitingJoin:
		return "awaiting-join"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// outboxSize bounds the lines waiting for a slow client. A client that lets
// it fill up is disconnected.
const outboxSize = 256

// Session is one connected client. It reads commands on its own goroutine
// and feeds engine events to a writer goroutine, so the engine never blocks
// on a socket.
//
// While a command is in flight, events for this player are held back and
// sent after the command's reply, in the order they arrived.
type Session struct {
	ID     uuid.UUID
	srv    *Server
	t      transport.Transport
	logger *slog.Logger
	opened time.Time

	mu       sync.Mutex
	state    State
	playerID int
	inFlight bool
	pending  []string
	broken   bool
	stats    runlog.Record

	outbox     chan string
	writerDone chan struct{}
}

func newSession(srv *Server, t transport.Transport) *Session {
	id := uuid.Must(uuid.NewV7())
	return &Session{
		ID:         id,
		srv:        srv,
		t:          t,
		logger:     srv.logger.With("session", id.String(), "remote", t.RemoteAddr()),
		opened:     time.Now(),
		playerID:   -1,
		outbox:     make(chan string, outboxSize),
		writerDone: make(chan struct{}),
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// PlayerID returns the engine id, or -1 before the join completes.
func (s *Session) PlayerID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerID
}

// Run joins the game and processes commands until the client goes away, a
// fatal error occurs, or ctx is cancelled. The player leaves the game when
// Run returns.
func (s *Session) Run(ctx context.Context) error {
	go s.writeLoop()
	stop := context.AfterFunc(ctx, func() { s.t.Close() })
	defer stop()
	defer s.finish()

	if err := s.join(); err != nil {
		return err
	}
	for {
		line, err := s.t.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil || s.isBroken() {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		if err := s.handle(line); err != nil {
			return err
		}
	}
}

// join registers the player. GOLD goes out before anything the join itself
// triggered, such as the first STARTTURN.
func (s *Session) join() error {
	var name string
	if n, ok := s.t.(transport.Named); ok {
		name = SanitizeName(n.PlayerName())
	}

	s.begin()
	id, err := s.srv.game.Join(name, s.notify)
	if err != nil {
		s.reply(failLine(err))
		return fmt.Errorf("join: %w", err)
	}
	s.mu.Lock()
	s.playerID = id
	s.state = StateActive
	s.mu.Unlock()
	s.logger.Info("player joined", "player", id, "name", name)

	s.reply(fmt.Sprintf("%s %d", msgGold, s.srv.game.Goal()))
	return nil
}

func (s *Session) handle(line string) error {
	s.begin()
	lines, err := s.dispatch(line)

	s.mu.Lock()
	s.stats.Commands++
	if err != nil {
		s.stats.FailedCommands++
	}
	s.mu.Unlock()

	switch {
	case err == nil:
		s.reply(lines...)
	case game.IsCommandError(err):
		s.logger.Debug("command failed", "line", line, "reason", err.Error())
		s.reply(failLine(err))
	default:
		s.reply()
		return fmt.Errorf("command %q: %w", line, err)
	}
	return nil
}

// dispatch runs one command and returns its direct reply. SHOUT and ENDTURN
// have none on success.
func (s *Session) dispatch(line string) ([]string, error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		return nil, err
	}
	g := s.srv.game
	id := s.playerID

	switch cmd.Kind {
	case CmdHello:
		name := SanitizeName(cmd.Arg)
		if name == "" {
			return nil, ErrInvalidName
		}
		if err := g.Hello(id, name); err != nil {
			return nil, err
		}
		s.logger.Info("player renamed", "player", id, "name", name)
		return []string{msgHello + " " + name}, nil
	case CmdLook:
		rows, err := g.Look(id)
		if err != nil {
			return nil, err
		}
		return append([]string{msgLookReply}, rows...), nil
	case CmdMove:
		return success(g.Move(id, cmd.Dir))
	case CmdAttack:
		err := g.Attack(id, cmd.Dir)
		s.countAttack(err)
		return success(err)
	case CmdPickup:
		return success(g.Pickup(id))
	case CmdShout:
		s.mu.Lock()
		s.stats.Shouts++
		s.mu.Unlock()
		return nil, g.Shout(id, SanitizeShout(cmd.Arg))
	case CmdEndTurn:
		return nil, g.EndTurn(id)
	case CmdSetPlayerPos:
		return success(g.SetPosition(id, cmd.Loc))
	}
	return nil, ErrInvalidCommand
}

func success(err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	return []string{msgSuccess}, nil
}

// ─── outbound ────────────────────────────────────────────────────────────────

// notify is the engine's Notifier for this player. It runs under the engine
// lock and must not block.
func (s *Session) notify(ev game.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.track(ev)
	lines := eventLines(ev)
	if s.inFlight {
		s.pending = append(s.pending, lines...)
		return
	}
	s.enqueue(lines...)
}

func (s *Session) begin() {
	s.mu.Lock()
	s.inFlight = true
	s.mu.Unlock()
}

// reply sends the direct reply to the command in flight, then everything
// that was held back while it ran.
func (s *Session) reply(lines ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enqueue(lines...)
	s.enqueue(s.pending...)
	s.pending = nil
	s.inFlight = false
}

// enqueue hands lines to the writer. Caller holds s.mu.
func (s *Session) enqueue(lines ...string) {
	for _, line := range lines {
		if s.state == StateClosed || s.broken {
			return
		}
		select {
		case s.outbox <- line:
		default:
			s.logger.Warn("client is not reading; disconnecting", "queued", len(s.outbox))
			s.broken = true
			go s.t.Close()
		}
	}
}

func (s *Session) isBroken() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.broken
}

func (s *Session) writeLoop() {
	defer close(s.writerDone)
	failed := false
	for line := range s.outbox {
		if failed {
			continue
		}
		if err := s.t.WriteLine(line); err != nil {
			s.logger.Debug("write failed", "error", err)
			failed = true
			s.mu.Lock()
			s.broken = true
			s.mu.Unlock()
			s.t.Close()
		}
	}
}

// finish removes the player from the game, drains the writer and files the
// run record.
func (s *Session) finish() {
	s.mu.Lock()
	joined := s.state == StateActive
	s.mu.Unlock()

	if joined {
		if err := s.srv.game.Leave(s.playerID); err != nil {
			s.logger.Warn("leave failed", "error", err)
		}
	}

	s.mu.Lock()
	s.state = StateClosed
	close(s.outbox)
	s.mu.Unlock()

	<-s.writerDone
	s.t.Close()

	if joined {
		s.srv.record(s.record())
	}
	s.logger.Info("session closed")
}

// ─── run record ──────────────────────────────────────────────────────────────

// track updates the run statistics from an engine event. Caller holds s.mu.
func (s *Session) track(ev game.Event) {
	switch ev.Kind {
	case game.EventStartTurn:
		s.stats.TurnsPlayed++
	case game.EventHPChange:
		if ev.Delta < 0 {
			s.stats.DamageTaken -= ev.Delta
		}
	case game.EventGoldChange:
		if ev.Delta > 0 {
			s.stats.GoldEarned += ev.Delta
		}
	case game.EventWin:
		s.stats.Outcome = runlog.OutcomeWon
	case game.EventLose:
		s.stats.Outcome = runlog.OutcomeKilled
	}
}

func (s *Session) countAttack(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch err {
	case nil:
		s.stats.AttacksLanded++
	case game.ErrMissed:
		s.stats.AttacksMissed++
	}
}

func (s *Session) record() runlog.Record {
	st := s.srv.game.Snapshot()

	s.mu.Lock()
	rec := s.stats
	s.mu.Unlock()

	rec.ID = s.ID.String()
	rec.Timestamp = s.opened
	rec.Duration = time.Since(s.opened)
	rec.Remote = s.t.RemoteAddr()
	rec.Map = st.Map
	if s.playerID >= 0 && s.playerID < len(st.Players) {
		p := st.Players[s.playerID]
		rec.Player = p.Name
		rec.GoldHeld = p.Gold
		rec.Items = p.Inventory
	}
	if rec.Outcome == "" {
		rec.Outcome = runlog.OutcomeDisconnected
		if st.Won {
			rec.Outcome = runlog.OutcomeGameOver
		}
	}
	return rec
}
