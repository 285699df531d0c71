package game

// EventKind identifies an asynchronous notification pushed to one player.
type EventKind uint8

const (
	EventMessage    EventKind = iota // chat line: From, Text
	EventStartTurn                   // the player's turn has begun
	EventEndTurn                     // the player's turn is over
	EventHPChange                    // Delta hit points
	EventGoldChange                  // Delta gold
	EventChange                      // something in view changed; LOOK again
	EventWin
	EventLose
)

// Event is one notification. Only the fields relevant to Kind are set.
type Event struct {
	Kind  EventKind
	From  string
	Text  string
	Delta int
}

// Notifier receives events for one player. The engine calls it while holding
// its lock, so it must not block and must not call back into the Game.
type Notifier func(Event)

// ServerName is the sender shown on messages the engine itself produces.
const ServerName = "server"
