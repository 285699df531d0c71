package mud

import (
	"fmt"

	"dungeon-of-doom/internal/game"
)

// Server-to-client words.
const (
	msgGold      = "GOLD"
	msgHello     = "HELLO"
	msgLookReply = "LOOKREPLY"
	msgSuccess   = "SUCCESS"
	msgFail      = "FAIL"
	msgFrom      = "FROM"
	msgMessage   = "MESSAGE"
	msgStartTurn = "STARTTURN"
	msgEndTurn   = "ENDTURN"
	msgHitMod    = "HITMOD"
	msgTreasure  = "TREASUREMOD"
	msgChange    = "CHANGE"
	msgWin       = "WIN"
	msgLose      = "LOSE"
)

// eventLines renders one engine event as protocol lines.
func eventLines(ev game.Event) []string {
	switch ev.Kind {
	case game.EventMessage:
		return []string{msgFrom + " " + ev.From, msgMessage + " " + ev.Text}
	case game.EventStartTurn:
		return []string{msgStartTurn}
	case game.EventEndTurn:
		return []string{msgEndTurn}
	case game.EventHPChange:
		return []string{fmt.Sprintf("%s %d", msgHitMod, ev.Delta)}
	case game.EventGoldChange:
		return []string{fmt.Sprintf("%s %d", msgTreasure, ev.Delta)}
	case game.EventChange:
		return []string{msgChange}
	case game.EventWin:
		return []string{msgWin}
	case game.EventLose:
		return []string{msgLose}
	}
	return nil
}

func failLine(err error) string {
	return msgFail + " " + err.Error()
}
