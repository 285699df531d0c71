package mud

import (
	"strings"
	"testing"

	"dungeon-of-doom/internal/gamemap"
)

func TestParseCommand(t *testing.T) {
	cases := []struct {
		line string
		want Command
	}{
		{"HELLO Dungeon Master", Command{Kind: CmdHello, Arg: "Dungeon Master"}},
		{"LOOK", Command{Kind: CmdLook}},
		{"look\r", Command{Kind: CmdLook}},
		{"MOVE N", Command{Kind: CmdMove, Dir: gamemap.North}},
		{"MOVE w", Command{Kind: CmdMove, Dir: gamemap.West}},
		{"ATTACK S", Command{Kind: CmdAttack, Dir: gamemap.South}},
		{"MOVE\tE", Command{Kind: CmdMove, Dir: gamemap.East}},
		{"SHOUT\tgo  team", Command{Kind: CmdShout, Arg: "go  team"}},
		{"PICKUP", Command{Kind: CmdPickup}},
		{"SHOUT hello  there", Command{Kind: CmdShout, Arg: "hello  there"}},
		{"ENDTURN", Command{Kind: CmdEndTurn}},
		{"SETPLAYERPOS 3 1", Command{Kind: CmdSetPlayerPos, Loc: gamemap.Location{Row: 1, Col: 3}}},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			got, err := ParseCommand(tc.line)
			if err != nil {
				t.Fatalf("ParseCommand: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"", "invalid command"},
		{"DANCE", "invalid command"},
		{"HELLO", "HELLO needs an argument"},
		{"LOOK around", "LOOK does not take an argument"},
		{"PICKUP all", "PICKUP does not take an argument"},
		{"ENDTURN now", "ENDTURN does not take an argument"},
		{"MOVE", "MOVE needs a direction"},
		{"ATTACK", "ATTACK needs a direction"},
		{"MOVE NE", "invalid direction"},
		{"SHOUT", "need something to shout"},
		{"SETPLAYERPOS", "need a position"},
		{"SETPLAYERPOS 1", "need two co-ordinates"},
		{"SETPLAYERPOS 1 2 3", "need two co-ordinates"},
		{"SETPLAYERPOS a b", "co-ordinates must be integers"},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			_, err := ParseCommand(tc.line)
			if err == nil {
				t.Fatal("expected an error")
			}
			if err.Error() != tc.want {
				t.Errorf("err = %q, want %q", err, tc.want)
			}
		})
	}
}

func TestCommandKindString(t *testing.T) {
	for verb, kind := range verbs {
		if kind.String() != verb {
			t.Errorf("%d.String() = %q, want %q", kind, kind.String(), verb)
		}
	}
	if got := CommandKind(200).String(); got != "UNKNOWN" {
		t.Errorf("out of range kind = %q", got)
	}
}

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"plain", "Bob", "Bob"},
		{"punctuation kept", "Sir Bob (the 2nd): #1!", "Sir Bob (the 2nd): #1!"},
		{"control stripped", "Bo\x07b\n", "Bob"},
		{"markup stripped", "<b>Bob</b>", "bBobb"},
		{"unicode stripped", "Bøb 🐉", "Bb"},
		{"capped", strings.Repeat("a", 50), strings.Repeat("a", MaxNameBytes)},
		{"only junk", "<<>>", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeName(tc.in); got != tc.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeShout(t *testing.T) {
	if got := SanitizeShout("hi\x1b[31m there\t"); got != "hi[31m there" {
		t.Errorf("control chars: got %q", got)
	}
	if got := SanitizeShout("héllo 🐉"); got != "héllo 🐉" {
		t.Errorf("unicode should survive: got %q", got)
	}
	long := strings.Repeat("ab", MaxChatWidth)
	got := SanitizeShout(long)
	if len(got) != MaxChatWidth || !strings.HasSuffix(got, "~") {
		t.Errorf("truncated to %d bytes (%q...)", len(got), got[:10])
	}
}
