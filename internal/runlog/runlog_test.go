package runlog

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func sampleRecord(player string) Record {
	return Record{
		Timestamp:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Player:      player,
		Map:         "Very small labyrinth of doom",
		Outcome:     OutcomeWon,
		TurnsPlayed: 4,
		GoldEarned:  2,
		Items:       []string{"sword"},
	}
}

func TestJSONLAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "runs.jsonl")
	sink, err := OpenJSONL(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"alice", "bob"} {
		if err := sink.Write(sampleRecord(name)); err != nil {
			t.Fatal(err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("line %q: %v", sc.Text(), err)
		}
		names = append(names, rec.Player)
	}
	if len(names) != 2 || names[0] != "alice" || names[1] != "bob" {
		t.Errorf("players = %v", names)
	}
}

func TestBoltStoresInOrder(t *testing.T) {
	sink, err := OpenBolt(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer sink.Close()

	players := []string{"a", "b", "c"}
	for _, p := range players {
		if err := sink.Write(sampleRecord(p)); err != nil {
			t.Fatal(err)
		}
	}
	recs, err := sink.Records()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != len(players) {
		t.Fatalf("got %d records, want %d", len(recs), len(players))
	}
	for i, rec := range recs {
		if rec.Player != players[i] {
			t.Errorf("record %d player = %q, want %q", i, rec.Player, players[i])
		}
		if _, err := uuid.Parse(rec.ID); err != nil {
			t.Errorf("record %d id %q: %v", i, rec.ID, err)
		}
		if !rec.Timestamp.Equal(sampleRecord("").Timestamp) || len(rec.Items) != 1 {
			t.Errorf("record %d decoded as %+v", i, rec)
		}
	}
}

func TestBoltKeepsGivenID(t *testing.T) {
	sink, err := OpenBolt(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer sink.Close()

	rec := sampleRecord("a")
	rec.ID = uuid.NewString()
	if err := sink.Write(rec); err != nil {
		t.Fatal(err)
	}
	recs, err := sink.Records()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].ID != rec.ID {
		t.Errorf("records = %+v", recs)
	}

	rec.ID = "not-a-uuid"
	if err := sink.Write(rec); err == nil {
		t.Error("accepted a malformed id")
	}
}

type failingSink struct{ err error }

func (f failingSink) Write(Record) error { return f.err }
func (f failingSink) Close() error       { return nil }

func TestMultiTriesEverySink(t *testing.T) {
	boom := errors.New("boom")
	var got []Record
	rec := recordingSink(func(r Record) { got = append(got, r) })

	m := Multi{failingSink{boom}, rec, Nop{}}
	err := m.Write(sampleRecord("a"))
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if len(got) != 1 {
		t.Errorf("second sink saw %d records, want 1", len(got))
	}
}

type recordingSink func(Record)

func (f recordingSink) Write(r Record) error { f(r); return nil }
func (f recordingSink) Close() error         { return nil }
