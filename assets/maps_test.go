package assets

import "testing"

func TestBuiltInMapsLoad(t *testing.T) {
	names := MapNames()
	if len(names) == 0 {
		t.Fatal("no built-in maps")
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			m, err := LoadMap(name)
			if err != nil {
				t.Fatal(err)
			}
			if m.Name == "" {
				t.Error("map has no name")
			}
			if m.RemainingGold() < m.Goal {
				t.Errorf("gold %d below goal %d", m.RemainingGold(), m.Goal)
			}
		})
	}
}

func TestDefaultMapExists(t *testing.T) {
	if _, err := LoadMap(DefaultMap); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMap("no-such-map"); err == nil {
		t.Error("loaded a map that does not exist")
	}
}
