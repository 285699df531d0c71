// Package assets embeds the built-in dungeon maps.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"dungeon-of-doom/internal/gamemap"
)

//go:embed maps/*.map
var mapFS embed.FS

// DefaultMap is used when the server is started without a map.
const DefaultMap = "default"

// MapNames lists the built-in maps.
func MapNames() []string {
	entries, err := fs.ReadDir(mapFS, "maps")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".map"))
	}
	sort.Strings(names)
	return names
}

// LoadMap parses the built-in map called name.
func LoadMap(name string) (*gamemap.GameMap, error) {
	f, err := mapFS.Open(path.Join("maps", name+".map"))
	if err != nil {
		return nil, fmt.Errorf("built-in map %q: %w", name, err)
	}
	defer f.Close()
	m, err := gamemap.Load(f)
	if err != nil {
		return nil, fmt.Errorf("built-in map %q: %w", name, err)
	}
	return m, nil
}
