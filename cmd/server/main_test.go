package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dungeon-of-doom/internal/runlog"
	"dungeon-of-doom/internal/system"
)

func TestParseFlagsDefaults(t *testing.T) {
	cfg, err := parseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 49155 || cfg.SSHPort != 2222 || cfg.Map != "default" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.TurnTimeout != 0 {
		t.Errorf("turn timeout on by default: %v", cfg.TurnTimeout)
	}
}

func TestParseFlags(t *testing.T) {
	cases := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"shadow fov", []string{"-fov", "shadow"}, false},
		{"bad fov", []string{"-fov", "cone"}, true},
		{"bad level", []string{"-log-level", "loud"}, true},
		{"debug level", []string{"-log-level", "debug"}, false},
		{"timeout", []string{"-turn-timeout", "90s"}, false},
		{"stray argument", []string{"extra"}, true},
		{"unknown flag", []string{"-nope"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseFlags(tc.args)
			if (err != nil) != tc.wantErr {
				t.Errorf("parseFlags(%v) err = %v, wantErr %v", tc.args, err, tc.wantErr)
			}
		})
	}
}

func TestParseFlagsTimeout(t *testing.T) {
	cfg, err := parseFlags([]string{"-turn-timeout", "90s", "-seed", "4"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TurnTimeout != 90*time.Second || cfg.Seed != 4 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestParseShape(t *testing.T) {
	s, err := parseShape("diamond")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(system.Diamond); !ok {
		t.Errorf("diamond -> %T", s)
	}
	s, err = parseShape("shadow")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(system.Shadowcast); !ok {
		t.Errorf("shadow -> %T", s)
	}
}

func TestLoadMap(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tiny.map")
	if err := os.WriteFile(file, []byte("name tiny\nwin 1\n####\n#GE#\n####\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name     string
		src      string
		wantName string
		wantErr  bool
	}{
		{"built-in", "small", "Very small labyrinth of doom", false},
		{"generated", "gen:42", "Generated dungeon 42", false},
		{"file", file, "tiny", false},
		{"bad seed", "gen:abc", "", true},
		{"missing file", filepath.Join(dir, "nope.map"), "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := loadMap(tc.src)
			if tc.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if m.Name != tc.wantName {
				t.Errorf("name = %q, want %q", m.Name, tc.wantName)
			}
		})
	}
}

func TestOpenRunLog(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sink, err := openRunLog(config{}, logger)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := sink.(runlog.Nop); !ok {
		t.Errorf("no paths -> %T, want runlog.Nop", sink)
	}

	dir := t.TempDir()
	cfg := config{
		RunLogDB:    filepath.Join(dir, "runs.db"),
		RunLogJSONL: filepath.Join(dir, "runs.jsonl"),
	}
	sink, err = openRunLog(cfg, logger)
	if err != nil {
		t.Fatal(err)
	}
	defer sink.Close()
	multi, ok := sink.(runlog.Multi)
	if !ok || len(multi) != 2 {
		t.Fatalf("sink = %#v", sink)
	}
	if err := sink.Write(runlog.Record{Player: "a"}); err != nil {
		t.Fatal(err)
	}
}
