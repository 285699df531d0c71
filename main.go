// Local play: one Dungeon of Doom session over stdin and stdout, with no
// network listener. Type HELLO, LOOK, MOVE N and friends at the prompt.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"dungeon-of-doom/assets"
	"dungeon-of-doom/internal/game"
	"dungeon-of-doom/internal/gamemap"
	"dungeon-of-doom/internal/mud"
	"dungeon-of-doom/internal/transport"
)

func main() {
	mapName := flag.String("map", assets.DefaultMap, "built-in map name or map file path")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	gmap, err := assets.LoadMap(*mapName)
	if err != nil {
		gmap, err = gamemap.LoadFile(*mapName)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	g, err := game.New(gmap, game.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := mud.NewServer(g, logger, nil)
	if err := srv.Serve(ctx, transport.NewLineConn(os.Stdin, os.Stdout, nil, "local")); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
