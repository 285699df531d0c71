// dod-server runs one Dungeon of Doom game and serves it over plain TCP,
// SSH and websocket. Build:
//
//	go build -o dod-server ./cmd/server
//
// Usage:
//
//	./dod-server [-map default|small|gen:<seed>|path/to/file.map] [-port 49155]
//	             [-ssh-port 2222] [-http-port 8080] [-turn-timeout 2m]
//
// Play with any line client:
//
//	nc localhost 49155
//	ssh -p 2222 localhost
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/sasha-s/go-deadlock"
	"golang.org/x/sync/errgroup"

	"dungeon-of-doom/assets"
	"dungeon-of-doom/internal/game"
	"dungeon-of-doom/internal/gamemap"
	"dungeon-of-doom/internal/generate"
	"dungeon-of-doom/internal/mud"
	"dungeon-of-doom/internal/runlog"
	internalssh "dungeon-of-doom/internal/ssh"
	"dungeon-of-doom/internal/system"
	"dungeon-of-doom/internal/transport"
)

type config struct {
	Map             string
	Bind            string
	Port            int
	SSHPort         int
	HTTPPort        int
	KeyFile         string
	FOV             string
	TurnTimeout     time.Duration
	RunLogDB        string
	RunLogJSONL     string
	LogLevel        string
	DeadlockTimeout time.Duration
	Seed            int64
}

func parseFlags(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("dod-server", flag.ContinueOnError)
	fs.StringVar(&cfg.Map, "map", assets.DefaultMap, "built-in map name, gen:<seed> for a generated map, or a map file path")
	fs.StringVar(&cfg.Bind, "bind", "", "address to listen on (all interfaces if empty)")
	fs.IntVar(&cfg.Port, "port", 49155, "TCP line-protocol port (0 disables)")
	fs.IntVar(&cfg.SSHPort, "ssh-port", 2222, "SSH port (0 disables)")
	fs.IntVar(&cfg.HTTPPort, "http-port", 8080, "HTTP port for /play websocket and /status (0 disables)")
	fs.StringVar(&cfg.KeyFile, "key", "server_host_key", "path to the PEM-encoded SSH host key (generated if absent)")
	fs.StringVar(&cfg.FOV, "fov", "diamond", "field of view shape: diamond or shadow")
	fs.DurationVar(&cfg.TurnTimeout, "turn-timeout", 0, "end a turn after this long without finishing (0 disables)")
	fs.StringVar(&cfg.RunLogDB, "runlog", "", "bbolt database for finished-run records")
	fs.StringVar(&cfg.RunLogJSONL, "runlog-jsonl", "", "JSON-lines file for finished-run records (\"default\" for the XDG data dir)")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "debug, info, warn or error")
	fs.DurationVar(&cfg.DeadlockTimeout, "deadlock-timeout", 30*time.Second, "report a lock held longer than this (0 disables detection)")
	fs.Int64Var(&cfg.Seed, "seed", 0, "random seed for start positions and combat (0 uses the clock)")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if fs.NArg() > 0 {
		return config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if _, err := parseShape(cfg.FOV); err != nil {
		return config{}, err
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	level, _ := parseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, logger *slog.Logger) error {
	configureDeadlock(cfg.DeadlockTimeout, logger)

	gmap, err := loadMap(cfg.Map)
	if err != nil {
		return err
	}
	shape, _ := parseShape(cfg.FOV)
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g, err := game.New(gmap,
		game.WithRand(rand.New(rand.NewSource(seed))),
		game.WithLogger(logger),
		game.WithShape(shape),
	)
	if err != nil {
		return err
	}
	logger.Info("game ready", "map", gmap.Name, "goal", gmap.Goal, "width", gmap.Width, "height", gmap.Height, "fov", cfg.FOV)

	if cfg.TurnTimeout > 0 {
		w := game.NewWatchdog(g, cfg.TurnTimeout)
		defer w.Stop()
	}

	sink, err := openRunLog(cfg, logger)
	if err != nil {
		return err
	}
	defer sink.Close()

	srv := mud.NewServer(g, logger, sink)
	eg, ctx := errgroup.WithContext(ctx)

	if cfg.Port > 0 {
		ln, err := net.Listen("tcp", net.JoinHostPort(cfg.Bind, strconv.Itoa(cfg.Port)))
		if err != nil {
			return err
		}
		eg.Go(func() error { return transport.ServeTCP(ctx, ln, srv, logger) })
	}

	if cfg.SSHPort > 0 {
		signer, err := internalssh.LoadOrCreateHostKey(cfg.KeyFile, logger)
		if err != nil {
			return err
		}
		ln, err := net.Listen("tcp", net.JoinHostPort(cfg.Bind, strconv.Itoa(cfg.SSHPort)))
		if err != nil {
			return err
		}
		sshSrv := internalssh.NewServer(signer, srv, logger)
		eg.Go(func() error { return internalssh.Serve(ctx, sshSrv, ln, logger) })
	}

	if cfg.HTTPPort > 0 {
		httpSrv := &http.Server{
			Addr:              net.JoinHostPort(cfg.Bind, strconv.Itoa(cfg.HTTPPort)),
			Handler:           transport.NewRouter(ctx, srv, func() any { return srv.Status() }, logger),
			ReadHeaderTimeout: 10 * time.Second,
		}
		eg.Go(func() error {
			logger.Info("http listener started", "addr", httpSrv.Addr)
			if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		eg.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpSrv.Shutdown(shutdownCtx)
		})
	}

	err = eg.Wait()
	logger.Info("shutting down")
	return err
}

// loadMap resolves the -map flag: gen:<seed>, a built-in map name, or a
// path to a map file.
func loadMap(src string) (*gamemap.GameMap, error) {
	if seedText, ok := strings.CutPrefix(src, "gen:"); ok {
		seed, err := strconv.ParseInt(seedText, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("map %q: seed must be an integer", src)
		}
		return generate.Generate(generate.DefaultConfig(seed))
	}
	for _, name := range assets.MapNames() {
		if name == src {
			return assets.LoadMap(name)
		}
	}
	return gamemap.LoadFile(src)
}

func parseShape(name string) (system.Shape, error) {
	switch name {
	case "diamond":
		return system.Diamond{}, nil
	case "shadow":
		return system.Shadowcast{}, nil
	}
	return nil, fmt.Errorf("unknown fov %q (want diamond or shadow)", name)
}

func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("bad log level %q: %w", name, err)
	}
	return level, nil
}

func openRunLog(cfg config, logger *slog.Logger) (runlog.Sink, error) {
	var sinks runlog.Multi
	if cfg.RunLogDB != "" {
		b, err := runlog.OpenBolt(cfg.RunLogDB)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, b)
		logger.Info("recording runs", "db", cfg.RunLogDB)
	}
	if path := cfg.RunLogJSONL; path != "" {
		if path == "default" {
			dir, err := runlog.DefaultDir()
			if err != nil {
				sinks.Close()
				return nil, err
			}
			path = filepath.Join(dir, "runs.jsonl")
		}
		j, err := runlog.OpenJSONL(path)
		if err != nil {
			sinks.Close()
			return nil, err
		}
		sinks = append(sinks, j)
		logger.Info("recording runs", "jsonl", path)
	}
	if len(sinks) == 0 {
		return runlog.Nop{}, nil
	}
	return sinks, nil
}

// configureDeadlock sets up lock-order and hold-time checking for the engine
// lock. A zero timeout turns detection off.
func configureDeadlock(timeout time.Duration, logger *slog.Logger) {
	if timeout <= 0 {
		deadlock.Opts.Disable = true
		return
	}
	deadlock.Opts.DeadlockTimeout = timeout
	deadlock.Opts.OnPotentialDeadlock = func() {
		logger.Error("potential deadlock detected; see report above")
		os.Exit(2)
	}
}
