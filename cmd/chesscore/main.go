package main

import (
	"flag"
	"os"
	"runtime/pprof"

	"github.com/rs/zerolog"

	"github.com/hailam/chesscore/internal/config"
	"github.com/hailam/chesscore/internal/storage"
	"github.com/hailam/chesscore/internal/uci"
)

var (
	depth      = flag.Int("depth", 0, "search depth in plies (overrides CHESS_DEPTH)")
	workers    = flag.Int("workers", 0, "root moves searched concurrently (overrides CHESS_WORKERS)")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	log = log.Level(cfg.Log.Level)

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("path", profilePath).Msg("CPU profiling enabled")
	}

	opts := cfg.EngineOptions()
	if *depth > 0 {
		opts.Depth = *depth
	}
	if *workers > 0 {
		opts.Workers = *workers
	}
	if err := opts.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid engine options")
	}

	uciOpts := []uci.Option{uci.WithLogger(log)}
	store, err := openStore(cfg.DataDir, log)
	if err != nil {
		log.Warn().Err(err).Msg("puzzle rush records disabled")
	} else {
		defer store.Close()
		uciOpts = append(uciOpts, uci.WithStore(store))
	}

	log.Debug().
		Int("depth", opts.Depth).
		Int("workers", opts.Workers).
		Str("data_dir", cfg.DataDir).
		Msg("starting")

	protocol := uci.New(opts, os.Stdin, os.Stdout, uciOpts...)
	if err := protocol.Run(); err != nil {
		log.Error().Err(err).Msg("reading commands")
	}
}

// openStore opens the record store in dataDir, or in the platform data
// directory when dataDir is empty.
func openStore(dataDir string, log zerolog.Logger) (*storage.Storage, error) {
	if dataDir == "" {
		return storage.NewStorage(storage.WithLogger(log))
	}
	return storage.Open(dataDir, storage.WithLogger(log))
}
