// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/hailam/chesscore/internal/engine"
)

// Environment variable names.
const (
	EnvDepth     = "CHESS_DEPTH"
	EnvTopMoves  = "CHESS_TOP_MOVES"
	EnvTopCutoff = "CHESS_TOP_CUTOFF"
	EnvWorkers   = "CHESS_WORKERS"
	EnvDataDir   = "CHESS_DATA_DIR"
	EnvLogLevel  = "CHESS_LOG_LEVEL"
)

type EngineConfig struct {
	Depth     int
	TopMoves  int
	TopCutoff float64
	Workers   int
}

type LogConfig struct {
	Level zerolog.Level
}

type Config struct {
	Engine  EngineConfig
	Log     LogConfig
	DataDir string // empty selects the platform data directory
}

// Load reads the configuration. Variables already set in the environment take
// precedence over those in the env files; with no files given an optional
// .env in the working directory is read.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	def := engine.DefaultOptions()
	cfg := &Config{
		Engine: EngineConfig{
			Depth:     def.Depth,
			TopMoves:  def.TopCount,
			TopCutoff: def.TopCutoff,
			Workers:   def.Workers,
		},
		Log: LogConfig{Level: zerolog.InfoLevel},
	}

	var err error
	if cfg.Engine.Depth, err = intVar(EnvDepth, cfg.Engine.Depth, 1); err != nil {
		return nil, err
	}
	if cfg.Engine.TopMoves, err = intVar(EnvTopMoves, cfg.Engine.TopMoves, 0); err != nil {
		return nil, err
	}
	if cfg.Engine.Workers, err = intVar(EnvWorkers, cfg.Engine.Workers, 1); err != nil {
		return nil, err
	}
	if v := os.Getenv(EnvTopCutoff); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("config: %s=%q: %w", EnvTopCutoff, v, err)
		}
		cfg.Engine.TopCutoff = f
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		lvl, err := zerolog.ParseLevel(strings.ToLower(v))
		if err != nil {
			return nil, fmt.Errorf("config: %s=%q: %w", EnvLogLevel, v, err)
		}
		cfg.Log.Level = lvl
	}

	cfg.DataDir = os.Getenv(EnvDataDir)

	return cfg, nil
}

func intVar(name string, def, min int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q: %w", name, v, err)
	}
	if n < min {
		return 0, fmt.Errorf("config: %s must be at least %d, got %d", name, min, n)
	}
	return n, nil
}

// EngineOptions returns the search options.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		Depth:     c.Engine.Depth,
		TopCount:  c.Engine.TopMoves,
		TopCutoff: c.Engine.TopCutoff,
		Workers:   c.Engine.Workers,
	}
}
