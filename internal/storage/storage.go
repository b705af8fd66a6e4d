package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

const keyBestRush = "rush/best"

// ErrNotFound is returned when no record has been stored yet.
var ErrNotFound = errors.New("storage: not found")

// RushRecord is a puzzle-rush result.
type RushRecord struct {
	Score   int           `json:"score"`
	Elapsed time.Duration `json:"elapsed"`
	At      time.Time     `json:"at"`
}

// Beats reports whether r is a better result than other: a higher score, or
// the same score reached in less time.
func (r RushRecord) Beats(other RushRecord) bool {
	if r.Score != other.Score {
		return r.Score > other.Score
	}
	return r.Elapsed < other.Elapsed
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db  *badger.DB
	log zerolog.Logger
	now func() time.Time
}

// Option customizes a Storage.
type Option func(*Storage)

// WithLogger sets the logger used to report new records.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Storage) {
		s.log = l
	}
}

// NewStorage opens the store in the default data directory.
func NewStorage(opts ...Option) (*Storage, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return nil, fmt.Errorf("storage: data dir: %w", err)
	}
	return Open(dataDir, opts...)
}

// Open opens the store under dataDir/db.
func Open(dataDir string, opts ...Option) (*Storage, error) {
	dbDir, err := databaseDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	bopts := badger.DefaultOptions(dbDir)
	bopts.Logger = nil

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", dbDir, err)
	}

	s := &Storage{db: db, log: zerolog.Nop(), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BestRush returns the stored high score, or ErrNotFound.
func (s *Storage) BestRush() (RushRecord, error) {
	var rec RushRecord
	err := s.db.View(func(txn *badger.Txn) error {
		return get(txn, keyBestRush, &rec)
	})
	return rec, err
}

// SubmitRush records a finished rush. It returns true and the new record when
// the result beats the stored one; otherwise the stored record is returned
// unchanged. A negative score or elapsed time is rejected.
func (s *Storage) SubmitRush(score int, elapsed time.Duration) (bool, RushRecord, error) {
	if score < 0 || elapsed < 0 {
		return false, RushRecord{}, fmt.Errorf("storage: invalid rush result %d in %v", score, elapsed)
	}
	rec := RushRecord{Score: score, Elapsed: elapsed, At: s.now()}

	var (
		isNew bool
		best  RushRecord
	)
	err := s.db.Update(func(txn *badger.Txn) error {
		err := get(txn, keyBestRush, &best)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if err == nil && !rec.Beats(best) {
			return nil
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		isNew, best = true, rec
		return txn.Set([]byte(keyBestRush), data)
	})
	if err != nil {
		return false, RushRecord{}, err
	}

	if isNew {
		s.log.Info().Int("score", score).Dur("elapsed", elapsed).Msg("new puzzle rush record")
	}
	return isNew, best, nil
}

func get(txn *badger.Txn, key string, v any) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}
