package store

import (
	"context"
	"errors"
	"fmt"

	"kanban-cli/internal/metrics"
	"kanban-cli/internal/model"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
)

// StorageKey is the single key the whole board snapshot lives under.
const StorageKey = "kanban-board-data"

// Backend is a byte-oriented key-value store. Get reports ok=false when the key
// has never been written.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Store loads and saves whole-board snapshots. Load and Save never return
// errors to the caller: failures are logged and the in-memory board stays the
// source of truth.
type Store struct {
	backend Backend
	key     string
	log     zerolog.Logger
}

func New(b Backend, log zerolog.Logger) *Store {
	return &Store{backend: b, key: StorageKey, log: log.With().Str("component", "store").Logger()}
}

func (s *Store) Backend() Backend { return s.backend }

func (s *Store) Close() error {
	if s == nil || s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

// Load returns the persisted board, or ok=false when nothing usable is stored.
// Missing data, backend errors and undecodable or structurally broken records
// all look the same to the caller. Duplicate card ids are only logged.
func (s *Store) Load(ctx context.Context) (*model.Board, bool) {
	raw, ok, err := s.backend.Get(ctx, s.key)
	if err != nil {
		metrics.PersistFailure("load")
		s.log.Warn().Err(err).Str("key", s.key).Msg("load board failed")
		return nil, false
	}
	if !ok || len(raw) == 0 {
		s.log.Debug().Str("key", s.key).Msg("no stored board")
		return nil, false
	}
	b, err := Decode(raw)
	if err != nil {
		metrics.PersistFailure("decode")
		s.log.Warn().Err(err).Str("key", s.key).Msg("stored board unreadable, ignoring")
		return nil, false
	}
	if dups := b.DuplicateCardIDs(); len(dups) > 0 {
		// Same-millisecond timestamp ids can collide; the board is still usable.
		s.log.Warn().Strs("cards", dups).Str("key", s.key).Msg("stored board has duplicate card ids")
	}
	return b, true
}

// LoadOrDefault is the startup path: stored board if present, seed otherwise.
func (s *Store) LoadOrDefault(ctx context.Context) model.Board {
	if b, ok := s.Load(ctx); ok {
		return *b
	}
	return DefaultBoard()
}

// Save writes the full snapshot, logging and swallowing any failure.
func (s *Store) Save(ctx context.Context, b model.Board) {
	if err := s.Write(ctx, b); err != nil {
		metrics.PersistFailure("save")
		s.log.Error().Err(err).Str("key", s.key).Msg("save board failed")
	}
}

// Write is the strict variant of Save used by scriptable commands.
func (s *Store) Write(ctx context.Context, b model.Board) error {
	raw, err := Encode(b)
	if err != nil {
		return err
	}
	return s.backend.Set(ctx, s.key, raw)
}

func Encode(b model.Board) ([]byte, error) {
	raw, err := sonic.ConfigStd.Marshal(b.Clone())
	if err != nil {
		return nil, fmt.Errorf("encode board: %w", err)
	}
	return raw, nil
}

// Decode parses a stored record. Columns without cards are accepted, and so
// are duplicate card ids; a record without columns or with empty or duplicate
// column ids is rejected.
func Decode(raw []byte) (*model.Board, error) {
	var b model.Board
	if err := sonic.ConfigStd.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("decode board: %w", err)
	}
	if b.Columns == nil {
		return nil, errors.New("decode board: missing columns")
	}
	b.Normalize()
	if err := b.ValidateColumns(); err != nil {
		return nil, fmt.Errorf("decode board: %w", err)
	}
	return &b, nil
}
