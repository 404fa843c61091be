package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists history entries as jsonb rows keyed by the
// composite document-stage key.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database and verifies it.
func Connect(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// EnsureSchema creates the backing table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS history_entries (
		     key        TEXT PRIMARY KEY,
		     entry      JSONB NOT NULL,
		     updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		 )`)
	if err != nil {
		return fmt.Errorf("failed to ensure history schema: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Store upserts an entry under key, fully replacing any prior entry.
func (s *PostgresStore) Store(ctx context.Context, key string, data any, source string) error {
	entry := Entry{Data: data, Metadata: newMetadata(source)}
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry %s: %w", key, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO history_entries (key, entry)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET entry = $2, updated_at = NOW()`,
		key, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to store entry %s: %w", key, err)
	}
	return nil
}

// Get retrieves the entry under key, or (nil, nil) when absent.
func (s *PostgresStore) Get(ctx context.Context, key string) (*Entry, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT entry FROM history_entries WHERE key = $1`, key,
	).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get entry %s: %w", key, err)
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entry %s: %w", key, err)
	}
	return &entry, nil
}

// Update shallow-merges fields into an existing entry's data, or stores the
// fields as a fresh entry when the key is absent.
func (s *PostgresStore) Update(ctx context.Context, key string, fields map[string]any, source string) error {
	existing, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if existing == nil {
		return s.Store(ctx, key, fields, source)
	}
	return s.Store(ctx, key, mergeFields(existing.Data, fields), source)
}

// History returns the metadata snapshots recorded for key; at most the
// latest snapshot is retained.
func (s *PostgresStore) History(ctx context.Context, key string) ([]Metadata, error) {
	entry, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return []Metadata{}, nil
	}
	return []Metadata{entry.Metadata}, nil
}
