package docstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// KVBackend stores each document as a row in a SQLite key-value table. It is
// the host-neutral counterpart of the file backend for installs without a
// writable per-user data directory.
type KVBackend struct {
	db *sql.DB
}

// NewKVBackend wraps an already-opened database (see OpenDB).
func NewKVBackend(db *sql.DB) *KVBackend {
	return &KVBackend{db: db}
}

func (b *KVBackend) Read(ctx context.Context, name string) ([]byte, error) {
	var body string
	err := b.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = ?`, name).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return []byte(body), nil
}

func (b *KVBackend) Write(ctx context.Context, name string, data []byte) error {
	_, err := b.db.ExecContext(ctx,
		`INSERT INTO documents (name, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		name, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (b *KVBackend) Delete(ctx context.Context, name string) error {
	_, err := b.db.ExecContext(ctx, `DELETE FROM documents WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}
