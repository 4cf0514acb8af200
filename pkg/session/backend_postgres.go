package session

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createSessionsTable = `
CREATE TABLE IF NOT EXISTS web_sessions (
    app         TEXT        NOT NULL,
    session_id  TEXT        NOT NULL,
    key         TEXT        NOT NULL,
    value       TEXT        NOT NULL,
    expires_at  TIMESTAMPTZ,
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (app, session_id, key)
)`

// PostgresBackend хранит значения сессий в таблице web_sessions, по строке на ключ.
type PostgresBackend struct {
	pool *pgxpool.Pool
	app  string
}

func NewPostgresBackend(pool *pgxpool.Pool, app string) *PostgresBackend {
	return &PostgresBackend{pool: pool, app: app}
}

// EnsureSchema создает таблицу, если её нет.
func (b *PostgresBackend) EnsureSchema(ctx context.Context) error {
	if _, err := b.pool.Exec(ctx, createSessionsTable); err != nil {
		return fmt.Errorf("failed to create web_sessions table: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Load(ctx context.Context, sessionID string) (map[string]string, error) {
	const query = `
        SELECT key, value FROM web_sessions
        WHERE app = $1 AND session_id = $2 AND (expires_at IS NULL OR expires_at > now())`

	rows, err := b.pool.Query(ctx, query, b.app, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}
	return values, nil
}

func (b *PostgresBackend) Save(ctx context.Context, sessionID string, values map[string]string, ttl time.Duration) error {
	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}

	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM web_sessions WHERE app = $1 AND session_id = $2`, b.app, sessionID)
	for key, value := range values {
		batch.Queue(
			`INSERT INTO web_sessions (app, session_id, key, value, expires_at) VALUES ($1, $2, $3, $4, $5)`,
			b.app, sessionID, key, value, expiresAt,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return tx.Commit(ctx)
}

func (b *PostgresBackend) Delete(ctx context.Context, sessionID string) error {
	_, err := b.pool.Exec(ctx, `DELETE FROM web_sessions WHERE app = $1 AND session_id = $2`, b.app, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
