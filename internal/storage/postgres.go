package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresBackend guarda el documento en una fila JSONB
type PostgresBackend struct {
	db *sql.DB
	id string
}

func NewPostgresBackend(db *sql.DB, id string) *PostgresBackend {
	return &PostgresBackend{db: db, id: id}
}

// EnsureSchema crea la tabla si no existe
func (b *PostgresBackend) EnsureSchema(ctx context.Context) error {
	_, err := b.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS storefront_documents (
		id TEXT PRIMARY KEY,
		body JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	if err != nil {
		return fmt.Errorf("create storefront_documents: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Load(ctx context.Context) ([]byte, error) {
	var body string
	err := b.db.QueryRowContext(ctx,
		`SELECT body::text FROM storefront_documents WHERE id = $1`, b.id,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("select document %s: %w", b.id, err)
	}
	return []byte(body), nil
}

func (b *PostgresBackend) Save(ctx context.Context, data []byte) error {
	_, err := b.db.ExecContext(ctx,
		`INSERT INTO storefront_documents (id, body, updated_at)
		 VALUES ($1, $2::jsonb, now())
		 ON CONFLICT (id) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
		b.id, string(data),
	)
	if err != nil {
		return fmt.Errorf("upsert document %s: %w", b.id, err)
	}
	return nil
}
