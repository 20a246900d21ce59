package wardroberepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/outfit-advisor/internal/domain/attributes"
	"github.com/yanqian/outfit-advisor/internal/domain/wardrobe"
)

const schema = `
CREATE TABLE IF NOT EXISTS wardrobe_items (
	owner      TEXT        NOT NULL,
	id         TEXT        NOT NULL,
	position   INTEGER     NOT NULL,
	image_url  TEXT        NOT NULL DEFAULT '',
	source     TEXT        NOT NULL DEFAULT '',
	photo_key  TEXT        NOT NULL DEFAULT '',
	attributes JSONB       NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (owner, id)
);
ALTER TABLE wardrobe_items ADD COLUMN IF NOT EXISTS photo_key TEXT NOT NULL DEFAULT '';`

// PostgresRepository implements wardrobe.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the wardrobe table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, schema)
	return err
}

// List returns the owner's items in insertion order.
func (r *PostgresRepository) List(ctx context.Context, owner string) ([]wardrobe.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, image_url, source, photo_key, attributes, created_at
		FROM wardrobe_items
		WHERE owner = $1
		ORDER BY position
	`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []wardrobe.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Save replaces the owner's collection in one transaction.
func (r *PostgresRepository) Save(ctx context.Context, owner string, items []wardrobe.Item) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM wardrobe_items WHERE owner = $1`, owner); err != nil {
		return err
	}
	batch := &pgx.Batch{}
	for i, item := range items {
		attrs, err := json.Marshal(item.Attributes)
		if err != nil {
			return fmt.Errorf("encode attributes for %s: %w", item.ID, err)
		}
		batch.Queue(`
			INSERT INTO wardrobe_items (owner, id, position, image_url, source, photo_key, attributes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, owner, item.ID, i, item.ImageURL, string(item.Source), item.PhotoKey, attrs, item.CreatedAt)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (wardrobe.Item, error) {
	var (
		item      wardrobe.Item
		source    string
		rawAttrs  []byte
		createdAt time.Time
	)
	if err := row.Scan(&item.ID, &item.ImageURL, &source, &item.PhotoKey, &rawAttrs, &createdAt); err != nil {
		return wardrobe.Item{}, err
	}
	var attrs attributes.ClothingAttributes
	if err := json.Unmarshal(rawAttrs, &attrs); err != nil {
		return wardrobe.Item{}, fmt.Errorf("decode attributes for %s: %w", item.ID, err)
	}
	item.Source = wardrobe.Source(source)
	item.Attributes = attributes.Normalize(attrs)
	item.CreatedAt = createdAt.UTC()
	return item, nil
}

var _ wardrobe.Repository = (*PostgresRepository)(nil)
