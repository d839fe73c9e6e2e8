package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/portfolio/internal/domain"
)

// AssetRepository handles database operations for site assets.
type AssetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository creates a new AssetRepository.
func NewAssetRepository(pool *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{pool: pool}
}

// Get retrieves an asset by key.
func (r *AssetRepository) Get(ctx context.Context, key string) (*domain.Asset, error) {
	query, args, err := psql.
		Select("key", "content_type", "body", "checksum", "size", "updated_at").
		From("assets").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Get query for asset %s: %w", key, err)
	}

	var asset domain.Asset
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&asset.Key,
		&asset.ContentType,
		&asset.Body,
		&asset.Checksum,
		&asset.Size,
		&asset.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, fmt.Errorf("query asset: %w", err)
	}

	return &asset, nil
}

// Checksums returns the stored checksum of every asset, keyed by asset key.
func (r *AssetRepository) Checksums(ctx context.Context) (map[string]string, error) {
	query, args, err := psql.
		Select("key", "checksum").
		From("assets").
		OrderBy("key ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query asset checksums: %w", err)
	}
	defer rows.Close()

	checksums := make(map[string]string)
	for rows.Next() {
		var key, checksum string
		if err := rows.Scan(&key, &checksum); err != nil {
			return nil, fmt.Errorf("scan asset checksum: %w", err)
		}
		checksums[key] = checksum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate asset checksums: %w", err)
	}

	return checksums, nil
}

// Upsert inserts the asset or replaces the stored one with the same key.
func (r *AssetRepository) Upsert(ctx context.Context, tx pgx.Tx, asset *domain.Asset) error {
	query, args, err := psql.
		Insert("assets").
		Columns("key", "content_type", "body", "checksum", "size").
		Values(asset.Key, asset.ContentType, asset.Body, asset.Checksum, asset.Size).
		Suffix(`ON CONFLICT (key) DO UPDATE SET
			content_type = EXCLUDED.content_type,
			body = EXCLUDED.body,
			checksum = EXCLUDED.checksum,
			size = EXCLUDED.size,
			updated_at = NOW()
		RETURNING updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&asset.UpdatedAt); err != nil {
		return fmt.Errorf("upsert asset %s: %w", asset.Key, err)
	}

	return nil
}

// Delete removes the assets with the given keys and returns how many were removed.
func (r *AssetRepository) Delete(ctx context.Context, tx pgx.Tx, keys []string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}

	query, args, err := psql.
		Delete("assets").
		Where(sq.Eq{"key": keys}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete assets: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Ping checks if the database is reachable.
func (r *AssetRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
