package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/portfolio/internal/domain"
	"github.com/mtlprog/portfolio/internal/repository"
	"github.com/mtlprog/portfolio/internal/router"
)

// SyncResult summarizes a directory sync.
type SyncResult struct {
	Uploaded  int
	Unchanged int
	Deleted   int
}

// SyncService uploads a site directory into the assets table.
type SyncService struct {
	pool      *pgxpool.Pool
	assetRepo *repository.AssetRepository
	validator *Validator
}

// NewSyncService creates a new SyncService.
func NewSyncService(pool *pgxpool.Pool, assetRepo *repository.AssetRepository, validator *Validator) *SyncService {
	return &SyncService{
		pool:      pool,
		assetRepo: assetRepo,
		validator: validator,
	}
}

// SyncDir stores every file of fsys in one transaction. Files whose checksum
// did not change are skipped. With prune, stored keys missing from fsys are deleted.
func (s *SyncService) SyncDir(ctx context.Context, fsys fs.FS, prune bool) (*SyncResult, error) {
	assets, err := LoadAssets(fsys, s.validator)
	if err != nil {
		return nil, err
	}

	existing, err := s.assetRepo.Checksums(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stored checksums: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result := &SyncResult{}
	seen := make(map[string]bool, len(assets))
	for _, asset := range assets {
		seen[asset.Key] = true
		if existing[asset.Key] == asset.Checksum {
			result.Unchanged++
			continue
		}
		if err := s.assetRepo.Upsert(ctx, tx, asset); err != nil {
			return nil, err
		}
		result.Uploaded++
		slog.Debug("asset uploaded", "key", asset.Key, "size", asset.Size)
	}

	if prune {
		deleted, err := s.prune(ctx, tx, existing, seen)
		if err != nil {
			return nil, err
		}
		result.Deleted = deleted
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("assets synced",
		"uploaded", result.Uploaded,
		"unchanged", result.Unchanged,
		"deleted", result.Deleted,
	)

	return result, nil
}

func (s *SyncService) prune(ctx context.Context, tx pgx.Tx, existing map[string]string, seen map[string]bool) (int, error) {
	var stale []string
	for key := range existing {
		if !seen[key] {
			stale = append(stale, key)
		}
	}
	sort.Strings(stale)

	deleted, err := s.assetRepo.Delete(ctx, tx, stale)
	if err != nil {
		return 0, err
	}
	return int(deleted), nil
}

// LoadAssets reads every regular file of fsys into an Asset. Dot-files and
// dot-directories are skipped.
func LoadAssets(fsys fs.FS, validator *Validator) ([]*domain.Asset, error) {
	var assets []*domain.Asset

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != "." && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		body, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}

		sum := sha256.Sum256(body)
		asset := &domain.Asset{
			Key:         p,
			ContentType: storedContentType(p),
			Body:        body,
			Checksum:    hex.EncodeToString(sum[:]),
			Size:        int64(len(body)),
		}
		if err := validator.ValidateAsset(asset); err != nil {
			return err
		}

		assets = append(assets, asset)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk site directory: %w", err)
	}

	return assets, nil
}

// storedContentType prefers the router's table and falls back to the system
// MIME registry. An empty result leaves inference to the router.
func storedContentType(key string) string {
	if ct := router.ContentType(key); ct != router.DefaultContentType {
		return ct
	}
	return mime.TypeByExtension(path.Ext(key))
}
