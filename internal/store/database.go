package store

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/mtlprog/portfolio/internal/domain"
)

// AssetReader is the read side of the asset repository.
type AssetReader interface {
	Get(ctx context.Context, key string) (*domain.Asset, error)
	Ping(ctx context.Context) error
}

// DBStore serves assets stored in PostgreSQL.
type DBStore struct {
	assets AssetReader
}

// NewDBStore creates a new DBStore.
func NewDBStore(assets AssetReader) *DBStore {
	return &DBStore{assets: assets}
}

// Fetch loads req.Key from the database.
func (s *DBStore) Fetch(ctx context.Context, req *domain.AssetRequest) (*domain.AssetResponse, error) {
	if !readOnly(req.Method) {
		return methodNotAllowed(), nil
	}

	asset, err := s.assets.Get(ctx, req.Key)
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			return notFound(), nil
		}
		return nil, errors.Wrapf(err, "load asset %s", req.Key)
	}

	h := make(http.Header)
	if asset.ContentType != "" {
		h.Set("Content-Type", asset.ContentType)
	}
	setLastModified(h, asset.UpdatedAt)

	etag := ""
	if asset.Checksum != "" {
		etag = `"` + asset.Checksum + `"`
		h.Set("ETag", etag)
	}

	if etag != "" && etagMatch(req.Header.Get("If-None-Match"), etag) {
		return &domain.AssetResponse{
			Status:     http.StatusNotModified,
			StatusText: http.StatusText(http.StatusNotModified),
			Header:     h,
		}, nil
	}

	h.Set("Content-Length", strconv.Itoa(len(asset.Body)))
	return &domain.AssetResponse{
		Status:     http.StatusOK,
		StatusText: http.StatusText(http.StatusOK),
		Header:     h,
		Body:       io.NopCloser(bytes.NewReader(asset.Body)),
	}, nil
}

// Health pings the database.
func (s *DBStore) Health(ctx context.Context) error {
	return s.assets.Ping(ctx)
}

func etagMatch(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
