package store_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/portfolio/internal/domain"
	"github.com/mtlprog/portfolio/internal/store"
)

type memoryAssets struct {
	assets  map[string]*domain.Asset
	err     error
	pingErr error
}

func (m *memoryAssets) Get(_ context.Context, key string) (*domain.Asset, error) {
	if m.err != nil {
		return nil, m.err
	}
	asset, ok := m.assets[key]
	if !ok {
		return nil, domain.ErrAssetNotFound
	}
	return asset, nil
}

func (m *memoryAssets) Ping(_ context.Context) error {
	return m.pingErr
}

func newMemoryAssets() *memoryAssets {
	return &memoryAssets{assets: map[string]*domain.Asset{
		"index.html": {
			Key:         "index.html",
			ContentType: "text/html; charset=utf-8",
			Body:        []byte("<html></html>"),
			Checksum:    "abc123",
			UpdatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		},
		"raw.bin": {Key: "raw.bin", Body: []byte{1, 2, 3}},
	}}
}

func dbFetch(t *testing.T, s *store.DBStore, method, key string, header http.Header) *domain.AssetResponse {
	t.Helper()
	resp, err := s.Fetch(context.Background(), &domain.AssetRequest{Method: method, Key: key, Header: header})
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Close() })
	return resp
}

func TestDBStore_Fetch(t *testing.T) {
	s := store.NewDBStore(newMemoryAssets())

	resp := dbFetch(t, s, http.MethodGet, "index.html", http.Header{})

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, `"abc123"`, resp.Header.Get("ETag"))
	assert.Equal(t, "13", resp.Header.Get("Content-Length"))
	assert.Equal(t, "Wed, 01 May 2024 12:00:00 GMT", resp.Header.Get("Last-Modified"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(body))
}

func TestDBStore_NoContentTypeStored(t *testing.T) {
	s := store.NewDBStore(newMemoryAssets())

	resp := dbFetch(t, s, http.MethodGet, "raw.bin", nil)

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Empty(t, resp.Header.Get("Content-Type"))
	assert.Empty(t, resp.Header.Get("ETag"))
}

func TestDBStore_NotModified(t *testing.T) {
	s := store.NewDBStore(newMemoryAssets())

	for _, inm := range []string{`"abc123"`, `W/"abc123"`, `"other", "abc123"`, "*"} {
		resp := dbFetch(t, s, http.MethodGet, "index.html", http.Header{"If-None-Match": {inm}})
		assert.Equal(t, http.StatusNotModified, resp.Status, inm)
		assert.Nil(t, resp.Body, inm)
	}

	resp := dbFetch(t, s, http.MethodGet, "index.html", http.Header{"If-None-Match": {`"stale"`}})
	assert.Equal(t, http.StatusOK, resp.Status)
}

func TestDBStore_NotFound(t *testing.T) {
	s := store.NewDBStore(newMemoryAssets())

	resp := dbFetch(t, s, http.MethodGet, "missing.js", nil)

	assert.Equal(t, http.StatusNotFound, resp.Status)
}

func TestDBStore_MethodNotAllowed(t *testing.T) {
	s := store.NewDBStore(newMemoryAssets())

	resp := dbFetch(t, s, http.MethodDelete, "index.html", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, resp.Status)
}

func TestDBStore_ErrorsPropagate(t *testing.T) {
	assets := newMemoryAssets()
	assets.err = errors.New("connection reset")
	s := store.NewDBStore(assets)

	_, err := s.Fetch(context.Background(), &domain.AssetRequest{Method: http.MethodGet, Key: "index.html"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestDBStore_Health(t *testing.T) {
	assets := newMemoryAssets()
	s := store.NewDBStore(assets)
	assert.NoError(t, s.Health(context.Background()))

	assets.pingErr = errors.New("down")
	assert.Error(t, s.Health(context.Background()))
}
