package store_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/portfolio/internal/domain"
	"github.com/mtlprog/portfolio/internal/store"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"index.html":    {Data: []byte("<html></html>"), ModTime: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
		"js/script.js":  {Data: []byte("let a = 1")},
		"images/me.png": {Data: []byte("png")},
	}
}

func fetch(t *testing.T, s *store.FSStore, method, key string) *domain.AssetResponse {
	t.Helper()
	resp, err := s.Fetch(context.Background(), &domain.AssetRequest{Method: method, Key: key, Header: http.Header{}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Close() })
	return resp
}

func TestFSStore_Fetch(t *testing.T) {
	s := store.NewFSStore(testFS())

	resp := fetch(t, s, http.MethodGet, "index.html")

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "13", resp.Header.Get("Content-Length"))
	assert.Equal(t, "Wed, 01 May 2024 12:00:00 GMT", resp.Header.Get("Last-Modified"))
	assert.Empty(t, resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(body))
}

func TestFSStore_NestedKey(t *testing.T) {
	s := store.NewFSStore(testFS())

	resp := fetch(t, s, http.MethodHead, "js/script.js")

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Empty(t, resp.Header.Get("Last-Modified"))
}

func TestFSStore_NotFound(t *testing.T) {
	s := store.NewFSStore(testFS())

	for _, key := range []string{"missing.css", "js", "../etc/passwd", "/index.html", ""} {
		resp := fetch(t, s, http.MethodGet, key)
		assert.Equal(t, http.StatusNotFound, resp.Status, key)
	}
}

func TestFSStore_MethodNotAllowed(t *testing.T) {
	s := store.NewFSStore(testFS())

	resp := fetch(t, s, http.MethodPost, "index.html")

	assert.Equal(t, http.StatusMethodNotAllowed, resp.Status)
	assert.Equal(t, "GET, HEAD", resp.Header.Get("Allow"))
}

func TestFSStore_Health(t *testing.T) {
	assert.NoError(t, store.NewFSStore(testFS()).Health(context.Background()))
	assert.Error(t, store.NewFSStore(fstest.MapFS{}).Health(context.Background()))
}
