// Package store holds the asset store backends the router can be bound to.
package store

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mtlprog/portfolio/internal/domain"
)

func notFound() *domain.AssetResponse {
	return plain(http.StatusNotFound, "Not Found")
}

func methodNotAllowed() *domain.AssetResponse {
	resp := plain(http.StatusMethodNotAllowed, "Method Not Allowed")
	resp.Header.Set("Allow", "GET, HEAD")
	return resp
}

func plain(status int, body string) *domain.AssetResponse {
	h := make(http.Header)
	h.Set("Content-Type", "text/plain; charset=utf-8")
	h.Set("Content-Length", strconv.Itoa(len(body)))
	return &domain.AssetResponse{
		Status:     status,
		StatusText: http.StatusText(status),
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func readOnly(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

func setLastModified(h http.Header, t time.Time) {
	if t.IsZero() {
		return
	}
	h.Set("Last-Modified", t.UTC().Format(http.TimeFormat))
}
