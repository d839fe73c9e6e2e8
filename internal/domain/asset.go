package domain

import (
	"io"
	"net/http"
	"net/url"
	"time"
)

// IndexKey is the storage key of the site's root document.
const IndexKey = "index.html"

// AssetRequest is a single lookup issued to an asset store.
type AssetRequest struct {
	Method string
	Key    string   // relative path, never starts with "/"
	URL    *url.URL // Key resolved against the inbound request URL
	Header http.Header
}

// AssetResponse is what an asset store returns for a lookup. Only Header may be
// modified after the store produced it.
type AssetResponse struct {
	Status     int
	StatusText string
	Header     http.Header
	Body       io.ReadCloser
}

// Close releases the response body, if any.
func (r *AssetResponse) Close() error {
	if r == nil || r.Body == nil {
		return nil
	}
	return r.Body.Close()
}

// Asset is a stored site file.
type Asset struct {
	Key         string
	ContentType string
	Body        []byte
	Checksum    string // hex sha256 of Body
	Size        int64
	UpdatedAt   time.Time
}
