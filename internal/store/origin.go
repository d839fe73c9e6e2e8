package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/mtlprog/portfolio/internal/domain"
)

// DefaultOriginTimeout bounds a single origin lookup.
const DefaultOriginTimeout = 15 * time.Second

// hopHeaders are not forwarded to the origin.
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// OriginStore forwards lookups to an HTTP origin such as a public bucket or CDN.
type OriginStore struct {
	base   *url.URL
	client *http.Client
}

// NewOriginStore creates an OriginStore for origin. A nil client gets a
// default one with DefaultOriginTimeout.
func NewOriginStore(origin string, client *http.Client) (*OriginStore, error) {
	base, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse origin url: %w", err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("origin url %q must be an absolute http(s) url", origin)
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultOriginTimeout}
	}
	return &OriginStore{base: base, client: client}, nil
}

// Fetch requests <origin>/<key> with the client's method and headers.
func (s *OriginStore) Fetch(ctx context.Context, req *domain.AssetRequest) (*domain.AssetResponse, error) {
	target := s.base.JoinPath(req.Key)

	originReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build origin request")
	}
	if req.Header != nil {
		originReq.Header = req.Header.Clone()
	}
	for _, name := range hopHeaders {
		originReq.Header.Del(name)
	}

	resp, err := s.client.Do(originReq)
	if err != nil {
		return nil, errors.Wrapf(err, "request origin %s", target.Redacted())
	}

	return &domain.AssetResponse{
		Status:     resp.StatusCode,
		StatusText: statusText(resp),
		Header:     resp.Header,
		Body:       resp.Body,
	}, nil
}

// Health checks that the origin answers for the root document without a
// server error.
func (s *OriginStore) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.base.JoinPath(domain.IndexKey).String(), nil)
	if err != nil {
		return errors.Wrap(err, "build origin health request")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "origin health request")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return errors.Errorf("origin health: status %d", resp.StatusCode)
	}
	return nil
}

// statusText strips the numeric code from resp.Status ("200 OK" -> "OK").
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}
