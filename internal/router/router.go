// Package router decides what a single asset request gets back: it normalizes
// the path, looks the key up in an asset store, falls back to index.html for
// unmatched routes and rewrites the response headers for crawlers and
// embedding sites.
package router

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rcrowley/go-metrics"

	"github.com/mtlprog/portfolio/internal/domain"
)

// Store is the key-addressed content store the router reads from.
// A missing key must be reported as a 404 response, not as an error.
type Store interface {
	Fetch(ctx context.Context, req *domain.AssetRequest) (*domain.AssetResponse, error)
}

// Options toggles the optional behaviours of the router.
type Options struct {
	EnablePreflight      bool // answer OPTIONS with 204 and CORS preflight headers
	EnableRobotsTxt      bool // serve a fixed /robots.txt
	InjectCORSHeaders    bool // add CORS headers to every store response
	StripSecurityHeaders bool // drop X-Frame-Options and Content-Security-Policy
	BufferBody           bool // read the body into memory and set Content-Length
}

// DefaultOptions enables every feature and streams bodies.
func DefaultOptions() Options {
	return Options{
		EnablePreflight:      true,
		EnableRobotsTxt:      true,
		InjectCORSHeaders:    true,
		StripSecurityHeaders: true,
	}
}

// Router serves assets from a Store.
type Router struct {
	store   Store
	opts    Options
	metrics routerMetrics
}

type routerMetrics struct {
	requests  metrics.Counter
	preflight metrics.Counter
	robots    metrics.Counter
	fallbacks metrics.Counter
	errors    metrics.Counter
	fetch     metrics.Timer
}

func newRouterMetrics(registry metrics.Registry) routerMetrics {
	if registry == nil {
		registry = metrics.NewRegistry()
	}
	return routerMetrics{
		requests:  metrics.GetOrRegisterCounter("router.requests", registry),
		preflight: metrics.GetOrRegisterCounter("router.preflight", registry),
		robots:    metrics.GetOrRegisterCounter("router.robots", registry),
		fallbacks: metrics.GetOrRegisterCounter("router.fallbacks", registry),
		errors:    metrics.GetOrRegisterCounter("router.errors", registry),
		fetch:     metrics.GetOrRegisterTimer("router.fetch", registry),
	}
}

// New creates a Router. A nil store is allowed: every asset request then gets
// the "not configured" 500 response. A nil registry disables metric export.
func New(store Store, opts Options, registry metrics.Registry) *Router {
	return &Router{
		store:   store,
		opts:    opts,
		metrics: newRouterMetrics(registry),
	}
}

// Handle produces the response for r. It never fails: errors and panics are
// turned into a 500 plain-text response.
func (rt *Router) Handle(ctx context.Context, r *http.Request) (resp *domain.AssetResponse) {
	rt.metrics.requests.Inc(1)

	// open is the store response currently owned by handle.
	var open *domain.AssetResponse
	defer func() {
		if rec := recover(); rec != nil {
			_ = open.Close()
			resp = rt.failure(r, fmt.Errorf("panic: %v", rec), string(debug.Stack()))
		}
	}()

	resp, err := rt.handle(ctx, r, &open)
	if err != nil {
		return rt.failure(r, err, stackOf(err))
	}
	return resp
}

// ServeHTTP writes the result of Handle to w.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := rt.Handle(r.Context(), r)
	defer resp.Close()

	header := w.Header()
	for name, values := range resp.Header {
		header[name] = values
	}
	w.WriteHeader(resp.Status)

	if resp.Body == nil || !bodyAllowed(r.Method, resp.Status) {
		return
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		slog.Debug("asset body copy interrupted", "path", r.URL.Path, "error", err)
	}
}

func (rt *Router) handle(ctx context.Context, r *http.Request, open **domain.AssetResponse) (*domain.AssetResponse, error) {
	if rt.opts.EnablePreflight && r.Method == http.MethodOptions {
		rt.metrics.preflight.Inc(1)
		return preflightResponse(), nil
	}

	base, err := requestURL(r)
	if err != nil {
		return nil, err
	}

	if rt.opts.EnableRobotsTxt && base.Path == "/robots.txt" {
		rt.metrics.robots.Inc(1)
		return robotsResponse(), nil
	}

	pathname := NormalizePath(base.Path)
	key := strings.TrimPrefix(pathname, "/")

	if rt.store == nil {
		return notConfiguredResponse(), nil
	}

	asset, err := rt.fetch(ctx, r, base, key)
	if err != nil {
		return nil, err
	}
	*open = asset

	served := pathname
	if asset.Status == http.StatusNotFound && pathname != "/"+domain.IndexKey {
		_ = asset.Close()
		*open = nil
		rt.metrics.fallbacks.Inc(1)

		asset, err = rt.fetch(ctx, r, base, domain.IndexKey)
		if err != nil {
			return nil, err
		}
		*open = asset
		served = "/" + domain.IndexKey
	}

	rt.rewriteHeaders(asset, pathname, served)

	// A HEAD body is empty; buffering it would replace the store's length with 0.
	if rt.opts.BufferBody && r.Method != http.MethodHead {
		if err := bufferBody(asset); err != nil {
			return nil, err
		}
	}

	return asset, nil
}

// NormalizePath maps the root and empty paths to /index.html and guarantees a
// leading slash on everything else.
func NormalizePath(p string) string {
	if p == "" || p == "/" {
		return "/" + domain.IndexKey
	}
	if !strings.HasPrefix(p, "/") {
		return "/" + p
	}
	return p
}

func (rt *Router) fetch(ctx context.Context, r *http.Request, base *url.URL, key string) (*domain.AssetResponse, error) {
	defer rt.metrics.fetch.UpdateSince(time.Now())

	req := &domain.AssetRequest{
		Method: r.Method,
		Key:    key,
		URL:    base.ResolveReference(&url.URL{Path: "/" + key}),
		Header: r.Header.Clone(),
	}

	resp, err := rt.store.Fetch(ctx, req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch asset %q", key)
	}
	if resp == nil {
		return nil, errors.Errorf("fetch asset %q: store returned no response", key)
	}
	if resp.Header == nil {
		resp.Header = make(http.Header)
	}
	if resp.StatusText == "" {
		resp.StatusText = http.StatusText(resp.Status)
	}
	return resp, nil
}

func (rt *Router) rewriteHeaders(resp *domain.AssetResponse, pathname, served string) {
	h := resp.Header

	if h.Get("Content-Type") == "" {
		h.Set("Content-Type", ContentType(served))
	}
	if isHTML(pathname) || isHTML(served) {
		h.Set("Content-Type", HTMLContentType)
	}

	if rt.opts.InjectCORSHeaders {
		setCORSHeaders(h)
	}

	h.Set("X-Robots-Tag", "index, follow")

	if rt.opts.StripSecurityHeaders {
		h.Del("X-Frame-Options")
		h.Del("Content-Security-Policy")
	}
}

func (rt *Router) failure(r *http.Request, err error, stack string) *domain.AssetResponse {
	rt.metrics.errors.Inc(1)

	attrs := []any{"error", err}
	if r != nil {
		attrs = append(attrs, "method", r.Method)
		if r.URL != nil {
			attrs = append(attrs, "path", r.URL.Path)
		}
	}
	slog.Error("asset router failed", attrs...)

	body := fmt.Sprintf("Asset Router Error: %s\nStack: %s", err.Error(), stack)
	return textResponse(http.StatusInternalServerError, body)
}

// requestURL returns the absolute URL of r.
func requestURL(r *http.Request) (*url.URL, error) {
	if r == nil || r.URL == nil {
		return nil, errors.WithStack(domain.ErrInvalidRequestURL)
	}

	u := *r.URL
	if u.Host == "" {
		u.Host = r.Host
	}
	if u.Scheme == "" {
		u.Scheme = "http"
		if r.TLS != nil {
			u.Scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
			u.Scheme = proto
		}
	}

	// Hand-built requests skip the server's URL parsing.
	parsed, err := url.Parse(u.String())
	if err != nil {
		return nil, errors.Wrapf(domain.ErrInvalidRequestURL, "%v", err)
	}
	return parsed, nil
}

func bufferBody(resp *domain.AssetResponse) error {
	if resp.Body == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return errors.Wrap(err, "read asset body")
	}
	resp.Body = io.NopCloser(bytes.NewReader(data))
	resp.Header.Set("Content-Length", strconv.Itoa(len(data)))
	return nil
}

func bodyAllowed(method string, status int) bool {
	if method == http.MethodHead {
		return false
	}
	switch {
	case status >= 100 && status < 200:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}
	return true
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackOf returns the innermost recorded stack trace of err, if any.
func stackOf(err error) string {
	var st stackTracer
	var trace string
	for err != nil {
		if tracer, ok := err.(stackTracer); ok {
			st = tracer
		}
		err = errors.Unwrap(err)
	}
	if st != nil {
		trace = strings.TrimPrefix(fmt.Sprintf("%+v", st.StackTrace()), "\n")
	}
	return trace
}
