package router

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/mtlprog/portfolio/internal/domain"
)

// NotConfiguredMessage is the body returned when no asset store is bound.
const NotConfiguredMessage = "Assets binding not configured. Check the asset store configuration (--database-url, --origin-url, --assets-dir or --embedded)."

// RobotsTxt grants crawl access to every agent and, explicitly, to the link
// unfurlers of the social networks the site is shared on.
const RobotsTxt = `User-agent: *
Allow: /

User-agent: LinkedInBot
Allow: /

User-agent: Twitterbot
Allow: /

User-agent: facebookexternalhit
Allow: /
`

const (
	corsAllowOrigin  = "*"
	corsAllowMethods = "GET, HEAD, OPTIONS"
	corsAllowHeaders = "Content-Type"
	corsMaxAge       = "86400"
)

func setCORSHeaders(h http.Header) {
	h.Set("Access-Control-Allow-Origin", corsAllowOrigin)
	h.Set("Access-Control-Allow-Methods", corsAllowMethods)
	h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
}

func preflightResponse() *domain.AssetResponse {
	h := make(http.Header)
	setCORSHeaders(h)
	h.Set("Access-Control-Max-Age", corsMaxAge)

	return &domain.AssetResponse{
		Status:     http.StatusNoContent,
		StatusText: http.StatusText(http.StatusNoContent),
		Header:     h,
	}
}

func robotsResponse() *domain.AssetResponse {
	resp := textResponse(http.StatusOK, RobotsTxt)
	resp.Header.Set("Access-Control-Allow-Origin", corsAllowOrigin)
	resp.Header.Set("X-Robots-Tag", "index, follow")
	return resp
}

func notConfiguredResponse() *domain.AssetResponse {
	return textResponse(http.StatusInternalServerError, NotConfiguredMessage)
}

func textResponse(status int, body string) *domain.AssetResponse {
	h := make(http.Header)
	h.Set("Content-Type", DefaultContentType)
	h.Set("Content-Length", strconv.Itoa(len(body)))

	return &domain.AssetResponse{
		Status:     status,
		StatusText: http.StatusText(status),
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}
