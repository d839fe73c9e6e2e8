package router

import (
	"path"
	"strings"
)

const (
	// HTMLContentType is forced onto every response for an .html path.
	HTMLContentType = "text/html; charset=utf-8"

	// DefaultContentType is used when the extension is unknown or missing.
	DefaultContentType = "text/plain"
)

// contentTypes maps lowercase file extensions to MIME types. Read-only.
var contentTypes = map[string]string{
	"html": HTMLContentType,
	"css":  "text/css; charset=utf-8",
	"js":   "application/javascript; charset=utf-8",
	"json": "application/json",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"svg":  "image/svg+xml",
	"ico":  "image/x-icon",
	"webp": "image/webp",
}

// ContentType infers the MIME type of pathname from its extension.
// Unknown or missing extensions yield DefaultContentType.
func ContentType(pathname string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(pathname), "."))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return DefaultContentType
}

func isHTML(pathname string) bool {
	return strings.HasSuffix(strings.ToLower(pathname), ".html")
}
