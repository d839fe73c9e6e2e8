// Package static embeds the default site served when no other asset store is
// configured.
package static

import (
	"embed"
	"io/fs"
)

//go:embed site
var siteFS embed.FS

// Site returns the embedded default site rooted at its top directory.
func Site() fs.FS {
	sub, err := fs.Sub(siteFS, "site")
	if err != nil {
		// fs.Sub only fails for an invalid path literal.
		panic("static: " + err.Error())
	}
	return sub
}
