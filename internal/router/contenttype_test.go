package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentType(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/index.html", "text/html; charset=utf-8"},
		{"/css/site.CSS", "text/css; charset=utf-8"},
		{"/app.js", "application/javascript; charset=utf-8"},
		{"/feed.json", "application/json"},
		{"/logo.png", "image/png"},
		{"/photo.JPG", "image/jpeg"},
		{"/photo.jpeg", "image/jpeg"},
		{"/anim.gif", "image/gif"},
		{"/icon.svg", "image/svg+xml"},
		{"/favicon.ico", "image/x-icon"},
		{"/hero.webp", "image/webp"},
		{"/data.xyz", "text/plain"},
		{"/about", "text/plain"},
		{"/dir.d/file", "text/plain"},
		{"", "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentType(tt.path))
		})
	}
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/index.html", NormalizePath(""))
	assert.Equal(t, "/index.html", NormalizePath("/"))
	assert.Equal(t, "/about", NormalizePath("/about"))
	assert.Equal(t, "/about", NormalizePath("about"))
}

func TestIsHTML(t *testing.T) {
	assert.True(t, isHTML("/index.html"))
	assert.True(t, isHTML("/Page.HTML"))
	assert.False(t, isHTML("/index.htm"))
	assert.False(t, isHTML("/about"))
}
