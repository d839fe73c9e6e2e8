package service_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/portfolio/internal/domain"
	"github.com/mtlprog/portfolio/internal/service"
)

func TestValidator_ValidateKey(t *testing.T) {
	v := service.NewValidator(0)

	for _, key := range []string{"index.html", "css/site.css", "images/a b.png"} {
		assert.NoError(t, v.ValidateKey(key), key)
	}
	for _, key := range []string{"", "/index.html", "../secret", "a//b", "a\\b", ".", "dir/"} {
		assert.ErrorIs(t, v.ValidateKey(key), domain.ErrInvalidAssetKey, key)
	}
}

func TestValidator_ValidateAssetSize(t *testing.T) {
	v := service.NewValidator(4)

	assert.NoError(t, v.ValidateAsset(&domain.Asset{Key: "a.txt", Size: 4}))
	assert.ErrorIs(t, v.ValidateAsset(&domain.Asset{Key: "a.txt", Size: 5}), domain.ErrInvalidAssetKey)
}

func TestLoadAssets(t *testing.T) {
	fsys := fstest.MapFS{
		"index.html":        {Data: []byte("<html></html>")},
		"css/site.css":      {Data: []byte("body{}")},
		"fonts/inter.woff2": {Data: []byte("font")},
		".DS_Store":         {Data: []byte("junk")},
		".git/HEAD":         {Data: []byte("ref")},
	}

	assets, err := service.LoadAssets(fsys, service.NewValidator(0))
	require.NoError(t, err)

	byKey := map[string]*domain.Asset{}
	for _, a := range assets {
		byKey[a.Key] = a
	}

	require.Len(t, byKey, 3)
	assert.Equal(t, "text/html; charset=utf-8", byKey["index.html"].ContentType)
	assert.Equal(t, "text/css; charset=utf-8", byKey["css/site.css"].ContentType)
	assert.Equal(t, int64(13), byKey["index.html"].Size)
	assert.Len(t, byKey["index.html"].Checksum, 64)
	assert.Contains(t, byKey, "fonts/inter.woff2")
}

func TestLoadAssets_RejectsOversized(t *testing.T) {
	fsys := fstest.MapFS{"big.bin": {Data: make([]byte, 10)}}

	_, err := service.LoadAssets(fsys, service.NewValidator(5))
	assert.ErrorIs(t, err, domain.ErrInvalidAssetKey)
}
