package service

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/mtlprog/portfolio/internal/domain"
)

// DefaultMaxAssetSize caps a single stored asset at 25 MiB.
const DefaultMaxAssetSize int64 = 25 << 20

// Validator checks assets before they are written to the database.
type Validator struct {
	maxAssetSize int64
}

// NewValidator creates a new Validator. A non-positive limit selects
// DefaultMaxAssetSize.
func NewValidator(maxAssetSize int64) *Validator {
	if maxAssetSize <= 0 {
		maxAssetSize = DefaultMaxAssetSize
	}
	return &Validator{maxAssetSize: maxAssetSize}
}

// ValidateKey checks that key is a clean relative path usable as a storage key.
func (v *Validator) ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key is empty", domain.ErrInvalidAssetKey)
	}
	if strings.HasPrefix(key, "/") {
		return fmt.Errorf("%w: key %q has a leading slash", domain.ErrInvalidAssetKey, key)
	}
	if strings.Contains(key, `\`) {
		return fmt.Errorf("%w: key %q contains a backslash", domain.ErrInvalidAssetKey, key)
	}
	if !fs.ValidPath(key) || key == "." {
		return fmt.Errorf("%w: key %q is not a clean relative path", domain.ErrInvalidAssetKey, key)
	}
	return nil
}

// ValidateAsset checks the key and size of asset.
func (v *Validator) ValidateAsset(asset *domain.Asset) error {
	if err := v.ValidateKey(asset.Key); err != nil {
		return err
	}
	if asset.Size > v.maxAssetSize {
		return fmt.Errorf("%w: %s is %d bytes, limit is %d", domain.ErrInvalidAssetKey, asset.Key, asset.Size, v.maxAssetSize)
	}
	return nil
}
