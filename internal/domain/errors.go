package domain

import "errors"

// Domain-specific errors returned by stores, services and handlers.
var (
	// Asset errors
	ErrAssetsNotConfigured = errors.New("assets binding not configured")
	ErrAssetNotFound       = errors.New("asset not found")
	ErrInvalidAssetKey     = errors.New("invalid asset key")
	ErrInvalidRequestURL   = errors.New("invalid request url")

	// Contribution errors
	ErrContributionsDisabled    = errors.New("contributions username not configured")
	ErrContributionsUnavailable = errors.New("contribution providers unavailable")

	// Theme errors
	ErrInvalidTheme = errors.New("invalid theme")
)
