package service

import (
	"fmt"
	"strings"

	"github.com/mtlprog/portfolio/internal/domain"
)

// ThemeService resolves the site theme from the saved preference and the
// client's colour-scheme hint.
type ThemeService struct {
	fallback domain.Theme
}

// NewThemeService creates a ThemeService. An invalid fallback selects dark.
func NewThemeService(fallback domain.Theme) *ThemeService {
	if !fallback.IsValid() {
		fallback = domain.ThemeDark
	}
	return &ThemeService{fallback: fallback}
}

// Resolve picks the saved theme, then the system preference, then the fallback.
// Unknown values are ignored.
func (s *ThemeService) Resolve(saved, prefers string) (domain.Theme, domain.ThemeSource) {
	if theme, err := ParseTheme(saved); err == nil {
		return theme, domain.ThemeSourceSaved
	}
	if theme, err := ParseTheme(prefers); err == nil {
		return theme, domain.ThemeSourceSystem
	}
	return s.fallback, domain.ThemeSourceDefault
}

// Toggle returns the opposite of current.
func (s *ThemeService) Toggle(current domain.Theme) domain.Theme {
	if current == domain.ThemeDark {
		return domain.ThemeLight
	}
	return domain.ThemeDark
}

// ParseTheme parses a theme name; surrounding quotes and case are ignored so
// the raw Sec-CH-Prefers-Color-Scheme value ("dark") is accepted.
func ParseTheme(v string) (domain.Theme, error) {
	theme := domain.Theme(strings.ToLower(strings.Trim(strings.TrimSpace(v), `"`)))
	if !theme.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidTheme, v)
	}
	return theme, nil
}
