package domain

// Theme is the colour scheme of the site.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// IsValid checks if the theme is one of the known values.
func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// ThemeSource records where a resolved theme came from.
type ThemeSource string

const (
	ThemeSourceSaved   ThemeSource = "saved"
	ThemeSourceSystem  ThemeSource = "system"
	ThemeSourceDefault ThemeSource = "default"
)
