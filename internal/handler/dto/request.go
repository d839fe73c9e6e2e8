package dto

// SetThemeRequest represents the request body for PUT /theme.
type SetThemeRequest struct {
	Theme string `json:"theme" example:"light"`
}
