package dto

import "github.com/mtlprog/portfolio/internal/domain"

// ContributionsResponse represents the response for GET /contributions.
type ContributionsResponse struct {
	Username         string `json:"username"`
	Year             int    `json:"year"`
	Total            int    `json:"total"`
	Display          string `json:"display" example:"1,234"`
	Loaded           bool   `json:"loaded"`
	Source           string `json:"source,omitempty"`
	ChartURL         string `json:"chart_url"`
	ChartFallbackURL string `json:"chart_fallback_url"`
}

// NewContributionsResponse converts domain stats to the API shape.
func NewContributionsResponse(stats *domain.ContributionStats) ContributionsResponse {
	return ContributionsResponse{
		Username:         stats.Username,
		Year:             stats.Year,
		Total:            stats.Total,
		Display:          stats.Display,
		Loaded:           stats.Loaded(),
		Source:           stats.Source,
		ChartURL:         stats.ChartURL,
		ChartFallbackURL: stats.ChartFallbackURL,
	}
}

// ThemeResponse represents the resolved theme.
type ThemeResponse struct {
	Theme  string `json:"theme" example:"dark"`
	Source string `json:"source" example:"saved"`
}

// HealthResponse represents the response for GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}
