package domain

// ContributionStats is the public contribution summary for one account.
type ContributionStats struct {
	Username         string
	Year             int
	Total            int
	Display          string
	Source           string // provider name, empty when every provider missed
	ChartURL         string
	ChartFallbackURL string
}

// Loaded reports whether any provider returned a usable total.
func (s *ContributionStats) Loaded() bool {
	return s.Total > 0
}
