package config

import "time"

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; the database store is only used when set.
	DefaultDatabaseURL = ""

	// DefaultLogFormat is machine-readable JSON.
	DefaultLogFormat = "json"

	// DefaultContributionsTTL is how long a contribution total is cached.
	DefaultContributionsTTL = time.Hour

	// DefaultProviderTimeout bounds a single contribution provider request.
	DefaultProviderTimeout = 10 * time.Second
)
