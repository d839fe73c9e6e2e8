package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/patrickmn/go-cache"
	"github.com/rcrowley/go-metrics"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mtlprog/portfolio/internal/domain"
)

const (
	// DefaultJogruberURL serves yearly contribution totals.
	DefaultJogruberURL = "https://github-contributions-api.jogruber.de/v4/"

	// DefaultVercelURL serves the daily contribution calendar.
	DefaultVercelURL = "https://github-contributions.vercel.app/api/v1/"

	chartURLFormat         = "https://ghchart.rshah.org/%s?theme=default"
	chartFallbackURLFormat = "https://github-contributions.vercel.app/api/v1/%s?no-frame=true"

	// UnableToLoad is displayed when no provider returned a total.
	UnableToLoad = "Unable to load"

	// failureTTL is how long a result without a total stays cached. It is
	// also the shortest TTL accepted for loaded results.
	failureTTL = time.Minute
)

// ContributionProvider returns the contribution total of a user for a year.
type ContributionProvider interface {
	Name() string
	Total(ctx context.Context, username string, year int) (int, error)
}

// ContributionService resolves contribution statistics from a ranked list of
// providers. The first provider with a positive total wins.
type ContributionService struct {
	username  string
	providers []ContributionProvider
	cache     *cache.Cache
	printer   *message.Printer
	now       func() time.Time
	registry  metrics.Registry
}

// NewContributionService creates a new ContributionService. An empty username
// disables the service. A ttl below one minute is raised to one minute.
func NewContributionService(username string, providers []ContributionProvider, ttl time.Duration, registry metrics.Registry) *ContributionService {
	if registry == nil {
		registry = metrics.NewRegistry()
	}
	if ttl < failureTTL {
		ttl = failureTTL
	}
	return &ContributionService{
		username:  username,
		providers: providers,
		cache:     cache.New(ttl, 2*ttl),
		printer:   message.NewPrinter(language.English),
		now:       time.Now,
		registry:  registry,
	}
}

// Stats returns the contribution statistics for the configured user. When every
// provider misses the result carries Display = UnableToLoad and no error.
func (s *ContributionService) Stats(ctx context.Context) (*domain.ContributionStats, error) {
	if s.username == "" {
		return nil, domain.ErrContributionsDisabled
	}

	year := s.now().Year()
	key := s.username + ":" + strconv.Itoa(year)
	if cached, ok := s.cache.Get(key); ok {
		stats := cached.(domain.ContributionStats)
		return &stats, nil
	}

	stats := domain.ContributionStats{
		Username:         s.username,
		Year:             year,
		Display:          UnableToLoad,
		ChartURL:         fmt.Sprintf(chartURLFormat, url.PathEscape(s.username)),
		ChartFallbackURL: fmt.Sprintf(chartFallbackURLFormat, url.PathEscape(s.username)),
	}

	for _, provider := range s.providers {
		total, err := provider.Total(ctx, s.username, year)
		if err != nil {
			metrics.GetOrRegisterCounter("contributions."+provider.Name()+".errors", s.registry).Inc(1)
			slog.Warn("contribution provider failed", "provider", provider.Name(), "error", err)
			continue
		}
		if total <= 0 {
			slog.Debug("contribution provider returned no total", "provider", provider.Name())
			continue
		}

		stats.Total = total
		stats.Source = provider.Name()
		stats.Display = s.printer.Sprintf("%d", total)
		break
	}

	if err := ctx.Err(); err != nil && !stats.Loaded() {
		return nil, fmt.Errorf("%w: %w", domain.ErrContributionsUnavailable, err)
	}

	if stats.Loaded() {
		s.cache.Set(key, stats, cache.DefaultExpiration)
	} else {
		metrics.GetOrRegisterCounter("contributions.misses", s.registry).Inc(1)
		s.cache.Set(key, stats, failureTTL)
	}

	return &stats, nil
}

// JogruberProvider reads the yearly total from github-contributions-api.jogruber.de.
type JogruberProvider struct {
	baseURL string
	client  *resty.Client
}

// NewJogruberProvider creates a JogruberProvider. baseURL must end with "/".
func NewJogruberProvider(baseURL string, client *http.Client) *JogruberProvider {
	return &JogruberProvider{baseURL: baseURL, client: newProviderClient(client)}
}

func (p *JogruberProvider) Name() string { return "jogruber" }

// Total returns total[year], or contributions.total when the response carries
// a summary object instead of the daily list.
func (p *JogruberProvider) Total(ctx context.Context, username string, year int) (int, error) {
	var data struct {
		Total         map[string]int  `json:"total"`
		Contributions json.RawMessage `json:"contributions"`
	}
	if err := getJSON(ctx, p.client, p.baseURL+url.PathEscape(username), &data); err != nil {
		return 0, err
	}

	if total := data.Total[strconv.Itoa(year)]; total > 0 {
		return total, nil
	}
	if len(data.Contributions) == 0 || data.Contributions[0] != '{' {
		return 0, nil
	}

	var summary struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(data.Contributions, &summary); err != nil {
		return 0, fmt.Errorf("decode contributions summary: %w", err)
	}
	return summary.Total, nil
}

// VercelProvider sums the daily counts from github-contributions.vercel.app.
type VercelProvider struct {
	baseURL string
	client  *resty.Client
}

// NewVercelProvider creates a VercelProvider. baseURL must end with "/".
func NewVercelProvider(baseURL string, client *http.Client) *VercelProvider {
	return &VercelProvider{baseURL: baseURL, client: newProviderClient(client)}
}

func (p *VercelProvider) Name() string { return "vercel" }

func (p *VercelProvider) Total(ctx context.Context, username string, _ int) (int, error) {
	var data struct {
		Contributions []struct {
			Count int `json:"count"`
		} `json:"contributions"`
	}
	if err := getJSON(ctx, p.client, p.baseURL+url.PathEscape(username), &data); err != nil {
		return 0, err
	}

	total := 0
	for _, day := range data.Contributions {
		total += day.Count
	}
	return total, nil
}

func newProviderClient(client *http.Client) *resty.Client {
	if client == nil {
		client = &http.Client{}
	}
	return resty.NewWithClient(client).
		SetLogger(restyLogger{}).
		SetHeader("Accept", "application/json")
}

// getJSON decodes the JSON body of a GET to target into v. Bodies are decoded
// as JSON whatever Content-Type the provider sends.
func getJSON(ctx context.Context, client *resty.Client, target string, v any) error {
	resp, err := client.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult(v).
		Get(target)
	if err != nil {
		return fmt.Errorf("request %s: %w", target, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("request %s: unexpected status %d", target, resp.StatusCode())
	}
	return nil
}

// restyLogger sends resty's own diagnostics to slog.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...any) { slog.Error(fmt.Sprintf(format, v...)) }
func (restyLogger) Warnf(format string, v ...any)  { slog.Warn(fmt.Sprintf(format, v...)) }
func (restyLogger) Debugf(format string, v ...any) { slog.Debug(fmt.Sprintf(format, v...)) }
