// Package httpcatalog fetches the song catalog as a CSV document over HTTP.
// Requests can be authenticated with OAuth2 client credentials, are retried
// on throttling and server errors, and go through a circuit breaker so a
// dead upstream fails fast.
package httpcatalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/nsarvani/Statify/internal/adapters/csvfile"
	"github.com/nsarvani/Statify/internal/core/domain"
	"github.com/nsarvani/Statify/internal/core/ports"
	"github.com/nsarvani/Statify/internal/logging"
)

const (
	defaultTimeout          = 30 * time.Second
	defaultFailureThreshold = 5
	defaultOpenTimeout      = 30 * time.Second
)

// Config configures a remote catalog source.
type Config struct {
	URL string

	// OAuth2 client credentials; leave ClientID empty for anonymous access.
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string

	MaxRetries  int
	BaseBackoff time.Duration
	Timeout     time.Duration

	// FailureThreshold is the number of consecutive failed loads that opens the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// Source is a ports.CatalogSource backed by an HTTP endpoint.
type Source struct {
	httpClient  *http.Client
	url         string
	maxRetries  int
	baseBackoff time.Duration
	breaker     *gobreaker.CircuitBreaker[[]domain.RawRow]
}

// compile-time interface assertion
var _ ports.CatalogSource = (*Source)(nil)

// NewSource constructs a Source. ctx only scopes OAuth2 token requests.
func NewSource(ctx context.Context, cfg Config, httpClient *http.Client) *Source {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	// Timeout is set on a copy of the caller's client.
	base := *httpClient
	client := &base
	if cfg.ClientID != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       cfg.Scopes,
		}
		client = cc.Client(context.WithValue(ctx, oauth2.HTTPClient, &base))
	}
	client.Timeout = timeout

	maxRetries, baseBackoff := cfg.MaxRetries, cfg.BaseBackoff
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if baseBackoff <= 0 {
		baseBackoff = defaultBackoff
	}

	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = defaultFailureThreshold
	}
	openTimeout := cfg.OpenTimeout
	if openTimeout <= 0 {
		openTimeout = defaultOpenTimeout
	}

	s := &Source{
		httpClient:  client,
		url:         strings.TrimSpace(cfg.URL),
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
	}
	s.breaker = gobreaker.NewCircuitBreaker[[]domain.RawRow](gobreaker.Settings{
		Name:        "catalog-http",
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Ctx(ctx).Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("catalog circuit breaker state changed")
		},
	})
	return s
}

// Name identifies the source in logs and metrics.
func (s *Source) Name() string {
	return "http"
}

// LoadRows downloads and decodes the whole catalog.
func (s *Source) LoadRows(ctx context.Context) ([]domain.RawRow, error) {
	rows, err := s.breaker.Execute(func() ([]domain.RawRow, error) {
		return s.fetch(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %w", ports.ErrCatalogUnavailable, err)
		}
		return nil, &ports.SourceError{Source: s.Name(), Err: err}
	}
	return rows, nil
}

func (s *Source) fetch(ctx context.Context) ([]domain.RawRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog http: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.doRequestWithRetry(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog http: status %d", resp.StatusCode)
	}

	rows, err := csvfile.ReadRows(ctx, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("catalog http: decode: %w", err)
	}
	return rows, nil
}
