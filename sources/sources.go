package sources

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/promptflow/promptflow/config"
	"github.com/promptflow/promptflow/internal/workflow"
)

// ProviderError carries the user-facing placeholder text for an upstream
// failure. The dispatcher renders Message verbatim as the API response, so
// fetchers own their wording without duplicating the degradation logic.
type ProviderError struct {
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Cache is an optional read-through cache for provider results. A nil Cache
// disables caching; only successful fetches are stored.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// Dispatcher maps a parsed action to one of the three fetchers and renders
// any failure into a descriptive string. It never lets a provider failure
// abort the pipeline.
type Dispatcher struct {
	Weather *WeatherClient
	Github  *GithubClient
	News    *NewsClient

	cache  Cache
	logger *log.Logger
}

// NewDispatcher wires the three fetchers from configuration. cache may be nil.
func NewDispatcher(cfg config.ProvidersConfig, cache Cache) *Dispatcher {
	httpClient := &http.Client{Timeout: 10 * time.Second}
	return &Dispatcher{
		Weather: &WeatherClient{
			APIKey:          cfg.Weather.APIKey,
			Endpoint:        cfg.Weather.Endpoint,
			DefaultLocation: cfg.Weather.DefaultLocation,
			HTTPClient:      httpClient,
		},
		Github: &GithubClient{
			Token:      cfg.Github.Token,
			Endpoint:   cfg.Github.Endpoint,
			HTTPClient: httpClient,
		},
		News: &NewsClient{
			APIKey:     cfg.NewsAPI.APIKey,
			Endpoint:   cfg.NewsAPI.Endpoint,
			Country:    cfg.NewsAPI.Country,
			PageSize:   cfg.NewsAPI.PageSize,
			HTTPClient: httpClient,
		},
		cache:  cache,
		logger: log.New(log.Writer(), "[SOURCES] ", log.LstdFlags),
	}
}

// Fetch resolves the action to a fetcher and returns its normalized text.
// Unknown actions yield a fixed no-op string. A *ProviderError renders as its
// message; any other error renders with an "API error" prefix.
func (d *Dispatcher) Fetch(ctx context.Context, action workflow.Action, location string) string {
	if action.Kind == workflow.ActionUnknown {
		return fmt.Sprintf("Unknown action %q. Supported: weather, github, news.", action.Raw)
	}

	key := cacheKey(action, location)
	if d.cache != nil {
		if text, ok := d.cache.Get(ctx, key); ok {
			return text
		}
	}

	var text string
	var err error
	switch action.Kind {
	case workflow.ActionWeather:
		text, err = d.Weather.Current(ctx, location)
	case workflow.ActionGithub:
		text, err = d.Github.Trending(ctx)
	case workflow.ActionNews:
		text, err = d.News.TopHeadline(ctx)
	}
	if err != nil {
		d.logger.Printf("%s fetch degraded: %v", action, err)
		var pe *ProviderError
		if errors.As(err, &pe) {
			return pe.Message
		}
		return "API error: " + err.Error()
	}

	if d.cache != nil {
		d.cache.Set(ctx, key, text)
	}
	return text
}

func cacheKey(action workflow.Action, location string) string {
	return "sources:" + action.String() + ":" + strings.ToLower(strings.TrimSpace(location))
}
