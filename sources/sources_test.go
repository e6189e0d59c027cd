package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/promptflow/promptflow/config"
	"github.com/promptflow/promptflow/internal/workflow"
)

type fakeCache struct {
	entries map[string]string
	gets    int
	sets    int
}

func newFakeCache() *fakeCache { return &fakeCache{entries: map[string]string{}} }

func (f *fakeCache) Get(ctx context.Context, key string) (string, bool) {
	f.gets++
	v, ok := f.entries[key]
	return v, ok
}

func (f *fakeCache) Set(ctx context.Context, key, value string) {
	f.sets++
	f.entries[key] = value
}

func newTestDispatcher(cache Cache) *Dispatcher {
	return NewDispatcher(config.ProvidersConfig{
		Weather: config.WeatherConfig{DefaultLocation: "Delhi,India"},
		Github:  config.GithubConfig{Endpoint: "http://unused.invalid"},
		NewsAPI: config.NewsAPIConfig{Endpoint: "http://unused.invalid"},
	}, cache)
}

func TestDispatchUnknownAction(t *testing.T) {
	d := newTestDispatcher(nil)
	got := d.Fetch(context.Background(), workflow.ParseAction("translate"), "")
	want := `Unknown action "translate". Supported: weather, github, news.`
	if got != want {
		t.Fatalf("Fetch = %q, want %q", got, want)
	}
}

func TestDispatchRendersProviderError(t *testing.T) {
	d := newTestDispatcher(nil)
	got := d.Fetch(context.Background(), workflow.ParseAction("weather"), "Paris")
	if got != "Weather data unavailable (OPENWEATHER_API_KEY missing)." {
		t.Fatalf("Fetch = %q", got)
	}
	got = d.Fetch(context.Background(), workflow.ParseAction("news"), "")
	if got != "News API key missing" {
		t.Fatalf("Fetch = %q", got)
	}
}

func TestDispatchRendersTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed server forces a connection error

	d := newTestDispatcher(nil)
	d.Github.Endpoint = srv.URL
	got := d.Fetch(context.Background(), workflow.ParseAction("github"), "")
	if len(got) < len("API error: ") || got[:len("API error: ")] != "API error: " {
		t.Fatalf("Fetch = %q, want API error prefix", got)
	}
}

func TestDispatchCachesSuccesses(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"items":[{"full_name":"a/one","stargazers_count":9}]}`))
	}))
	defer srv.Close()

	fc := newFakeCache()
	d := newTestDispatcher(fc)
	d.Github.Endpoint = srv.URL

	first := d.Fetch(context.Background(), workflow.ParseAction("github"), "")
	second := d.Fetch(context.Background(), workflow.ParseAction("github"), "")
	if first != second {
		t.Fatalf("cached result differs: %q vs %q", first, second)
	}
	if calls != 1 {
		t.Fatalf("upstream called %d times, want 1", calls)
	}
	if fc.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", fc.sets)
	}
}

func TestDispatchDoesNotCacheFailures(t *testing.T) {
	fc := newFakeCache()
	d := newTestDispatcher(fc)

	// weather key is missing, so every fetch degrades
	_ = d.Fetch(context.Background(), workflow.ParseAction("weather"), "Paris")
	_ = d.Fetch(context.Background(), workflow.ParseAction("weather"), "Paris")
	if fc.sets != 0 {
		t.Fatalf("degraded results must not be cached, sets = %d", fc.sets)
	}
}
