package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newWeatherClient(endpoint, key string) *WeatherClient {
	return &WeatherClient{
		APIKey:          key,
		Endpoint:        endpoint,
		DefaultLocation: "Delhi,India",
		HTTPClient:      http.DefaultClient,
	}
}

func TestWeatherMissingCredential(t *testing.T) {
	c := newWeatherClient("http://unused.invalid", "")
	for _, loc := range []string{"", "Paris", "  Tokyo  "} {
		_, err := c.Current(context.Background(), loc)
		var pe *ProviderError
		if !errors.As(err, &pe) {
			t.Fatalf("Current(%q) err = %v, want ProviderError", loc, err)
		}
		if pe.Message != "Weather data unavailable (OPENWEATHER_API_KEY missing)." {
			t.Fatalf("message = %q", pe.Message)
		}
	}
}

func TestWeatherFormatsCurrentConditions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Paris" {
			t.Errorf("q = %q", got)
		}
		if got := r.URL.Query().Get("key"); got != "wk" {
			t.Errorf("key = %q", got)
		}
		_, _ = w.Write([]byte(`{"location":{"name":"Paris"},"current":{"temp_c":20.6,"condition":{"text":"partly cloudy"}}}`))
	}))
	defer srv.Close()

	got, err := newWeatherClient(srv.URL, "wk").Current(context.Background(), "  Paris  ")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	// temperature rounds to the nearest degree, condition gets capitalized
	if got != "Partly cloudy in Paris, 21°C" {
		t.Fatalf("Current = %q", got)
	}
}

func TestWeatherDefaultsLocation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Delhi,India" {
			t.Errorf("q = %q, want configured default", got)
		}
		_, _ = w.Write([]byte(`{"current":{"temp_c":30.2,"condition":{"text":"sunny"}}}`))
	}))
	defer srv.Close()

	got, err := newWeatherClient(srv.URL, "wk").Current(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	// no name in the payload, so the resolved location is echoed back
	if got != "Sunny in Delhi,India, 30°C" {
		t.Fatalf("Current = %q", got)
	}
}

func TestWeatherUsesProviderErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"No matching location found."}}`))
	}))
	defer srv.Close()

	_, err := newWeatherClient(srv.URL, "wk").Current(context.Background(), "Nowhere")
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want ProviderError", err)
	}
	if pe.Message != "No matching location found." {
		t.Fatalf("message = %q", pe.Message)
	}
}

func TestWeatherStatusCodedFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newWeatherClient(srv.URL, "wk").Current(context.Background(), "Paris")
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want ProviderError", err)
	}
	if pe.Message != "Weather fetch failed with status 500" {
		t.Fatalf("message = %q", pe.Message)
	}
}

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"":              "",
		"sunny":         "Sunny",
		"partly cloudy": "Partly cloudy",
		"ALL CAPS":      "ALL CAPS",
	}
	for in, want := range cases {
		if got := capitalize(in); got != want {
			t.Errorf("capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}
