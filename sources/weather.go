package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"unicode"
)

type weatherResponse struct {
	Name     string `json:"name"`
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Current struct {
		TempC     float64 `json:"temp_c"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
}

type weatherErrorResponse struct {
	Message string `json:"message"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}

// WeatherClient fetches current conditions from weatherapi.com
type WeatherClient struct {
	APIKey          string
	Endpoint        string
	DefaultLocation string
	HTTPClient      *http.Client
}

// Current returns "<Capitalized condition> in <location>, <temp>°C" for the
// given location, falling back to the configured default when location is
// blank. A missing credential degrades to a fixed unavailable message.
func (w *WeatherClient) Current(ctx context.Context, location string) (string, error) {
	city := strings.TrimSpace(location)
	if city == "" {
		city = w.DefaultLocation
	}

	if w.APIKey == "" {
		return "", &ProviderError{Message: "Weather data unavailable (OPENWEATHER_API_KEY missing)."}
	}

	params := url.Values{}
	params.Add("key", w.APIKey)
	params.Add("q", city)
	params.Add("aqi", "no")

	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s?%s", w.Endpoint, params.Encode()), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := w.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody weatherErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		msg := errBody.Message
		if msg == "" {
			msg = errBody.Error.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("Weather fetch failed with status %d", resp.StatusCode)
		}
		return "", &ProviderError{Message: msg}
	}

	var body weatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	desc := body.Current.Condition.Text
	if desc == "" {
		desc = "Weather"
	}
	name := body.Name
	if name == "" {
		name = body.Location.Name
	}
	if name == "" {
		name = city
	}
	temp := int(math.Round(body.Current.TempC))
	return fmt.Sprintf("%s in %s, %d°C", capitalize(desc), name, temp), nil
}

// capitalize uppercases only the first character, the rest is unchanged
func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
