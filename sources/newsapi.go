package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

type headlinesResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title string `json:"title"`
	} `json:"articles"`
}

type newsErrorResponse struct {
	Message string `json:"message"`
}

// NewsClient fetches top headlines from NewsAPI
type NewsClient struct {
	APIKey     string
	Endpoint   string
	Country    string
	PageSize   int
	HTTPClient *http.Client
}

// TopHeadline returns the single top headline as "<title> — <source>". The
// source label defaults to "source" when the provider omits it.
func (n *NewsClient) TopHeadline(ctx context.Context) (string, error) {
	if n.APIKey == "" {
		return "", &ProviderError{Message: "News API key missing"}
	}

	country := n.Country
	if country == "" {
		country = "us"
	}
	pageSize := n.PageSize
	if pageSize <= 0 {
		pageSize = 3
	}

	params := url.Values{}
	params.Add("country", country)
	params.Add("pageSize", strconv.Itoa(pageSize))
	params.Add("apiKey", n.APIKey)

	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s?%s", n.Endpoint, params.Encode()), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := n.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody newsErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		msg := errBody.Message
		if msg == "" {
			msg = fmt.Sprintf("News fetch failed: %d", resp.StatusCode)
		}
		return "", &ProviderError{Message: msg}
	}

	var body headlinesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(body.Articles) == 0 {
		return "No top headlines found", nil
	}

	top := body.Articles[0]
	source := top.Source.Name
	if source == "" {
		source = "source"
	}
	return fmt.Sprintf("%s — %s", top.Title, source), nil
}
