package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type searchReposResponse struct {
	Items []struct {
		FullName        string `json:"full_name"`
		StargazersCount int    `json:"stargazers_count"`
	} `json:"items"`
}

// GithubClient approximates trending repositories via the search API:
// repositories created in the trailing 7 days, ordered by stars.
type GithubClient struct {
	Token      string
	Endpoint   string
	HTTPClient *http.Client
}

// Trending reports the top 3 of the 5 most-starred repositories created in
// the last 7 calendar days. The call is attempted unauthenticated when no
// token is configured.
func (g *GithubClient) Trending(ctx context.Context) (string, error) {
	since := time.Now().AddDate(0, 0, -7).UTC().Format("2006-01-02")

	params := url.Values{}
	params.Add("q", "created:>"+since)
	params.Add("sort", "stars")
	params.Add("order", "desc")
	params.Add("per_page", "5")

	reqURL := fmt.Sprintf("%s/search/repositories?%s", strings.TrimRight(g.Endpoint, "/"), params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if g.Token != "" {
		req.Header.Set("Authorization", "Bearer "+g.Token)
	}

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch trending repos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &ProviderError{Message: fmt.Sprintf("GitHub fetch failed: %d %s", resp.StatusCode, strings.TrimSpace(string(body)))}
	}

	var body searchReposResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(body.Items) == 0 {
		return "No trending repos found.", nil
	}

	top := body.Items
	if len(top) > 3 {
		top = top[:3]
	}
	parts := make([]string, 0, len(top))
	for _, item := range top {
		parts = append(parts, fmt.Sprintf("%s (%d★)", item.FullName, item.StargazersCount))
	}
	return "Trending: " + strings.Join(parts, ", "), nil
}
