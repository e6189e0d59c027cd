package provider

import "context"

// mockPrefixLen bounds the prompt snippet embedded in mock output; prompts
// longer than mockMaxLen are cut to 77 characters plus an ellipsis marker so
// the snippet is always at most 80 characters.
const (
	mockPrefixLen = 77
	mockMaxLen    = 80
)

// Mock is a deterministic local generator used when no API key is configured
// or when mock mode is forced. Identical prompts always yield identical
// output, which keeps golden-output tests stable.
type Mock struct{}

func (Mock) Generate(_ context.Context, prompt string) (string, error) {
	short := prompt
	if r := []rune(prompt); len(r) > mockMaxLen {
		short = string(r[:mockPrefixLen]) + "..."
	}
	return "Quick thought: " + short, nil
}
