package workflow

import "strings"

// Compose merges the generator's text and the provider's text into the final
// message. Both inputs are trimmed independently before joining, and the
// joined string is trimmed once more so an empty side never leaves leading or
// trailing whitespace. Interior separators stay single spaces even when one
// side is empty.
func Compose(aiText, apiText string, action Action) string {
	joined := strings.TrimSpace(aiText) + " " + strings.TrimSpace(apiText) + " " + action.Hashtag()
	return strings.TrimSpace(joined)
}
