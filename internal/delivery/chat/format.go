package chat

import (
	"fmt"
	"strings"

	"github.com/cosmicreseller/backend/internal/domain"
)

// MaxMessageLength is the chunk size for transports with a message cap
// (Telegram allows 4096 characters).
const MaxMessageLength = 4096

// FormatResult renders a filter result as a chat message.
func FormatResult(result *domain.FilterResult) string {
	if result == nil || len(result.CheapItems) == 0 {
		return "No cheap items found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Average Market Price: £%.2f\nDeals found:\n", result.AveragePrice)
	for _, item := range result.CheapItems {
		fmt.Fprintf(&b, "- %s (%s) - £%.0f\n", item.Title, item.URL, item.Price)
	}
	return b.String()
}

// SplitMessage breaks a message into chunks of at most maxLen characters,
// splitting on line boundaries so no deal line is cut in half. A single
// line longer than maxLen becomes its own oversized chunk; transports cap
// lines well below that in practice.
func SplitMessage(message string, maxLen int) []string {
	if len(message) <= maxLen {
		return []string{message}
	}

	var chunks []string
	var chunk strings.Builder

	for _, line := range strings.SplitAfter(message, "\n") {
		if chunk.Len() > 0 && chunk.Len()+len(line) > maxLen {
			chunks = append(chunks, chunk.String())
			chunk.Reset()
		}
		chunk.WriteString(line)
	}
	if chunk.Len() > 0 {
		chunks = append(chunks, chunk.String())
	}
	return chunks
}
