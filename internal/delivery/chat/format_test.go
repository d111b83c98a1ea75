package chat

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cosmicreseller/backend/internal/domain"
)

func TestFormatResult(t *testing.T) {
	t.Run("formats average and deal lines", func(t *testing.T) {
		result := &domain.FilterResult{
			AveragePrice: 216.67,
			CheapItems: []domain.ParsedListing{
				{Title: "Road bike", Price: 120, URL: "https://example.com/1"},
				{Title: "City bike", Price: 95.5, URL: "https://example.com/2"},
			},
		}

		msg := FormatResult(result)

		if !strings.Contains(msg, "Average Market Price: £216.67") {
			t.Errorf("missing average line: %q", msg)
		}
		if !strings.Contains(msg, "- Road bike (https://example.com/1) - £120") {
			t.Errorf("missing first deal line: %q", msg)
		}
		if !strings.Contains(msg, "£96") { // %.0f rounds
			t.Errorf("missing rounded price for second deal: %q", msg)
		}
	})

	t.Run("reports no deals", func(t *testing.T) {
		if got := FormatResult(&domain.FilterResult{AveragePrice: 100}); got != "No cheap items found." {
			t.Errorf("FormatResult = %q", got)
		}
		if got := FormatResult(nil); got != "No cheap items found." {
			t.Errorf("FormatResult(nil) = %q", got)
		}
	})
}

func TestSplitMessage(t *testing.T) {
	t.Run("short message is one chunk", func(t *testing.T) {
		chunks := SplitMessage("hello\nworld\n", 100)
		if len(chunks) != 1 {
			t.Fatalf("chunks = %d, want 1", len(chunks))
		}
	})

	t.Run("splits on line boundaries under the limit", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < 100; i++ {
			fmt.Fprintf(&b, "- deal number %03d - £42\n", i)
		}
		msg := b.String()

		chunks := SplitMessage(msg, 200)

		if len(chunks) < 2 {
			t.Fatalf("chunks = %d, want several", len(chunks))
		}
		var total int
		for _, chunk := range chunks {
			if len(chunk) > 200 {
				t.Errorf("chunk length %d exceeds limit", len(chunk))
			}
			if !strings.HasSuffix(chunk, "\n") {
				t.Errorf("chunk does not end on a line boundary: %q", chunk)
			}
			total += len(chunk)
		}
		if total != len(msg) {
			t.Errorf("chunks lose content: total %d, want %d", total, len(msg))
		}
	})
}
