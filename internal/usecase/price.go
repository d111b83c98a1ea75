package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cosmicreseller/backend/internal/domain"
)

// Package-level compiled regex pattern for performance.
// Captures the numeric part of prices like "£1,234.50" or "1 234,50":
// digits, optionally grouped in threes by comma/period/space, optionally
// followed by a final 2-digit decimal group.
var priceRegex = regexp.MustCompile(`[£€$]?\s*([0-9]+(?:[,.\s][0-9]{3})*(?:[,.\s][0-9]{2})?)`)

// nbspReplacer maps non-breaking space variants (NBSP, narrow NBSP, figure
// space) to a plain space so the regex treats them as group separators.
var nbspReplacer = strings.NewReplacer(
	"\u00a0", " ", // no-break space
	"\u202f", " ", // narrow no-break space
	"\u2007", " ", // figure space
)

// ParsePrice converts a raw listing price string into a float64.
//
// Handles:
//
//	"£1,234.50" → 1234.50
//	"1 234,50"  → 1234.50
//	"$2,000"    → 2000.00
//	"2000"      → 2000.00
//
// Every failure mode (no digits, malformed numeral) reports the same
// domain.ErrPriceParse kind.
func ParsePrice(priceText string) (float64, error) {
	cleaned := strings.TrimSpace(nbspReplacer.Replace(priceText))

	match := priceRegex.FindStringSubmatch(cleaned)
	if match == nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrPriceParse, priceText)
	}

	raw := strings.ReplaceAll(match[1], " ", "")
	norm := normalizeSeparators(raw)

	value, err := strconv.ParseFloat(norm, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrPriceParse, priceText)
	}
	return value, nil
}

// normalizeSeparators resolves locale-ambiguous comma/period usage in a
// numeric token. The only-comma case is decided by the length of the final
// comma-delimited group: 3 digits reads as thousands grouping, 2 as a
// decimal part. In the decimal case every comma becomes a period, so a
// token with more than one comma ("1,234,56") yields an invalid numeral
// and fails ParseFloat downstream. This is a heuristic, not a locale
// parser; "1,234" is always read as 1234 even where a locale would mean
// 1.234.
func normalizeSeparators(raw string) string {
	hasComma := strings.Contains(raw, ",")
	hasPeriod := strings.Contains(raw, ".")

	switch {
	case hasComma && hasPeriod:
		// Assume ',' thousands, '.' decimal
		return strings.ReplaceAll(raw, ",", "")
	case hasComma:
		parts := strings.Split(raw, ",")
		last := parts[len(parts)-1]
		if len(last) == 2 {
			// Decimal comma: 1,23 → 1.23
			return strings.ReplaceAll(raw, ",", ".")
		}
		// Thousands grouping (len 3) or ambiguous fallback
		return strings.ReplaceAll(raw, ",", "")
	default:
		return raw
	}
}
