package parser

import (
	"strings"

	"github.com/shopspring/decimal"
)

// pageLines splits page text into trimmed lines. Blank lines are kept
// because the generic scanner treats them as terminators.
func pageLines(page string) []string {
	if strings.TrimSpace(page) == "" {
		return nil
	}
	raw := strings.Split(page, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, strings.TrimSpace(strings.TrimRight(l, "\r")))
	}
	return lines
}

// documentLines flattens pages into one line sequence in document order.
func documentLines(pages []string) []string {
	var lines []string
	for _, p := range pages {
		lines = append(lines, pageLines(p)...)
	}
	return lines
}

// parseAmount converts a token like "$1,234.56" or "$20.00-" into a signed decimal.
// A trailing minus marks a credit.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if strings.HasSuffix(s, "-") {
		s = "-" + strings.TrimSuffix(s, "-")
	}
	return decimal.NewFromString(s)
}

// joinDescription joins description fragments with single spaces, skipping empties.
func joinDescription(parts []string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func containsAny(text string, needles []string) (string, bool) {
	for _, n := range needles {
		if n != "" && strings.Contains(text, n) {
			return n, true
		}
	}
	return "", false
}

func containsAll(text string, needles []string) bool {
	for _, n := range needles {
		if !strings.Contains(text, n) {
			return false
		}
	}
	return len(needles) > 0
}
