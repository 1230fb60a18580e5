package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// buildSentence renders one RAG sentence for a preferred, Tier-1 fact.
// label falls back to the concept name when the concept's dictionary
// entry has no label.
func buildSentence(entityName, label string, f Fact) string {
	if label == "" {
		label = f.Concept
	}

	return fmt.Sprintf(
		"%s reported %s = %s %s %s (Form %s, filed %s, accession %s).",
		entityName, label, formatValue(f.Value), f.Unit, periodPhrase(f),
		f.Form, f.FiledDate, f.AccessionNumber,
	)
}

// periodPhrase renders the period clause: a range for duration facts,
// an as-of date for instant facts.
func periodPhrase(f Fact) string {
	if f.PeriodType == "duration" && f.StartDate != "" {
		return fmt.Sprintf("for period %s to %s", f.StartDate, f.EndDate)
	}
	return fmt.Sprintf("as of %s", f.EndDate)
}

// formatValue renders v as a thousands-grouped integer when it has no
// fractional part, otherwise thousands-grouped with two decimals.
// There is no suitable third-party grouping helper in the available
// dependency set for this narrow, fixed-locale (comma, period) need,
// so the grouping is hand-rolled rather than pulled from golang.org/x/text.
func formatValue(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	var whole string
	var frac string
	if v == math.Trunc(v) {
		whole = strconv.FormatInt(int64(v), 10)
	} else {
		s := strconv.FormatFloat(v, 'f', 2, 64)
		parts := strings.SplitN(s, ".", 2)
		whole = parts[0]
		frac = parts[1]
	}

	grouped := groupThousands(whole)
	if frac != "" {
		grouped = grouped + "." + frac
	}
	if neg {
		grouped = "-" + grouped
	}
	return grouped
}

// groupThousands inserts commas every three digits from the right.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
