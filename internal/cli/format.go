package cli

import (
	"fmt"
	"strconv"
	"strings"

	"masterplan/internal/core"
)

// FormatPercent formats a percentage with one decimal.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDays formats a day count with thousands separators,
// e.g. 1095 -> "1.095 days".
func FormatDays(days int) string {
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	return groupThousands(int64(days)) + " " + unit
}

// FormatSigned formats an amount with an explicit sign, for gaps.
func FormatSigned(a core.Amount) string {
	if a > 0 {
		return "+" + a.Format()
	}
	return a.Format()
}

// Truncate shortens s to n runes, marking the cut with "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func groupThousands(n int64) string {
	if n < 0 {
		return "-" + groupThousands(-n)
	}
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
