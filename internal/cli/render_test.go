package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"masterplan/internal/core"
)

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Expenses",
		Headers: []string{"Description", "Amount"},
		Rows: [][]string{
			{"Groceries", "Rp 250.000"},
			{"---"},
			{"Total", "Rp 1.250.000"},
		},
	})

	for _, want := range []string{"Expenses", "Groceries", "Rp 1.250.000", "╭", "╯"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderTable() missing %q in:\n%s", want, out)
		}
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")[1:] // skip title
	if len(lines) != 7 {
		t.Fatalf("RenderTable() rendered %d lines, want 7:\n%s", len(lines), out)
	}
	width := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != width {
			t.Errorf("line %d width = %d, want %d", i, w, width)
		}
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Errorf("RenderTable(empty) = %q, want empty", got)
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		pct    float64
		filled int
		suffix string
	}{
		{0, 0, "0.0%"},
		{50, 10, "50.0%"},
		{150, 20, "100.0%"},
		{-5, 0, "0.0%"},
	}
	for _, tt := range tests {
		got := RenderProgressBar(tt.pct, 20)
		if n := strings.Count(got, "█"); n != tt.filled {
			t.Errorf("RenderProgressBar(%v) filled = %d, want %d", tt.pct, n, tt.filled)
		}
		if !strings.HasSuffix(got, tt.suffix) {
			t.Errorf("RenderProgressBar(%v) = %q, want suffix %q", tt.pct, got, tt.suffix)
		}
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 4, 8}); got != "▁▄█" {
		t.Errorf("RenderSparkline() = %q, want ▁▄█", got)
	}
	if got := RenderSparkline([]float64{-3, 0}); got != "▁▁" {
		t.Errorf("RenderSparkline(non-positive) = %q", got)
	}
	if RenderSparkline(nil) != "" {
		t.Error("RenderSparkline(nil) should be empty")
	}
}

func TestFormatters(t *testing.T) {
	tests := []struct {
		name, got, want string
	}{
		{"days", FormatDays(1095), "1.095 days"},
		{"one day", FormatDays(1), "1 day"},
		{"negative days", FormatDays(-1200), "-1.200 days"},
		{"percent", FormatPercent(2.5), "2.5%"},
		{"signed positive", FormatSigned(16_000_000), "+Rp 16.000.000"},
		{"signed negative", FormatSigned(-25_000), "-Rp 25.000"},
		{"truncate", Truncate("Monthly groceries", 8), "Monthly…"},
		{"no truncate", Truncate("Rent", 8), "Rent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestPromptConfirmer(t *testing.T) {
	var out bytes.Buffer
	p := NewPromptConfirmer(strings.NewReader("y\nno\nYES\n"), &out)
	start, end := core.NewDate(2025, 6, 1), core.NewDate(2025, 1, 1)

	if !p.ConfirmSwap(start, end) {
		t.Error("ConfirmSwap() = false for \"y\"")
	}
	if p.ConfirmFutureStart(start) {
		t.Error("ConfirmFutureStart() = true for \"no\"")
	}
	if !p.ConfirmFarEnd(end) {
		t.Error("ConfirmFarEnd() = false for \"YES\"")
	}
	// Input exhausted.
	if p.ConfirmSwap(start, end) {
		t.Error("ConfirmSwap() = true at EOF")
	}
	if !strings.Contains(out.String(), "2025-01-01 is before start date 2025-06-01") {
		t.Errorf("prompt text = %q", out.String())
	}
}
