package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"masterplan/internal/core"
)

// PromptConfirmer asks timeline questions on a terminal. Anything but an
// explicit yes declines.
type PromptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPromptConfirmer(in io.Reader, out io.Writer) *PromptConfirmer {
	return &PromptConfirmer{in: bufio.NewReader(in), out: out}
}

func (p *PromptConfirmer) ConfirmSwap(start, end core.Date) bool {
	return p.Confirm(fmt.Sprintf("End date %s is before start date %s. Swap them?", end, start))
}

func (p *PromptConfirmer) ConfirmFutureStart(start core.Date) bool {
	return p.Confirm(fmt.Sprintf("Start date %s is in the future. Continue?", start))
}

func (p *PromptConfirmer) ConfirmFarEnd(end core.Date) bool {
	return p.Confirm(fmt.Sprintf("End date %s is more than 100 years away. Continue?", end))
}

// Confirm asks a yes/no question.
func (p *PromptConfirmer) Confirm(question string) bool {
	fmt.Fprintf(p.out, "  %s [y/N]: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "ya":
		return true
	default:
		return false
	}
}
