package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/grantgco/reading-library/internal/commands"
)

// promptConfirmer asks yes/no questions on a terminal. End of input cancels.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptConfirmer(in io.Reader, out io.Writer) *promptConfirmer {
	return &promptConfirmer{in: bufio.NewReader(in), out: out}
}

func (p *promptConfirmer) Confirm(prompt string) (commands.Outcome[bool], error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return commands.Outcome[bool]{}, fmt.Errorf("read answer: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		fmt.Fprintln(p.out)
		return commands.Cancelled[bool](), nil
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return commands.Done(true), nil
	default:
		return commands.Done(false), nil
	}
}
