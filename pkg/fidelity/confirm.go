package fidelity

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Confirmer asks the operator a yes/no question before an order leaves
// the preview screen.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// promptConfirmer writes the prompt and reads one answer line. An empty
// answer counts as yes, matching the enter-to-accept convention.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPromptConfirmer(in io.Reader, out io.Writer) Confirmer {
	return &promptConfirmer{in: bufio.NewReader(in), out: out}
}

func newStdioConfirmer() Confirmer {
	return NewPromptConfirmer(os.Stdin, os.Stdout)
}

func (c *promptConfirmer) Confirm(prompt string) (bool, error) {
	if _, err := fmt.Fprintf(c.out, "%s [Y/n] ", prompt); err != nil {
		return false, fmt.Errorf("unable to write prompt: %w", err)
	}
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("unable to read answer: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "" || answer == "y", nil
}
