// Package prompt implements the interactive collaborator the resolution
// engine defers to: supplying a title for a new entry and choosing among
// templates. Prompts are written to one stream and answers read line by
// line from another, so the package stays testable and the CLI can keep
// stdout clean for its own output.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/protesilaos/denote-journal/internal/journal"
)

// Stdin asks on out and reads answers from in.
type Stdin struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a prompter reading answers from r and writing prompts to w.
func New(r io.Reader, w io.Writer) *Stdin {
	return &Stdin{in: bufio.NewReader(r), out: w}
}

var _ journal.Prompter = (*Stdin)(nil)

// Title asks for an entry title. An empty answer keeps the seed.
func (s *Stdin) Title(seed string) (string, error) {
	fmt.Fprintf(s.out, "Entry title [%s]: ", seed)
	line, err := s.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return seed, nil
	}
	return line, nil
}

// ChooseTemplate lists the templates by key and asks for a number. An
// empty answer selects no template.
func (s *Stdin) ChooseTemplate(templates []journal.Template) (journal.Template, error) {
	for i, t := range templates {
		fmt.Fprintf(s.out, "%d) %s\n", i+1, t.Key)
	}
	fmt.Fprint(s.out, "Template number (empty for none): ")
	line, err := s.readLine()
	if err != nil {
		return journal.Template{}, err
	}
	if line == "" {
		return journal.Template{}, nil
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(templates) {
		return journal.Template{}, fmt.Errorf("prompt: invalid template choice %q", line)
	}
	return templates[n-1], nil
}

// readLine returns the next answer, trimmed. EOF with no pending input is
// treated as an empty answer.
func (s *Stdin) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("prompt: read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
