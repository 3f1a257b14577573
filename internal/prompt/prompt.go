// Package prompt reads answers typed by the user.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/unicode/norm"
)

// Prompter asks a question and returns the trimmed answer.
// io.EOF is returned when no more input is available.
type Prompter interface {
	Ask(message string) (string, error)
}

// LinePrompter reads one line per question from a reader.
// It works with pipes and redirected files.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a LinePrompter printing questions to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Ask prints message and reads the next line.
func (p *LinePrompter) Ask(message string) (string, error) {
	if _, err := fmt.Fprint(p.out, message); err != nil {
		return "", err
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// SurveyPrompter asks questions with interactive terminal prompts.
type SurveyPrompter struct {
	in  terminal.FileReader
	out terminal.FileWriter
}

// NewSurveyPrompter creates a SurveyPrompter on the given terminal.
func NewSurveyPrompter(in terminal.FileReader, out terminal.FileWriter) *SurveyPrompter {
	return &SurveyPrompter{in: in, out: out}
}

// Ask shows an input prompt. Ctrl+C reads as io.EOF.
func (p *SurveyPrompter) Ask(message string) (string, error) {
	var answer string
	q := &survey.Input{Message: strings.TrimSpace(message)}
	if err := survey.AskOne(q, &answer, survey.WithStdio(p.in, p.out, p.out)); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", io.EOF
		}
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// New returns a SurveyPrompter when in is a terminal and a LinePrompter otherwise.
func New(in *os.File, out *os.File) Prompter {
	if IsTerminal(in) && IsTerminal(out) {
		return NewSurveyPrompter(in, out)
	}
	return NewLinePrompter(in, out)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// NormalizeDigits folds compatibility characters such as full-width
// digits to their ASCII form.
func NormalizeDigits(s string) string {
	return norm.NFKC.String(s)
}
