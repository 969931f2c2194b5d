package workflow

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter abstracts interactive terminal input so tests can script answers.
type Prompter interface {
	// Confirm asks a yes/no question. The default answer is no.
	Confirm(question string) (bool, error)
	// AskVersion asks for a version, offering def as the default.
	AskVersion(def string) (string, error)
}

// TerminalPrompter reads answers from an input stream (normally stdin).
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer

	// reader buffers In across prompts so a later prompt does not lose
	// lookahead a previous one buffered.
	reader *bufio.Reader
}

// NewTerminalPrompter returns a prompter attached to stdin/stdout.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stdout}
}

// Confirm asks question and reads a y/N answer. EOF counts as decline.
func (p *TerminalPrompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.Out, "%s (y/N): ", question)

	line, err := p.readLine()
	if err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, fmt.Errorf("reading confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// AskVersion asks for a version string, returning def on an empty answer or EOF.
func (p *TerminalPrompter) AskVersion(def string) (string, error) {
	fmt.Fprintf(p.Out, "Version (default %s): ", def)

	line, err := p.readLine()
	if err != nil {
		if err == io.EOF {
			return def, nil
		}
		return "", fmt.Errorf("reading version: %w", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

func (p *TerminalPrompter) readLine() (string, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}
