package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"claudewarp/internal/tui"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// errCancelled is returned when the user aborts a prompt
var errCancelled = errors.New("cancelled")

// prompter asks the user for input
type prompter interface {
	Ask(label, def string) (string, error)
	AskSecret(label string) (string, error)
	Confirm(label string, def bool) (bool, error)
	Close() error
}

// Overridden in tests
var (
	isInteractive = tui.IsTerminal
	newPrompter   = func() (prompter, error) { return newTerminalPrompter() }
)

type terminalPrompter struct {
	rl *readline.Instance
}

func newTerminalPrompter() (*terminalPrompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		Stdout:          os.Stderr,
		Stderr:          os.Stderr,
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open terminal: %w", err)
	}
	return &terminalPrompter{rl: rl}, nil
}

func (p *terminalPrompter) Ask(label, def string) (string, error) {
	prompt := label + ": "
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, def)
	}
	p.rl.SetPrompt(prompt)

	line, err := p.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", errCancelled
	}
	if err != nil {
		return "", err
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// AskSecret reads a line without echo
func (p *terminalPrompter) AskSecret(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", errCancelled
	}
	return strings.TrimSpace(string(b)), nil
}

func (p *terminalPrompter) Confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	answer, err := p.Ask(fmt.Sprintf("%s (%s)", label, hint), "")
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (p *terminalPrompter) Close() error {
	return p.rl.Close()
}

// confirm asks a yes/no question, refusing when stdin is not a terminal
func confirm(label string, def bool) (bool, error) {
	if !isInteractive() {
		return false, fmt.Errorf("confirmation required; re-run with --force")
	}
	p, err := newPrompter()
	if err != nil {
		return false, err
	}
	defer p.Close()
	return p.Confirm(label, def)
}
