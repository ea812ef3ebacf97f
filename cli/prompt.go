// Package cli holds the terminal prompts used by the interactive commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrNoChoices is returned by Choose when there is nothing to pick from.
var ErrNoChoices = errors.New("nothing to choose from")

// Prompter reads answers from Stdin and echoes prompts to Stdout.
// The zero value uses the process terminal.
type Prompter struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

func (p *Prompter) stdin() io.ReadCloser {
	if p == nil || p.Stdin == nil {
		return os.Stdin
	}

	return p.Stdin
}

func (p *Prompter) stdout() io.WriteCloser {
	if p == nil || p.Stdout == nil {
		return os.Stdout
	}

	return p.Stdout
}

// IsExit reports whether err means the user closed the prompt (Ctrl-C or
// Ctrl-D) or the input ran out.
func IsExit(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) ||
		errors.Is(err, promptui.ErrEOF) ||
		errors.Is(err, io.EOF)
}

// Confirm asks a yes/no question. A "no" answer is not an error.
func (p *Prompter) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}

	_, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// StringEmptyOk asks for a line of text that may be blank.
func (p *Prompter) StringEmptyOk(label string) (string, error) {
	prompt := promptui.Prompt{
		Label:  label,
		Stdin:  p.stdin(),
		Stdout: p.stdout(),
	}

	return prompt.Run()
}

// Choose shows items as a menu and returns the index of the one picked.
func (p *Prompter) Choose(label string, items []string) (int, error) {
	if len(items) == 0 {
		return -1, ErrNoChoices
	}

	sel := promptui.Select{
		Label:  label,
		Items:  items,
		Size:   min(len(items), 10), //nolint:mnd
		Stdin:  p.stdin(),
		Stdout: p.stdout(),
	}

	idx, _, err := sel.Run()
	if err != nil {
		return -1, err
	}

	return idx, nil
}

// ParseInt parses a 32-bit integer, ignoring surrounding spaces.
func ParseInt(s string) (int, error) {
	val, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid integer: %w", err)
	}

	return int(val), nil
}
