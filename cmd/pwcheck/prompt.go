package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompter asks the user for passwords in interactive mode.
type prompter interface {
	// Password prompts for a password. io.EOF means the input is closed.
	Password(prompt string) (string, error)

	// Confirm asks a yes/no question; anything but "y" or "yes" is no.
	Confirm(prompt string) (bool, error)
}

// linePrompter reads plain, echoed lines.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewReader(in), out: out}
}

func (p *linePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *linePrompter) Password(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	return p.readLine()
}

func (p *linePrompter) Confirm(prompt string) (bool, error) {
	fmt.Fprint(p.out, prompt)
	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// terminalPrompter reads passwords with echo turned off. Answers to
// Confirm are read as plain lines.
type terminalPrompter struct {
	*linePrompter
	fd int
}

func newTerminalPrompter(tty *os.File, out io.Writer) *terminalPrompter {
	return &terminalPrompter{
		linePrompter: newLinePrompter(tty, out),
		fd:           int(tty.Fd()), //nolint:gosec // file descriptors fit in int
	}
}

func (p *terminalPrompter) Password(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
