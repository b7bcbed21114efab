package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PasswordPrompt asks for one secret line.
type PasswordPrompt func(label string) (string, error)

// TerminalPrompt reads without echo when in is a terminal and falls back to
// plain line reads otherwise, so the command can be scripted.
func TerminalPrompt(in *os.File, out io.Writer) PasswordPrompt {
	if in == nil {
		return func(string) (string, error) {
			return "", errors.New("stdin unavailable")
		}
	}

	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		return func(label string) (string, error) {
			fmt.Fprint(out, label)
			secret, err := term.ReadPassword(fd)
			fmt.Fprintln(out)
			if err != nil {
				return "", err
			}
			return string(secret), nil
		}
	}

	reader := bufio.NewReader(in)
	return func(label string) (string, error) {
		fmt.Fprint(out, label)
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}
