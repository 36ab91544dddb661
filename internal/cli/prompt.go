// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

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

// ErrEmptyInput is returned when a prompt receives nothing.
var ErrEmptyInput = errors.New("no input provided")

// TerminalPasswordReader prompts on w and reads a password from stdin
// without echo.
func TerminalPasswordReader(w io.Writer) func(prompt string) (string, error) {
	return func(prompt string) (string, error) {
		if err := RequiresTTY("read a password"); err != nil {
			return "", err
		}
		fmt.Fprint(w, prompt)
		passBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(w)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(passBytes), nil
	}
}

// BufferedLineReader prompts on w and reads one line from r.
func BufferedLineReader(r io.Reader, w io.Writer) func(prompt string) (string, error) {
	reader := bufio.NewReader(r)
	return func(prompt string) (string, error) {
		fmt.Fprint(w, prompt)
		return readLine(reader)
	}
}

// readLine returns the next line without its terminator. A final line
// without a newline is accepted.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrEmptyInput
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
