// AngelaMos | 2026
// input.go

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

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// readLine reads one line and trims it. A final line without a newline is
// returned as is; io.EOF is only reported once nothing is left.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptText(reader *bufio.Reader, w io.Writer, label string) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", label); err != nil {
		return "", err
	}
	return readLine(reader)
}

// promptDefault returns def when the user just presses Enter.
func promptDefault(reader *bufio.Reader, w io.Writer, label, def string) (string, error) {
	if _, err := fmt.Fprintf(w, "%s [%s]: ", label, def); err != nil {
		return "", err
	}
	v, err := readLine(reader)
	if err != nil {
		return "", err
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}

// promptYesNo treats anything other than y or yes as def.
func promptYesNo(reader *bufio.Reader, w io.Writer, question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	if _, err := fmt.Fprintf(w, "%s %s ", question, hint); err != nil {
		return false, err
	}

	v, err := readLine(reader)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(v) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return def, nil
	}
}

// promptPassword reads without echo when stdin is a terminal and falls back
// to a plain line otherwise.
func promptPassword(reader *bufio.Reader, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "Password: "); err != nil {
		return "", err
	}

	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return readLine(reader)
	}

	pw, err := readPassword(fd)
	fmt.Fprintln(w) //nolint:errcheck // cosmetic newline
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
