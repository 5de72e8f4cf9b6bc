// AngelaMos | 2026
// input_test.go

package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func stubTerminal(t *testing.T, terminal bool, password string) {
	t.Helper()
	origTerm, origRead := isTerminal, readPassword
	isTerminal = func(int) bool { return terminal }
	readPassword = func(int) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		isTerminal, readPassword = origTerm, origRead
	})
}

func TestReadLine(t *testing.T) {
	r := reader("  first  \nlast")

	line, err := readLine(r)
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = readLine(r)
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = readLine(r)
	assert.ErrorIs(t, err, io.EOF)
}

func TestPromptDefault(t *testing.T) {
	var out bytes.Buffer
	r := reader("\nOnsite\n")

	v, err := promptDefault(r, &out, "Type", "Remote")
	require.NoError(t, err)
	assert.Equal(t, "Remote", v)

	v, err = promptDefault(r, &out, "Type", "Remote")
	require.NoError(t, err)
	assert.Equal(t, "Onsite", v)
	assert.Contains(t, out.String(), "Type [Remote]: ")
}

func TestPromptYesNo(t *testing.T) {
	cases := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"no\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"maybe\n", false, false},
	}

	for _, tc := range cases {
		var out bytes.Buffer
		got, err := promptYesNo(reader(tc.input), &out, "Continue?", tc.def)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "input %q default %v", tc.input, tc.def)
	}
}

func TestPromptYesNo_EOF(t *testing.T) {
	_, err := promptYesNo(reader(""), io.Discard, "Continue?", true)
	assert.True(t, errors.Is(err, io.EOF))
}

func TestPromptPassword(t *testing.T) {
	t.Run("piped", func(t *testing.T) {
		stubTerminal(t, false, "")
		var out bytes.Buffer
		pw, err := promptPassword(reader("hunter22\n"), &out)
		require.NoError(t, err)
		assert.Equal(t, "hunter22", pw)
		assert.Equal(t, "Password: ", out.String())
	})

	t.Run("terminal", func(t *testing.T) {
		stubTerminal(t, true, "s3cret!")
		r := reader("left alone\n")
		pw, err := promptPassword(r, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, "s3cret!", pw)

		rest, err := readLine(r)
		require.NoError(t, err)
		assert.Equal(t, "left alone", rest)
	})
}
