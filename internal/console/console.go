// Package console provides operator input and colored output helpers
// for the interactive tools.
package console

import (
	"bufio"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Colored sprint helpers shared by the CLIs.
var (
	Pass   = color.New(color.FgGreen, color.Bold).SprintFunc()
	Fail   = color.New(color.FgRed, color.Bold).SprintFunc()
	Warn   = color.New(color.FgYellow).SprintFunc()
	Accent = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// LineReader supplies operator input one line at a time.
// Implementations return io.EOF when input is exhausted.
type LineReader interface {
	ReadLine() (string, error)
}

// Reader reads whitespace-trimmed lines from an io.Reader
// (normally os.Stdin).
type Reader struct {
	s *bufio.Scanner
}

// NewReader wraps r in a line reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{s: bufio.NewScanner(r)}
}

// ReadLine returns the next input line with surrounding whitespace removed.
func (r *Reader) ReadLine() (string, error) {
	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(r.s.Text()), nil
}
