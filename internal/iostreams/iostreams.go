// Package iostreams bundles the process streams so commands can be run
// against buffers in tests.
package iostreams

import (
	"bytes"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

const (
	defaultWidth  = 120
	defaultHeight = 24
)

type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// GetOSIOStreams returns the process stdin, stdout and stderr.
func GetOSIOStreams() *IOStreams {
	return &IOStreams{
		In:     os.Stdin,
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}
}

// NewTestIOStreams returns buffer-backed streams and the buffers.
func NewTestIOStreams() (*IOStreams, *bytes.Buffer, *bytes.Buffer, *bytes.Buffer) {
	in := &bytes.Buffer{}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &IOStreams{In: in, Out: out, ErrOut: errOut}, in, out, errOut
}

type fdProvider interface {
	Fd() uintptr
}

func getFD(w any) (uintptr, bool) {
	if fp, ok := w.(fdProvider); ok {
		fd := fp.Fd()
		if fd == ^uintptr(0) {
			return 0, false
		}
		return fd, true
	}
	return 0, false
}

// IsTerminal reports whether both stdin and stdout are terminals, which an
// interactive session needs.
func (s *IOStreams) IsTerminal() bool {
	in, okIn := getFD(s.In)
	out, okOut := getFD(s.Out)
	return okIn && okOut && isTerminal(in) && isTerminal(out)
}

// Size reports the terminal size of Out, or 120x24 when Out is not a
// terminal.
func (s *IOStreams) Size() (width, height int) {
	fd, ok := getFD(s.Out)
	if !ok {
		return defaultWidth, defaultHeight
	}
	if w, h, err := term.GetSize(int(fd)); err == nil && w > 0 {
		return w, h
	}
	return defaultWidth, defaultHeight
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
