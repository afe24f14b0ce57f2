package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
)

// visibleRows caps the height of long pick-lists.
const visibleRows = 15

// Terminal renders pick-lists on a terminal using huh.
type Terminal struct {
	in         io.Reader
	out        io.Writer
	accessible bool
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithInput sets the reader keystrokes are read from.
func WithInput(r io.Reader) Option {
	return func(t *Terminal) { t.in = r }
}

// WithOutput sets the writer the pick-list is drawn on.
func WithOutput(w io.Writer) Option {
	return func(t *Terminal) { t.out = w }
}

// WithAccessible switches to huh's line-based accessible mode, which works
// with screen readers and dumb terminals.
func WithAccessible(on bool) Option {
	return func(t *Terminal) { t.accessible = on }
}

// NewTerminal creates a Terminal drawing on stderr so stdout stays clean
// for the rendered secret.
func NewTerminal(opts ...Option) *Terminal {
	t := &Terminal{in: os.Stdin, out: os.Stderr}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Select shows a filterable single-choice list and blocks until the user
// picks an option or cancels. Closing the input before a choice is made
// counts as cancelling.
func (t *Terminal) Select(ctx context.Context, title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("%s: %w", title, ErrNoOptions)
	}
	if ctx.Err() != nil {
		return "", fmt.Errorf("%s: %w", title, ErrAborted)
	}

	var choice string
	field := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Filtering(true).
		Value(&choice)
	if len(options) > visibleRows {
		field = field.Height(visibleRows)
	}

	// Accessible mode picks the first option once its input runs dry.
	// The TUI keeps the raw reader so bubbletea can put a terminal in raw mode.
	in := t.in
	var tracked *eofReader
	if t.accessible {
		tracked = &eofReader{r: t.in}
		in = tracked
	}

	form := huh.NewForm(huh.NewGroup(field)).
		WithInput(in).
		WithOutput(t.out).
		WithAccessible(t.accessible).
		WithShowHelp(true)

	err := form.RunWithContext(ctx)
	switch {
	case errors.Is(err, huh.ErrUserAborted), errors.Is(err, context.Canceled), ctx.Err() != nil:
		return "", fmt.Errorf("%s: %w", title, ErrAborted)
	case err != nil:
		return "", fmt.Errorf("%s: %w", title, err)
	case tracked != nil && tracked.eof:
		return "", fmt.Errorf("%s: input closed: %w", title, ErrAborted)
	}
	return choice, nil
}

// eofReader records whether the wrapped reader reported io.EOF.
type eofReader struct {
	r   io.Reader
	eof bool
}

func (e *eofReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if errors.Is(err, io.EOF) {
		e.eof = true
	}
	return n, err
}
