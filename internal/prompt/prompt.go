// Package prompt defines the interactive single-choice pick-list used to
// disambiguate namespaces, secrets and payload keys.
package prompt

import (
	"context"
	"errors"
)

var (
	// ErrNoOptions is returned when a pick-list would have nothing to offer.
	ErrNoOptions = errors.New("no matching options to choose from")

	// ErrAborted is returned when the user cancels a pick-list.
	ErrAborted = errors.New("selection aborted")
)

// Selector presents options under a title and returns the one the user picked.
// Implementations must return ErrNoOptions for an empty option list and
// ErrAborted when the user cancels.
type Selector interface {
	Select(ctx context.Context, title string, options []string) (string, error)
}

// SelectorFunc adapts a plain function to the Selector interface.
type SelectorFunc func(ctx context.Context, title string, options []string) (string, error)

// Select calls f.
func (f SelectorFunc) Select(ctx context.Context, title string, options []string) (string, error) {
	return f(ctx, title, options)
}
