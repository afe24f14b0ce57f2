// Package resolve narrows a free-form, possibly partial identifier down to a
// single name from a candidate set.
//
// Resolution is a cascade: an empty target browses every candidate, an exact
// match returns immediately, and anything else is fuzzy-scored against the
// candidates and offered as a pick-list of the ones scoring above Threshold.
package resolve

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/szaher/ksecret/internal/prompt"
)

// Threshold is the fuzzy score a candidate must strictly exceed to be offered.
const Threshold = 70

// Titles are the pick-list headings for the two interactive branches.
type Titles struct {
	// Browse is shown when the target is empty and every candidate is listed.
	Browse string
	// Suggest is shown when fuzzy matches are offered for an inexact target.
	Suggest string
}

// Resolver runs the resolution cascade.
type Resolver struct {
	scorer   Scorer
	selector prompt.Selector
	logger   *slog.Logger
}

// New creates a Resolver. A nil logger discards log output.
func New(scorer Scorer, selector prompt.Selector, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{
		scorer:   scorer,
		selector: selector,
		logger:   logger,
	}
}

// Resolve picks one name from candidates for target.
func (r *Resolver) Resolve(ctx context.Context, titles Titles, target string, candidates []string) (string, error) {
	return ResolveFunc(ctx, r, titles, target, candidates, func(s string) string { return s })
}

// ResolveFunc picks one element of candidates for target, comparing and
// presenting candidates by the name function. Names must be unique within
// candidates; the chosen element is looked up by name, not by position.
func ResolveFunc[T any](ctx context.Context, r *Resolver, titles Titles, target string, candidates []T, name func(T) string) (T, error) {
	var zero T

	names := make([]string, len(candidates))
	byName := make(map[string]T, len(candidates))
	for i, c := range candidates {
		names[i] = name(c)
		byName[names[i]] = c
	}

	if target == "" {
		r.logger.Debug("no hint given, listing all candidates", "title", titles.Browse, "candidates", len(names))
		return pick(ctx, r, titles.Browse, names, byName)
	}

	if c, ok := byName[target]; ok {
		r.logger.Debug("exact match", "target", target)
		return c, nil
	}

	var matches []string
	for _, n := range names {
		score, ok := r.scorer.Score(n, target)
		if !ok {
			score = 0
		}
		if score > Threshold {
			matches = append(matches, n)
		}
	}
	r.logger.Debug("fuzzy matched candidates", "target", target, "candidates", len(names), "matches", len(matches))

	if len(matches) == 0 {
		return zero, fmt.Errorf("%q: %w", target, prompt.ErrNoOptions)
	}
	return pick(ctx, r, titles.Suggest, matches, byName)
}

func pick[T any](ctx context.Context, r *Resolver, title string, options []string, byName map[string]T) (T, error) {
	var zero T
	choice, err := r.selector.Select(ctx, title, options)
	if err != nil {
		return zero, err
	}
	c, ok := byName[choice]
	if !ok {
		return zero, fmt.Errorf("selected %q is not a candidate", choice)
	}
	return c, nil
}
