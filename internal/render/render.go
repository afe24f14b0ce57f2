// Package render picks one key of a secret's payload and turns its value
// into displayable text.
package render

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/szaher/ksecret/internal/cluster"
	"github.com/szaher/ksecret/internal/prompt"
)

// KeyTitle is the pick-list heading for payload keys.
const KeyTitle = "Select key for secret to show"

var (
	// ErrPayloadMissing is returned for a secret without any payload.
	ErrPayloadMissing = errors.New("secret has no data")

	// ErrKeyVanished is returned when the selected key is not in the payload.
	ErrKeyVanished = errors.New("selected key not present in secret data")

	// ErrDecode is returned when a value is not valid UTF-8.
	ErrDecode = errors.New("value is not valid UTF-8 text")
)

// Entry is one decoded key/value pair of a secret.
type Entry struct {
	Namespace string `json:"namespace"`
	Secret    string `json:"secret"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

// Redactor is told about every decoded value so it can keep it out of logs.
type Redactor interface {
	AddSecret(value string)
}

// Renderer asks for a payload key and decodes its value.
type Renderer struct {
	selector prompt.Selector
	redactor Redactor
}

// New creates a Renderer. redactor may be nil.
func New(selector prompt.Selector, redactor Redactor) *Renderer {
	return &Renderer{selector: selector, redactor: redactor}
}

// Render prompts for one key of s and returns the decoded entry.
func (r *Renderer) Render(ctx context.Context, s *cluster.Secret) (Entry, error) {
	if s == nil || s.Data == nil {
		return Entry{}, ErrPayloadMissing
	}

	keys := make([]string, 0, len(s.Data))
	for k := range s.Data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	key, err := r.selector.Select(ctx, KeyTitle, keys)
	if err != nil {
		return Entry{}, err
	}

	raw, ok := s.Data[key]
	if !ok {
		return Entry{}, fmt.Errorf("%q: %w", key, ErrKeyVanished)
	}

	value, err := Decode(raw)
	if err != nil {
		return Entry{}, fmt.Errorf("key %q: %w", key, err)
	}
	if r.redactor != nil {
		r.redactor.AddSecret(value)
	}

	return Entry{
		Namespace: s.Namespace,
		Secret:    s.Name,
		Key:       key,
		Value:     value,
	}, nil
}

// Decode validates raw as UTF-8 and returns it as a string. Invalid input
// is rejected, never replaced.
func Decode(raw []byte) (string, error) {
	out, n, err := transform.Bytes(encoding.UTF8Validator, raw)
	if err != nil {
		return "", fmt.Errorf("%w (at byte %d): %v", ErrDecode, n, err)
	}
	return string(out), nil
}
