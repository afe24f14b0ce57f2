package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestWithCorrelationID_Explicit(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "run-1")
	if got := CorrelationID(ctx); got != "run-1" {
		t.Errorf("CorrelationID = %q, want %q", got, "run-1")
	}
}

func TestWithCorrelationID_GeneratesULID(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "")
	id := CorrelationID(ctx)
	if _, err := ulid.ParseStrict(id); err != nil {
		t.Errorf("generated id %q is not a ULID: %v", id, err)
	}
}

func TestCorrelationID_Missing(t *testing.T) {
	if got := CorrelationID(context.Background()); got != "" {
		t.Errorf("CorrelationID = %q, want empty", got)
	}
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	quiet := NewLogger(&buf, false, nil)
	quiet.Debug("hidden")
	quiet.Info("hidden too")
	if buf.Len() != 0 {
		t.Errorf("non-verbose logger wrote %q", buf.String())
	}

	loud := NewLogger(&buf, true, nil)
	loud.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("verbose logger dropped debug: %q", buf.String())
	}
}

func TestInvocationLogger_Attrs(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithCorrelationID(context.Background(), "abc")
	logger := InvocationLogger(ctx, NewLogger(&buf, true, NewRedactFilter()), "ksecret")

	logger.Debug("hello")

	out := buf.String()
	if !strings.Contains(out, "command=ksecret") || !strings.Contains(out, "correlation_id=abc") {
		t.Errorf("missing invocation attrs: %s", out)
	}
}
