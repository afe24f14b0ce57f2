package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

var sampleEntry = Entry{Namespace: "default", Secret: "app-credentials", Key: "user", Value: "alice"}

func TestWriter_Write_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(FormatText, false).Write(&buf, sampleEntry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "key: \"user\", value: \"alice\"\n"; buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestWriter_Write_TextQuotesControlCharacters(t *testing.T) {
	var buf bytes.Buffer
	e := Entry{Key: "tls.crt", Value: "line1\nline2"}
	if err := NewWriter(FormatText, false).Write(&buf, e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "key: \"tls.crt\", value: \"line1\\nline2\"\n"; buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestWriter_Write_TextColored(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(FormatText, true).Write(&buf, sampleEntry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected ANSI escapes in colored output: %q", buf.String())
	}
	if !strings.Contains(buf.String(), `"alice"`) {
		t.Errorf("value missing from colored output: %q", buf.String())
	}
}

func TestWriter_Write_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(FormatJSON, true).Write(&buf, sampleEntry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got Entry
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if got != sampleEntry {
		t.Errorf("got %+v, want %+v", got, sampleEntry)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("JSON output must not be colored")
	}
}

func TestWriter_Write_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(FormatYAML, false).Write(&buf, sampleEntry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "key: user\nnamespace: default\nsecret: app-credentials\nvalue: alice\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"": FormatText, "text": FormatText, "JSON": FormatJSON, "yaml": FormatYAML}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil {
			t.Errorf("ParseFormat(%q) error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseFormat_Unknown(t *testing.T) {
	if _, err := ParseFormat("table"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
