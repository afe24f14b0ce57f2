package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"sigs.k8s.io/yaml"
)

// Format is an output format for an Entry.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat validates a format name. Empty selects text.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}
	for _, f := range Formats {
		if Format(strings.ToLower(s)) == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
}

// Writer prints entries in one format.
type Writer struct {
	format Format
	label  *color.Color
}

// NewWriter creates a Writer. Colour applies to text output only.
func NewWriter(format Format, colored bool) *Writer {
	label := color.New(color.FgCyan, color.Bold)
	if colored {
		label.EnableColor()
	} else {
		label.DisableColor()
	}
	return &Writer{format: format, label: label}
}

// Write prints e to w.
func (wr *Writer) Write(w io.Writer, e Entry) error {
	switch wr.format {
	case FormatJSON:
		data, err := json.MarshalIndent(e, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case FormatYAML:
		data, err := yaml.Marshal(e)
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		_, err := fmt.Fprintf(w, "%s %q, %s %q\n", wr.label.Sprint("key:"), e.Key, wr.label.Sprint("value:"), e.Value)
		return err
	}
}
