package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Encoding formats for Encode.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Encode writes v to w as indented JSON or YAML.
func Encode(w io.Writer, v any, format string) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil

	case FormatYAML:
		// Go through JSON so that json.Number values and custom marshalers
		// come out as plain YAML scalars and maps.
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		var plain any
		if err := json.Unmarshal(b, &plain); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(plain); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
