// ABOUTME: Output helpers shared by CLI commands
// ABOUTME: Structured JSON/YAML encoding and YAML or JSON input file loading

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/markalston/evse-calc/cli/internal/tui/styles"
	"gopkg.in/yaml.v3"
)

// writeStructured writes v as JSON or YAML according to the output format.
// It reports false when the format is text and the caller should render.
func writeStructured(w io.Writer, v any) (bool, error) {
	switch OutputFormat() {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, err
		}
		fmt.Fprintln(w, string(data))
		return true, nil
	case "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		if err := enc.Close(); err != nil {
			return true, err
		}
		fmt.Fprint(w, buf.String())
		return true, nil
	default:
		return false, nil
	}
}

// loadInputFile decodes a YAML (or JSON) file into v. Unknown keys are errors.
func loadInputFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// printError writes an error line in the style used by every command.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}

// bulletList renders a titled list, or nothing when items is empty.
func bulletList(title string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(styles.Heading.Render(title))
	sb.WriteString("\n")
	for _, item := range items {
		sb.WriteString("  • ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	return sb.String()
}
