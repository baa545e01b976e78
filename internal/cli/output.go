package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Palette follows Vitesse Dark Soft.
var (
	styleName    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4d9375"))
	stylePath    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6394bf"))
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("#bfbaaa"))
	styleBadge   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e6cc77"))
	styleMissing = lipgloss.NewStyle().Foreground(lipgloss.Color("#cb7676"))
)

type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(s); f {
	case formatText, formatJSON, formatYAML:
		return f, nil
	case "":
		return formatText, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, f outputFormat, v any) error {
	switch f {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("format %q is not structured", f)
}
