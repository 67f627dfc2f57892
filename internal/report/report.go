package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rogerio-castellano/inventory-store/internal/models"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat maps a user-supplied name to a Format. An empty name means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Write renders every item of inv to w in the given format.
func Write(w io.Writer, inv *models.Inventory, format Format) error {
	switch format {
	case FormatText, "":
		return writeText(w, inv)
	case FormatJSON:
		return writeJSON(w, inv)
	case FormatYAML:
		return writeYAML(w, inv)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeText(w io.Writer, inv *models.Inventory) error {
	var b strings.Builder
	b.WriteString("\n--- Items Report ---\n")
	if inv.Len() == 0 {
		b.WriteString("Inventory is empty.\n")
	}
	for _, it := range inv.Items() {
		fmt.Fprintf(&b, "%s -> %d\n", it.Name, it.Quantity)
	}
	b.WriteString("--------------------\n\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeJSON(w io.Writer, inv *models.Inventory) error {
	out, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}

func writeYAML(w io.Writer, inv *models.Inventory) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(inv.Items()); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}
