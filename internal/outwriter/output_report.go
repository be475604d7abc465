package outwriter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/scorebench/scorebench/schema"
)

// RenderReport encodes a report in the external JSON contract: two-space
// indentation, struct-order envelope keys, registry-order component keys,
// no HTML escaping so details strings survive verbatim. The trailing
// newline from the encoder is part of the rendered output.
func RenderReport(report *schema.ScoreReport) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	return buf.String(), nil
}

// EmitReport writes the rendered report to stdout and optionally copies it
// to a file. The rendered string is returned even when a write fails, so
// callers keep the report they already paid for.
func EmitReport(report *schema.ScoreReport, outputFile string) (string, error) {
	rendered, err := RenderReport(report)
	if err != nil {
		return "", err
	}

	if _, err := fmt.Print(rendered); err != nil {
		return rendered, err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(rendered), 0o644); err != nil {
			return rendered, fmt.Errorf("failed to write report to %s: %w", outputFile, err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote report to %s\n", outputFile)
	}
	return rendered, nil
}
