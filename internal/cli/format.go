package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/haneulpalette/haneul/internal/batch"
	"github.com/haneulpalette/haneul/internal/colour"
	"github.com/haneulpalette/haneul/internal/recommend"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
)

func validFormat(f string) error {
	switch f {
	case formatText, formatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid: text, json)", f)
	}
}

// formatReport renders a single report.
func formatReport(rep recommend.Report, format string, preview bool) (string, error) {
	if format == formatJSON {
		return marshalJSON(rep)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-12s %s (red/blue delta %.1f)\n", "Undertone:", rep.Undertone, rep.Delta)
	fmt.Fprintf(&sb, "%-12s %s (luminance %.1f)\n", "Depth:", rep.Depth, rep.CheekLuminance)
	fmt.Fprintf(&sb, "%-12s %s (contrast %.1f)\n", "Brightness:", rep.Brightness, rep.CheekContrast)
	fmt.Fprintf(&sb, "%-12s %s %s\n", "Cheek:", swatch(rep.Cheek.RGB(), preview), rep.Cheek.RGB())
	fmt.Fprintf(&sb, "%-12s %s %s\n", "Neck:", swatch(rep.Neck.RGB(), preview), rep.Neck.RGB())

	shape := rep.FaceShape.Name()
	if rep.FaceShape.Ratio > 0 {
		shape = fmt.Sprintf("%s (width/height %.2f)", shape, rep.FaceShape.Ratio)
	}
	fmt.Fprintf(&sb, "%-12s %s\n", "Face shape:", shape)
	fmt.Fprintf(&sb, "%-12s %s\n", "", rep.FaceShape.Tip)
	sb.WriteString("\n")

	sb.WriteString(rep.Explanation + "\n\n")
	fmt.Fprintf(&sb, "%-12s %s\n", "Palette:", colour.Swatches(rep.Palette, preview))
	fmt.Fprintf(&sb, "%-12s %s\n", "Outfit:", colour.Swatches(rep.Outfit, preview))
	fmt.Fprintf(&sb, "%-12s %s %s, blush %s, %s eyeliner\n", "Makeup:",
		rep.Makeup.LipName, colour.Swatch(rep.Makeup.LipHex, preview),
		colour.Swatch(rep.Makeup.BlushHex, preview), rep.Makeup.EyelinerName)
	return sb.String(), nil
}

func swatch(c colour.RGB, preview bool) string {
	if !preview {
		return c.Hex()
	}
	return colour.Preview(c, 2) + " " + c.Hex()
}

// batchEntry is the JSON form of one batch item.
type batchEntry struct {
	File   string            `json:"file"`
	Result *recommend.Report `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// formatBatch renders batch results as a summary table or a JSON array.
func formatBatch(items []batch.Item[recommend.Report], format string, preview bool) (string, error) {
	if format == formatJSON {
		entries := make([]batchEntry, len(items))
		for i, it := range items {
			entries[i].File = it.Path
			if it.Err != nil {
				entries[i].Error = it.Err.Error()
				continue
			}
			rep := it.Value
			entries[i].Result = &rep
		}
		return marshalJSON(entries)
	}

	t := NewTable([]string{"FILE", "UNDERTONE", "DEPTH", "BRIGHTNESS", "FACE SHAPE", "PALETTE"})
	t.SetColumnMaxWidth(0, 32)
	for _, it := range items {
		name := filepath.Base(it.Path)
		if it.Err != nil {
			t.AddRow([]string{name, "error: " + it.Err.Error()})
			continue
		}
		rep := it.Value
		lead := rep.Palette
		if len(lead) > 3 {
			lead = lead[:3]
		}
		t.AddRow([]string{
			name,
			rep.Undertone.String(),
			rep.Depth.String(),
			rep.Brightness.String(),
			rep.FaceShape.Name(),
			colour.Swatches(lead, preview),
		})
	}

	out := t.Render()
	if n := batch.Failed(items); n > 0 {
		out += fmt.Sprintf("\n%d of %d images failed\n", n, len(items))
	}
	return out, nil
}

// formatPalette renders the recommendation card for a label pair.
func formatPalette(rep recommend.Report, format string, preview bool) (string, error) {
	if format == formatJSON {
		return marshalJSON(struct {
			Undertone   string           `json:"undertone"`
			Depth       string           `json:"depth"`
			Explanation string           `json:"undertone_explanation"`
			Palette     recommend.Palette `json:"palette"`
			Makeup      recommend.Makeup  `json:"makeup"`
			Outfit      recommend.Palette `json:"outfit"`
		}{rep.Undertone.String(), rep.Depth.String(), rep.Explanation, rep.Palette, rep.Makeup, rep.Outfit})
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s / %s\n\n", rep.Undertone, rep.Depth)
	sb.WriteString(rep.Explanation + "\n\n")
	fmt.Fprintf(&sb, "%-12s %s\n", "Palette:", colour.Swatches(rep.Palette, preview))
	fmt.Fprintf(&sb, "%-12s %s\n", "Outfit:", colour.Swatches(rep.Outfit, preview))
	fmt.Fprintf(&sb, "%-12s %s %s, blush %s, %s eyeliner\n", "Makeup:",
		rep.Makeup.LipName, colour.Swatch(rep.Makeup.LipHex, preview),
		colour.Swatch(rep.Makeup.BlushHex, preview), rep.Makeup.EyelinerName)
	return sb.String(), nil
}

func marshalJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to convert to JSON: %w", err)
	}
	return string(b) + "\n", nil
}
