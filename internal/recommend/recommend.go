package recommend

import "github.com/haneulpalette/haneul/internal/analysis"

// cell resolves a table position, falling back to Neutral×Medium for labels
// outside the closed domain.
func cell(u analysis.Undertone, d analysis.Depth) (analysis.Undertone, analysis.Depth) {
	if !validUndertone(u) || !validDepth(d) {
		return analysis.Neutral, analysis.Medium
	}
	return u, d
}

func validUndertone(u analysis.Undertone) bool {
	return u >= 0 && int(u) < len(outfits)
}

func validDepth(d analysis.Depth) bool {
	return d >= 0 && int(d) < len(palettes[0])
}

// PaletteFor returns the six-colour starter palette for (u, d). The result is
// a copy and may be modified by the caller.
func PaletteFor(u analysis.Undertone, d analysis.Depth) Palette {
	u, d = cell(u, d)
	row := palettes[u][d]
	return append(Palette(nil), row[:]...)
}

// MakeupFor returns the makeup suggestion for (u, d).
func MakeupFor(u analysis.Undertone, d analysis.Depth) Makeup {
	u, d = cell(u, d)
	return makeups[u][d]
}

// OutfitFor returns three clothing colours for u. Depth does not affect
// outfit colours.
func OutfitFor(u analysis.Undertone) Palette {
	if !validUndertone(u) {
		u = analysis.Neutral
	}
	row := outfits[u]
	return append(Palette(nil), row[:]...)
}

// Explain returns a one-sentence description of u for display.
func Explain(u analysis.Undertone) string {
	if !validUndertone(u) {
		u = analysis.Neutral
	}
	return explanations[u]
}

// Report bundles an analysis result with its recommendations. It holds only
// strings and labels so renderers and exporters never need to re-analyse.
type Report struct {
	analysis.Result
	Explanation string  `json:"undertone_explanation"`
	Palette     Palette `json:"palette"`
	Makeup      Makeup  `json:"makeup"`
	Outfit      Palette `json:"outfit"`
}

// Build looks up every recommendation for res.
func Build(res analysis.Result) Report {
	return Report{
		Result:      res,
		Explanation: Explain(res.Undertone),
		Palette:     PaletteFor(res.Undertone, res.Depth),
		Makeup:      MakeupFor(res.Undertone, res.Depth),
		Outfit:      OutfitFor(res.Undertone),
	}
}
