// Package recommend maps analysis labels to curated colour palettes, makeup
// and outfit suggestions.
//
// All tables are package-level constants indexed by the closed label types
// from package analysis; they are never mutated and need no locking.
package recommend

import "github.com/haneulpalette/haneul/internal/analysis"

// Palette is an ordered list of "#rrggbb" codes. Order is display order.
type Palette []string

// Makeup is a lipstick, blush and eyeliner suggestion.
type Makeup struct {
	LipName      string `json:"lip_name"`
	LipHex       string `json:"lip_hex"`
	BlushHex     string `json:"blush_hex"`
	EyelinerName string `json:"eyeliner_name"`
}

// Table sizes.
const (
	PaletteSize = 6
	OutfitSize  = 3
)

// Rows are indexed by undertone, columns by depth.
type (
	paletteTable [3][3][PaletteSize]string
	makeupTable  [3][3]Makeup
	outfitTable  [3][OutfitSize]string
)

var palettes = paletteTable{
	analysis.Warm: {
		analysis.Light:  {"#FFEFD5", "#FFD1A9", "#FFC18E", "#FFB199", "#F4A460", "#D08B5B"},
		analysis.Medium: {"#FFDAB3", "#FFB27A", "#E87A3B", "#D9693A", "#C7623A", "#A84C2E"},
		analysis.Deep:   {"#A0522D", "#8B3A2F", "#7C2F2F", "#5C221A", "#4B1A0F", "#3E1A0D"},
	},
	analysis.Cool: {
		analysis.Light:  {"#E6F0FF", "#CFE3FF", "#BFD6FF", "#B3D1FF", "#9CC7FF", "#7FB7FF"},
		analysis.Medium: {"#9ECFFF", "#7FBFFF", "#5FAFFF", "#4B98E6", "#3B7FBF", "#2F5F9C"},
		analysis.Deep:   {"#24476A", "#203A55", "#192B40", "#112232", "#0C1B2A", "#08141D"},
	},
	analysis.Neutral: {
		analysis.Light:  {"#F5EBDD", "#EADFD1", "#E0D6CA", "#D6CFC3", "#C8BFB2", "#BFAF9E"},
		analysis.Medium: {"#D7C4AE", "#C6A98F", "#B99176", "#9F6F56", "#8B5A46", "#754634"},
		analysis.Deep:   {"#553227", "#43231A", "#331714", "#27120E", "#1C0E0A", "#150A07"},
	},
}

var makeups = makeupTable{
	analysis.Warm: {
		analysis.Light:  {LipName: "peach coral", LipHex: "#FFAB7A", BlushHex: "#FFB3A7", EyelinerName: "brown"},
		analysis.Medium: {LipName: "warm rose", LipHex: "#D96F61", BlushHex: "#E58A76", EyelinerName: "brown"},
		analysis.Deep:   {LipName: "brick red", LipHex: "#8F2B2B", BlushHex: "#AC4B3C", EyelinerName: "deep brown"},
	},
	analysis.Cool: {
		analysis.Light:  {LipName: "soft pink", LipHex: "#F7CFE2", BlushHex: "#F3B7D5", EyelinerName: "grey"},
		analysis.Medium: {LipName: "rosy pink", LipHex: "#D66E9A", BlushHex: "#D97BA6", EyelinerName: "brown or black"},
		analysis.Deep:   {LipName: "berry", LipHex: "#8B2C57", BlushHex: "#8A3B57", EyelinerName: "black"},
	},
	analysis.Neutral: {
		analysis.Light:  {LipName: "nude pink", LipHex: "#E6B7A9", BlushHex: "#E0AFA0", EyelinerName: "brown"},
		analysis.Medium: {LipName: "balanced rose", LipHex: "#C6786B", BlushHex: "#C57A6D", EyelinerName: "brown"},
		analysis.Deep:   {LipName: "muted berry", LipHex: "#7F3E3E", BlushHex: "#7D4D4B", EyelinerName: "black"},
	},
}

var outfits = outfitTable{
	analysis.Warm:    {"#FFD1A9", "#E7A977", "#C97A3A"},
	analysis.Cool:    {"#BFE0FF", "#7FBFFF", "#3B7FBF"},
	analysis.Neutral: {"#D7C4AE", "#A88B6B", "#7A5A3F"},
}

var explanations = [3]string{
	analysis.Warm:    "Warm undertone: your cheek shows stronger red/yellow tones than your neck. Gold jewellery and warm colours suit you.",
	analysis.Cool:    "Cool undertone: your skin has cooler blue/pink signals than your neck. Silver jewellery and cool colours suit you.",
	analysis.Neutral: "Neutral undertone: a mix of warm and cool. You can wear both gold and silver; a balanced colour palette is recommended.",
}
