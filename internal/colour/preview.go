package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 4
)

// Preview returns a solid ANSI block of width cells in colour c.
func Preview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// Swatches renders hex codes as a row. With preview set each code is
// preceded by a colour block; unparseable codes are printed as-is.
func Swatches(hexes []string, preview bool) string {
	parts := make([]string, len(hexes))
	for i, h := range hexes {
		parts[i] = Swatch(h, preview)
	}
	return strings.Join(parts, "  ")
}

// Swatch renders a single hex code, optionally with a colour block.
func Swatch(hex string, preview bool) string {
	if !preview {
		return hex
	}
	rgb, err := ParseHex(hex)
	if err != nil {
		return hex
	}
	return Preview(rgb, defaultWidth) + " " + hex
}
