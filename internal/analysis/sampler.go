package analysis

import (
	"image"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/haneulpalette/haneul/internal/colour"
)

// Pixels with any channel at or below FilterLow, or at or above FilterHigh,
// are dropped from samples. This removes clipped shadows and highlights
// (including the white letterbox) rather than doing any skin detection.
const (
	FilterLow  = 10
	FilterHigh = 250
)

var (
	// FallbackSample is the mean returned when a patch keeps no pixels.
	FallbackSample = ColorSample{R: 190, G: 170, B: 150}

	// FallbackPixel stands in for the pixel list of a patch that keeps no pixels.
	FallbackPixel = colour.RGB{R: 200, G: 180, B: 160}
)

// Patch is a square sampling request in canvas-relative coordinates.
// CX and CY are the centre as fractions of width and height; Size is the
// side length as a fraction of min(width, height).
type Patch struct {
	CX, CY float64
	Size   float64
}

// Rect returns the pixel rectangle covered by p on a w×h raster. The top-left
// corner is clamped to zero and the rectangle is clipped to the raster.
func (p Patch) Rect(w, h int) image.Rectangle {
	size := int(math.Floor(float64(min(w, h)) * p.Size))
	x := max(0, int(math.Floor(p.CX*float64(w)-float64(size)/2)))
	y := max(0, int(math.Floor(p.CY*float64(h)-float64(size)/2)))
	return image.Rect(x, y, x+size, y+size).Intersect(image.Rect(0, 0, w, h))
}

// ColorSample is an averaged colour with channels in [0, 255].
type ColorSample struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// RedBlue returns R minus B.
func (c ColorSample) RedBlue() float64 {
	return c.R - c.B
}

// Luminance returns the BT.709 luminance of c.
func (c ColorSample) Luminance() float64 {
	return Luminance(c.R, c.G, c.B)
}

// Distance returns the Euclidean RGB distance between c and p.
func (c ColorSample) Distance(p colour.RGB) float64 {
	a := [3]float64{c.R, c.G, c.B}
	b := [3]float64{float64(p.R), float64(p.G), float64(p.B)}
	return floats.Distance(a[:], b[:], 2)
}

// RGB rounds c to 8-bit channels.
func (c ColorSample) RGB() colour.RGB {
	return colour.RGB{R: round8(c.R), G: round8(c.G), B: round8(c.B)}
}

func round8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v)))) // #nosec G115 - clamped to [0, 255]
}

// Sample is the outcome of reading one patch: the kept pixels and their mean.
// When no pixel survives filtering, Pixels holds only FallbackPixel, Mean is
// FallbackSample and Fallback is set.
type Sample struct {
	Mean     ColorSample
	Pixels   []colour.RGB
	Fallback bool
}

// Luminances returns the luminance of every pixel in the sample.
func (s Sample) Luminances() []float64 {
	out := make([]float64, len(s.Pixels))
	for i, p := range s.Pixels {
		out[i] = Luminance(float64(p.R), float64(p.G), float64(p.B))
	}
	return out
}

// SamplePatch reads p from r once and derives both the filtered pixel list
// and its mean from that single read.
func SamplePatch(r Raster, p Patch) Sample {
	rect := p.Rect(r.Width(), r.Height())
	pixels := make([]colour.RGB, 0, rect.Dx()*rect.Dy())
	var sr, sg, sb float64

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			px := r.RGB(x, y)
			if !keep(px) {
				continue
			}
			pixels = append(pixels, px)
			sr += float64(px.R)
			sg += float64(px.G)
			sb += float64(px.B)
		}
	}

	if len(pixels) == 0 {
		return Sample{
			Mean:     FallbackSample,
			Pixels:   []colour.RGB{FallbackPixel},
			Fallback: true,
		}
	}

	n := float64(len(pixels))
	return Sample{
		Mean:   ColorSample{R: sr / n, G: sg / n, B: sb / n},
		Pixels: pixels,
	}
}

// AverageColor returns the filtered mean colour of p.
func AverageColor(r Raster, p Patch) ColorSample {
	return SamplePatch(r, p).Mean
}

// PatchPixels returns the filtered pixels of p.
func PatchPixels(r Raster, p Patch) []colour.RGB {
	return SamplePatch(r, p).Pixels
}

// MeanOf returns the arithmetic mean of pixels. An empty list yields
// FallbackSample.
func MeanOf(pixels []colour.RGB) ColorSample {
	if len(pixels) == 0 {
		return FallbackSample
	}
	var sr, sg, sb float64
	for _, p := range pixels {
		sr += float64(p.R)
		sg += float64(p.G)
		sb += float64(p.B)
	}
	n := float64(len(pixels))
	return ColorSample{R: sr / n, G: sg / n, B: sb / n}
}

func keep(p colour.RGB) bool {
	return p.R > FilterLow && p.G > FilterLow && p.B > FilterLow &&
		p.R < FilterHigh && p.G < FilterHigh && p.B < FilterHigh
}
