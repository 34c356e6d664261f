// Package analysis derives cosmetic classifications (undertone, depth,
// brightness and face shape) from a portrait that has already been centred
// onto a square canvas.
//
// Every function in this package is a pure function of the raster it is
// given. Rasters are never mutated, so a single raster may be analysed from
// multiple goroutines at once.
package analysis

import (
	"errors"
	"fmt"
	"image"

	"github.com/haneulpalette/haneul/internal/colour"
)

// ErrInvalidRaster is returned when a raster has no pixel data or zero area.
// It signals a precondition violation by the loader, not a "no skin found"
// outcome.
var ErrInvalidRaster = errors.New("invalid raster")

// Raster is read access to the pixels of a canvas. Coordinates are
// zero-based: x in [0, Width()), y in [0, Height()).
type Raster interface {
	Width() int
	Height() int
	// RGB returns the colour channels at (x, y). Alpha is ignored.
	RGB(x, y int) colour.RGB
}

// ImageRaster adapts an image.Image to the Raster interface.
type ImageRaster struct {
	img    image.Image
	rgba   *image.RGBA
	origin image.Point
	width  int
	height int
}

// NewRaster wraps img. It returns ErrInvalidRaster for a nil image, one
// with zero area, or an *image.RGBA whose Pix does not cover its bounds.
func NewRaster(img image.Image) (*ImageRaster, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidRaster)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: zero area (%dx%d)", ErrInvalidRaster, b.Dx(), b.Dy())
	}

	r := &ImageRaster{
		img:    img,
		origin: b.Min,
		width:  b.Dx(),
		height: b.Dy(),
	}
	if rgba, ok := img.(*image.RGBA); ok {
		if need := rgba.PixOffset(b.Max.X-1, b.Max.Y-1) + 4; need < 0 || len(rgba.Pix) < need {
			return nil, fmt.Errorf("%w: pixel data has %d bytes, bounds need %d", ErrInvalidRaster, len(rgba.Pix), need)
		}
		r.rgba = rgba
	}
	return r, nil
}

// Width returns the raster width in pixels.
func (r *ImageRaster) Width() int { return r.width }

// Height returns the raster height in pixels.
func (r *ImageRaster) Height() int { return r.height }

// RGB returns the colour at (x, y) relative to the raster origin.
func (r *ImageRaster) RGB(x, y int) colour.RGB {
	px, py := r.origin.X+x, r.origin.Y+y
	if r.rgba != nil {
		// Fast path for the letterboxed canvas, avoids the color.Color interface.
		i := r.rgba.PixOffset(px, py)
		p := r.rgba.Pix[i : i+3 : i+3]
		return colour.RGB{R: p[0], G: p[1], B: p[2]}
	}
	return colour.ToRGB(r.img.At(px, py))
}

// validRaster reports whether r can be sampled at all.
func validRaster(r Raster) error {
	if r == nil {
		return fmt.Errorf("%w: nil raster", ErrInvalidRaster)
	}
	if r.Width() <= 0 || r.Height() <= 0 {
		return fmt.Errorf("%w: zero area (%dx%d)", ErrInvalidRaster, r.Width(), r.Height())
	}
	return nil
}
