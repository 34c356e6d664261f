package analysis

import "image"

// FaceShape is the estimated shape with its styling tip.
type FaceShape struct {
	Shape Shape  `json:"name"`
	Tip   string `json:"tip"`

	// Bounds is the bounding box of the skin mask, empty when Unknown.
	Bounds image.Rectangle `json:"-"`
	Ratio  float64         `json:"ratio,omitempty"`
}

// Name returns the display name of the shape.
func (f FaceShape) Name() string {
	return f.Shape.String()
}

// ShapeFor classifies a width/height ratio. Bands are checked from widest
// down with strict comparisons, so a ratio equal to a band edge falls into
// the narrower shape.
func (c Config) ShapeFor(ratio float64) Shape {
	switch {
	case ratio > c.RoundRatio:
		return ShapeRound
	case ratio > c.OvalRatio:
		return ShapeOval
	case ratio > c.HeartRatio:
		return ShapeHeart
	default:
		return ShapeLongSquare
	}
}

// SkinBounds scans r on the configured grid and returns the bounding box of
// points within SkinDistance of ref. The returned rectangle uses inclusive
// grid coordinates in Min and Max; ok is false when fewer than two distinct
// rows or columns matched.
func (c Config) SkinBounds(r Raster, ref ColorSample) (box image.Rectangle, ok bool) {
	w, h := r.Width(), r.Height()
	stride := max(1, c.GridStride)
	minX, minY, maxX, maxY := w, h, 0, 0

	for y := 0; y < h; y += stride {
		for x := 0; x < w; x += stride {
			if ref.Distance(r.RGB(x, y)) >= c.SkinDistance {
				continue
			}
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x)
			maxY = max(maxY, y)
		}
	}

	if maxX <= minX || maxY <= minY {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX, maxY), true
}

// EstimateFaceShape builds a skin mask from the mean of the face patch and
// bins the aspect ratio of its bounding box. An unusable raster yields
// ShapeUnknown.
func (c Config) EstimateFaceShape(r Raster) FaceShape {
	if validRaster(r) != nil {
		return FaceShape{Shape: ShapeUnknown, Tip: ShapeUnknown.Tip()}
	}
	ref := MeanOf(SamplePatch(r, c.Face).Pixels)

	box, ok := c.SkinBounds(r, ref)
	if !ok {
		return FaceShape{Shape: ShapeUnknown, Tip: ShapeUnknown.Tip()}
	}

	ratio := float64(box.Dx()) / float64(box.Dy())
	shape := c.ShapeFor(ratio)
	return FaceShape{
		Shape:  shape,
		Tip:    shape.Tip(),
		Bounds: box,
		Ratio:  ratio,
	}
}

// EstimateFaceShape runs the default estimator over r.
func EstimateFaceShape(r Raster) FaceShape {
	return DefaultConfig().EstimateFaceShape(r)
}
