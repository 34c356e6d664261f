package image

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// DefaultCanvasSize is the side length of the analysis canvas.
const DefaultCanvasSize = 640

// Letterbox scales src to fit a size×size white canvas, preserving aspect
// ratio, and centres it.
func Letterbox(src image.Image, size int) *image.RGBA {
	if size <= 0 {
		size = DefaultCanvasSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)

	target := FitRect(src.Bounds(), size)
	if target.Empty() {
		return dst
	}
	xdraw.CatmullRom.Scale(dst, target, src, src.Bounds(), xdraw.Over, nil)
	return dst
}

// FitRect returns where an image with bounds b lands on a size×size canvas.
func FitRect(b image.Rectangle, size int) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 || size <= 0 {
		return image.Rectangle{}
	}
	scale := min(float64(size)/float64(w), float64(size)/float64(h))
	sw := int(float64(w)*scale + 0.5)
	sh := int(float64(h)*scale + 0.5)
	x := (size - sw) / 2
	y := (size - sh) / 2
	return image.Rect(x, y, x+sw, y+sh)
}
