package ui

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ReflectionStartAlpha is the opacity of the reflection row right under the image.
const ReflectionStartAlpha = 0x60

// WithReflection returns img with a mirrored band of fraction*height rows
// appended below it, fading out towards the bottom.
func WithReflection(img image.Image, fraction float32) image.Image {
	if img == nil || fraction <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rh := min(int(float32(h)*fraction), h)
	if w == 0 || rh < 1 {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h+rh))
	draw.Draw(dst, image.Rect(0, 0, w, h), img, b.Min, draw.Src)
	for y := 0; y < rh; y++ {
		alpha := uint8(ReflectionStartAlpha * (rh - y) / rh)
		mask := image.NewUniform(color.Alpha{A: alpha})
		row := image.Rect(0, h+y, w, h+y+1)
		draw.DrawMask(dst, row, img, image.Pt(b.Min.X, b.Max.Y-1-y), mask, image.Point{}, draw.Over)
	}
	return dst
}
