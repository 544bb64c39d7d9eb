package loader

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Fit scales img down so that neither side exceeds maxSide, keeping the
// aspect ratio. Smaller images and a non-positive maxSide return img as is.
func Fit(img image.Image, maxSide int) image.Image {
	if img == nil || maxSide <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return img
	}

	if w >= h {
		h = max(1, h*maxSide/w)
		w = maxSide
	} else {
		w = max(1, w*maxSide/h)
		h = maxSide
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Placeholder draws the default cover: a vertical grey gradient with a
// lighter frame.
func Placeholder(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		shade := uint8(70 + 60*y/max(1, h))
		for x := 0; x < w; x++ {
			c := color.RGBA{R: shade, G: shade, B: shade, A: 0xff}
			if x < 2 || y < 2 || x >= w-2 || y >= h-2 {
				c = color.RGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
