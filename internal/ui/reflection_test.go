package ui

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stripes is a w×h image whose rows alternate between red and blue.
func stripes(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		c := color.RGBA{R: 0xff, A: 0xff}
		if y%2 == 1 {
			c = color.RGBA{B: 0xff, A: 0xff}
		}
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestWithReflection_Size(t *testing.T) {
	out := WithReflection(stripes(10, 20), 0.5)
	assert.Equal(t, image.Rect(0, 0, 10, 30), out.Bounds())

	full := WithReflection(stripes(10, 20), 1)
	assert.Equal(t, 40, full.Bounds().Dy())
}

func TestWithReflection_MirrorsAndFades(t *testing.T) {
	src := stripes(4, 10)
	out, ok := WithReflection(src, 0.5).(*image.RGBA)
	require.True(t, ok)

	assert.Equal(t, src.RGBAAt(1, 0), out.RGBAAt(1, 0), "image rows are copied")

	// The first reflection row mirrors the last (blue) image row.
	first := out.RGBAAt(1, 10)
	assert.Zero(t, first.R)
	assert.NotZero(t, first.B)
	assert.Less(t, first.A, uint8(0xff))

	last := out.RGBAAt(1, 14)
	assert.Less(t, last.A, first.A, "the reflection fades out")
}

func TestWithReflection_PassThrough(t *testing.T) {
	src := stripes(4, 4)
	assert.Same(t, src, WithReflection(src, 0))
	assert.Same(t, src, WithReflection(src, 0.1), "less than one row")
	assert.Nil(t, WithReflection(nil, 0.5))
}
