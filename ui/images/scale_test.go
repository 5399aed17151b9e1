package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestScaleToFit_PreservesAspect(t *testing.T) {
	out := ScaleToFit(solid(1920, 1080, color.RGBA{255, 0, 0, 255}), 400, 225)
	assert.Equal(t, 400, out.Bounds().Dx())
	assert.Equal(t, 225, out.Bounds().Dy())

	out = ScaleToFit(solid(1000, 1000, color.RGBA{}), 400, 225)
	assert.Equal(t, 225, out.Bounds().Dx())
	assert.Equal(t, 225, out.Bounds().Dy())
}

func TestScaleToFit_SmallSourceIsCopied(t *testing.T) {
	src := solid(10, 10, color.RGBA{1, 2, 3, 255})
	out := ScaleToFit(src, 400, 225)
	require.Equal(t, image.Rect(0, 0, 10, 10), out.Bounds())

	src.Pix[0] = 99
	r, _, _, _ := out.At(0, 0).RGBA()
	assert.Equal(t, uint32(1), r>>8)
}

func TestScaleToFit_Nil(t *testing.T) {
	assert.Nil(t, ScaleToFit(nil, 10, 10))
	assert.Nil(t, Thumbnail(nil, 10, 10))
	assert.Nil(t, EncodePNG(nil))
}

func TestThumbnail_IsOpaque(t *testing.T) {
	out := Thumbnail(solid(8, 8, color.RGBA{0, 0, 0, 0}), 4, 4)
	_, _, _, a := out.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), a)
}

func TestEncodePNG_Decodes(t *testing.T) {
	data := EncodePNG(solid(3, 2, color.RGBA{10, 20, 30, 255}))
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
}
