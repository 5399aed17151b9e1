package images

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	_ = enc.Encode(&buf, img)
	return buf.Bytes()
}

// ScaleToFit returns src scaled down to fit within maxW x maxH preserving the
// aspect ratio. Sources that already fit are cloned, never returned as is, so
// the result is safe to hand to another goroutine.
func ScaleToFit(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	return imaging.Fit(src, max(maxW, 1), max(maxH, 1), imaging.Box)
}

// Thumbnail is ScaleToFit for the recorder preview: it also forces full
// opacity so a letterboxed frame shows black rather than the Tk background.
func Thumbnail(src image.Image, maxW, maxH int) image.Image {
	img := ScaleToFit(src, maxW, maxH)
	if img == nil {
		return nil
	}
	bg := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), image.Black)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}
