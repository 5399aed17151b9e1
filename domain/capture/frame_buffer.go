package capture

import "image"

// A session owns exactly one frame buffer for its lifetime; buffers are never
// shared between sessions.

// newFrameBuffer returns an RGBA image of w x h whose Pix length is exactly
// w*h*4 and Stride is w*4.
func newFrameBuffer(w, h int) *image.RGBA {
	if w <= 0 || h <= 0 {
		return &image.RGBA{Rect: image.Rect(0, 0, 0, 0)}
	}
	return &image.RGBA{Pix: make([]byte, w*h*4), Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
}

// clearFrame paints the whole buffer opaque black so a target smaller than
// the buffer leaves no stale pixels in the uncovered region.
func clearFrame(img *image.RGBA) {
	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = 0, 0, 0, 0xff
	}
}
