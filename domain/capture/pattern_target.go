package capture

import (
	"image"
	"image/color"
	"sync/atomic"
)

// SMPTE-style bars, left to right.
var barColors = [7]color.RGBA{
	{192, 192, 192, 255}, // gray
	{192, 192, 0, 255},   // yellow
	{0, 192, 192, 255},   // cyan
	{0, 192, 0, 255},     // green
	{192, 0, 192, 255},   // magenta
	{192, 0, 0, 255},     // red
	{0, 0, 192, 255},     // blue
}

var markerColor = color.RGBA{255, 255, 255, 255}

// PatternTarget is a synthetic capture target drawing color bars with a
// white marker that advances one column per paint. It needs no display and
// is used for headless recordings and smoke tests of the encoder.
type PatternTarget struct {
	w, h   atomic.Int32
	paints atomic.Int64
}

var _ CaptureTarget = (*PatternTarget)(nil)

func NewPatternTarget(w, h int) *PatternTarget {
	t := &PatternTarget{}
	t.Resize(w, h)
	return t
}

// Resize changes the reported size; a running session keeps its own.
func (t *PatternTarget) Resize(w, h int) {
	t.w.Store(int32(max(w, 0)))
	t.h.Store(int32(max(h, 0)))
}

func (t *PatternTarget) Width() int  { return int(t.w.Load()) }
func (t *PatternTarget) Height() int { return int(t.h.Load()) }

// Paints returns how many times the pattern has been drawn.
func (t *PatternTarget) Paints() int64 { return t.paints.Load() }

func (t *PatternTarget) PaintInto(dst *image.RGBA) error {
	w, h := t.Width(), t.Height()
	if w == 0 || h == 0 {
		return ErrEmptyTarget
	}
	n := t.paints.Add(1) - 1
	r := image.Rect(0, 0, w, h).Intersect(dst.Rect)
	barWidth := max(w/len(barColors), 1)
	markerX := int(n % int64(w))
	markerTop := h * 3 / 4
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := dst.Pix[dst.PixOffset(r.Min.X, y):]
		for x := r.Min.X; x < r.Max.X; x++ {
			c := barColors[min(x/barWidth, len(barColors)-1)]
			if x == markerX && y >= markerTop {
				c = markerColor
			}
			i := (x - r.Min.X) * 4
			row[i], row[i+1], row[i+2], row[i+3] = c.R, c.G, c.B, c.A
		}
	}
	return nil
}
