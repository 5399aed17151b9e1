package capture

import (
	"image"
	"image/draw"

	"github.com/vova616/screenshot"
)

// ScreenTarget paints a region of the desktop. An empty region means the
// whole primary screen.
type ScreenTarget struct {
	region func() image.Rectangle
	grab   func(image.Rectangle) (*image.RGBA, error)
	bounds func() (image.Rectangle, error)
}

var _ CaptureTarget = (*ScreenTarget)(nil)

// NewScreenTarget returns a target reading its region from region on every
// call, so a selection changed in the UI is picked up by Width and Height.
// A nil region func captures the full screen.
func NewScreenTarget(region func() image.Rectangle) *ScreenTarget {
	if region == nil {
		region = func() image.Rectangle { return image.Rectangle{} }
	}
	return &ScreenTarget{
		region: region,
		grab:   screenshot.CaptureRect,
		bounds: screenshot.ScreenRect,
	}
}

// Rect resolves the region that will be captured.
func (t *ScreenTarget) Rect() image.Rectangle {
	r := t.region()
	if !r.Empty() {
		return r
	}
	full, err := t.bounds()
	if err != nil {
		return image.Rectangle{}
	}
	return full
}

func (t *ScreenTarget) Width() int  { return t.Rect().Dx() }
func (t *ScreenTarget) Height() int { return t.Rect().Dy() }

// PaintInto grabs the region and copies it to dst's origin, clipped to dst.
func (t *ScreenTarget) PaintInto(dst *image.RGBA) error {
	r := t.Rect()
	if r.Empty() {
		return ErrEmptyTarget
	}
	img, err := t.grab(r)
	if err != nil {
		return err
	}
	draw.Draw(dst, dst.Rect, img, img.Rect.Min, draw.Src)
	return nil
}
