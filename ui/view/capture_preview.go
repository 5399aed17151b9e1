package view

import (
	"image"

	"github.com/soocke/spectator-recorder/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// CapturePreview shows a thumbnail of the frame being recorded.
type CapturePreview interface {
	UpdateCapture(img image.Image)
	Reset()
}

type capturePreview struct {
	label     *LabelWidget
	prevPhoto *Img // disposed before replacement so stale pixels are not retained
}

const (
	// Max preview dimensions; thumbnails are scaled by the preview presenter.
	MaxPreviewW = 400
	MaxPreviewH = 225
)

func placeholderPNG() []byte {
	return images.EncodePNG(images.Thumbnail(image.NewRGBA(image.Rect(0, 0, MaxPreviewW, MaxPreviewH)), MaxPreviewW, MaxPreviewH))
}

// NewCapturePreview creates the preview label spanning the form columns of row.
func NewCapturePreview(row int) CapturePreview {
	photo := NewPhoto(Data(placeholderPNG()))
	label := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(label, Row(row), Column(0), Columnspan(5), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	return &capturePreview{label: label, prevPhoto: photo}
}

func (v *capturePreview) setPhoto(png []byte) {
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = NewPhoto(Data(png))
	v.label.Configure(Image(v.prevPhoto))
}

func (v *capturePreview) UpdateCapture(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	v.setPhoto(images.EncodePNG(img))
}

func (v *capturePreview) Reset() {
	if v == nil || v.label == nil {
		return
	}
	v.setPhoto(placeholderPNG())
}
