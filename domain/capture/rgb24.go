package capture

import (
	"fmt"
	"image"
	"image/color"
)

// BytesPerPixelRGB24 is the size of one pixel in the encoder's raw input.
const BytesPerPixelRGB24 = 3

// PackedOrder describes which channel occupies the high byte of a packed
// 32-bit pixel. The top byte is ignored.
type PackedOrder uint8

const (
	// PackedRGB stores pixels as 0x00RRGGBB.
	PackedRGB PackedOrder = iota
	// PackedBGR stores pixels as 0x00BBGGRR.
	PackedBGR
)

// PackedImage is a raster with one 32-bit word per pixel, as produced by
// most native surfaces (DIB sections, XImage, int-backed buffers).
type PackedImage struct {
	Pix    []uint32
	Stride int // in words
	Rect   image.Rectangle
	Order  PackedOrder
}

// NewPackedImage returns a zeroed PackedImage with the given bounds.
func NewPackedImage(r image.Rectangle, order PackedOrder) *PackedImage {
	return &PackedImage{Pix: make([]uint32, r.Dx()*r.Dy()), Stride: r.Dx(), Rect: r, Order: order}
}

func (p *PackedImage) ColorModel() color.Model { return color.RGBAModel }
func (p *PackedImage) Bounds() image.Rectangle { return p.Rect }

func (p *PackedImage) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x - p.Rect.Min.X)
}

func (p *PackedImage) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	r, g, b := p.Order.unpack(p.Pix[p.PixOffset(x, y)])
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Set stores c, dropping alpha.
func (p *PackedImage) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	p.Pix[p.PixOffset(x, y)] = p.Order.pack(nc.R, nc.G, nc.B)
}

func (o PackedOrder) unpack(w uint32) (r, g, b uint8) {
	hi, mid, lo := uint8(w>>16), uint8(w>>8), uint8(w)
	if o == PackedBGR {
		return lo, mid, hi
	}
	return hi, mid, lo
}

func (o PackedOrder) pack(r, g, b uint8) uint32 {
	if o == PackedBGR {
		return uint32(b)<<16 | uint32(g)<<8 | uint32(r)
	}
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// BGRImage is a byte-planar raster with 3 bytes per pixel in B, G, R order.
type BGRImage struct {
	Pix    []uint8
	Stride int // in bytes
	Rect   image.Rectangle
}

// NewBGRImage returns a zeroed BGRImage with the given bounds.
func NewBGRImage(r image.Rectangle) *BGRImage {
	return &BGRImage{Pix: make([]uint8, 3*r.Dx()*r.Dy()), Stride: 3 * r.Dx(), Rect: r}
}

func (p *BGRImage) ColorModel() color.Model { return color.RGBAModel }
func (p *BGRImage) Bounds() image.Rectangle { return p.Rect }

func (p *BGRImage) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

func (p *BGRImage) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	return color.RGBA{R: p.Pix[i+2], G: p.Pix[i+1], B: p.Pix[i], A: 0xff}
}

// Set stores c, dropping alpha.
func (p *BGRImage) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	i := p.PixOffset(x, y)
	p.Pix[i], p.Pix[i+1], p.Pix[i+2] = nc.B, nc.G, nc.R
}

// ConvertRGB24 writes src into dst as interleaved R,G,B bytes, row-major, top
// row first, without padding. Channel values pass through unchanged and alpha
// is dropped. dst must hold exactly width*height*3 bytes and src must be
// width x height; anything else is a programming error and panics.
func ConvertRGB24(dst []byte, width, height int, src image.Image) {
	b := src.Bounds()
	if b.Dx() != width || b.Dy() != height {
		panic(fmt.Sprintf("capture: ConvertRGB24 source is %dx%d, want %dx%d", b.Dx(), b.Dy(), width, height))
	}
	if len(dst) != width*height*BytesPerPixelRGB24 {
		panic(fmt.Sprintf("capture: ConvertRGB24 dst has %d bytes, want %d", len(dst), width*height*BytesPerPixelRGB24))
	}
	switch img := src.(type) {
	case *PackedImage:
		convertPacked(dst, img)
	case *BGRImage:
		convertBGR(dst, img)
	case *image.RGBA:
		convertRGBA(dst, img)
	default:
		convertGeneric(dst, src)
	}
}

func convertPacked(dst []byte, src *PackedImage) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	o := 0
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w]
		if src.Order == PackedBGR {
			for _, px := range row {
				dst[o], dst[o+1], dst[o+2] = uint8(px), uint8(px>>8), uint8(px>>16)
				o += 3
			}
			continue
		}
		for _, px := range row {
			dst[o], dst[o+1], dst[o+2] = uint8(px>>16), uint8(px>>8), uint8(px)
			o += 3
		}
	}
}

func convertBGR(dst []byte, src *BGRImage) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	o := 0
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*3]
		for i := 0; i < len(row); i += 3 {
			dst[o], dst[o+1], dst[o+2] = row[i+2], row[i+1], row[i]
			o += 3
		}
	}
}

func convertRGBA(dst []byte, src *image.RGBA) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	o := 0
	for y := 0; y < h; y++ {
		start := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		row := src.Pix[start : start+w*4]
		for i := 0; i < len(row); i += 4 {
			dst[o], dst[o+1], dst[o+2] = row[i], row[i+1], row[i+2]
			o += 3
		}
	}
}

func convertGeneric(dst []byte, src image.Image) {
	b := src.Bounds()
	o := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			dst[o], dst[o+1], dst[o+2] = c.R, c.G, c.B
			o += 3
		}
	}
}
