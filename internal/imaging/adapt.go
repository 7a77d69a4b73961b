package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/math/f64"
)

// FromImage copies a decoded image into a Buffer.
//
// The returned mode name follows the registry conventions:
//   - *image.Gray -> "L" (1 channel, uint8)
//   - *image.Gray16 -> "U" (1 channel, uint16)
//   - opaque images -> "RGB" (3 channels, uint8)
//   - everything else -> "RGBA" (4 channels, uint8, non-premultiplied)
//
// Images with a non-zero bounds origin are re-based to (0,0).
func FromImage(img image.Image) (*Buffer, string) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	switch src := img.(type) {
	case *image.Gray:
		b := &Buffer{Width: w, Height: h, Channels: 1, Storage: Uint8, Data: make([]float64, w*h)}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				b.Data[y*w+x] = float64(src.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y)
			}
		}
		return b, "L"
	case *image.Gray16:
		b := &Buffer{Width: w, Height: h, Channels: 1, Storage: Uint16, Data: make([]float64, w*h)}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				b.Data[y*w+x] = float64(src.Gray16At(x+bounds.Min.X, y+bounds.Min.Y).Y)
			}
		}
		return b, "U"
	}

	channels, mode := 4, "RGBA"
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		channels, mode = 3, "RGB"
	}

	b := &Buffer{Width: w, Height: h, Channels: channels, Storage: Uint8, Data: make([]float64, w*h*channels)}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			b.Data[i] = float64(c.R)
			b.Data[i+1] = float64(c.G)
			b.Data[i+2] = float64(c.B)
			if channels == 4 {
				b.Data[i+3] = float64(c.A)
			}
			i += channels
		}
	}
	return b, mode
}

// ToImage renders a buffer as an image.Image, mapping sample values in
// [lo, hi] onto the full intensity range and clamping anything outside.
//
// One channel yields *image.Gray (or *image.Gray16 for uint16 and float
// storage), two channels are read as gray+alpha, three as RGB and four as
// RGBA; all multi-channel buffers render as *image.NRGBA.
func ToImage(b *Buffer, lo, hi float64) (image.Image, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if hi <= lo {
		return nil, &InvalidParameterError{Op: "to image", Param: "range", Reason: fmt.Sprintf("empty range [%g, %g]", lo, hi)}
	}
	if b.Channels > 4 {
		return nil, &InvalidParameterError{Op: "to image", Param: "channels", Reason: fmt.Sprintf("cannot render %d channels", b.Channels)}
	}

	scale := func(v float64) float64 {
		return f64.Clamp((v-lo)/(hi-lo), 0, 1)
	}
	rect := image.Rect(0, 0, b.Width, b.Height)

	if b.Channels == 1 {
		if b.Storage == Uint16 || b.Storage == Float {
			img := image.NewGray16(rect)
			for y := 0; y < b.Height; y++ {
				for x := 0; x < b.Width; x++ {
					img.SetGray16(x, y, color.Gray16{Y: uint16(scale(b.At(x, y, 0))*65535 + 0.5)})
				}
			}
			return img, nil
		}
		img := image.NewGray(rect)
		for y := 0; y < b.Height; y++ {
			for x := 0; x < b.Width; x++ {
				img.SetGray(x, y, color.Gray{Y: uint8(scale(b.At(x, y, 0))*255 + 0.5)})
			}
		}
		return img, nil
	}

	to8 := func(v float64) uint8 { return uint8(scale(v)*255 + 0.5) }
	img := image.NewNRGBA(rect)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			var c color.NRGBA
			switch b.Channels {
			case 2:
				g := to8(b.At(x, y, 0))
				c = color.NRGBA{R: g, G: g, B: g, A: to8(b.At(x, y, 1))}
			case 3:
				c = color.NRGBA{R: to8(b.At(x, y, 0)), G: to8(b.At(x, y, 1)), B: to8(b.At(x, y, 2)), A: 255}
			default:
				c = color.NRGBA{R: to8(b.At(x, y, 0)), G: to8(b.At(x, y, 1)), B: to8(b.At(x, y, 2)), A: to8(b.At(x, y, 3))}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img, nil
}
