// Package composite implements Porter-Duff alpha compositing on RGBA buffers.
package composite

import (
	"fmt"
	"math"

	"github.com/anthonynsimon/bild/math/f64"

	"github.com/ironsheep/image-halftone-mcp/internal/imaging"
)

func checkRGBA(op, role string, b *imaging.Buffer) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("%s %s: %w", op, role, err)
	}
	if b.Channels != 4 {
		return &imaging.ShapeMismatchError{Op: op + " " + role, Want: "4 channels", Got: fmt.Sprintf("%d channels", b.Channels)}
	}
	return nil
}

// scale is the sample value of full intensity for s.
func scale(s imaging.Storage) float64 {
	_, hi := s.Range()
	return hi
}

// finish rounds integer storages and clamps to [0, max].
func finish(v, max float64, integer bool) float64 {
	if integer {
		v = math.Round(v)
	}
	return f64.Clamp(v, 0, max)
}

// Over composites front over back with the Porter-Duff "over" operator.
//
// Parameters:
//   - front, back: RGBA buffers (4 channels) of equal width and height. Sample
//     scale is taken from front's storage: 255 for uint8, 65535 for uint16,
//     1 for float. Neither buffer is modified.
//
// Returns:
//   - *imaging.Buffer: A new RGBA buffer in front's storage with
//     outA = fA + bA(1-fA) and outRGB = (fRGB*fA + bRGB*bA*(1-fA)) / outA.
//     Where both inputs are fully transparent the result is 0 in every channel.
//   - error: ShapeMismatchError if either buffer is not RGBA or their sizes
//     or storages differ.
func Over(front, back *imaging.Buffer) (*imaging.Buffer, error) {
	if err := checkRGBA("composite", "front", front); err != nil {
		return nil, err
	}
	if err := checkRGBA("composite", "back", back); err != nil {
		return nil, err
	}
	if !front.SameSize(back) {
		return nil, &imaging.ShapeMismatchError{Op: "composite", Want: front.Shape(), Got: back.Shape()}
	}
	if front.Storage != back.Storage {
		return nil, &imaging.ShapeMismatchError{Op: "composite", Want: front.Storage.String() + " storage", Got: back.Storage.String() + " storage"}
	}

	max := scale(front.Storage)
	integer := front.Storage.IsInteger()
	out := front.Like(4, front.Storage)
	for p := 0; p < front.Pixels(); p++ {
		f := front.Data[p*4 : p*4+4]
		b := back.Data[p*4 : p*4+4]
		o := out.Data[p*4 : p*4+4]

		fa := f64.Clamp(f[3]/max, 0, 1)
		ba := f64.Clamp(b[3]/max, 0, 1)
		oa := fa + ba*(1-fa)
		if oa <= 0 {
			continue
		}
		for c := 0; c < 3; c++ {
			o[c] = finish((f[c]*fa+b[c]*ba*(1-fa))/oa, max, integer)
		}
		o[3] = finish(oa*max, max, integer)
	}
	return out, nil
}

// OverColor composites front over an opaque solid color given in front's
// sample scale. The result is fully opaque.
func OverColor(front *imaging.Buffer, r, g, b float64) (*imaging.Buffer, error) {
	if err := checkRGBA("composite over color", "front", front); err != nil {
		return nil, err
	}
	back := front.Like(4, front.Storage)
	max := scale(front.Storage)
	for p := 0; p < back.Pixels(); p++ {
		copy(back.Data[p*4:p*4+4], []float64{r, g, b, max})
	}
	return Over(front, back)
}

// AlphaToColor returns a copy of b with the RGB of every fully transparent
// pixel replaced by (r, g, b). Alpha is kept; partially transparent pixels
// are not touched.
func AlphaToColor(b *imaging.Buffer, r, g, bl float64) (*imaging.Buffer, error) {
	if err := checkRGBA("alpha to color", "buffer", b); err != nil {
		return nil, err
	}
	out := b.Clone()
	for p := 0; p < out.Pixels(); p++ {
		px := out.Data[p*4 : p*4+4]
		if px[3] == 0 {
			px[0], px[1], px[2] = r, g, bl
		}
	}
	return out, nil
}
