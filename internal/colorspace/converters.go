package colorspace

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-halftone-mcp/internal/composite"
	"github.com/ironsheep/image-halftone-mcp/internal/halftone"
	"github.com/ironsheep/image-halftone-mcp/internal/imaging"
)

// Rec. 709 luma coefficients.
const (
	lumaR = 0.2125
	lumaG = 0.7154
	lumaB = 0.0721
)

// converters holds every pairwise converter. Values are normalized floats:
// gray, bool, rgb, rgba, cmyk, xyz and hsv in 0..1, lab with L in 0..100 and
// a, b around -100..100.
var converters = map[edgeKey]Converter{
	{FamilyGray, FamilyRGB}:  grayToRGB,
	{FamilyRGB, FamilyGray}:  rgbToGray,
	{FamilyGray, FamilyBool}: grayToBool,
	{FamilyBool, FamilyRGB}:  boolToRGB,
	{FamilyRGB, FamilyRGBA}:  rgbToRGBA,
	{FamilyRGBA, FamilyRGB}:  rgbaToRGB,
	{FamilyRGB, FamilyCMYK}:  rgbToCMYK,
	{FamilyCMYK, FamilyRGB}:  cmykToRGB,
	{FamilyRGB, FamilyLab}:   rgbToLab,
	{FamilyLab, FamilyRGB}:   labToRGB,
	{FamilyRGB, FamilyXYZ}:   rgbToXYZ,
	{FamilyXYZ, FamilyRGB}:   xyzToRGB,
	{FamilyRGB, FamilyHSV}:   rgbToHSV,
	{FamilyHSV, FamilyRGB}:   hsvToRGB,
	{FamilyXYZ, FamilyLab}:   xyzToLab,
	{FamilyLab, FamilyXYZ}:   labToXYZ,
}

// mapPixels applies fn to every pixel of b, producing a float buffer with
// outCh channels.
func mapPixels(b *imaging.Buffer, outCh int, fn func(in, out []float64)) *imaging.Buffer {
	out := b.Like(outCh, imaging.Float)
	for p := 0; p < b.Pixels(); p++ {
		fn(b.Data[p*b.Channels:(p+1)*b.Channels], out.Data[p*outCh:(p+1)*outCh])
	}
	return out
}

func grayToRGB(b *imaging.Buffer) (*imaging.Buffer, error) {
	return mapPixels(b, 3, func(in, out []float64) {
		out[0], out[1], out[2] = in[0], in[0], in[0]
	}), nil
}

func rgbToGray(b *imaging.Buffer) (*imaging.Buffer, error) {
	return mapPixels(b, 1, func(in, out []float64) {
		out[0] = lumaR*in[0] + lumaG*in[1] + lumaB*in[2]
	}), nil
}

func grayToBool(b *imaging.Buffer) (*imaging.Buffer, error) {
	out, err := halftone.Dither(b, halftone.FloydSteinberg, 2, 1)
	if err != nil {
		return nil, err
	}
	out.Storage = imaging.Float
	return out, nil
}

func boolToRGB(b *imaging.Buffer) (*imaging.Buffer, error) {
	return mapPixels(b, 3, func(in, out []float64) {
		v := 0.0
		if in[0] >= 0.5 {
			v = 1
		}
		out[0], out[1], out[2] = v, v, v
	}), nil
}

func rgbToRGBA(b *imaging.Buffer) (*imaging.Buffer, error) {
	return mapPixels(b, 4, func(in, out []float64) {
		copy(out, in)
		out[3] = 1
	}), nil
}

// rgbaToRGB flattens onto a white background.
func rgbaToRGB(b *imaging.Buffer) (*imaging.Buffer, error) {
	flat, err := composite.OverColor(b, 1, 1, 1)
	if err != nil {
		return nil, err
	}
	return mapPixels(flat, 3, func(in, out []float64) {
		copy(out, in[:3])
	}), nil
}

func rgbToCMYK(b *imaging.Buffer) (*imaging.Buffer, error) {
	return mapPixels(b, 4, func(in, out []float64) {
		c, m, y := 1-in[0], 1-in[1], 1-in[2]
		k := min(c, m, y)
		out[3] = k
		if w := 1 - k; w > 0 {
			out[0], out[1], out[2] = (c-k)/w, (m-k)/w, (y-k)/w
		}
	}), nil
}

func cmykToRGB(b *imaging.Buffer) (*imaging.Buffer, error) {
	return mapPixels(b, 3, func(in, out []float64) {
		w := 1 - in[3]
		out[0], out[1], out[2] = (1-in[0])*w, (1-in[1])*w, (1-in[2])*w
	}), nil
}

func rgbToLab(b *imaging.Buffer) (*imaging.Buffer, error) {
	return mapPixels(b, 3, func(in, out []float64) {
		l, a, bb := colorful.Color{R: in[0], G: in[1], B: in[2]}.Lab()
		out[0], out[1], out[2] = l*100, a*100, bb*100
	}), nil
}

func labToRGB(b *imaging.Buffer) (*imaging.Buffer, error) {
	return mapPixels(b, 3, func(in, out []float64) {
		c := colorful.Lab(in[0]/100, in[1]/100, in[2]/100).Clamped()
		out[0], out[1], out[2] = c.R, c.G, c.B
	}), nil
}

func rgbToXYZ(b *imaging.Buffer) (*imaging.Buffer, error) {
	return mapPixels(b, 3, func(in, out []float64) {
		out[0], out[1], out[2] = colorful.Color{R: in[0], G: in[1], B: in[2]}.Xyz()
	}), nil
}

func xyzToRGB(b *imaging.Buffer) (*imaging.Buffer, error) {
	return mapPixels(b, 3, func(in, out []float64) {
		c := colorful.Xyz(in[0], in[1], in[2]).Clamped()
		out[0], out[1], out[2] = c.R, c.G, c.B
	}), nil
}

// HSV hue is stored as a fraction of a turn.
func rgbToHSV(b *imaging.Buffer) (*imaging.Buffer, error) {
	return mapPixels(b, 3, func(in, out []float64) {
		h, s, v := colorful.Color{R: in[0], G: in[1], B: in[2]}.Hsv()
		out[0], out[1], out[2] = h/360, s, v
	}), nil
}

func hsvToRGB(b *imaging.Buffer) (*imaging.Buffer, error) {
	return mapPixels(b, 3, func(in, out []float64) {
		c := colorful.Hsv(in[0]*360, in[1], in[2]).Clamped()
		out[0], out[1], out[2] = c.R, c.G, c.B
	}), nil
}

func xyzToLab(b *imaging.Buffer) (*imaging.Buffer, error) {
	return mapPixels(b, 3, func(in, out []float64) {
		l, a, bb := colorful.XyzToLab(in[0], in[1], in[2])
		out[0], out[1], out[2] = l*100, a*100, bb*100
	}), nil
}

func labToXYZ(b *imaging.Buffer) (*imaging.Buffer, error) {
	return mapPixels(b, 3, func(in, out []float64) {
		out[0], out[1], out[2] = colorful.LabToXyz(in[0]/100, in[1]/100, in[2]/100)
	}), nil
}
