package phash

import (
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	xdraw "golang.org/x/image/draw"

	core "github.com/ironsheep/image-halftone-mcp/internal/imaging"
)

// ResampleFunc scales src to exactly width x height pixels.
type ResampleFunc func(src image.Image, width, height int) image.Image

// DefaultResampler is the name of the resampler AverageHash uses when none
// is given.
const DefaultResampler = "lanczos"

var resamplers = map[string]ResampleFunc{
	"lanczos": func(src image.Image, w, h int) image.Image {
		return imaging.Resize(src, w, h, imaging.Lanczos)
	},
	"box": func(src image.Image, w, h int) image.Image {
		return imaging.Resize(src, w, h, imaging.Box)
	},
	"bilinear": func(src image.Image, w, h int) image.Image {
		return scaleWith(xdraw.BiLinear, src, w, h)
	},
	"nearest": func(src image.Image, w, h int) image.Image {
		return scaleWith(xdraw.NearestNeighbor, src, w, h)
	},
	"mitchell": func(src image.Image, w, h int) image.Image {
		return resize.Resize(uint(w), uint(h), src, resize.MitchellNetravali)
	},
	"cubic": func(src image.Image, w, h int) image.Image {
		g := gift.New(gift.Resize(w, h, gift.CubicResampling))
		dst := image.NewGray16(g.Bounds(src.Bounds()))
		g.Draw(dst, src)
		return dst
	},
}

func scaleWith(s xdraw.Scaler, src image.Image, w, h int) image.Image {
	dst := image.NewGray16(image.Rect(0, 0, w, h))
	s.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// Resamplers returns the registered resampler names, sorted.
func Resamplers() []string {
	names := make([]string, 0, len(resamplers))
	for n := range resamplers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LookupResampler returns the resampler registered under name
// (case-insensitive). An empty name selects DefaultResampler.
func LookupResampler(name string) (ResampleFunc, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		n = DefaultResampler
	}
	fn, ok := resamplers[n]
	if !ok {
		return nil, &core.InvalidParameterError{
			Op:     "resampler",
			Param:  "name",
			Reason: fmt.Sprintf("unknown resampler %q (available: %s)", name, strings.Join(Resamplers(), ", ")),
		}
	}
	return fn, nil
}
