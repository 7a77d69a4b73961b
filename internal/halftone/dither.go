package halftone

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/anthonynsimon/bild/math/f64"
	"github.com/makeworld-the-better-one/dither/v2"

	"github.com/ironsheep/image-halftone-mcp/internal/imaging"
)

// Method names a dithering strategy.
type Method string

const (
	// Nearest quantizes each pixel independently.
	Nearest Method = "nearest"
	// Random adds zero-mean Gaussian noise before quantizing.
	Random Method = "random"
	// Ordered thresholds against a 4x4 Bayer matrix.
	Ordered Method = "ordered"
	// FloydSteinberg diffuses error with the 7/3/5/1 kernel. It is the
	// default and the fallback for unknown names.
	FloydSteinberg Method = "floyd-steinberg"
	// Philips uses a single tap on the current pixel.
	Philips Method = "philips"
	// Sierra uses the three-tap "Sierra Lite" kernel.
	Sierra Method = "sierra"
	// Stucki uses the twelve-tap Stucki kernel.
	Stucki Method = "stucki"
)

var aliases = map[string]Method{
	"floydsteinberg":     FloydSteinberg,
	"floyd_steinberg":    FloydSteinberg,
	"fs":                 FloydSteinberg,
	"sierra-lite":        Sierra,
	"sierra filter lite": Sierra,
}

// ParseMethod normalizes a user-supplied method name. Names are matched
// case-insensitively; unrecognized names are returned as given so that
// Dither can report them when it falls back.
func ParseMethod(name string) Method {
	n := strings.ToLower(strings.TrimSpace(name))
	if m, ok := aliases[n]; ok {
		return m
	}
	if n == "" {
		return FloydSteinberg
	}
	return Method(n)
}

// Methods lists the implemented methods.
func Methods() []Method {
	return []Method{FloydSteinberg, Nearest, Ordered, Philips, Random, Sierra, Stucki}
}

// Known reports whether m is implemented without falling back.
func (m Method) Known() bool {
	for _, k := range Methods() {
		if m == k {
			return true
		}
	}
	return false
}

type options struct {
	rng    *rand.Rand
	logger *slog.Logger
}

// Option configures Dither.
type Option func(*options)

// WithRand sets the random source used by the Random method.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

// WithLogger sets the logger that receives the fallback warning. The default
// is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Dither quantizes a single-channel buffer to levels indices with the given
// method.
//
// Parameters:
//   - b: The input buffer. It must have exactly one channel; lift it to color
//     buffers with imaging.ApplyPerChannel. It is never modified.
//   - method: The strategy. Unknown methods log a warning and use
//     Floyd-Steinberg.
//   - levels: Number of output levels N. Must be at least 2.
//   - max: The value range L of the input.
//
// Returns:
//   - *imaging.Buffer: Level indices 0..N-1, in the same storage Quantize uses.
//   - error: ShapeMismatchError for multi-channel input, InvalidParameterError
//     for bad levels or max.
//
// # Error Diffusion
//
// Kernel methods walk the pixels row by row, left to right, over a working
// copy. Each pixel is quantized, the error v - index*L/(N-1) is computed and
// distributed to the in-bounds kernel taps. Taps only reach pixels that have
// not been visited yet, so the mean level is preserved.
func Dither(b *imaging.Buffer, method Method, levels int, max float64, opts ...Option) (*imaging.Buffer, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if b.Channels != 1 {
		return nil, &imaging.ShapeMismatchError{Op: "dither", Want: "1 channel", Got: fmt.Sprintf("%d channels", b.Channels)}
	}
	if err := checkLevels("dither", levels, max); err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	method = Resolve(method, o.logger)
	switch method {
	case Nearest:
		return Quantize(b, levels, max)
	case Random:
		return randomDither(b, levels, max, o.rng)
	case Ordered:
		return orderedDither(b, levels, max)
	}

	return diffuse(b, kernels[method], levels, max), nil
}

// Resolve returns the method Dither actually runs for m. Unknown methods log
// the fallback warning on logger (slog.Default() when nil) and resolve to
// FloydSteinberg. Callers dithering several channels resolve once up front so
// the warning is emitted once.
func Resolve(m Method, logger *slog.Logger) Method {
	if m.Known() {
		return m
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("dither method not implemented, falling back to floyd-steinberg", "method", string(m))
	return FloydSteinberg
}

func diffuse(b *imaging.Buffer, k Kernel, levels int, max float64) *imaging.Buffer {
	work := b.Clone()
	out := b.Like(1, levelStorage(levels))
	t := thresholds(levels, max)
	step := max / float64(levels-1)
	rows, cols := b.Height, b.Width

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := work.Data[i*cols+j]
			q := bucket(t, v)
			out.Data[i*cols+j] = float64(q)

			e := v - float64(q)*step
			for _, tp := range k {
				ii, jj := i+tp.Row, j+tp.Col
				if ii < rows && jj >= 0 && jj < cols {
					work.Data[ii*cols+jj] += e * tp.Weight
				}
			}
		}
	}
	return out
}

func randomDither(b *imaging.Buffer, levels int, max float64, rng *rand.Rand) (*imaging.Buffer, error) {
	norm := rand.NormFloat64
	if rng != nil {
		norm = rng.NormFloat64
	}
	scale := max / (3 * float64(levels))

	noisy := b.Clone()
	for i := range noisy.Data {
		noisy.Data[i] += norm() * scale
	}
	return Quantize(noisy, levels, max)
}

// orderedDither renders the buffer as 16-bit gray and lets the Bayer pixel
// mapper pick a palette entry per pixel. Palette entry i is level i.
func orderedDither(b *imaging.Buffer, levels int, max float64) (*imaging.Buffer, error) {
	if levels > 256 {
		return nil, &imaging.InvalidParameterError{Op: "dither", Param: "levels", Reason: fmt.Sprintf("ordered dithering supports at most 256 levels, got %d", levels)}
	}
	out := b.Like(1, levelStorage(levels))
	if b.Empty() {
		return out, nil
	}

	palette := make([]color.Color, levels)
	for i := range palette {
		palette[i] = color.Gray16{Y: uint16(i * 65535 / (levels - 1))}
	}

	src := image.NewGray16(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			v := f64.Clamp(b.At(x, y, 0)/max, 0, 1)
			src.SetGray16(x, y, color.Gray16{Y: uint16(v*65535 + 0.5)})
		}
	}

	d := dither.NewDitherer(palette)
	d.Mapper = dither.Bayer(4, 4, 1.0)
	pal := d.DitherPaletted(src)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			out.Set(x, y, 0, float64(pal.ColorIndexAt(x, y)))
		}
	}
	return out, nil
}
