package phash

import (
	"fmt"
	"image/color"
	"math/big"
	"math/bits"
	"strings"

	"github.com/ironsheep/image-halftone-mcp/internal/colorspace"
	core "github.com/ironsheep/image-halftone-mcp/internal/imaging"
)

// DefaultSize is the default hash edge length (64-bit hashes).
const DefaultSize = 8

// Hash is an average hash of Size()*Size() bits. The first pixel in row-major
// order is the most significant bit. The zero value is an empty hash of size 0.
type Hash struct {
	size int
	v    *big.Int
}

// Size returns the hash edge length.
func (h Hash) Size() int { return h.size }

// Len returns the number of bits, Size()*Size().
func (h Hash) Len() int { return h.size * h.size }

func (h Hash) value() *big.Int {
	if h.v == nil {
		return new(big.Int)
	}
	return h.v
}

// Bits returns the hash bits in row-major pixel order.
func (h Hash) Bits() []bool {
	n := h.Len()
	out := make([]bool, n)
	v := h.value()
	for i := range out {
		out[i] = v.Bit(n-1-i) == 1
	}
	return out
}

// Uint64 returns the hash as an integer when it fits in 64 bits.
func (h Hash) Uint64() (uint64, bool) {
	if h.Len() > 64 {
		return 0, false
	}
	return h.value().Uint64(), true
}

// String returns the hash as zero-padded lower-case hex.
func (h Hash) String() string {
	digits := (h.Len() + 3) / 4
	s := h.value().Text(16)
	if len(s) < digits {
		s = strings.Repeat("0", digits-len(s)) + s
	}
	return s
}

// Equal reports whether both hashes have the same size and bits.
func (h Hash) Equal(o Hash) bool {
	return h.size == o.size && h.value().Cmp(o.value()) == 0
}

// FromBits builds a hash of edge length size from row-major bits.
func FromBits(size int, b []bool) (Hash, error) {
	if size < 1 || len(b) != size*size {
		return Hash{}, &core.InvalidParameterError{
			Op:     "hash",
			Param:  "bits",
			Reason: fmt.Sprintf("need %d bits for size %d, got %d", size*size, size, len(b)),
		}
	}
	v := new(big.Int)
	for i, on := range b {
		if on {
			v.SetBit(v, len(b)-1-i, 1)
		}
	}
	return Hash{size: size, v: v}, nil
}

// ParseHash reads a hex string produced by Hash.String.
func ParseHash(s string, size int) (Hash, error) {
	if size < 1 {
		return Hash{}, &core.InvalidParameterError{Op: "parse hash", Param: "size", Reason: fmt.Sprintf("must be at least 1, got %d", size)}
	}
	v, ok := new(big.Int).SetString(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x"), 16)
	if !ok || v.Sign() < 0 {
		return Hash{}, &core.InvalidParameterError{Op: "parse hash", Param: "hash", Reason: fmt.Sprintf("%q is not a hex string", s)}
	}
	if v.BitLen() > size*size {
		return Hash{}, &core.InvalidParameterError{
			Op:     "parse hash",
			Param:  "hash",
			Reason: fmt.Sprintf("%d bits do not fit a size %d hash", v.BitLen(), size),
		}
	}
	return Hash{size: size, v: v}, nil
}

type options struct {
	resample ResampleFunc
}

// Option configures AverageHash.
type Option func(*options)

// WithResampler selects the resampler used to shrink the image.
func WithResampler(fn ResampleFunc) Option {
	return func(o *options) { o.resample = fn }
}

// AverageHash computes the average hash of b.
//
// Parameters:
//   - b: The image buffer.
//   - mode: The color mode b is encoded in. The buffer is converted to
//     float grayscale ("F") through colorspace.Convert first.
//   - size: The hash edge length; the result has size*size bits.
//   - opts: WithResampler overrides the default Lanczos resampler.
//
// Returns:
//   - Hash: One bit per pixel of the size x size thumbnail, set when the pixel
//     is strictly brighter than the thumbnail mean.
//   - error: InvalidParameterError for size < 1 or an empty buffer, or any
//     conversion error.
func AverageHash(b *core.Buffer, mode string, size int, opts ...Option) (Hash, error) {
	if size < 1 {
		return Hash{}, &core.InvalidParameterError{Op: "average hash", Param: "size", Reason: fmt.Sprintf("must be at least 1, got %d", size)}
	}
	if err := b.Validate(); err != nil {
		return Hash{}, err
	}
	if b.Empty() {
		return Hash{}, &core.InvalidParameterError{Op: "average hash", Param: "buffer", Reason: "image has no pixels"}
	}

	o := options{resample: resamplers[DefaultResampler]}
	for _, opt := range opts {
		opt(&o)
	}

	gray, err := colorspace.Convert(b, mode, "F")
	if err != nil {
		return Hash{}, fmt.Errorf("average hash: %w", err)
	}
	img, err := core.ToImage(gray, 0, 1)
	if err != nil {
		return Hash{}, fmt.Errorf("average hash: %w", err)
	}

	thumb := o.resample(img, size, size)
	bounds := thumb.Bounds()
	values := make([]float64, 0, size*size)
	var sum float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := float64(color.Gray16Model.Convert(thumb.At(x, y)).(color.Gray16).Y)
			values = append(values, v)
			sum += v
		}
	}
	if len(values) != size*size {
		return Hash{}, &core.ShapeMismatchError{
			Op:   "average hash",
			Want: fmt.Sprintf("%dx%d thumbnail", size, size),
			Got:  fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()),
		}
	}

	mean := sum / float64(len(values))
	on := make([]bool, len(values))
	for i, v := range values {
		on[i] = v > mean
	}
	return FromBits(size, on)
}

// Distance returns the normalized Hamming distance between two hashes:
// 0 for identical hashes, about 1 for unrelated images and 2 when every bit
// differs.
func Distance(a, b Hash) (float64, error) {
	if a.size != b.size {
		return 0, &core.InvalidParameterError{
			Op:     "hash distance",
			Param:  "size",
			Reason: fmt.Sprintf("cannot compare size %d with size %d", a.size, b.size),
		}
	}
	if a.Equal(b) {
		return 0, nil
	}
	x := new(big.Int).Xor(a.value(), b.value())
	var diff int
	for _, w := range x.Bits() {
		diff += bits.OnesCount(uint(w))
	}
	return 2 * float64(diff) / float64(a.Len()), nil
}
