package halftone

import (
	"fmt"
	"sort"

	"github.com/ironsheep/image-halftone-mcp/internal/imaging"
)

// thresholds returns the N-1 bucket boundaries k*L/N, k = 1..N-1.
func thresholds(levels int, max float64) []float64 {
	t := make([]float64, levels-1)
	for k := range t {
		t[k] = float64(k+1) * max / float64(levels)
	}
	return t
}

// bucket returns the number of thresholds <= v, which is the level index of v.
func bucket(t []float64, v float64) int {
	return sort.Search(len(t), func(i int) bool { return t[i] > v })
}

// levelStorage is the narrowest storage able to hold indices 0..levels-1.
func levelStorage(levels int) imaging.Storage {
	switch {
	case levels <= 256:
		return imaging.Uint8
	case levels <= 65536:
		return imaging.Uint16
	}
	return imaging.Float
}

func checkLevels(op string, levels int, max float64) error {
	if levels < 2 {
		return &imaging.InvalidParameterError{Op: op, Param: "levels", Reason: fmt.Sprintf("need at least 2, got %d", levels)}
	}
	if !(max > 0) {
		return &imaging.InvalidParameterError{Op: op, Param: "max", Reason: fmt.Sprintf("must be positive, got %g", max)}
	}
	return nil
}

// Quantize maps every sample of b to one of levels discrete indices.
//
// Parameters:
//   - b: The input buffer. Any channel count is accepted; samples are
//     quantized independently.
//   - levels: Number of output levels N. Must be at least 2.
//   - max: The value range L. Thresholds sit at L/N, 2L/N, ..., (N-1)L/N.
//
// Returns:
//   - *imaging.Buffer: Level indices 0..N-1 in the narrowest integer storage
//     that can hold them. Values below L/N map to 0 and values at or above
//     (N-1)L/N map to N-1.
//   - error: InvalidParameterError for levels < 2 or max <= 0.
func Quantize(b *imaging.Buffer, levels int, max float64) (*imaging.Buffer, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := checkLevels("quantize", levels, max); err != nil {
		return nil, err
	}

	t := thresholds(levels, max)
	out := b.Like(b.Channels, levelStorage(levels))
	for i, v := range b.Data {
		out.Data[i] = float64(bucket(t, v))
	}
	return out, nil
}
