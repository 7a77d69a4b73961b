package halftone

import (
	"fmt"

	"github.com/ironsheep/image-halftone-mcp/internal/imaging"
)

// Tap is one entry of an error-diffusion kernel: the share of the error sent
// to the pixel Row rows down and Col columns right of the current one.
type Tap struct {
	Row    int     `json:"row"`
	Col    int     `json:"col"`
	Weight float64 `json:"weight"`
}

// Kernel is an error-diffusion kernel with weights summing to 1.
type Kernel []Tap

// NewKernel normalizes the weights of taps so they sum to 1.
//
// Taps must point at the current pixel or at pixels later in row-major order;
// a tap on an earlier row, or to the left on the current row, is rejected, as
// is a kernel whose weights sum to zero or less.
func NewKernel(taps ...Tap) (Kernel, error) {
	var sum float64
	for _, tp := range taps {
		if tp.Row < 0 || (tp.Row == 0 && tp.Col < 0) {
			return nil, &imaging.InvalidParameterError{
				Op:     "kernel",
				Param:  "offset",
				Reason: fmt.Sprintf("(%d,%d) points at an already processed pixel", tp.Row, tp.Col),
			}
		}
		sum += tp.Weight
	}
	if !(sum > 0) {
		return nil, &imaging.InvalidParameterError{Op: "kernel", Param: "weights", Reason: "must sum to a positive value"}
	}

	k := make(Kernel, len(taps))
	for i, tp := range taps {
		k[i] = Tap{Row: tp.Row, Col: tp.Col, Weight: tp.Weight / sum}
	}
	return k, nil
}

func mustKernel(taps ...Tap) Kernel {
	k, err := NewKernel(taps...)
	if err != nil {
		panic(err)
	}
	return k
}

var kernels = map[Method]Kernel{
	// The single tap feeds the error back into the pixel that was just
	// quantized, so it never reaches a neighbor.
	Philips: mustKernel(Tap{0, 0, 1}),
	Sierra: mustKernel(
		Tap{0, 1, 2},
		Tap{1, -1, 1}, Tap{1, 0, 1},
	),
	Stucki: mustKernel(
		Tap{0, 1, 8}, Tap{0, 2, 4},
		Tap{1, -2, 2}, Tap{1, -1, 4}, Tap{1, 0, 8}, Tap{1, 1, 4}, Tap{1, 2, 2},
		Tap{2, -2, 1}, Tap{2, -1, 2}, Tap{2, 0, 4}, Tap{2, 1, 2}, Tap{2, 2, 1},
	),
	FloydSteinberg: mustKernel(
		Tap{0, 1, 7},
		Tap{1, -1, 3}, Tap{1, 0, 5}, Tap{1, 1, 1},
	),
}

// KernelFor returns a copy of the diffusion kernel used by m, and false for
// methods that do not diffuse error.
func KernelFor(m Method) (Kernel, bool) {
	k, ok := kernels[m]
	if !ok {
		return nil, false
	}
	return append(Kernel(nil), k...), true
}
