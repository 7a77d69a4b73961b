package halftone

import (
	"errors"
	"testing"

	"github.com/ironsheep/image-halftone-mcp/internal/imaging"
)

func row(t *testing.T, s imaging.Storage, data ...float64) *imaging.Buffer {
	t.Helper()
	b, err := imaging.NewBufferFrom(len(data), 1, 1, s, data)
	if err != nil {
		t.Fatalf("NewBufferFrom failed: %v", err)
	}
	return b
}

func uniform(t *testing.T, w, h int, v float64) *imaging.Buffer {
	t.Helper()
	b, err := imaging.NewBuffer(w, h, 1, imaging.Float)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	for i := range b.Data {
		b.Data[i] = v
	}
	return b
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		name   string
		in     []float64
		levels int
		max    float64
		want   []float64
	}{
		{"binary", []float64{0, 0.49, 0.5, 0.99, 1}, 2, 1, []float64{0, 0, 1, 1, 1}},
		{"four levels", []float64{0, 0.25, 0.3, 0.5, 0.74, 0.75, 1}, 4, 1, []float64{0, 1, 1, 2, 2, 3, 3}},
		{"byte range", []float64{0, 84, 85, 170, 255}, 3, 255, []float64{0, 0, 1, 2, 2}},
		{"out of range", []float64{-5, 7}, 2, 1, []float64{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Quantize(row(t, imaging.Float, tt.in...), tt.levels, tt.max)
			if err != nil {
				t.Fatalf("Quantize failed: %v", err)
			}
			for i := range tt.want {
				if out.Data[i] != tt.want[i] {
					t.Errorf("Quantize(%v)[%d] = %v, want %v", tt.in[i], i, out.Data[i], tt.want[i])
				}
			}
		})
	}
}

func TestQuantize_RangeProperty(t *testing.T) {
	for _, levels := range []int{2, 3, 7, 16} {
		b := uniform(t, 100, 1, 0)
		for i := range b.Data {
			b.Data[i] = float64(i) / 100 // covers [0, 1)
		}
		out, err := Quantize(b, levels, 1)
		if err != nil {
			t.Fatalf("Quantize failed: %v", err)
		}
		seen := make(map[float64]bool)
		for _, v := range out.Data {
			if v < 0 || v > float64(levels-1) || v != float64(int(v)) {
				t.Fatalf("levels=%d: got %v outside 0..%d", levels, v, levels-1)
			}
			seen[v] = true
		}
		if len(seen) != levels {
			t.Errorf("levels=%d: only %d distinct outputs", levels, len(seen))
		}
	}
}

func TestQuantize_Storage(t *testing.T) {
	tests := []struct {
		levels int
		want   imaging.Storage
	}{
		{2, imaging.Uint8},
		{256, imaging.Uint8},
		{257, imaging.Uint16},
		{65537, imaging.Float},
	}
	for _, tt := range tests {
		out, err := Quantize(row(t, imaging.Float, 0.5), tt.levels, 1)
		if err != nil {
			t.Fatalf("Quantize failed: %v", err)
		}
		if out.Storage != tt.want {
			t.Errorf("levels=%d: storage %v, want %v", tt.levels, out.Storage, tt.want)
		}
	}
}

func TestQuantize_MultiChannel(t *testing.T) {
	b, _ := imaging.NewBufferFrom(1, 1, 3, imaging.Uint8, []float64{0, 128, 255})
	out, err := Quantize(b, 2, 255)
	if err != nil {
		t.Fatalf("Quantize failed: %v", err)
	}
	if out.Channels != 3 || out.Data[0] != 0 || out.Data[1] != 1 || out.Data[2] != 1 {
		t.Errorf("out = %v (%d channels)", out.Data, out.Channels)
	}
}

func TestQuantize_InvalidParameters(t *testing.T) {
	b := row(t, imaging.Float, 0.5)
	tests := []struct {
		name   string
		levels int
		max    float64
	}{
		{"one level", 1, 1},
		{"zero levels", 0, 1},
		{"zero max", 2, 0},
		{"negative max", 2, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Quantize(b, tt.levels, tt.max); !errors.Is(err, imaging.ErrInvalidParameter) {
				t.Errorf("err = %v, want ErrInvalidParameter", err)
			}
		})
	}
}
