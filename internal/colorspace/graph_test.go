package colorspace

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ironsheep/image-halftone-mcp/internal/imaging"
)

func identity(b *imaging.Buffer) (*imaging.Buffer, error) { return b.Clone(), nil }

func TestNewGraph_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		edges []Edge
	}{
		{"self loop", []Edge{{From: "a", To: "a", Convert: identity}}},
		{"nil converter", []Edge{{From: "a", To: "b"}}},
		{"duplicate", []Edge{{From: "a", To: "b", Convert: identity}, {From: "a", To: "b", Convert: identity}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGraph(tt.edges); !errors.Is(err, imaging.ErrInvalidParameter) {
				t.Errorf("err = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestShortestPath_TieBreak(t *testing.T) {
	// Two equal-length routes a->b->d and a->c->d; edges are deliberately
	// registered in reverse order.
	g, err := NewGraph([]Edge{
		{From: "c", To: "d", Convert: identity},
		{From: "a", To: "c", Convert: identity},
		{From: "b", To: "d", Convert: identity},
		{From: "a", To: "b", Convert: identity},
	})
	if err != nil {
		t.Fatalf("NewGraph failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		path, err := g.ShortestPath("a", "d")
		if err != nil {
			t.Fatalf("ShortestPath failed: %v", err)
		}
		if want := []string{"a", "b", "d"}; !reflect.DeepEqual(path, want) {
			t.Fatalf("path = %v, want %v", path, want)
		}
	}
}

func TestShortestPath_Unreachable(t *testing.T) {
	g, err := NewGraph([]Edge{
		{From: "a", To: "b", Convert: identity},
		{From: "c", To: "d", Convert: identity},
	})
	if err != nil {
		t.Fatalf("NewGraph failed: %v", err)
	}

	tests := []struct {
		name, from, to string
	}{
		{"disconnected", "a", "d"},
		{"wrong direction", "b", "a"},
		{"unknown source", "zz", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.ShortestPath(tt.from, tt.to)
			var np *imaging.NoConversionPathError
			if !errors.As(err, &np) {
				t.Fatalf("err = %v, want NoConversionPathError", err)
			}
			if np.Source != tt.from || np.Target != tt.to {
				t.Errorf("error names %s->%s, want %s->%s", np.Source, np.Target, tt.from, tt.to)
			}
		})
	}
}

func TestShortestPath_SameFamily(t *testing.T) {
	path, err := DefaultGraph().ShortestPath(FamilyRGB, FamilyRGB)
	if err != nil || !reflect.DeepEqual(path, []string{"rgb"}) {
		t.Errorf("path = %v, err = %v", path, err)
	}
}

func TestDefaultGraph_Paths(t *testing.T) {
	tests := []struct {
		source, target string
		want           []string
	}{
		{"L", "RGB", []string{"gray", "rgb"}},
		{"LAB", "L", []string{"lab", "rgb", "gray"}},
		{"L", "1", []string{"gray", "bool"}},
		{"1", "L", []string{"bool", "rgb", "gray"}},
		{"CMYK", "HSV", []string{"cmyk", "rgb", "hsv"}},
		{"XYZ", "LAB", []string{"xyz", "lab"}},
		{"RGBA", "1", []string{"rgba", "rgb", "gray", "bool"}},
		{"hsv", "cmyk", []string{"hsv", "rgb", "cmyk"}},
	}
	for _, tt := range tests {
		t.Run(tt.source+"->"+tt.target, func(t *testing.T) {
			path, err := ShortestPath(tt.source, tt.target)
			if err != nil {
				t.Fatalf("ShortestPath failed: %v", err)
			}
			if !reflect.DeepEqual(path, tt.want) {
				t.Errorf("path = %v, want %v", path, tt.want)
			}
		})
	}
}

func TestDefaultGraph_Connected(t *testing.T) {
	g := DefaultGraph()
	if got := len(g.Edges()); got != len(converters) {
		t.Errorf("graph has %d edges, want %d", got, len(converters))
	}
	for _, from := range Families() {
		for _, to := range Families() {
			if _, err := g.ShortestPath(from, to); err != nil {
				t.Errorf("%s -> %s: %v", from, to, err)
			}
		}
	}
}

func TestGraph_RunWrapsErrors(t *testing.T) {
	boom := errors.New("boom")
	g, _ := NewGraph([]Edge{
		{From: "a", To: "b", Convert: func(*imaging.Buffer) (*imaging.Buffer, error) { return nil, boom }},
	})
	b, _ := imaging.NewBuffer(1, 1, 1, imaging.Float)
	if _, err := g.Run(b, []string{"a", "b"}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped boom", err)
	}
	if _, err := g.Run(b, []string{"b", "a"}); !errors.Is(err, imaging.ErrNoConversionPath) {
		t.Errorf("err = %v, want ErrNoConversionPath", err)
	}
}
