package colorspace

import (
	"fmt"
	"math"

	"github.com/anthonynsimon/bild/math/f64"

	"github.com/ironsheep/image-halftone-mcp/internal/imaging"
)

// defaultGraph is built once at package initialization from the registry's
// family cross product and never modified afterward.
var defaultGraph = buildDefaultGraph()

func buildDefaultGraph() *Graph {
	var edges []Edge
	families := Families()
	for _, from := range families {
		for _, to := range families {
			if from == to {
				continue
			}
			if fn, ok := converters[edgeKey{from, to}]; ok {
				edges = append(edges, Edge{From: from, To: to, Convert: fn})
			}
		}
	}
	g, err := NewGraph(edges)
	if err != nil {
		panic(fmt.Sprintf("colorspace: invalid converter table: %v", err))
	}
	return g
}

// DefaultGraph returns the process-wide conversion graph.
func DefaultGraph() *Graph {
	return defaultGraph
}

// Convert converts b from the source mode to the target mode using the
// default graph. See Graph.Convert.
func Convert(b *imaging.Buffer, source, target string) (*imaging.Buffer, error) {
	return defaultGraph.Convert(b, source, target)
}

// ShortestPath resolves two mode names and returns the family path the
// default graph would take between them.
func ShortestPath(source, target string) ([]string, error) {
	return defaultGraph.PathBetweenModes(source, target)
}

// PathBetweenModes resolves mode names to families and returns
// g.ShortestPath between them.
func (g *Graph) PathBetweenModes(source, target string) ([]string, error) {
	src, err := Lookup(source)
	if err != nil {
		return nil, err
	}
	dst, err := Lookup(target)
	if err != nil {
		return nil, err
	}
	return g.ShortestPath(src.Family, dst.Family)
}

// Convert converts b between two named modes.
//
// Parameters:
//   - b: The input buffer. Its channel count and storage must match the
//     source mode. It is never modified.
//   - source, target: Mode names, matched case-insensitively.
//
// Returns:
//   - *imaging.Buffer: The converted buffer in the target mode's channel
//     count and storage. When source and target name the same mode, b itself
//     is returned.
//   - error: UnknownModeError for unregistered names, ShapeMismatchError when
//     b does not match the source mode, NoConversionPathError when the
//     families are not connected.
//
// # Steps
//
//  1. Samples are normalized: integer storages are divided by the mode's Max.
//  2. The family path is found with ShortestPath and each converter runs in turn.
//     Modes of the same family skip this step.
//  3. The result is cast to the target storage: integer modes are scaled by
//     Max, rounded and clamped; float modes keep their native values.
func (g *Graph) Convert(b *imaging.Buffer, source, target string) (*imaging.Buffer, error) {
	src, err := Lookup(source)
	if err != nil {
		return nil, err
	}
	dst, err := Lookup(target)
	if err != nil {
		return nil, err
	}
	if err := src.Check(b); err != nil {
		return nil, fmt.Errorf("convert %s->%s: %w", src.Name, dst.Name, err)
	}
	if src.Name == dst.Name {
		return b, nil
	}

	path, err := g.ShortestPath(src.Family, dst.Family)
	if err != nil {
		return nil, err
	}
	out, err := g.Run(src.normalize(b), path)
	if err != nil {
		return nil, fmt.Errorf("convert %s->%s: %w", src.Name, dst.Name, err)
	}
	if out.Channels != dst.Channels {
		return nil, &imaging.ShapeMismatchError{
			Op:   fmt.Sprintf("convert %s->%s", src.Name, dst.Name),
			Want: fmt.Sprintf("%d channels", dst.Channels),
			Got:  fmt.Sprintf("%d channels", out.Channels),
		}
	}
	return dst.denormalize(out), nil
}

func clampRound(v, lo, hi float64) float64 {
	return f64.Clamp(math.Round(v), lo, hi)
}
