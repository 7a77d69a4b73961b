package colorspace

import (
	"fmt"
	"sort"

	"github.com/ironsheep/image-halftone-mcp/internal/imaging"
)

// Converter transforms a normalized float buffer of one family into a
// normalized float buffer of another. Converters must not modify their input.
type Converter func(*imaging.Buffer) (*imaging.Buffer, error)

// Edge is a directed converter between two families.
type Edge struct {
	From    string
	To      string
	Convert Converter
}

type edgeKey struct{ from, to string }

// Graph is an immutable directed graph over color families. It is safe for
// concurrent use once built.
type Graph struct {
	adj  map[string][]string // sorted neighbor lists
	conv map[edgeKey]Converter
}

// NewGraph builds a graph from edges.
//
// Parameters:
//   - edges: Directed converters. Self-loops, nil converters and duplicate
//     (From, To) pairs are rejected.
//
// Returns:
//   - *Graph: The built graph. Neighbor lists are sorted by family name so
//     that ShortestPath breaks ties lexicographically.
//   - error: InvalidParameterError describing the first bad edge.
func NewGraph(edges []Edge) (*Graph, error) {
	g := &Graph{
		adj:  make(map[string][]string),
		conv: make(map[edgeKey]Converter, len(edges)),
	}
	for _, e := range edges {
		k := edgeKey{e.From, e.To}
		switch {
		case e.From == e.To:
			return nil, &imaging.InvalidParameterError{Op: "new graph", Param: "edge", Reason: fmt.Sprintf("self-loop on %q", e.From)}
		case e.Convert == nil:
			return nil, &imaging.InvalidParameterError{Op: "new graph", Param: "edge", Reason: fmt.Sprintf("nil converter %s->%s", e.From, e.To)}
		}
		if _, dup := g.conv[k]; dup {
			return nil, &imaging.InvalidParameterError{Op: "new graph", Param: "edge", Reason: fmt.Sprintf("duplicate edge %s->%s", e.From, e.To)}
		}
		g.conv[k] = e.Convert
		g.adj[e.From] = append(g.adj[e.From], e.To)
		if _, ok := g.adj[e.To]; !ok {
			g.adj[e.To] = nil
		}
	}
	for _, n := range g.adj {
		sort.Strings(n)
	}
	return g, nil
}

// Nodes returns all families present in the graph, sorted.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.adj))
	for n := range g.adj {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Edges returns every (from, to) pair, sorted by from then to.
func (g *Graph) Edges() [][2]string {
	var out [][2]string
	for _, from := range g.Nodes() {
		for _, to := range g.adj[from] {
			out = append(out, [2]string{from, to})
		}
	}
	return out
}

// HasEdge reports whether a converter from -> to is registered.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.conv[edgeKey{from, to}]
	return ok
}

// ShortestPath returns the families visited on an unweighted shortest path
// from source to target, both included.
//
// The search is breadth-first. Neighbors are expanded in lexicographic order
// and a family's parent is fixed when it is first discovered, so among paths
// of equal length the one that is lexicographically smallest, compared
// hop by hop, is returned.
//
// A path from a family to itself is the single-element path.
// NoConversionPathError is returned when target is unreachable or either
// family is not in the graph.
func (g *Graph) ShortestPath(source, target string) ([]string, error) {
	if _, ok := g.adj[source]; !ok {
		return nil, &imaging.NoConversionPathError{Source: source, Target: target}
	}
	if source == target {
		return []string{source}, nil
	}

	parent := map[string]string{source: ""}
	queue := []string{source}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range g.adj[cur] {
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = cur
			if next == target {
				return unwind(parent, source, target), nil
			}
			queue = append(queue, next)
		}
	}
	return nil, &imaging.NoConversionPathError{Source: source, Target: target}
}

func unwind(parent map[string]string, source, target string) []string {
	var rev []string
	for n := target; n != source; n = parent[n] {
		rev = append(rev, n)
	}
	rev = append(rev, source)
	path := make([]string, len(rev))
	for i, n := range rev {
		path[len(rev)-1-i] = n
	}
	return path
}

// Run pipes b through the converters along path.
func (g *Graph) Run(b *imaging.Buffer, path []string) (*imaging.Buffer, error) {
	cur := b
	for i := 1; i < len(path); i++ {
		fn, ok := g.conv[edgeKey{path[i-1], path[i]}]
		if !ok {
			return nil, &imaging.NoConversionPathError{Source: path[i-1], Target: path[i]}
		}
		next, err := fn(cur)
		if err != nil {
			return nil, fmt.Errorf("%s->%s: %w", path[i-1], path[i], err)
		}
		cur = next
	}
	return cur, nil
}
