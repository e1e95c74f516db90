package codec

import (
	"path/filepath"
	"testing"

	"github.com/kujungmul/hyperanf-graph-prototype/pkg/graph"
	"github.com/kujungmul/hyperanf-graph-prototype/pkg/vertexcover"
)

func buildStar(leaves int) *graph.MutableGraph {
	g := graph.NewMutableGraph()
	hub := uint64(0)
	for i := 1; i <= leaves; i++ {
		g.AddEdge(uint64(i), hub)
	}
	return g
}

func TestWriteGraphReadGraphRoundTrip(t *testing.T) {
	g := buildStar(5)
	base := filepath.Join(t.TempDir(), "star")

	if err := WriteGraph(base, g); err != nil {
		t.Fatalf("WriteGraph: %v", err)
	}
	got, err := ReadGraph(base)
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}

	if got.NumNodes() != g.NumNodes() {
		t.Fatalf("NumNodes() = %d, want %d", got.NumNodes(), g.NumNodes())
	}
	if got.NumArcs() != g.NumArcs() {
		t.Fatalf("NumArcs() = %d, want %d", got.NumArcs(), g.NumArcs())
	}

	if err := g.IterateAllEdges(func(e graph.Edge) error {
		if !got.HasEdge(e.From, e.To) {
			t.Fatalf("round trip lost edge %d->%d", e.From, e.To)
		}
		return nil
	}); err != nil {
		t.Fatalf("IterateAllEdges: %v", err)
	}
}

// TestWriteGraphReadGraphVertexCoverAgrees is the codec round-trip
// scenario: write a star graph, read it back, and check that a vertex
// cover built fresh over the decoded graph agrees with one built over
// the original (each maximal matching of a star is a single arc, so each
// cover is the hub plus the leaf of the first arc IterateAllEdges yields,
// which is leaf 1 for both graphs since arcs are visited in ascending
// order).
func TestWriteGraphReadGraphVertexCoverAgrees(t *testing.T) {
	g := buildStar(6)
	base := filepath.Join(t.TempDir(), "star")
	if err := WriteGraph(base, g); err != nil {
		t.Fatalf("WriteGraph: %v", err)
	}
	got, err := ReadGraph(base)
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}

	origVC := vertexcover.New(g)
	if err := g.IterateAllEdges(func(e graph.Edge) error { origVC.InsertEdge(e); return nil }); err != nil {
		t.Fatalf("IterateAllEdges: %v", err)
	}
	gotVC := vertexcover.New(got)
	if err := got.IterateAllEdges(func(e graph.Edge) error { gotVC.InsertEdge(e); return nil }); err != nil {
		t.Fatalf("IterateAllEdges: %v", err)
	}

	for v := uint64(0); v <= 6; v++ {
		if origVC.IsInVertexCover(v) != gotVC.IsInVertexCover(v) {
			t.Fatalf("vertex %d: cover membership differs after round trip", v)
		}
	}
}

func TestWriteGraphReadGraphEmptyGraph(t *testing.T) {
	g := graph.NewMutableGraph()
	base := filepath.Join(t.TempDir(), "empty")
	if err := WriteGraph(base, g); err != nil {
		t.Fatalf("WriteGraph: %v", err)
	}
	got, err := ReadGraph(base)
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}
	if got.NumNodes() != 0 || got.NumArcs() != 0 {
		t.Fatalf("empty graph round trip: got nodes=%d arcs=%d", got.NumNodes(), got.NumArcs())
	}
}

func TestWriteGraphReadGraphIsolatedNodes(t *testing.T) {
	g := graph.NewMutableGraph()
	g.AddNode(0)
	g.AddNode(5)
	g.AddEdge(5, 0)

	base := filepath.Join(t.TempDir(), "isolated")
	if err := WriteGraph(base, g); err != nil {
		t.Fatalf("WriteGraph: %v", err)
	}
	got, err := ReadGraph(base)
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}
	if got.NumNodes() != 2 {
		t.Fatalf("NumNodes() = %d, want 2", got.NumNodes())
	}
	if !got.HasEdge(5, 0) {
		t.Fatal("round trip lost edge 5->0")
	}
}

func TestReadGraphRejectsMissingPropertiesKey(t *testing.T) {
	base := filepath.Join(t.TempDir(), "bad")
	if err := WriteProperties(base+".properties", Properties{"nodes": "1"}); err != nil {
		t.Fatalf("WriteProperties: %v", err)
	}
	if _, err := ReadGraph(base); err == nil {
		t.Fatal("ReadGraph: want error for missing required keys, got nil")
	}
}
