package codec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kujungmul/hyperanf-graph-prototype/pkg/graph"
)

func TestArcListRoundTrip(t *testing.T) {
	g := graph.NewMutableGraph()
	g.AddEdge(0, 1)
	g.AddEdge(0, 2)
	g.AddEdge(1, 2)
	g.AddNode(3)

	path := filepath.Join(t.TempDir(), "graph.arcs")
	if err := WriteArcList(path, g); err != nil {
		t.Fatalf("WriteArcList: %v", err)
	}

	got, err := ReadArcList(path)
	if err != nil {
		t.Fatalf("ReadArcList: %v", err)
	}
	if !got.HasEdge(0, 1) || !got.HasEdge(0, 2) || !got.HasEdge(1, 2) {
		t.Fatalf("round trip lost an edge: %v", got)
	}
	if got.NumArcs() != g.NumArcs() {
		t.Fatalf("NumArcs() = %d, want %d", got.NumArcs(), g.NumArcs())
	}
}

func TestReadArcListSkipsBlankAndCommentLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.arcs")
	content := "# a comment\n\n0 1\n  \n1 2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	g, err := ReadArcList(path)
	if err != nil {
		t.Fatalf("ReadArcList: %v", err)
	}
	if g.NumArcs() != 2 {
		t.Fatalf("NumArcs() = %d, want 2", g.NumArcs())
	}
}

func TestReadArcListMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.arcs")
	if err := os.WriteFile(path, []byte("0 1 2\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := ReadArcList(path); err == nil {
		t.Fatal("ReadArcList: want error for malformed line, got nil")
	}
}

func TestReadArcListMissingFile(t *testing.T) {
	if _, err := ReadArcList(filepath.Join(t.TempDir(), "missing.arcs")); err == nil {
		t.Fatal("ReadArcList: want error for missing file, got nil")
	}
}
