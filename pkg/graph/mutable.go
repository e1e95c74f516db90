package graph

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// MutableGraph is the read-write backing store every other component in
// this module is ultimately pointed at. It wraps a gonum directed graph
// so node/edge storage, iteration and the transpose it needs for vertex
// cover maintenance all ride on a well-tested graph library instead of a
// bespoke adjacency structure.
type MutableGraph struct {
	g       *simple.DirectedGraph
	numArcs uint64
}

// NewMutableGraph returns an empty mutable graph.
func NewMutableGraph() *MutableGraph {
	return &MutableGraph{g: simple.NewDirectedGraph()}
}

// AddNode ensures v exists in the graph, a no-op if it is already present.
func (mg *MutableGraph) AddNode(v uint64) {
	id := int64(v)
	if mg.g.Node(id) == nil {
		mg.g.AddNode(simple.Node(id))
	}
}

// AddEdge inserts the arc from→to, adding either endpoint if missing. It
// is a no-op if the arc already exists.
func (mg *MutableGraph) AddEdge(from, to uint64) {
	fid, tid := int64(from), int64(to)
	if mg.g.HasEdgeFromTo(fid, tid) {
		return
	}
	mg.AddNode(from)
	mg.AddNode(to)
	mg.g.SetEdge(simple.Edge{F: simple.Node(fid), T: simple.Node(tid)})
	mg.numArcs++
}

// AddEdges inserts a batch of arcs.
func (mg *MutableGraph) AddEdges(edges []Edge) {
	for _, e := range edges {
		mg.AddEdge(e.From, e.To)
	}
}

// DeleteEdge removes the arc from→to if present.
func (mg *MutableGraph) DeleteEdge(from, to uint64) {
	fid, tid := int64(from), int64(to)
	if !mg.g.HasEdgeFromTo(fid, tid) {
		return
	}
	mg.g.RemoveEdge(fid, tid)
	mg.numArcs--
}

// NumNodes returns the number of vertices currently in the graph.
func (mg *MutableGraph) NumNodes() uint64 {
	return uint64(mg.g.Nodes().Len())
}

// NumArcs returns the number of directed arcs currently in the graph.
func (mg *MutableGraph) NumArcs() uint64 {
	return mg.numArcs
}

// Outdegree returns the number of out-neighbours of v.
func (mg *MutableGraph) Outdegree(v uint64) uint64 {
	return uint64(mg.g.From(int64(v)).Len())
}

// Successors returns an iterator over v's out-neighbours in ascending
// id order.
func (mg *MutableGraph) Successors(v uint64) SuccessorIterator {
	it := mg.g.From(int64(v))
	targets := make([]uint64, 0, it.Len())
	for it.Next() {
		targets = append(targets, uint64(it.Node().ID()))
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
	return &sliceSuccessorIterator{targets: targets, pos: -1}
}

type sliceSuccessorIterator struct {
	targets []uint64
	pos     int
}

func (s *sliceSuccessorIterator) Next() bool {
	s.pos++
	return s.pos < len(s.targets)
}

func (s *sliceSuccessorIterator) Target() uint64 {
	return s.targets[s.pos]
}

// NodeIterator returns an iterator over vertex ids >= start, in
// ascending order.
func (mg *MutableGraph) NodeIterator(start uint64) NodeIterator {
	all := graph.NodesOf(mg.g.Nodes())
	ids := make([]uint64, 0, len(all))
	for _, n := range all {
		id := uint64(n.ID())
		if id >= start {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return &mutableNodeIterator{mg: mg, ids: ids, pos: -1}
}

type mutableNodeIterator struct {
	mg  *MutableGraph
	ids []uint64
	pos int
}

func (it *mutableNodeIterator) NextNode() bool {
	it.pos++
	return it.pos < len(it.ids)
}

func (it *mutableNodeIterator) Node() uint64 {
	return it.ids[it.pos]
}

func (it *mutableNodeIterator) Successors() (SuccessorIterator, error) {
	if it.pos < 0 || it.pos >= len(it.ids) {
		return nil, ErrInvalidState
	}
	return it.mg.Successors(it.ids[it.pos]), nil
}

// IterateAllEdges calls fn once for every arc in the graph, in ascending
// source id and then ascending target id, stopping at the first error fn
// returns.
func (mg *MutableGraph) IterateAllEdges(fn func(Edge) error) error {
	it := mg.NodeIterator(0)
	for it.NextNode() {
		from := it.Node()
		succ := mg.Successors(from)
		for succ.Next() {
			if err := fn(Edge{From: from, To: succ.Target()}); err != nil {
				return err
			}
		}
	}
	return nil
}

// Transpose returns a new mutable graph with every arc reversed.
func (mg *MutableGraph) Transpose() *MutableGraph {
	t := NewMutableGraph()
	nodes := graph.NodesOf(mg.g.Nodes())
	for _, n := range nodes {
		t.AddNode(uint64(n.ID()))
	}
	_ = mg.IterateAllEdges(func(e Edge) error {
		t.AddEdge(e.To, e.From)
		return nil
	})
	return t
}

// Copy returns a deep, independent copy of the graph.
func (mg *MutableGraph) Copy() *MutableGraph {
	c := NewMutableGraph()
	nodes := graph.NodesOf(mg.g.Nodes())
	for _, n := range nodes {
		c.AddNode(uint64(n.ID()))
	}
	_ = mg.IterateAllEdges(func(e Edge) error {
		c.AddEdge(e.From, e.To)
		return nil
	})
	return c
}

// HasEdge reports whether the arc from→to is present.
func (mg *MutableGraph) HasEdge(from, to uint64) bool {
	return mg.g.HasEdgeFromTo(int64(from), int64(to))
}

// String implements fmt.Stringer for debugging.
func (mg *MutableGraph) String() string {
	return fmt.Sprintf("MutableGraph{nodes=%d, arcs=%d}", mg.NumNodes(), mg.NumArcs())
}

var _ Provider = (*MutableGraph)(nil)
