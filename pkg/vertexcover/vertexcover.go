// Package vertexcover maintains a 2-approximate vertex cover of a
// directed graph under edge insertions and deletions, using Ivković and
// Lloyd's simple maximal-matching scheme: every covered vertex is either
// matched to exactly one neighbour across the matching, or (transiently,
// never for long) unmatched.
package vertexcover

import "github.com/kujungmul/hyperanf-graph-prototype/pkg/graph"

// AffectedState describes how InsertEdge/DeleteEdge changed a vertex's
// cover membership.
type AffectedState int

const (
	// Added means the vertex entered the vertex cover.
	Added AffectedState = iota
	// Removed means the vertex left the vertex cover.
	Removed
)

func (s AffectedState) String() string {
	if s == Added {
		return "added"
	}
	return "removed"
}

// AffectedVertex reports one vertex cover membership change.
type AffectedVertex struct {
	Vertex uint64
	State  AffectedState
}

// DynamicVertexCover maintains cover membership and a maximal matching
// incrementally: -1 (no partner) marks an unmatched-but-possibly-covered
// vertex, which only occurs mid-update, never once InsertEdge/DeleteEdge
// returns.
type DynamicVertexCover struct {
	provider graph.Provider
	inCover  []bool
	partner  []int64
}

// New builds a vertex cover maintainer over provider, starting from an
// empty cover. Call InsertEdge once per existing arc to seed it from a
// non-empty graph.
func New(provider graph.Provider) *DynamicVertexCover {
	return &DynamicVertexCover{provider: provider}
}

func (vc *DynamicVertexCover) ensureCapacity(v uint64) {
	if v < uint64(len(vc.inCover)) {
		return
	}
	newLen := v + 1
	if geometric := uint64(float64(len(vc.inCover)) * 1.1); geometric > newLen {
		newLen = geometric
	}
	grownCover := make([]bool, newLen)
	copy(grownCover, vc.inCover)
	vc.inCover = grownCover

	grownPartner := make([]int64, newLen)
	for i := len(vc.partner); i < len(grownPartner); i++ {
		grownPartner[i] = -1
	}
	copy(grownPartner, vc.partner)
	vc.partner = grownPartner
}

// IsInVertexCover reports whether v is currently in the cover. A vertex
// never seen by Insert/DeleteEdge reads as false without growing any
// internal storage.
func (vc *DynamicVertexCover) IsInVertexCover(v uint64) bool {
	if v >= uint64(len(vc.inCover)) {
		return false
	}
	return vc.inCover[v]
}

// IsInMaximalMatching reports whether the arc from→to is currently an
// edge of the maintained maximal matching.
func (vc *DynamicVertexCover) IsInMaximalMatching(from, to uint64) bool {
	if from >= uint64(len(vc.partner)) {
		return false
	}
	return vc.partner[from] == int64(to)
}

func (vc *DynamicVertexCover) setCovered(v uint64, covered bool) {
	vc.inCover[v] = covered
}

// InsertEdge folds in one new arc, returning every vertex whose cover
// membership changed as a result (empty if the arc was already covered
// by one of its endpoints).
func (vc *DynamicVertexCover) InsertEdge(e graph.Edge) []AffectedVertex {
	vc.ensureCapacity(e.From)
	vc.ensureCapacity(e.To)

	if vc.inCover[e.From] || vc.inCover[e.To] {
		return nil
	}

	vc.setCovered(e.From, true)
	vc.setCovered(e.To, true)
	vc.partner[e.From] = int64(e.To)
	vc.partner[e.To] = int64(e.From)

	return []AffectedVertex{{Vertex: e.From, State: Added}, {Vertex: e.To, State: Added}}
}

// DeleteEdge removes one arc, returning every vertex whose cover
// membership changed. transpose must be a graph with every arc of the
// original graph reversed (kept in step with it by the caller) so that
// the endpoints' former incoming arcs can be re-examined without a full
// scan of every vertex; a nil transpose is rejected outright rather than
// silently degrading to that full scan. The arc e itself is never chosen
// as a replacement matching edge, whether or not the caller has already
// removed it from the provider and transpose.
func (vc *DynamicVertexCover) DeleteEdge(e graph.Edge, transpose graph.Provider) ([]AffectedVertex, error) {
	if transpose == nil {
		return nil, ErrMissingTranspose
	}
	vc.ensureCapacity(e.From)
	vc.ensureCapacity(e.To)

	if vc.partner[e.From] != int64(e.To) || vc.partner[e.To] != int64(e.From) {
		// The deleted arc was not a matching edge: both endpoints (if
		// covered at all) remain covered via their existing partners.
		return nil, nil
	}

	vc.partner[e.From] = -1
	vc.partner[e.To] = -1

	tracker := newAffectedTracker()
	vc.repairEndpoint(e.From, e, transpose, tracker)
	vc.repairEndpoint(e.To, e, transpose, tracker)
	return tracker.result(), nil
}

// repairEndpoint looks for a new matching partner for v after its
// matching edge was deleted, preferring an outgoing arc (cheap, via the
// forward provider) and falling back to an incoming arc (via transpose).
// If neither exists, v leaves the cover.
func (vc *DynamicVertexCover) repairEndpoint(v uint64, deleted graph.Edge, transpose graph.Provider, tracker *affectedTracker) {
	if vc.partner[v] != -1 {
		// Already re-matched while repairing the other endpoint.
		return
	}
	if vc.checkOutgoingEdges(v, deleted, tracker) {
		return
	}
	if vc.checkIncomingEdges(v, deleted, transpose, tracker) {
		return
	}
	vc.setCovered(v, false)
	tracker.record(v, Removed)
}

func (vc *DynamicVertexCover) checkOutgoingEdges(v uint64, deleted graph.Edge, tracker *affectedTracker) bool {
	it := vc.provider.Successors(v)
	for it.Next() {
		w := it.Target()
		vc.ensureCapacity(w)
		if w == v || vc.partner[w] != -1 || (v == deleted.From && w == deleted.To) {
			continue
		}
		vc.matchTogether(v, w, tracker)
		return true
	}
	return false
}

func (vc *DynamicVertexCover) checkIncomingEdges(v uint64, deleted graph.Edge, transpose graph.Provider, tracker *affectedTracker) bool {
	it := transpose.Successors(v)
	for it.Next() {
		w := it.Target()
		vc.ensureCapacity(w)
		if w == v || vc.partner[w] != -1 || (w == deleted.From && v == deleted.To) {
			continue
		}
		vc.matchTogether(v, w, tracker)
		return true
	}
	return false
}

// matchTogether matches v (already covered) with w, newly covering w if
// it was not already in the cover.
func (vc *DynamicVertexCover) matchTogether(v, w uint64, tracker *affectedTracker) {
	vc.partner[v] = int64(w)
	vc.partner[w] = int64(v)
	if !vc.inCover[w] {
		vc.setCovered(w, true)
		tracker.record(w, Added)
	}
}

// affectedTracker accumulates vertex cover membership changes within one
// DeleteEdge call, cancelling a vertex's entry out entirely if it both
// gains and loses cover membership in the same call (which
// repairEndpoint never actually does today since each endpoint is
// touched once, but the cancel-out rule is kept general since a future
// batched caller may record both events for the same vertex).
type affectedTracker struct {
	order []uint64
	state map[uint64]AffectedState
}

func newAffectedTracker() *affectedTracker {
	return &affectedTracker{state: make(map[uint64]AffectedState)}
}

func (t *affectedTracker) record(v uint64, s AffectedState) {
	if prev, ok := t.state[v]; ok {
		if prev != s {
			delete(t.state, v)
		}
		return
	}
	t.state[v] = s
	t.order = append(t.order, v)
}

func (t *affectedTracker) result() []AffectedVertex {
	out := make([]AffectedVertex, 0, len(t.state))
	for _, v := range t.order {
		if s, ok := t.state[v]; ok {
			out = append(out, AffectedVertex{Vertex: v, State: s})
		}
	}
	return out
}
