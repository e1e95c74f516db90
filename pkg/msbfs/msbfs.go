// Package msbfs runs a breadth-first search from many sources at once,
// propagating a bitmask of "which sources have reached this vertex" one
// lockstep depth at a time instead of running len(sources) independent
// searches.
package msbfs

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/kujungmul/hyperanf-graph-prototype/pkg/graph"
)

// MaxSources is the number of simultaneous sources a single Msbfs call
// can track, one per bit of the frontier mask.
const MaxSources = 64

// Visitor is called once per (depth, vertex) touched by the search, in
// ascending vertex-id order within a depth, after every vertex reachable
// at that depth has been computed. frontier is the bitmask of sources
// that reached v for the first time at this depth. Returning false
// prunes v: its successors are not explored on the following depth,
// though v itself has already been reported to every source in
// frontier.
type Visitor func(depth int, v uint64, frontier uint64) bool

// Engine runs multi-source BFS queries against a fixed graph provider.
type Engine struct {
	provider graph.Provider
	workers  int
}

// New builds an Engine over provider, using a worker pool sized to the
// host's CPU count for depth expansion.
func New(provider graph.Provider) *Engine {
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	return &Engine{provider: provider, workers: workers}
}

// Msbfs runs a multi-source breadth-first search from sources, calling
// visitor for every vertex discovered up to and including maxDepth.
// Source i owns bit i of every frontier mask; a vertex listed more than
// once in sources starts with all of its positions' bits set.
func (e *Engine) Msbfs(ctx context.Context, sources []uint64, maxDepth int, visitor Visitor) error {
	if len(sources) > MaxSources {
		return ErrTooManySources
	}

	visited := make(map[uint64]uint64, len(sources))
	frontier := make(map[uint64]uint64, len(sources))
	for i, s := range sources {
		frontier[s] |= uint64(1) << uint(i)
	}
	for v, mask := range frontier {
		visited[v] |= mask
	}

	pruned := e.emit(0, frontier, visitor)
	for v := range pruned {
		delete(frontier, v)
	}

	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		next := e.expand(frontier, visited)
		if len(next) == 0 {
			break
		}
		for v, mask := range next {
			visited[v] |= mask
		}

		pruned := e.emit(depth, next, visitor)
		for v := range pruned {
			delete(next, v)
		}
		frontier = next
	}

	return nil
}

// expand computes, for every vertex reachable in one hop from frontier,
// the bitmask of sources newly reaching it (excluding any source that
// had already visited it in an earlier depth). Work is partitioned by
// slicing the frontier's sorted vertex list into contiguous ranges, one
// per worker, each accumulating into its own local map; the maps are
// merged sequentially afterwards so no lock is held during traversal.
func (e *Engine) expand(frontier map[uint64]uint64, visited map[uint64]uint64) map[uint64]uint64 {
	keys := sortedKeys(frontier)

	numWorkers := e.workers
	if numWorkers > len(keys) {
		numWorkers = len(keys)
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	partials := make([]map[uint64]uint64, numWorkers)
	chunk := (len(keys) + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= len(keys) {
			partials[w] = nil
			continue
		}
		if end > len(keys) {
			end = len(keys)
		}

		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			local := make(map[uint64]uint64)
			for _, v := range keys[start:end] {
				mask := frontier[v]
				it := e.provider.Successors(v)
				for it.Next() {
					to := it.Target()
					newBits := mask &^ visited[to]
					if newBits == 0 {
						continue
					}
					local[to] |= newBits
				}
			}
			partials[w] = local
		}(w, start, end)
	}
	wg.Wait()

	next := make(map[uint64]uint64)
	for _, local := range partials {
		for v, mask := range local {
			next[v] |= mask &^ visited[v]
		}
	}
	for v := range next {
		if next[v] == 0 {
			delete(next, v)
		}
	}
	return next
}

// emit calls visitor for every vertex in frontier, in ascending vertex
// id order, and returns the set of vertices it pruned.
func (e *Engine) emit(depth int, frontier map[uint64]uint64, visitor Visitor) map[uint64]struct{} {
	pruned := make(map[uint64]struct{})
	for _, v := range sortedKeys(frontier) {
		if !visitor(depth, v, frontier[v]) {
			pruned[v] = struct{}{}
		}
	}
	return pruned
}

func sortedKeys(m map[uint64]uint64) []uint64 {
	keys := make([]uint64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
