package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/kujungmul/hyperanf-graph-prototype/pkg/codec"
	"github.com/kujungmul/hyperanf-graph-prototype/pkg/msbfs"
)

// bfsSourceCount is the number of random sources the bfs verb runs from.
const bfsSourceCount = 1000

type bfsCommand struct {
	logger *zap.Logger

	path string
}

func (c *bfsCommand) register(app *kingpin.Application) {
	cmd := app.Command("bfs", "Run multi-source BFS from 1000 random sources and report reachability.").Action(c.run)
	cmd.Arg("path", "basename of the compressed graph").Required().StringVar(&c.path)
}

func (c *bfsCommand) run(*kingpin.ParseContext) error {
	g, err := codec.ReadGraph(c.path)
	if err != nil {
		return err
	}

	var ids []uint64
	it := g.NodeIterator(0)
	for it.NextNode() {
		ids = append(ids, it.Node())
	}
	if len(ids) == 0 {
		fmt.Println("bfs: empty graph, nothing to do")
		return nil
	}

	rng := rand.New(rand.NewSource(defaultSeed))
	want := bfsSourceCount
	if want > len(ids) {
		want = len(ids)
	}
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	sources := ids[:want]

	engine := msbfs.New(g)
	start := time.Now()
	visited := make(map[uint64]struct{})
	maxDepth := len(ids)

	for batchStart := 0; batchStart < len(sources); batchStart += msbfs.MaxSources {
		batchEnd := batchStart + msbfs.MaxSources
		if batchEnd > len(sources) {
			batchEnd = len(sources)
		}
		batch := sources[batchStart:batchEnd]
		if err := engine.Msbfs(context.Background(), batch, maxDepth, func(_ int, v uint64, _ uint64) bool {
			visited[v] = struct{}{}
			return true
		}); err != nil {
			return err
		}
	}

	elapsed := time.Since(start)
	c.logger.Info("bfs", zap.String("path", c.path), zap.Int("sources", want), zap.Int("visited", len(visited)), zap.Duration("elapsed", elapsed))
	fmt.Printf("bfs: %d sources, %d distinct vertices visited, %s\n", want, len(visited), elapsed)
	return nil
}
