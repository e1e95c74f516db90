package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/kujungmul/hyperanf-graph-prototype/pkg/codec"
	"github.com/kujungmul/hyperanf-graph-prototype/pkg/graph"
	"github.com/kujungmul/hyperanf-graph-prototype/pkg/vertexcover"
)

type vertexCoverCommand struct {
	logger *zap.Logger

	path string
}

func (c *vertexCoverCommand) register(app *kingpin.Application) {
	cmd := app.Command("vertex-cover", "Compute a 2-approximate vertex cover over a compressed graph.").Action(c.run)
	cmd.Flag("path", "basename of the compressed graph").Required().StringVar(&c.path)
}

func (c *vertexCoverCommand) run(*kingpin.ParseContext) error {
	g, err := codec.ReadGraph(c.path)
	if err != nil {
		return err
	}

	vc := vertexcover.New(g)
	if err := g.IterateAllEdges(func(e graph.Edge) error {
		vc.InsertEdge(e)
		return nil
	}); err != nil {
		return err
	}

	size := 0
	it := g.NodeIterator(0)
	for it.NextNode() {
		if vc.IsInVertexCover(it.Node()) {
			size++
		}
	}

	c.logger.Info("vertex-cover", zap.String("path", c.path), zap.Int("size", size))
	fmt.Printf("vertex cover size: %d (of %d nodes)\n", size, g.NumNodes())
	return nil
}
