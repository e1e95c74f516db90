package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/kujungmul/hyperanf-graph-prototype/pkg/codec"
	"github.com/kujungmul/hyperanf-graph-prototype/pkg/graph"
)

type unionCommand struct {
	logger *zap.Logger

	g1, g2, gout string
}

func (c *unionCommand) register(app *kingpin.Application) {
	cmd := app.Command("union", "Union two compressed graphs into a third.").Action(c.run)
	cmd.Arg("g1", "basename of the first compressed graph").Required().StringVar(&c.g1)
	cmd.Arg("g2", "basename of the second compressed graph").Required().StringVar(&c.g2)
	cmd.Arg("gout", "basename to write the union to").Required().StringVar(&c.gout)
}

func (c *unionCommand) run(*kingpin.ParseContext) error {
	a, err := codec.ReadGraph(c.g1)
	if err != nil {
		return err
	}
	b, err := codec.ReadGraph(c.g2)
	if err != nil {
		return err
	}

	out := graph.NewMutableGraph()
	merge := func(g graph.Provider) error {
		it := g.NodeIterator(0)
		for it.NextNode() {
			out.AddNode(it.Node())
		}
		return g.IterateAllEdges(func(e graph.Edge) error {
			out.AddEdge(e.From, e.To)
			return nil
		})
	}
	if err := merge(a); err != nil {
		return err
	}
	if err := merge(b); err != nil {
		return err
	}

	if err := codec.WriteGraph(c.gout, out); err != nil {
		return err
	}

	c.logger.Info("union",
		zap.String("g1", c.g1), zap.String("g2", c.g2), zap.String("gout", c.gout),
		zap.Uint64("nodes", out.NumNodes()), zap.Uint64("arcs", out.NumArcs()),
	)
	fmt.Printf("union: %d nodes, %d arcs -> %s\n", out.NumNodes(), out.NumArcs(), c.gout)
	return nil
}
