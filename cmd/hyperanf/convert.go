package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/kujungmul/hyperanf-graph-prototype/pkg/codec"
)

type convertCommand struct {
	logger *zap.Logger

	in, out string
}

func (c *convertCommand) register(app *kingpin.Application) {
	cmd := app.Command("convert", "Convert an arc-list graph to the compressed format.").Action(c.run)
	cmd.Flag("in", "path to the arc-list file").Required().StringVar(&c.in)
	cmd.Flag("out", "basename to write the compressed graph to").Required().StringVar(&c.out)
}

func (c *convertCommand) run(*kingpin.ParseContext) error {
	g, err := codec.ReadArcList(c.in)
	if err != nil {
		return err
	}
	if err := codec.WriteGraph(c.out, g); err != nil {
		return err
	}
	c.logger.Info("convert", zap.String("in", c.in), zap.String("out", c.out), zap.Uint64("nodes", g.NumNodes()), zap.Uint64("arcs", g.NumArcs()))
	fmt.Printf("convert: %d nodes, %d arcs -> %s.{graph,offsets,properties}\n", g.NumNodes(), g.NumArcs(), c.out)
	return nil
}
