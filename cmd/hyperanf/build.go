package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/kujungmul/hyperanf-graph-prototype/pkg/codec"
)

type buildCommand struct {
	logger *zap.Logger

	path string
}

func (c *buildCommand) register(app *kingpin.Application) {
	cmd := app.Command("build", "Build a compressed graph (.graph/.offsets/.properties) from path+\".arcs\".").Action(c.run)
	cmd.Flag("path", "basename; the arc-list source is read from path+\".arcs\"").Required().StringVar(&c.path)
}

func (c *buildCommand) run(*kingpin.ParseContext) error {
	g, err := codec.ReadArcList(c.path + ".arcs")
	if err != nil {
		return err
	}
	if err := codec.WriteGraph(c.path, g); err != nil {
		return err
	}
	c.logger.Info("build", zap.String("path", c.path), zap.Uint64("nodes", g.NumNodes()), zap.Uint64("arcs", g.NumArcs()))
	fmt.Printf("build: %d nodes, %d arcs -> %s.{graph,offsets,properties}\n", g.NumNodes(), g.NumArcs(), c.path)
	return nil
}
