package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/kujungmul/hyperanf-graph-prototype/pkg/codec"
)

// stripBlocksCommand re-encodes a compressed graph without any
// copy-block back-references. This codec's gap coding never emits copy
// blocks in the first place (see pkg/codec), so stripping them is a
// plain decode-then-reencode — exposed as its own verb for parity with
// tools that produce copy-block-encoded graphs and need a way to
// normalize them before feeding them to this codec.
type stripBlocksCommand struct {
	logger *zap.Logger

	in, out string
}

func (c *stripBlocksCommand) register(app *kingpin.Application) {
	cmd := app.Command("strip-blocks", "Strip block-encoding from a compressed graph.").Action(c.run)
	cmd.Flag("in", "basename of the input compressed graph").Required().StringVar(&c.in)
	cmd.Flag("out", "basename to write the stripped graph to").Required().StringVar(&c.out)
}

func (c *stripBlocksCommand) run(*kingpin.ParseContext) error {
	g, err := codec.ReadGraph(c.in)
	if err != nil {
		return err
	}
	if err := codec.WriteGraph(c.out, g); err != nil {
		return err
	}
	c.logger.Info("strip-blocks", zap.String("in", c.in), zap.String("out", c.out))
	fmt.Printf("strip-blocks: %s -> %s\n", c.in, c.out)
	return nil
}
