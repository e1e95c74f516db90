package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/kujungmul/hyperanf-graph-prototype/pkg/codec"
	"github.com/kujungmul/hyperanf-graph-prototype/pkg/neighborhood"
)

// neighborhoodSampleSize bounds how many vertices the "neighborhood"
// verb prints, so a large graph doesn't flood stdout.
const neighborhoodSampleSize = 10

type neighborhoodCommand struct {
	logger *zap.Logger

	path string
	hops int
}

func (c *neighborhoodCommand) register(app *kingpin.Application) {
	cmd := app.Command("neighborhood", "Build a neighbourhood engine and print |B(v,h)| for sampled vertices.").Action(c.run)
	cmd.Flag("path", "basename of the compressed graph").Required().StringVar(&c.path)
	cmd.Flag("hops", "maximum hop distance to report").Required().IntVar(&c.hops)
}

func (c *neighborhoodCommand) run(*kingpin.ParseContext) error {
	g, err := codec.ReadGraph(c.path)
	if err != nil {
		return err
	}

	engine, err := neighborhood.New(g, c.hops, defaultLog2m, defaultSeed, neighborhood.WithLogger(c.logger))
	if err != nil {
		return err
	}

	var sampled []uint64
	it := g.NodeIterator(0)
	for len(sampled) < neighborhoodSampleSize && it.NextNode() {
		sampled = append(sampled, it.Node())
	}

	for _, v := range sampled {
		fmt.Printf("v=%d:", v)
		for h := 0; h <= c.hops; h++ {
			fmt.Printf(" B(%d)=%.2f", h, engine.Count(v, h))
		}
		fmt.Println()
	}

	c.logger.Info("neighborhood", zap.String("path", c.path), zap.Int("hops", c.hops), zap.Int("sampled", len(sampled)))
	return nil
}
