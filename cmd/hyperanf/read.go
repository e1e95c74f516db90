package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/kujungmul/hyperanf-graph-prototype/pkg/codec"
)

type readCommand struct {
	logger *zap.Logger

	path  string
	count int
	echo  bool
}

func (c *readCommand) register(app *kingpin.Application) {
	cmd := app.Command("read", "Read a compressed graph and optionally print its first N nodes.").Action(c.run)
	cmd.Flag("path", "basename of the compressed graph").Required().StringVar(&c.path)
	cmd.Flag("count", "number of leading nodes to read").Required().IntVar(&c.count)
	cmd.Flag("echo", "print each node and its successors").BoolVar(&c.echo)
}

func (c *readCommand) run(*kingpin.ParseContext) error {
	g, err := codec.ReadGraph(c.path)
	if err != nil {
		return err
	}

	n := 0
	it := g.NodeIterator(0)
	for n < c.count && it.NextNode() {
		v := it.Node()
		n++
		if !c.echo {
			continue
		}
		succ, err := it.Successors()
		if err != nil {
			return err
		}
		fmt.Printf("%d:", v)
		for succ.Next() {
			fmt.Printf(" %d", succ.Target())
		}
		fmt.Println()
	}

	c.logger.Info("read", zap.String("path", c.path), zap.Int("nodes_read", n))
	if !c.echo {
		fmt.Printf("read: %d nodes\n", n)
	}
	return nil
}
