package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/kujungmul/hyperanf-graph-prototype/pkg/codec"
	"github.com/kujungmul/hyperanf-graph-prototype/pkg/graph"
	"github.com/kujungmul/hyperanf-graph-prototype/pkg/neighborhood"
	"github.com/kujungmul/hyperanf-graph-prototype/pkg/watcher"
)

// watchCapacity and watchHop are fixed rather than flag-driven: this
// verb streams a live edge feed and reports on it, so a capacity of
// 100 tracked vertices and watching hop 1 (direct out-neighbourhood
// growth) are reasonable defaults without adding more flags than the
// diagnostic actually needs.
const (
	watchCapacity       = 100
	watchHop            = 1
	watchUpdateInterval = 0
)

type watchCommand struct {
	logger *zap.Logger

	path  string
	ratio float64
	min   int
}

func (c *watchCommand) register(app *kingpin.Application) {
	cmd := app.Command("watch", "Stream arc-list edges from stdin and print Top-Node Watcher firings.").Action(c.run)
	cmd.Flag("path", "basename of the compressed graph to seed the engine with").Required().StringVar(&c.path)
	cmd.Flag("ratio", "relative change, in (0,1], of a vertex's per-batch growth ratio of |B(v,hop)| since the last firing that counts as a dirty vertex").Required().Float64Var(&c.ratio)
	cmd.Flag("min", "minimum number of dirty vertices required to fire").Required().IntVar(&c.min)
}

func (c *watchCommand) run(*kingpin.ParseContext) error {
	g, err := codec.ReadGraph(c.path)
	if err != nil {
		return err
	}

	callback := func(f watcher.Firing) {
		fmt.Printf("watch: fired at %s, %d entries\n", f.At.Format(time.RFC3339), len(f.Entries))
		for _, e := range f.Entries {
			fmt.Printf("  v=%d ratio=%.3f\n", e.Vertex, e.Ratio)
		}
	}

	engine, err := neighborhood.New(g, watchHop, defaultLog2m, defaultSeed,
		neighborhood.WithLogger(c.logger),
		neighborhood.WithWatcher(watchCapacity, c.ratio, c.min, watchUpdateInterval*time.Second, watchHop, callback),
	)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return fmt.Errorf("hyperanf: watch stdin line %d: want 2 fields, got %d", lineNo, len(fields))
		}
		from, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return fmt.Errorf("hyperanf: watch stdin line %d: %w", lineNo, err)
		}
		to, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return fmt.Errorf("hyperanf: watch stdin line %d: %w", lineNo, err)
		}
		if err := engine.AddEdges(ctx, []graph.Edge{{From: from, To: to}}); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	c.logger.Info("watch finished", zap.String("path", c.path), zap.Int("lines", lineNo))
	return nil
}
