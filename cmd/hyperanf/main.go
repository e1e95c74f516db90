// Command hyperanf drives the dynamic approximate neighbourhood engine
// from the command line: graph format conversion, vertex cover and
// multi-source BFS diagnostics, and live neighbourhood-function
// queries over a streamed edge feed.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/kujungmul/hyperanf-graph-prototype/pkg/codec"
)

// defaultLog2m and defaultSeed shape every counter array this CLI
// builds; there is no flag for them because every verb that needs a
// DANF engine (neighborhood, watch) is a diagnostic tool, not a
// production deployment path that would need to tune them.
const (
	defaultLog2m = 7
	defaultSeed  = 0
)

func main() {
	logger, err := newLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "hyperanf: building logger:", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	app := kingpin.New("hyperanf", "Dynamic approximate neighbourhood engine over a directed graph.")

	(&unionCommand{logger: logger}).register(app)
	(&vertexCoverCommand{logger: logger}).register(app)
	(&bfsCommand{logger: logger}).register(app)
	(&buildCommand{logger: logger}).register(app)
	(&stripBlocksCommand{logger: logger}).register(app)
	(&readCommand{logger: logger}).register(app)
	(&convertCommand{logger: logger}).register(app)
	(&neighborhoodCommand{logger: logger}).register(app)
	(&watchCommand{logger: logger}).register(app)

	if _, err := app.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, codec.ErrIO) {
			logger.Error("io error", zap.Error(err))
			os.Exit(2)
		}
		app.FatalUsage("%s", err)
	}
}
