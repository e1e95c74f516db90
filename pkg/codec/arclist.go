package codec

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kujungmul/hyperanf-graph-prototype/pkg/graph"
)

// ReadArcList reads a directed arc list from path: one "u v" pair per
// line, fields separated by arbitrary whitespace, blank lines and lines
// starting with '#' ignored. This reader is directed: "u v" adds only
// the arc u->v, never its reverse.
func ReadArcList(path string) (*graph.MutableGraph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("codec: open arc list: %w: %w", err, ErrIO)
	}
	defer file.Close()

	g := graph.NewMutableGraph()
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("codec: arc list line %d: want 2 fields, got %d: %w", lineNo, len(fields), ErrInvalidArgument)
		}
		from, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("codec: arc list line %d: %w: %w", lineNo, err, ErrInvalidArgument)
		}
		to, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("codec: arc list line %d: %w: %w", lineNo, err, ErrInvalidArgument)
		}
		g.AddEdge(from, to)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("codec: scan arc list: %w: %w", err, ErrIO)
	}
	return g, nil
}

// WriteArcList writes every arc in g to path, one "u v" pair per line in
// the iteration order IterateAllEdges visits them.
func WriteArcList(path string, g graph.Provider) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("codec: create arc list: %w: %w", err, ErrIO)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	writeErr := g.IterateAllEdges(func(e graph.Edge) error {
		_, err := fmt.Fprintf(w, "%d %d\n", e.From, e.To)
		return err
	})
	if writeErr != nil {
		return fmt.Errorf("codec: write arc list: %w: %w", writeErr, ErrIO)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("codec: flush arc list: %w: %w", err, ErrIO)
	}
	return nil
}
