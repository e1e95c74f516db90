package codec

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Properties is an ASCII key=value property map, the same shape
// BVGraph-family formats use to describe a graph file alongside its
// binary payload.
type Properties map[string]string

// RequiredGraphKeys are the keys ReadGraph/WriteGraph always populate.
var RequiredGraphKeys = []string{"graphclass", "nodes", "arcs"}

// RequireKeys returns ErrInvalidArgument naming the first missing key,
// or nil if every key in keys is present.
func (p Properties) RequireKeys(keys ...string) error {
	for _, k := range keys {
		if _, ok := p[k]; !ok {
			return fmt.Errorf("codec: properties missing required key %q: %w", k, ErrInvalidArgument)
		}
	}
	return nil
}

// ReadProperties parses an ASCII "key=value" file, one pair per line,
// blank lines and lines starting with '#' ignored.
func ReadProperties(path string) (Properties, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("codec: open properties: %w: %w", err, ErrIO)
	}
	defer file.Close()

	p := make(Properties)
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.IndexByte(line, '=')
		if idx < 0 {
			return nil, fmt.Errorf("codec: properties line %d: missing '=': %w", lineNo, ErrInvalidArgument)
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if key == "" {
			return nil, fmt.Errorf("codec: properties line %d: empty key: %w", lineNo, ErrInvalidArgument)
		}
		p[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("codec: scan properties: %w: %w", err, ErrIO)
	}
	return p, nil
}

// WriteProperties writes p to path as "key=value" lines in sorted key
// order, so the output is deterministic.
func WriteProperties(path string, p Properties) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("codec: create properties: %w: %w", err, ErrIO)
	}
	defer file.Close()

	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := bufio.NewWriter(file)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, p[k]); err != nil {
			return fmt.Errorf("codec: write properties: %w: %w", err, ErrIO)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("codec: flush properties: %w: %w", err, ErrIO)
	}
	return nil
}
