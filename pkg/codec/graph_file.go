package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/kujungmul/hyperanf-graph-prototype/pkg/graph"
)

// GraphClass identifies this module's compressed graph format in a
// .properties file's graphclass key.
const GraphClass = "HyperANFGraph"

// WriteGraph writes g as a three-file BVGraph-style bundle:
// basePath+".properties" (graphclass/nodes/arcs), basePath+".offsets"
// (byte offset of each node's block within the .graph file, gap-coded)
// and basePath+".graph" (one gap-coded successor block per node, in
// ascending node-id order).
func WriteGraph(basePath string, g graph.Provider) error {
	graphFile, err := os.Create(basePath + ".graph")
	if err != nil {
		return fmt.Errorf("codec: create .graph: %w: %w", err, ErrIO)
	}
	defer graphFile.Close()
	offsetsFile, err := os.Create(basePath + ".offsets")
	if err != nil {
		return fmt.Errorf("codec: create .offsets: %w: %w", err, ErrIO)
	}
	defer offsetsFile.Close()

	gw := bufio.NewWriter(graphFile)
	ow := bufio.NewWriter(offsetsFile)

	var offset uint64
	var prevOffset uint64
	var prevNode uint64
	first := true
	nodes := uint64(0)

	it := g.NodeIterator(0)
	for it.NextNode() {
		v := it.Node()
		nodes++
		blockStart := offset

		if first {
			if err := writeUvarint(ow, offset); err != nil {
				return err
			}
			if err := writeUvarint(gw, v); err != nil {
				return err
			}
			offset += uvarintLen(v)
			first = false
		} else {
			if err := writeUvarint(ow, offset-prevOffset); err != nil {
				return err
			}
			if err := writeUvarint(gw, v-prevNode); err != nil {
				return err
			}
			offset += uvarintLen(v - prevNode)
		}
		prevOffset = blockStart
		prevNode = v

		succIt, err := it.Successors()
		if err != nil {
			return fmt.Errorf("codec: write graph: %w", err)
		}
		var targets []uint64
		for succIt.Next() {
			targets = append(targets, succIt.Target())
		}

		if err := writeUvarint(gw, uint64(len(targets))); err != nil {
			return err
		}
		offset += uvarintLen(uint64(len(targets)))

		var prevTarget uint64
		for i, t := range targets {
			if i == 0 {
				z := zigzagEncode(int64(t) - int64(v))
				if err := writeUvarint(gw, z); err != nil {
					return err
				}
				offset += uvarintLen(z)
			} else {
				d := t - prevTarget
				if err := writeUvarint(gw, d); err != nil {
					return err
				}
				offset += uvarintLen(d)
			}
			prevTarget = t
		}
	}

	if err := gw.Flush(); err != nil {
		return fmt.Errorf("codec: flush .graph: %w: %w", err, ErrIO)
	}
	if err := ow.Flush(); err != nil {
		return fmt.Errorf("codec: flush .offsets: %w: %w", err, ErrIO)
	}

	props := Properties{
		"graphclass": GraphClass,
		"nodes":      strconv.FormatUint(nodes, 10),
		"arcs":       strconv.FormatUint(g.NumArcs(), 10),
	}
	if err := WriteProperties(basePath+".properties", props); err != nil {
		return err
	}
	return nil
}

// ReadGraph reads back a bundle written by WriteGraph. The .offsets file
// is read and checked against the running byte position reached while
// decoding .graph, surfacing ErrInvalidArgument on any mismatch, but
// decoding itself is sequential — .offsets exists for the file format's
// own sake and for future random-access readers, not because sequential
// decode needs it.
func ReadGraph(basePath string) (*graph.MutableGraph, error) {
	props, err := ReadProperties(basePath + ".properties")
	if err != nil {
		return nil, err
	}
	if err := props.RequireKeys(RequiredGraphKeys...); err != nil {
		return nil, err
	}
	nodes, err := strconv.ParseUint(props["nodes"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("codec: properties nodes=%q: %w: %w", props["nodes"], err, ErrInvalidArgument)
	}

	offsetsFile, err := os.Open(basePath + ".offsets")
	if err != nil {
		return nil, fmt.Errorf("codec: open .offsets: %w: %w", err, ErrIO)
	}
	defer offsetsFile.Close()
	graphFile, err := os.Open(basePath + ".graph")
	if err != nil {
		return nil, fmt.Errorf("codec: open .graph: %w: %w", err, ErrIO)
	}
	defer graphFile.Close()

	or := bufio.NewReader(offsetsFile)
	gr := &countingByteReader{r: bufio.NewReader(graphFile)}

	g := graph.NewMutableGraph()

	var offset uint64
	var prevNode uint64
	for i := uint64(0); i < nodes; i++ {
		gap, err := readUvarint(or)
		if err != nil {
			return nil, fmt.Errorf("codec: read .offsets: %w: %w", err, ErrIO)
		}
		if i == 0 {
			offset = gap
		} else {
			offset += gap
		}
		if offset != gr.n {
			return nil, fmt.Errorf("codec: offsets/graph mismatch at node index %d: offset=%d bytes_read=%d: %w", i, offset, gr.n, ErrInvalidArgument)
		}

		var v uint64
		if i == 0 {
			v, err = readUvarint(gr)
			if err != nil {
				return nil, fmt.Errorf("codec: read .graph node id: %w: %w", err, ErrIO)
			}
		} else {
			delta, err := readUvarint(gr)
			if err != nil {
				return nil, fmt.Errorf("codec: read .graph node id: %w: %w", err, ErrIO)
			}
			v = prevNode + delta
		}
		g.AddNode(v)

		degree, err := readUvarint(gr)
		if err != nil {
			return nil, fmt.Errorf("codec: read .graph degree: %w: %w", err, ErrIO)
		}

		var prevTarget uint64
		for j := uint64(0); j < degree; j++ {
			if j == 0 {
				z, err := readUvarint(gr)
				if err != nil {
					return nil, fmt.Errorf("codec: read .graph successor: %w: %w", err, ErrIO)
				}
				prevTarget = uint64(int64(v) + zigzagDecode(z))
			} else {
				d, err := readUvarint(gr)
				if err != nil {
					return nil, fmt.Errorf("codec: read .graph successor: %w: %w", err, ErrIO)
				}
				prevTarget += d
			}
			g.AddEdge(v, prevTarget)
		}

		prevNode = v
	}

	return g, nil
}

// countingByteReader tracks bytes consumed so ReadGraph can cross-check
// the .offsets file against the .graph file's actual decode position.
type countingByteReader struct {
	r *bufio.Reader
	n uint64
}

func (c *countingByteReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err == nil {
		c.n++
	}
	return b, err
}

func writeUvarint(w *bufio.Writer, x uint64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], x)
	_, err := w.Write(buf[:n])
	if err != nil {
		return fmt.Errorf("codec: write varint: %w: %w", err, ErrIO)
	}
	return nil
}

func readUvarint(r io.ByteReader) (uint64, error) {
	return binary.ReadUvarint(r)
}

func uvarintLen(x uint64) uint64 {
	var buf [binary.MaxVarintLen64]byte
	return uint64(binary.PutUvarint(buf[:], x))
}

func zigzagEncode(n int64) uint64 {
	return uint64((n << 1) ^ (n >> 63))
}

func zigzagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}
