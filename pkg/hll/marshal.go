package hll

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Marshal writes the array to w as a 22-byte header {log2m:u8,
// registerSize:u8, seed:u64, size:u64, chunkCount:u32} followed, for
// each chunk in turn, by a u32 word count and then that chunk's
// longwords, all little-endian. The chunk words are not written
// back-to-back after the header: every chunk carries its own length
// prefix, and Unmarshal expects it. This is deliberately not encoding/gob or any
// generic reflective serializer — the array's state is a flat slice of
// uint64 chunks and a handful of scalars, and a generic encoder would
// only add an indirection layer with no expressive benefit. See
// DESIGN.md for the full justification.
func (c *CounterArray) Marshal(w io.Writer) error {
	header := make([]byte, 1+1+8+8+4)
	header[0] = byte(c.log2m)
	header[1] = byte(c.registerSize)
	binary.LittleEndian.PutUint64(header[2:10], c.seed)
	binary.LittleEndian.PutUint64(header[10:18], c.size)
	binary.LittleEndian.PutUint32(header[18:22], uint32(len(c.bits)))
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("hll: write header: %w", err)
	}

	buf := make([]byte, 8)
	for _, chunk := range c.bits {
		var chunkLen [4]byte
		binary.LittleEndian.PutUint32(chunkLen[:], uint32(len(chunk)))
		if _, err := w.Write(chunkLen[:]); err != nil {
			return fmt.Errorf("hll: write chunk length: %w", err)
		}
		for _, word := range chunk {
			binary.LittleEndian.PutUint64(buf, word)
			if _, err := w.Write(buf); err != nil {
				return fmt.Errorf("hll: write chunk word: %w", err)
			}
		}
	}
	return nil
}

// Unmarshal reads an array previously written by Marshal.
func Unmarshal(r io.Reader) (*CounterArray, error) {
	header := make([]byte, 1+1+8+8+4)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("hll: read header: %w", err)
	}
	log2m := int(header[0])
	registerSize := int(header[1])
	seed := binary.LittleEndian.Uint64(header[2:10])
	size := binary.LittleEndian.Uint64(header[10:18])
	chunkCount := binary.LittleEndian.Uint32(header[18:22])

	sh, err := newShape(log2m, registerSize, seed)
	if err != nil {
		return nil, fmt.Errorf("hll: decode shape: %w", err)
	}

	c := &CounterArray{shape: sh, size: size, limit: size}
	c.bits = make([][]uint64, chunkCount)

	lenBuf := make([]byte, 4)
	wordBuf := make([]byte, 8)
	for i := range c.bits {
		if _, err := io.ReadFull(r, lenBuf); err != nil {
			return nil, fmt.Errorf("hll: read chunk length: %w", err)
		}
		n := binary.LittleEndian.Uint32(lenBuf)
		chunk := make([]uint64, n)
		for j := range chunk {
			if _, err := io.ReadFull(r, wordBuf); err != nil {
				return nil, fmt.Errorf("hll: read chunk word: %w", err)
			}
			chunk[j] = binary.LittleEndian.Uint64(wordBuf)
		}
		c.bits[i] = chunk
	}
	return c, nil
}
