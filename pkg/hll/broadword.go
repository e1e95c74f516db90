package hll

import "math/bits"

// This file implements the branch-free, word-parallel register-wise
// maximum described by Boldi and Vigna: rather than unpacking every
// register and comparing them one at a time, it treats a counter (or an
// entire chunk) as a vector of fixed-width lanes and computes, for every
// lane in parallel, whether y's lane is strictly greater than x's lane,
// then uses that comparison bit to select x or y lane-wise.
//
// msbMask has a single one bit at the top of every lane; lsbMask has a
// single one bit at the bottom of every lane. Both must be built for the
// exact bit-length of the buffers being compared — see buildPeriodicMasks
// below for why a shorter, modulus-indexed mask is not equivalent once a
// counter's lanes are not longword aligned.

// subtract performs a multi-precision subtraction x -= y in place,
// propagating the borrow across words exactly as ordinary binary
// subtraction would (via math/bits.Sub64, the standard-library
// multi-precision primitive for this).
func subtract(x, y []uint64) {
	var borrow uint64
	for i := range x {
		x[i], borrow = bits.Sub64(x[i], y[i], borrow)
	}
}

// maxLanes computes, lane by lane, max(x[lane], y[lane]) over x and y
// packed registerSize-bit lanes, writing the result into x. msbMask and
// lsbMask must already be sized to len(x) == len(y).
func maxLanes(x, y, msbMask, lsbMask []uint64, registerSize int) {
	l := len(x)
	accumulator := make([]uint64, l)
	mask := make([]uint64, l)

	for i := l - 1; i >= 0; i-- {
		accumulator[i] = y[i] | msbMask[i]
	}
	for i := l - 1; i >= 0; i-- {
		mask[i] = x[i] &^ msbMask[i]
	}
	subtract(accumulator, mask)

	for i := l - 1; i >= 0; i-- {
		accumulator[i] = ((accumulator[i] | (y[i] ^ x[i])) ^ (y[i] | ^x[i])) & msbMask[i]
	}

	rMinus1 := uint(registerSize - 1)
	longSizeMinusRMinus1 := uint(64) - rMinus1
	for i := 0; i < l-1; i++ {
		mask[i] = accumulator[i]>>rMinus1 | accumulator[i+1]<<longSizeMinusRMinus1 | msbMask[i]
	}
	mask[l-1] = accumulator[l-1]>>rMinus1 | msbMask[l-1]

	subtract(mask, lsbMask)

	for i := l - 1; i >= 0; i-- {
		mask[i] = (mask[i] | msbMask[i]) ^ accumulator[i]
	}

	for i := l - 1; i >= 0; i-- {
		x[i] ^= (x[i] ^ y[i]) & mask[i]
	}
}

// max computes the register-by-register maximum of two single-counter
// buffers (each exactly counterLongwords words) using this array's
// precomputed per-counter masks.
func (c *CounterArray) max(x, y []uint64) {
	maxLanes(x, y, c.msbMask, c.lsbMask, c.registerSize)
}

// maxWholeChunk computes the register-by-register maximum across an
// entire chunk's worth of packed registers (possibly spanning many
// counters). The chunk length need not be a multiple of counterLongwords
// when counters are not longword aligned, so the lane masks are rebuilt
// at the chunk's own length from first principles (period registerSize
// bits, continuing seamlessly across counter boundaries since counters
// pack back-to-back with no padding) rather than reused via modulus
// indexing into the shorter per-counter mask — see DESIGN.md, open
// question 3.
func (c *CounterArray) maxWholeChunk(x, y []uint64) {
	msb, lsb := buildPeriodicMasks(c.registerSize, len(x))
	maxLanes(x, y, msb, lsb, c.registerSize)
}

// buildPeriodicMasks returns msb/lsb masks of the given length in
// 64-bit words, where bit i (globally, i = word*64+bit) is the top
// (resp. bottom) bit of some registerSize-wide lane, i.e. i%registerSize
// == registerSize-1 (resp. 0). The pattern is independent of where a
// counter happens to start, since registers pack with no gaps.
func buildPeriodicMasks(registerSize, words int) (msb, lsb []uint64) {
	msb = make([]uint64, words)
	lsb = make([]uint64, words)
	total := words * 64
	for i := registerSize - 1; i < total; i += registerSize {
		msb[i/64] |= uint64(1) << uint(i%64)
	}
	for i := 0; i < total; i += registerSize {
		lsb[i/64] |= uint64(1) << uint(i%64)
	}
	return msb, lsb
}
