package hll

import (
	"bytes"
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestAddAndCountWithinTolerance(t *testing.T) {
	const n = 20000
	c, err := NewWithLog2m(1, n, 7, 0)
	if err != nil {
		t.Fatalf("NewWithLog2m: %v", err)
	}

	for i := 0; i < n; i++ {
		c.Add(0, uint64(i))
	}

	got := c.Count(0)
	rsd := c.RelativeStandardDeviation()
	tolerance := 6 * rsd * n
	if math.Abs(got-float64(n)) > tolerance {
		t.Fatalf("Count = %f, want within %f of %d (rsd=%f)", got, tolerance, n, rsd)
	}
}

func TestCountOutOfRangeIsZeroNotError(t *testing.T) {
	c, err := NewWithLog2m(4, 100, 7, 0)
	if err != nil {
		t.Fatalf("NewWithLog2m: %v", err)
	}
	if got := c.Count(1000); got != 0 {
		t.Fatalf("Count(out of range) = %f, want 0", got)
	}
}

func TestAddCountersGrows(t *testing.T) {
	c, err := NewWithLog2m(1, 100, 6, 42)
	if err != nil {
		t.Fatalf("NewWithLog2m: %v", err)
	}
	if err := c.AddCounters(10000); err != nil {
		t.Fatalf("AddCounters: %v", err)
	}
	if c.Size() != 10001 {
		t.Fatalf("Size() = %d, want 10001", c.Size())
	}
	c.Add(10000, 123)
	if got := c.Count(10000); got <= 0 {
		t.Fatalf("Count(10000) = %f, want > 0 after Add", got)
	}
}

func TestAddCountersNegativeIsInvalidArgument(t *testing.T) {
	c, _ := NewWithLog2m(1, 100, 6, 0)
	err := c.AddCounters(-1)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("AddCounters(-1) error = %v, want ErrInvalidArgument", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c, _ := NewWithLog2m(4, 1000, 6, 0)
	for i := 0; i < 500; i++ {
		c.Add(0, uint64(i))
	}
	clone := c.Clone()

	for i := 500; i < 1000; i++ {
		c.Add(0, uint64(i))
	}

	if c.Count(0) == clone.Count(0) {
		t.Fatalf("mutating original changed clone's counter too")
	}
}

func TestGetSetCounterRoundTrip(t *testing.T) {
	c, _ := NewWithLog2m(4, 1000, 7, 1)
	for i := 0; i < 300; i++ {
		c.Add(1, uint64(i*7))
	}

	buf := make([]uint64, c.counterLongwords)
	c.GetCounter(1, buf)
	c.SetCounter(buf, 2)

	if c.Count(1) != c.Count(2) {
		t.Fatalf("Count(1)=%f != Count(2)=%f after GetCounter/SetCounter round trip", c.Count(1), c.Count(2))
	}
}

func TestUnionMatchesNaiveRegisterMax(t *testing.T) {
	a, _ := NewWithLog2m(1, 1000, 6, 9)
	b, _ := NewWithLog2m(1, 1000, 6, 9)

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		a.Add(0, uint64(r.Int63()))
	}
	for i := 0; i < 150; i++ {
		b.Add(0, uint64(r.Int63()))
	}

	bufA := make([]uint64, a.counterLongwords)
	bufB := make([]uint64, a.counterLongwords)
	a.GetCounter(0, bufA)
	b.GetCounter(0, bufB)
	wantRegs := make([]uint64, a.m)
	for i := 0; i < a.m; i++ {
		ra := getRegister(bufA, uint64(i*a.registerSize), a.registerSize)
		rb := getRegister(bufB, uint64(i*a.registerSize), a.registerSize)
		if rb > ra {
			ra = rb
		}
		wantRegs[i] = ra
	}

	if err := a.Union(0, b, 0); err != nil {
		t.Fatalf("Union: %v", err)
	}
	a.GetCounter(0, bufA)
	for i := 0; i < a.m; i++ {
		got := getRegister(bufA, uint64(i*a.registerSize), a.registerSize)
		if got != wantRegs[i] {
			t.Fatalf("register %d after Union = %d, want %d", i, got, wantRegs[i])
		}
	}
}

func TestUnionAllAcrossWholeChunk(t *testing.T) {
	a, _ := NewWithLog2m(8, 1000, 5, 3)
	b, _ := NewWithLog2m(8, 1000, 5, 3)

	r := rand.New(rand.NewSource(2))
	for k := uint64(0); k < 8; k++ {
		for i := 0; i < 20; i++ {
			a.Add(k, uint64(r.Int63()))
			b.Add(k, uint64(r.Int63()))
		}
	}

	expected := make([]float64, 8)
	for k := uint64(0); k < 8; k++ {
		ac, bc := a.Count(k), b.Count(k)
		if bc > ac {
			expected[k] = bc
		} else {
			expected[k] = ac
		}
	}

	if err := a.UnionAll(b); err != nil {
		t.Fatalf("UnionAll: %v", err)
	}

	for k := uint64(0); k < 8; k++ {
		got := a.Count(k)
		if got < expected[k]-1 || got > expected[k]+1 {
			t.Fatalf("Count(%d) after UnionAll = %f, want close to max %f", k, got, expected[k])
		}
	}
}

func TestUnionRejectsIncompatibleShape(t *testing.T) {
	a, _ := NewWithLog2m(4, 1000, 6, 0)
	b, _ := NewWithLog2m(4, 1000, 7, 0)
	err := a.Union(0, b, 0)
	if !errors.Is(err, ErrIncompatibleShape) {
		t.Fatalf("Union across shapes error = %v, want ErrIncompatibleShape", err)
	}
}

func TestExtractThenUnionRoundTrip(t *testing.T) {
	c, _ := NewWithLog2m(10, 1000, 6, 5)
	for k := uint64(0); k < 10; k++ {
		for i := 0; i < 50; i++ {
			c.Add(k, uint64(k)*1000+uint64(i))
		}
	}

	indices := []uint64{1, 3, 7}
	extracted := c.Extract(indices)
	if extracted.Size() != uint64(len(indices)) {
		t.Fatalf("extracted.Size() = %d, want %d", extracted.Size(), len(indices))
	}

	for i, idx := range indices {
		if extracted.Count(uint64(i)) != c.Count(idx) {
			t.Fatalf("extracted counter %d = %f, want %f (source index %d)", i, extracted.Count(uint64(i)), c.Count(idx), idx)
		}
	}

	target, _ := NewWithLog2m(10, 1000, 6, 5)
	for i, idx := range indices {
		if err := target.Union(idx, extracted, uint64(i)); err != nil {
			t.Fatalf("Union back: %v", err)
		}
	}
	for _, idx := range indices {
		if target.Count(idx) != c.Count(idx) {
			t.Fatalf("target.Count(%d) = %f, want %f", idx, target.Count(idx), c.Count(idx))
		}
	}
}

func TestClearCounterZeroesRegisters(t *testing.T) {
	c, _ := NewWithLog2m(4, 1000, 6, 11)
	for i := 0; i < 100; i++ {
		c.Add(2, uint64(i))
	}
	if c.Count(2) == 0 {
		t.Fatalf("expected non-zero count before clear")
	}
	c.ClearCounter(2)
	buf := make([]uint64, c.counterLongwords)
	c.GetCounter(2, buf)
	for _, w := range buf {
		if w != 0 {
			t.Fatalf("ClearCounter left non-zero bits: %v", buf)
		}
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	c, _ := NewWithLog2m(8, 5000, 7, 99)
	for k := uint64(0); k < 8; k++ {
		for i := 0; i < 100; i++ {
			c.Add(k, uint64(k)*7919+uint64(i))
		}
	}

	var buf bytes.Buffer
	if err := c.Marshal(&buf); err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	decoded, err := Unmarshal(&buf)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded.Log2M() != c.Log2M() || decoded.RegisterSize() != c.RegisterSize() || decoded.Seed() != c.Seed() || decoded.Size() != c.Size() {
		t.Fatalf("decoded shape mismatch: got log2m=%d rs=%d seed=%d size=%d", decoded.Log2M(), decoded.RegisterSize(), decoded.Seed(), decoded.Size())
	}
	for k := uint64(0); k < 8; k++ {
		if decoded.Count(k) != c.Count(k) {
			t.Fatalf("decoded.Count(%d) = %f, want %f", k, decoded.Count(k), c.Count(k))
		}
	}
}
