package aesctr

import (
	"bytes"
	"testing"
)

func newTestRand() *Rand {
	return NewRand(NewAes128Ctr64(testSeed128Ctr64(0x5A)))
}

func TestUint64N(t *testing.T) {
	r := newTestRand()
	bounds := []uint64{1, 2, 3, 7, 8, 100, 1 << 32, 1<<63 + 1}
	for _, n := range bounds {
		for i := 0; i < 200; i++ {
			if got := r.Uint64N(n); got >= n {
				t.Fatalf("Uint64N(%d) = %d, out of range", n, got)
			}
		}
	}
	if got := r.Uint64N(1); got != 0 {
		t.Fatalf("Uint64N(1) = %d, want 0", got)
	}
}

func TestUint64NCoversRange(t *testing.T) {
	r := newTestRand()
	const n = 4
	var hits [n]bool
	for i := 0; i < 200; i++ {
		hits[r.Uint64N(n)] = true
	}
	for v, ok := range hits {
		if !ok {
			t.Errorf("value %d never produced in 200 draws", v)
		}
	}
}

func TestBoundedPanics(t *testing.T) {
	r := newTestRand()
	tests := []struct {
		name string
		fn   func()
	}{
		{"Uint64N zero", func() { r.Uint64N(0) }},
		{"Uint32N zero", func() { r.Uint32N(0) }},
		{"IntN zero", func() { r.IntN(0) }},
		{"IntN negative", func() { r.IntN(-1) }},
		{"Int64N negative", func() { r.Int64N(-5) }},
		{"Int32N zero", func() { r.Int32N(0) }},
		{"Shuffle negative", func() { r.Shuffle(-1, func(i, j int) {}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestSignedNonNegative(t *testing.T) {
	r := newTestRand()
	for i := 0; i < 500; i++ {
		if v := r.Int64(); v < 0 {
			t.Fatalf("Int64 = %d", v)
		}
		if v := r.Int32(); v < 0 {
			t.Fatalf("Int32 = %d", v)
		}
	}
}

func TestFloatRanges(t *testing.T) {
	r := newTestRand()
	for i := 0; i < 1000; i++ {
		if f := r.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64 = %v", f)
		}
		if f := r.Float32(); f < 0 || f >= 1 {
			t.Fatalf("Float32 = %v", f)
		}
	}
}

func TestBoolVaries(t *testing.T) {
	r := newTestRand()
	var trues int
	for i := 0; i < 1000; i++ {
		if r.Bool() {
			trues++
		}
	}
	// A fair coin over 1000 flips stays far inside these bounds.
	if trues < 400 || trues > 600 {
		t.Fatalf("Bool returned true %d/1000 times", trues)
	}
}

// Full 16-byte chunks of FillBytes carry entire output words, so a filled
// buffer reproduces the exact little-endian sequence Next would return.
func TestFillBytesMatchesStream(t *testing.T) {
	r := newTestRand()
	g := NewAes128Ctr64(testSeed128Ctr64(0x5A))
	defer g.Close()

	got := make([]byte, 48)
	r.FillBytes(got)

	var want []byte
	for i := 0; i < 3; i++ {
		b := g.Next().Bytes()
		want = append(want, b[:]...)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("FillBytes = %x, want %x", got, want)
	}
}

func TestFillBytesShort(t *testing.T) {
	r1 := newTestRand()
	r2 := newTestRand()

	got := make([]byte, 19)
	r1.FillBytes(got)

	want := make([]byte, 19)
	b := r2.Uint128().Bytes()
	copy(want, b[:])
	for i := 16; i < 19; i++ {
		want[i] = byte(r2.Uint128().Lo)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("FillBytes = %x, want %x", got, want)
	}

	r1.FillBytes(nil) // must not panic
}

func TestShufflePreservesElements(t *testing.T) {
	r := newTestRand()
	s := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	r.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })

	var seen [10]bool
	for _, v := range s {
		if v < 0 || v >= 10 || seen[v] {
			t.Fatalf("shuffle corrupted slice: %v", s)
		}
		seen[v] = true
	}

	r.Shuffle(0, func(i, j int) { t.Fatal("swap called for n=0") })
	r.Shuffle(1, func(i, j int) { t.Fatal("swap called for n=1") })
}

func TestPerm(t *testing.T) {
	r := newTestRand()
	p := r.Perm(32)
	if len(p) != 32 {
		t.Fatalf("len = %d", len(p))
	}
	var seen [32]bool
	for _, v := range p {
		if v < 0 || v >= 32 || seen[v] {
			t.Fatalf("not a permutation: %v", p)
		}
		seen[v] = true
	}
	if len(r.Perm(0)) != 0 {
		t.Error("Perm(0) not empty")
	}
}

func TestRandDeterministic(t *testing.T) {
	r1 := newTestRand()
	r2 := newTestRand()
	for i := 0; i < 100; i++ {
		if a, b := r1.Uint64N(1000), r2.Uint64N(1000); a != b {
			t.Fatalf("draw %d: %d != %d", i, a, b)
		}
	}
	if a, b := r1.Perm(20), r2.Perm(20); !equalInts(a, b) {
		t.Fatalf("permutations diverged: %v vs %v", a, b)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
