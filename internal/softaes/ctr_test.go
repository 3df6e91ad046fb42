package softaes

import (
	"crypto/aes"
	"encoding/binary"
	"math"
	"testing"
)

func testKey128() ([16]byte, []uint64) {
	var key [16]byte
	for i := range key {
		key[i] = byte(i * 0x23)
	}
	return key, ExpandKey128(&key)
}

// refCtr64 computes the expected output for a counter position straight
// through crypto/aes, bypassing the batch machinery.
func refCtr64(t *testing.T, key []byte, nonce, counter uint64) Block {
	t.Helper()
	ref, err := aes.NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	var src, dst Block
	binary.LittleEndian.PutUint64(src[0:8], counter)
	binary.LittleEndian.PutUint64(src[8:16], nonce)
	ref.Encrypt(dst[:], src[:])
	return dst
}

func refCtr128(t *testing.T, key []byte, lo, hi uint64) Block {
	t.Helper()
	ref, err := aes.NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	var src, dst Block
	binary.LittleEndian.PutUint64(src[0:8], lo)
	binary.LittleEndian.PutUint64(src[8:16], hi)
	ref.Encrypt(dst[:], src[:])
	return dst
}

// Outputs must come back in counter order even though the cipher computes
// four blocks at a time, and must stay correct across batch refills.
func TestCtr64Order(t *testing.T) {
	key, rk := testKey128()
	const nonce = 0x1122334455667788

	c := NewCtr64(rk, nonce, 1000)
	for i := uint64(0); i < 11; i++ {
		want := refCtr64(t, key[:], nonce, 1000+i)
		if got := c.Next(); got != want {
			t.Fatalf("output %d = %x, want %x", i, got, want)
		}
	}
}

func TestCtr64Wrap(t *testing.T) {
	key, rk := testKey128()
	c := NewCtr64(rk, 0, math.MaxUint64-1)
	for i, counter := range []uint64{math.MaxUint64 - 1, math.MaxUint64, 0, 1, 2} {
		want := refCtr64(t, key[:], 0, counter)
		if got := c.Next(); got != want {
			t.Fatalf("output %d (counter %d) = %x, want %x", i, counter, got, want)
		}
	}
}

func TestCtr64ReseedDropsBuffer(t *testing.T) {
	key, rk := testKey128()
	c := NewCtr64(rk, 5, 0)
	c.Next() // buffers counters 1..3

	c.Reseed(ExpandKey128(&key), 5, 0)
	want := refCtr64(t, key[:], 5, 0)
	if got := c.Next(); got != want {
		t.Fatalf("first output after reseed = %x, want %x", got, want)
	}
}

func TestCtr128Order(t *testing.T) {
	key, rk := testKey128()
	c := NewCtr128(rk, 60, 9)
	for i := uint64(0); i < 11; i++ {
		want := refCtr128(t, key[:], 60+i, 9)
		if got := c.Next(); got != want {
			t.Fatalf("output %d = %x, want %x", i, got, want)
		}
	}
}

// The low word must carry into the high word, including mid-batch.
func TestCtr128Carry(t *testing.T) {
	key, rk := testKey128()
	c := NewCtr128(rk, math.MaxUint64-1, 3)
	positions := []struct{ lo, hi uint64 }{
		{math.MaxUint64 - 1, 3},
		{math.MaxUint64, 3},
		{0, 4},
		{1, 4},
		{2, 4},
	}
	for i, p := range positions {
		want := refCtr128(t, key[:], p.lo, p.hi)
		if got := c.Next(); got != want {
			t.Fatalf("output %d (lo=%d hi=%d) = %x, want %x", i, p.lo, p.hi, got, want)
		}
	}
}

func TestCtr128CloneAndAdvance(t *testing.T) {
	key, rk := testKey128()
	c := NewCtr128(rk, 7, 0)
	c.Next() // leave buffered output in place

	snap := c.Clone()
	c.Advance(2)

	// The clone continues the original stream, buffered blocks included.
	for i := uint64(0); i < 6; i++ {
		want := refCtr128(t, key[:], 8+i, 0)
		if got := snap.Next(); got != want {
			t.Fatalf("clone output %d = %x, want %x", i, got, want)
		}
	}

	// Zeroizing the clone must not corrupt the advanced original.
	snap.Zeroize()
	lo, hi := c.Counter()
	if hi != 2 {
		t.Fatalf("counter after Advance = (%d, %d), want hi 2", lo, hi)
	}
	want := refCtr128(t, key[:], lo, hi)
	if got := c.Next(); got != want {
		t.Fatalf("output after clone zeroize = %x, want %x", got, want)
	}
}

// Counter reports the position of the next unread output, not the batch
// base the cipher has computed ahead to.
func TestCounterMidBatch(t *testing.T) {
	_, rk := testKey128()

	c64 := NewCtr64(rk, 0, 100)
	for want := uint64(100); want < 110; want++ {
		if got := c64.Counter(); got != want {
			t.Fatalf("Ctr64 counter = %d, want %d", got, want)
		}
		c64.Next()
	}

	c128 := NewCtr128(rk, math.MaxUint64, 0)
	c128.Next() // batch spans the carry
	if lo, hi := c128.Counter(); lo != 0 || hi != 1 {
		t.Fatalf("Ctr128 counter = (%d, %d), want (0, 1)", lo, hi)
	}
}

func TestCtrZeroize(t *testing.T) {
	_, rk := testKey128()
	c := NewCtr64(rk, 1, 2)
	c.Next()
	c.Zeroize()
	if c.counter != 0 || c.nonce != 0 {
		t.Error("counter state not cleared")
	}
	for i, w := range c.rk {
		if w != 0 {
			t.Fatalf("round key word %d not cleared", i)
		}
	}
	if c.batch != (Batch{}) {
		t.Error("buffered output not cleared")
	}
}
