package softaes

import (
	"encoding/binary"
	"math/bits"
	"runtime"
)

// Ctr64 drives the fixsliced cipher in CTR mode with a 64-bit counter and a
// fixed 64-bit nonce occupying the high half of the block. Since the cipher
// encrypts four blocks per call, a batch of outputs is precomputed and served
// in counter order.
type Ctr64 struct {
	counter uint64
	nonce   uint64
	rk      []uint64
	batch   Batch
	idx     int
}

// NewCtr64 returns a generator positioned at counter, keyed with the
// fixsliced schedule rk.
func NewCtr64(rk []uint64, nonce, counter uint64) *Ctr64 {
	return &Ctr64{
		counter: counter,
		nonce:   nonce,
		rk:      rk,
		idx:     BatchBlocks,
	}
}

// Reseed replaces the schedule and counter in place, discarding any buffered
// output from the previous key.
func (c *Ctr64) Reseed(rk []uint64, nonce, counter uint64) {
	c.counter = counter
	c.nonce = nonce
	c.rk = rk
	c.idx = BatchBlocks
}

// Counter returns the position of the next output, accounting for blocks
// already computed into the batch but not yet read.
func (c *Ctr64) Counter() uint64 {
	return c.counter - uint64(BatchBlocks-c.idx)
}

// Next returns the encryption of the next counter value. The counter wraps
// silently at 2^64; the nonce half never changes.
func (c *Ctr64) Next() Block {
	if c.idx < BatchBlocks {
		b := c.batch[c.idx]
		c.idx++
		return b
	}

	base := c.counter
	c.counter += 4
	for i := 0; i < BatchBlocks; i++ {
		binary.LittleEndian.PutUint64(c.batch[i][0:8], base+uint64(i))
		binary.LittleEndian.PutUint64(c.batch[i][8:16], c.nonce)
	}
	c.batch = EncryptBatch(c.rk, &c.batch)

	c.idx = 1
	return c.batch[0]
}

// Zeroize overwrites all key and counter material with zeros.
func (c *Ctr64) Zeroize() {
	c.counter = 0
	c.nonce = 0
	for i := range c.rk {
		c.rk[i] = 0
	}
	c.batch = Batch{}
	c.idx = 0
	runtime.KeepAlive(c)
}

// Ctr128 drives the fixsliced cipher in CTR mode with a full 128-bit counter
// held as two 64-bit words (lo, hi).
type Ctr128 struct {
	lo, hi uint64
	rk     []uint64
	batch  Batch
	idx    int
}

// NewCtr128 returns a generator positioned at the counter (lo, hi), keyed
// with the fixsliced schedule rk.
func NewCtr128(rk []uint64, lo, hi uint64) *Ctr128 {
	return &Ctr128{
		lo:  lo,
		hi:  hi,
		rk:  rk,
		idx: BatchBlocks,
	}
}

// Reseed replaces the schedule and counter in place, discarding any buffered
// output from the previous key.
func (c *Ctr128) Reseed(rk []uint64, lo, hi uint64) {
	c.lo = lo
	c.hi = hi
	c.rk = rk
	c.idx = BatchBlocks
}

// Counter returns the 128-bit position of the next output as (lo, hi)
// words, accounting for blocks already computed into the batch but not yet
// read.
func (c *Ctr128) Counter() (lo, hi uint64) {
	var borrow uint64
	lo, borrow = bits.Sub64(c.lo, uint64(BatchBlocks-c.idx), 0)
	hi, _ = bits.Sub64(c.hi, 0, borrow)
	return lo, hi
}

// Clone returns an independent copy, including any buffered output. The
// round-key schedule is copied so that zeroizing one generator cannot reach
// into the other.
func (c *Ctr128) Clone() *Ctr128 {
	dup := *c
	dup.rk = make([]uint64, len(c.rk))
	copy(dup.rk, c.rk)
	return &dup
}

// Advance adds hiDelta * 2^64 to the stream position, wrapping at 2^128.
// Unread buffered blocks belong before the advance, so the counter is first
// rewound to the next unread position and the buffer dropped.
func (c *Ctr128) Advance(hiDelta uint64) {
	unread := uint64(BatchBlocks - c.idx)
	var borrow uint64
	c.lo, borrow = bits.Sub64(c.lo, unread, 0)
	c.hi, _ = bits.Sub64(c.hi, 0, borrow)
	c.hi += hiDelta
	c.idx = BatchBlocks
}

// Next returns the encryption of the next counter value. The counter wraps
// silently at 2^128.
func (c *Ctr128) Next() Block {
	if c.idx < BatchBlocks {
		b := c.batch[c.idx]
		c.idx++
		return b
	}

	lo, hi := c.lo, c.hi
	for i := 0; i < BatchBlocks; i++ {
		binary.LittleEndian.PutUint64(c.batch[i][0:8], lo)
		binary.LittleEndian.PutUint64(c.batch[i][8:16], hi)
		var carry uint64
		lo, carry = bits.Add64(lo, 1, 0)
		hi, _ = bits.Add64(hi, 0, carry)
	}
	c.lo, c.hi = lo, hi
	c.batch = EncryptBatch(c.rk, &c.batch)

	c.idx = 1
	return c.batch[0]
}

// Zeroize overwrites all key and counter material with zeros.
func (c *Ctr128) Zeroize() {
	c.lo = 0
	c.hi = 0
	for i := range c.rk {
		c.rk[i] = 0
	}
	c.batch = Batch{}
	c.idx = 0
	runtime.KeepAlive(c)
}
