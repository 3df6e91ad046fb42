// Package hardware drives AES in CTR mode through crypto/aes, which executes
// the platform AES instructions (AES-NI, ARMv8 Cryptography Extensions) when
// they are present. Callers must only construct these generators after
// confirming the instructions are available; on other CPUs the bitsliced
// software backend is the correct choice.
package hardware

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"math/bits"
	"runtime"
)

// BlockSize is the AES block size in bytes.
const BlockSize = 16

// Block is a single 128-bit AES block.
type Block = [BlockSize]byte

func newCipher(key []byte) (cipher.Block, []byte) {
	block, err := aes.NewCipher(key)
	if err != nil {
		// Only 16 and 32 byte keys ever reach this package.
		panic("hardware: " + err.Error())
	}
	kc := make([]byte, len(key))
	copy(kc, key)
	return block, kc
}

// Ctr64 drives the cipher in CTR mode with a 64-bit counter and a fixed
// 64-bit nonce occupying the high half of the block.
type Ctr64 struct {
	block   cipher.Block
	key     []byte
	counter uint64
	nonce   uint64
}

// NewCtr64 returns a generator keyed with a 16 or 32 byte key, positioned at
// counter.
func NewCtr64(key []byte, nonce, counter uint64) *Ctr64 {
	block, kc := newCipher(key)
	return &Ctr64{block: block, key: kc, counter: counter, nonce: nonce}
}

// Reseed replaces the key and counter in place.
func (c *Ctr64) Reseed(key []byte, nonce, counter uint64) {
	for i := range c.key {
		c.key[i] = 0
	}
	c.block, c.key = newCipher(key)
	c.counter = counter
	c.nonce = nonce
}

// Counter returns the counter value of the next output.
func (c *Ctr64) Counter() uint64 { return c.counter }

// Next returns the encryption of the current counter value and increments the
// counter, wrapping silently at 2^64. The nonce half never changes.
func (c *Ctr64) Next() Block {
	var src, dst Block
	binary.LittleEndian.PutUint64(src[0:8], c.counter)
	binary.LittleEndian.PutUint64(src[8:16], c.nonce)
	c.counter++
	c.block.Encrypt(dst[:], src[:])
	return dst
}

// Zeroize overwrites the counter and retained key material with zeros. The
// expanded schedule inside crypto/aes is unreachable and is only dropped.
func (c *Ctr64) Zeroize() {
	c.counter = 0
	c.nonce = 0
	for i := range c.key {
		c.key[i] = 0
	}
	c.block = nil
	runtime.KeepAlive(c)
}

// Ctr128 drives the cipher in CTR mode with a full 128-bit counter held as
// two 64-bit words (lo, hi).
type Ctr128 struct {
	block  cipher.Block
	key    []byte
	lo, hi uint64
}

// NewCtr128 returns a generator keyed with a 16 or 32 byte key, positioned at
// the counter (lo, hi).
func NewCtr128(key []byte, lo, hi uint64) *Ctr128 {
	block, kc := newCipher(key)
	return &Ctr128{block: block, key: kc, lo: lo, hi: hi}
}

// Reseed replaces the key and counter in place.
func (c *Ctr128) Reseed(key []byte, lo, hi uint64) {
	for i := range c.key {
		c.key[i] = 0
	}
	c.block, c.key = newCipher(key)
	c.lo = lo
	c.hi = hi
}

// Counter returns the 128-bit counter of the next output as (lo, hi) words.
func (c *Ctr128) Counter() (lo, hi uint64) { return c.lo, c.hi }

// Clone returns an independent copy. The key copy is duplicated so that
// zeroizing one generator cannot reach into the other.
func (c *Ctr128) Clone() *Ctr128 {
	dup := *c
	dup.key = make([]byte, len(c.key))
	copy(dup.key, c.key)
	return &dup
}

// Advance adds hiDelta * 2^64 to the counter, wrapping at 2^128.
func (c *Ctr128) Advance(hiDelta uint64) {
	c.hi += hiDelta
}

// Next returns the encryption of the current counter value and increments the
// counter, wrapping silently at 2^128.
func (c *Ctr128) Next() Block {
	var src, dst Block
	binary.LittleEndian.PutUint64(src[0:8], c.lo)
	binary.LittleEndian.PutUint64(src[8:16], c.hi)
	var carry uint64
	c.lo, carry = bits.Add64(c.lo, 1, 0)
	c.hi, _ = bits.Add64(c.hi, 0, carry)
	c.block.Encrypt(dst[:], src[:])
	return dst
}

// Zeroize overwrites the counter and retained key material with zeros. The
// expanded schedule inside crypto/aes is unreachable and is only dropped.
func (c *Ctr128) Zeroize() {
	c.lo = 0
	c.hi = 0
	for i := range c.key {
		c.key[i] = 0
	}
	c.block = nil
	runtime.KeepAlive(c)
}
