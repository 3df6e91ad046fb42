package aesctr

import (
	"encoding/binary"

	"github.com/opd-ai/go-aesctr/internal/hardware"
	"github.com/opd-ai/go-aesctr/internal/softaes"
)

// Aes128Ctr64 is a pseudo-random number generator based on the AES-128 block
// cipher running in CTR mode with a 64-bit counter. The high half of the
// counter register carries a nonce that is fixed for the generator's
// lifetime; the full 10 rounds of encryption are used.
//
// Exactly one backend is active, selected at construction: the hardware
// cipher on CPUs with AES instructions, the bitsliced software cipher
// everywhere else. Both produce identical output for identical seeds.
//
// An Aes128Ctr64 is not safe for concurrent use.
type Aes128Ctr64 struct {
	hw   *hardware.Ctr64
	soft *softaes.Ctr64
}

// NewAes128Ctr64 returns a generator initialized with seed.
func NewAes128Ctr64(seed Seed128Ctr64) *Aes128Ctr64 {
	nonce := binary.LittleEndian.Uint64(seed[16:24])
	counter := binary.LittleEndian.Uint64(seed[24:32])
	if hasAESSupport() {
		return &Aes128Ctr64{hw: hardware.NewCtr64(seed[0:16], nonce, counter)}
	}
	var key [16]byte
	copy(key[:], seed[0:16])
	return &Aes128Ctr64{soft: softaes.NewCtr64(softaes.ExpandKey128(&key), nonce, counter)}
}

// NewAes128Ctr64FromEntropy returns a generator seeded from the OS entropy
// source. It panics if the OS source is unavailable.
func NewAes128Ctr64FromEntropy() *Aes128Ctr64 {
	return NewAes128Ctr64(Seed128Ctr64FromEntropy())
}

// Seed reseeds the generator in place, discarding the previous key and
// counter.
func (g *Aes128Ctr64) Seed(seed Seed128Ctr64) {
	nonce := binary.LittleEndian.Uint64(seed[16:24])
	counter := binary.LittleEndian.Uint64(seed[24:32])
	if g.hw != nil {
		g.hw.Reseed(seed[0:16], nonce, counter)
		return
	}
	var key [16]byte
	copy(key[:], seed[0:16])
	g.soft.Reseed(softaes.ExpandKey128(&key), nonce, counter)
}

// SeedFromEntropy reseeds the generator from the OS entropy source. It
// panics if the OS source is unavailable.
func (g *Aes128Ctr64) SeedFromEntropy() {
	g.Seed(Seed128Ctr64FromEntropy())
}

// Next returns the next 128-bit value of the stream. The counter wraps
// silently at 2^64.
func (g *Aes128Ctr64) Next() Uint128 {
	if g.hw != nil {
		return uint128FromBlock(g.hw.Next())
	}
	return uint128FromBlock(g.soft.Next())
}

// Uint64 returns the low 64 bits of Next, satisfying the Source interface of
// math/rand/v2.
func (g *Aes128Ctr64) Uint64() uint64 {
	return g.Next().Lo
}

// Counter returns the current position of the stream. Treat the value as
// confidential: it reveals how much output has been consumed.
func (g *Aes128Ctr64) Counter() uint64 {
	if g.hw != nil {
		return g.hw.Counter()
	}
	return g.soft.Counter()
}

// IsHardwareAccelerated reports whether the hardware backend is active.
func (g *Aes128Ctr64) IsHardwareAccelerated() bool {
	return g.hw != nil
}

// Close overwrites the generator's key and counter state with zeros. This is
// best-effort hygiene against later memory disclosure, not a security
// boundary. The generator must not be used afterwards.
func (g *Aes128Ctr64) Close() error {
	if g.hw != nil {
		g.hw.Zeroize()
	} else {
		g.soft.Zeroize()
	}
	return nil
}
