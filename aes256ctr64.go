package aesctr

import (
	"encoding/binary"

	"github.com/opd-ai/go-aesctr/internal/hardware"
	"github.com/opd-ai/go-aesctr/internal/softaes"
)

// Aes256Ctr64 is a pseudo-random number generator based on the AES-256 block
// cipher running in CTR mode with a 64-bit counter. The high half of the
// counter register carries a nonce that is fixed for the generator's
// lifetime; the full 14 rounds of encryption are used.
//
// An Aes256Ctr64 is not safe for concurrent use.
type Aes256Ctr64 struct {
	hw   *hardware.Ctr64
	soft *softaes.Ctr64
}

// NewAes256Ctr64 returns a generator initialized with seed.
func NewAes256Ctr64(seed Seed256Ctr64) *Aes256Ctr64 {
	nonce := binary.LittleEndian.Uint64(seed[32:40])
	counter := binary.LittleEndian.Uint64(seed[40:48])
	if hasAESSupport() {
		return &Aes256Ctr64{hw: hardware.NewCtr64(seed[0:32], nonce, counter)}
	}
	var key [32]byte
	copy(key[:], seed[0:32])
	return &Aes256Ctr64{soft: softaes.NewCtr64(softaes.ExpandKey256(&key), nonce, counter)}
}

// NewAes256Ctr64FromEntropy returns a generator seeded from the OS entropy
// source. It panics if the OS source is unavailable.
func NewAes256Ctr64FromEntropy() *Aes256Ctr64 {
	return NewAes256Ctr64(Seed256Ctr64FromEntropy())
}

// Seed reseeds the generator in place, discarding the previous key and
// counter.
func (g *Aes256Ctr64) Seed(seed Seed256Ctr64) {
	nonce := binary.LittleEndian.Uint64(seed[32:40])
	counter := binary.LittleEndian.Uint64(seed[40:48])
	if g.hw != nil {
		g.hw.Reseed(seed[0:32], nonce, counter)
		return
	}
	var key [32]byte
	copy(key[:], seed[0:32])
	g.soft.Reseed(softaes.ExpandKey256(&key), nonce, counter)
}

// SeedFromEntropy reseeds the generator from the OS entropy source. It
// panics if the OS source is unavailable.
func (g *Aes256Ctr64) SeedFromEntropy() {
	g.Seed(Seed256Ctr64FromEntropy())
}

// Next returns the next 128-bit value of the stream. The counter wraps
// silently at 2^64.
func (g *Aes256Ctr64) Next() Uint128 {
	if g.hw != nil {
		return uint128FromBlock(g.hw.Next())
	}
	return uint128FromBlock(g.soft.Next())
}

// Uint64 returns the low 64 bits of Next, satisfying the Source interface of
// math/rand/v2.
func (g *Aes256Ctr64) Uint64() uint64 {
	return g.Next().Lo
}

// Counter returns the current position of the stream. Treat the value as
// confidential: it reveals how much output has been consumed.
func (g *Aes256Ctr64) Counter() uint64 {
	if g.hw != nil {
		return g.hw.Counter()
	}
	return g.soft.Counter()
}

// IsHardwareAccelerated reports whether the hardware backend is active.
func (g *Aes256Ctr64) IsHardwareAccelerated() bool {
	return g.hw != nil
}

// Close overwrites the generator's key and counter state with zeros. This is
// best-effort hygiene against later memory disclosure, not a security
// boundary. The generator must not be used afterwards.
func (g *Aes256Ctr64) Close() error {
	if g.hw != nil {
		g.hw.Zeroize()
	} else {
		g.soft.Zeroize()
	}
	return nil
}
