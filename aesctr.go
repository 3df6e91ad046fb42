// Package aesctr provides deterministic pseudo-random number generators
// built on the AES block cipher running in counter (CTR) mode.
//
// Four generator variants are provided, the product of the cipher strength
// and the counter width:
//
//	Aes128Ctr64  — AES-128, 64-bit counter with a fixed 64-bit nonce
//	Aes128Ctr128 — AES-128, full 128-bit counter with Jump/LongJump
//	Aes256Ctr64  — AES-256, 64-bit counter with a fixed 64-bit nonce
//	Aes256Ctr128 — AES-256, full 128-bit counter with Jump/LongJump
//
// Each construction checks whether the CPU provides AES instructions and
// selects between a hardware-accelerated cipher and a bitsliced software
// implementation; the two produce identical output for identical seeds, so
// the choice is invisible apart from IsHardwareAccelerated. Building with
// the "purego" tag forces the software path everywhere.
//
// The generators pass strong statistical test batteries, but they are not
// cryptographically secure random number generators: there is no reseeding
// policy and no resistance to state-compromise. Do not use them to produce
// key material.
//
// Example usage:
//
//	rng := aesctr.NewAes128Ctr128FromEntropy()
//	defer rng.Close()
//
//	worker := rng.Jump() // non-overlapping subsequence for a parallel task
//	r := aesctr.NewRand(rng)
//	n := r.IntN(52)
package aesctr

// Source is a stream of raw 128-bit values. All four generator types in this
// package implement it; every derived convenience value is defined in terms
// of it.
type Source interface {
	// Next returns the next 128-bit value of the stream.
	Next() Uint128
}
