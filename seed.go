package aesctr

import (
	"encoding/binary"
	"io"

	"golang.org/x/crypto/blake2b"
)

// Seeds are fixed-width byte containers with a variant-specific layout. All
// fields are little-endian:
//
//	Seed128Ctr64:  16 key ‖ 8 nonce ‖ 8 counter  (32 bytes)
//	Seed128Ctr128: 16 key ‖ 16 counter           (32 bytes)
//	Seed256Ctr64:  32 key ‖ 8 nonce ‖ 8 counter  (48 bytes)
//	Seed256Ctr128: 32 key ‖ 16 counter           (48 bytes)

// Seed128Ctr64 seeds an Aes128Ctr64 generator.
type Seed128Ctr64 [32]byte

// NewSeed128Ctr64 assembles a seed from its key, nonce and counter fields.
func NewSeed128Ctr64(key [16]byte, nonce [8]byte, counter uint64) Seed128Ctr64 {
	var s Seed128Ctr64
	copy(s[0:16], key[:])
	copy(s[16:24], nonce[:])
	binary.LittleEndian.PutUint64(s[24:32], counter)
	return s
}

// Seed128Ctr64FromEntropy returns a seed drawn from the OS entropy source.
func Seed128Ctr64FromEntropy() Seed128Ctr64 {
	var s Seed128Ctr64
	mustEntropy(s[:])
	return s
}

// Seed128Ctr64FromMaterial derives a seed from arbitrary-length material
// using the BLAKE2b extendable-output function. Identical material always
// derives the identical seed.
func Seed128Ctr64FromMaterial(material []byte) Seed128Ctr64 {
	var s Seed128Ctr64
	deriveSeed(material, s[:])
	return s
}

// Seed128Ctr128 seeds an Aes128Ctr128 generator.
type Seed128Ctr128 [32]byte

// NewSeed128Ctr128 assembles a seed from its key and counter fields.
func NewSeed128Ctr128(key [16]byte, counter Uint128) Seed128Ctr128 {
	var s Seed128Ctr128
	copy(s[0:16], key[:])
	ctr := counter.Bytes()
	copy(s[16:32], ctr[:])
	return s
}

// Seed128Ctr128FromEntropy returns a seed drawn from the OS entropy source.
func Seed128Ctr128FromEntropy() Seed128Ctr128 {
	var s Seed128Ctr128
	mustEntropy(s[:])
	return s
}

// Seed128Ctr128FromMaterial derives a seed from arbitrary-length material
// using the BLAKE2b extendable-output function.
func Seed128Ctr128FromMaterial(material []byte) Seed128Ctr128 {
	var s Seed128Ctr128
	deriveSeed(material, s[:])
	return s
}

// Seed256Ctr64 seeds an Aes256Ctr64 generator.
type Seed256Ctr64 [48]byte

// NewSeed256Ctr64 assembles a seed from its key, nonce and counter fields.
func NewSeed256Ctr64(key [32]byte, nonce [8]byte, counter uint64) Seed256Ctr64 {
	var s Seed256Ctr64
	copy(s[0:32], key[:])
	copy(s[32:40], nonce[:])
	binary.LittleEndian.PutUint64(s[40:48], counter)
	return s
}

// Seed256Ctr64FromEntropy returns a seed drawn from the OS entropy source.
func Seed256Ctr64FromEntropy() Seed256Ctr64 {
	var s Seed256Ctr64
	mustEntropy(s[:])
	return s
}

// Seed256Ctr64FromMaterial derives a seed from arbitrary-length material
// using the BLAKE2b extendable-output function.
func Seed256Ctr64FromMaterial(material []byte) Seed256Ctr64 {
	var s Seed256Ctr64
	deriveSeed(material, s[:])
	return s
}

// Seed256Ctr128 seeds an Aes256Ctr128 generator.
type Seed256Ctr128 [48]byte

// NewSeed256Ctr128 assembles a seed from its key and counter fields.
func NewSeed256Ctr128(key [32]byte, counter Uint128) Seed256Ctr128 {
	var s Seed256Ctr128
	copy(s[0:32], key[:])
	ctr := counter.Bytes()
	copy(s[32:48], ctr[:])
	return s
}

// Seed256Ctr128FromEntropy returns a seed drawn from the OS entropy source.
func Seed256Ctr128FromEntropy() Seed256Ctr128 {
	var s Seed256Ctr128
	mustEntropy(s[:])
	return s
}

// Seed256Ctr128FromMaterial derives a seed from arbitrary-length material
// using the BLAKE2b extendable-output function.
func Seed256Ctr128FromMaterial(material []byte) Seed256Ctr128 {
	var s Seed256Ctr128
	deriveSeed(material, s[:])
	return s
}

// deriveSeed stretches material into len(out) seed bytes with BLAKE2b.
func deriveSeed(material, out []byte) {
	xof, err := blake2b.NewXOF(uint32(len(out)), nil)
	if err != nil {
		// Output sizes here are fixed at 32 or 48 bytes.
		panic("aesctr: " + err.Error())
	}
	xof.Write(material)
	if _, err := io.ReadFull(xof, out); err != nil {
		panic("aesctr: " + err.Error())
	}
}
