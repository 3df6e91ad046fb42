package aesctr

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// Uint128 is an unsigned 128-bit integer split into two 64-bit words. It is
// the raw output word of the generators and the counter type of the
// 128-bit-counter variants.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// uint128FromBlock interprets a 16-byte cipher block as a little-endian
// 128-bit integer.
func uint128FromBlock(b [16]byte) Uint128 {
	return Uint128{
		Lo: binary.LittleEndian.Uint64(b[0:8]),
		Hi: binary.LittleEndian.Uint64(b[8:16]),
	}
}

// Bytes returns the little-endian representation of u.
func (u Uint128) Bytes() [16]byte {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[0:8], u.Lo)
	binary.LittleEndian.PutUint64(b[8:16], u.Hi)
	return b
}

// Add returns u+n, wrapping at 2^128.
func (u Uint128) Add(n uint64) Uint128 {
	lo, carry := bits.Add64(u.Lo, n, 0)
	hi, _ := bits.Add64(u.Hi, 0, carry)
	return Uint128{Lo: lo, Hi: hi}
}

// AddHi returns u + n*2^64, wrapping at 2^128.
func (u Uint128) AddHi(n uint64) Uint128 {
	return Uint128{Lo: u.Lo, Hi: u.Hi + n}
}

// IsZero reports whether u is zero.
func (u Uint128) IsZero() bool {
	return u.Lo == 0 && u.Hi == 0
}

// String returns the value as a fixed-width hexadecimal literal.
func (u Uint128) String() string {
	return fmt.Sprintf("0x%016x%016x", u.Hi, u.Lo)
}
