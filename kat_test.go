package aesctr

import (
	"bytes"
	"encoding/hex"
	"testing"
)

// FIPS-197 Appendix C known answers. The plaintext 00112233...eeff is the
// initial counter block, so the first two outputs of every variant are the
// encryptions of the counter and of the counter plus one.
const (
	fipsKey128 = "000102030405060708090a0b0c0d0e0f"
	fipsKey256 = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
	fipsIV     = "00112233445566778899aabbccddeeff"

	fipsNext128_0 = "69c4e0d86a7b0430d8cdb78070b4c55a"
	fipsNext128_1 = "a556156c72876577f67f95a9d9e640a7"
	fipsNext256_0 = "8ea2b7ca516745bfeafc49904b496089"
	fipsNext256_1 = "81ae7d5e4138bf730d2a8871fec2cd0c"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex vector %q: %v", s, err)
	}
	return b
}

// fipsSeed128Ctr64 splits the FIPS counter block into the 64-bit counter
// (low half) and nonce (high half) and packs the seed layout.
func fipsSeed128Ctr64(t *testing.T) Seed128Ctr64 {
	t.Helper()
	var seed Seed128Ctr64
	copy(seed[0:16], mustHex(t, fipsKey128))
	iv := mustHex(t, fipsIV)
	copy(seed[16:24], iv[8:16]) // nonce
	copy(seed[24:32], iv[0:8])  // counter
	return seed
}

func fipsSeed128Ctr128(t *testing.T) Seed128Ctr128 {
	t.Helper()
	var seed Seed128Ctr128
	copy(seed[0:16], mustHex(t, fipsKey128))
	copy(seed[16:32], mustHex(t, fipsIV))
	return seed
}

func fipsSeed256Ctr64(t *testing.T) Seed256Ctr64 {
	t.Helper()
	var seed Seed256Ctr64
	copy(seed[0:32], mustHex(t, fipsKey256))
	iv := mustHex(t, fipsIV)
	copy(seed[32:40], iv[8:16])
	copy(seed[40:48], iv[0:8])
	return seed
}

func fipsSeed256Ctr128(t *testing.T) Seed256Ctr128 {
	t.Helper()
	var seed Seed256Ctr128
	copy(seed[0:32], mustHex(t, fipsKey256))
	copy(seed[32:48], mustHex(t, fipsIV))
	return seed
}

func TestKnownAnswers(t *testing.T) {
	tests := []struct {
		name  string
		next  func(t *testing.T) [2]Uint128
		want0 string
		want1 string
	}{
		{
			name: "aes128 ctr64",
			next: func(t *testing.T) [2]Uint128 {
				g := NewAes128Ctr64(fipsSeed128Ctr64(t))
				defer g.Close()
				return [2]Uint128{g.Next(), g.Next()}
			},
			want0: fipsNext128_0,
			want1: fipsNext128_1,
		},
		{
			name: "aes128 ctr128",
			next: func(t *testing.T) [2]Uint128 {
				g := NewAes128Ctr128(fipsSeed128Ctr128(t))
				defer g.Close()
				return [2]Uint128{g.Next(), g.Next()}
			},
			want0: fipsNext128_0,
			want1: fipsNext128_1,
		},
		{
			name: "aes256 ctr64",
			next: func(t *testing.T) [2]Uint128 {
				g := NewAes256Ctr64(fipsSeed256Ctr64(t))
				defer g.Close()
				return [2]Uint128{g.Next(), g.Next()}
			},
			want0: fipsNext256_0,
			want1: fipsNext256_1,
		},
		{
			name: "aes256 ctr128",
			next: func(t *testing.T) [2]Uint128 {
				g := NewAes256Ctr128(fipsSeed256Ctr128(t))
				defer g.Close()
				return [2]Uint128{g.Next(), g.Next()}
			},
			want0: fipsNext256_0,
			want1: fipsNext256_1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.next(t)
			b0 := got[0].Bytes()
			b1 := got[1].Bytes()
			if !bytes.Equal(b0[:], mustHex(t, tt.want0)) {
				t.Errorf("first output = %x, want %s", b0, tt.want0)
			}
			if !bytes.Equal(b1[:], mustHex(t, tt.want1)) {
				t.Errorf("second output = %x, want %s", b1, tt.want1)
			}
		})
	}
}

// The ctr64 and ctr128 variants interpret the same 128-bit block as their
// initial counter (split or whole), so until the low 64 bits carry they must
// produce the same stream for the same key.
func TestVariantStreamAgreement(t *testing.T) {
	g64 := NewAes128Ctr64(fipsSeed128Ctr64(t))
	defer g64.Close()
	g128 := NewAes128Ctr128(fipsSeed128Ctr128(t))
	defer g128.Close()
	for i := 0; i < 64; i++ {
		a, b := g64.Next(), g128.Next()
		if a != b {
			t.Fatalf("output %d: ctr64 %v != ctr128 %v", i, a, b)
		}
	}
}
