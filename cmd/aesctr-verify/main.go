// Command aesctr-verify exhaustively cross-checks the table-based and
// fixsliced AES-CTR backends against each other. For every generator
// variant it sweeps 256 key values crossed with 256 initial counter values
// and compares 255 consecutive outputs per pair, so a single flipped bit in
// either backend fails the run.
//
// The sweep takes a few minutes. It exits non-zero on the first mismatch.
package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"github.com/opd-ai/go-aesctr/internal/hardware"
	"github.com/opd-ai/go-aesctr/internal/softaes"
)

const (
	sweepValues = 256
	drawsPerKey = 255
)

func main() {
	start := time.Now()
	total := 0
	for _, v := range []struct {
		name string
		run  func() (int, error)
	}{
		{"aes128-ctr64", verify128Ctr64},
		{"aes128-ctr128", verify128Ctr128},
		{"aes256-ctr64", verify256Ctr64},
		{"aes256-ctr128", verify256Ctr128},
	} {
		fmt.Printf("verifying %s (%d x %d seeds, %d draws each)...\n",
			v.name, sweepValues, sweepValues, drawsPerKey)
		n, err := v.run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", v.name, err)
			os.Exit(1)
		}
		total += n
	}
	fmt.Printf("OK: %d outputs matched across all variants in %v\n",
		total, time.Since(start).Round(time.Millisecond))
}

// key128 and key256 spread the sweep value across every key byte so the
// sweep exercises more than the first column of the key schedule.
func key128(kv byte) (k [16]byte) {
	for i := range k {
		k[i] = kv ^ byte(i*0x11)
	}
	return k
}

func key256(kv byte) (k [32]byte) {
	for i := range k {
		k[i] = kv ^ byte(i*0x11)
	}
	return k
}

func verify128Ctr64() (int, error) {
	n := 0
	for kv := 0; kv < sweepValues; kv++ {
		key := key128(byte(kv))
		rk := softaes.ExpandKey128(&key)
		for cv := 0; cv < sweepValues; cv++ {
			// Start near a block-batch boundary as well as at round values.
			ctr := uint64(cv) * 0x01010101
			nonce := uint64(cv) << 32
			hw := hardware.NewCtr64(key[:], nonce, ctr)
			sw := softaes.NewCtr64(rk, nonce, ctr)
			for i := 0; i < drawsPerKey; i++ {
				h := hw.Next()
				s := sw.Next()
				if h != s {
					return n, mismatch("aes128-ctr64", kv, cv, i, h, s)
				}
				n++
			}
		}
	}
	return n, nil
}

func verify128Ctr128() (int, error) {
	n := 0
	for kv := 0; kv < sweepValues; kv++ {
		key := key128(byte(kv))
		rk := softaes.ExpandKey128(&key)
		for cv := 0; cv < sweepValues; cv++ {
			lo := uint64(cv) * 0x01010101
			hi := uint64(cv)
			hw := hardware.NewCtr128(key[:], lo, hi)
			sw := softaes.NewCtr128(rk, lo, hi)
			for i := 0; i < drawsPerKey; i++ {
				h := hw.Next()
				s := sw.Next()
				if h != s {
					return n, mismatch("aes128-ctr128", kv, cv, i, h, s)
				}
				n++
			}
		}
	}
	return n, nil
}

func verify256Ctr64() (int, error) {
	n := 0
	for kv := 0; kv < sweepValues; kv++ {
		key := key256(byte(kv))
		rk := softaes.ExpandKey256(&key)
		for cv := 0; cv < sweepValues; cv++ {
			ctr := uint64(cv) * 0x01010101
			nonce := uint64(cv) << 32
			hw := hardware.NewCtr64(key[:], nonce, ctr)
			sw := softaes.NewCtr64(rk, nonce, ctr)
			for i := 0; i < drawsPerKey; i++ {
				h := hw.Next()
				s := sw.Next()
				if h != s {
					return n, mismatch("aes256-ctr64", kv, cv, i, h, s)
				}
				n++
			}
		}
	}
	return n, nil
}

func verify256Ctr128() (int, error) {
	n := 0
	for kv := 0; kv < sweepValues; kv++ {
		key := key256(byte(kv))
		rk := softaes.ExpandKey256(&key)
		for cv := 0; cv < sweepValues; cv++ {
			lo := uint64(cv) * 0x01010101
			hi := uint64(cv)
			hw := hardware.NewCtr128(key[:], lo, hi)
			sw := softaes.NewCtr128(rk, lo, hi)
			for i := 0; i < drawsPerKey; i++ {
				h := hw.Next()
				s := sw.Next()
				if h != s {
					return n, mismatch("aes256-ctr128", kv, cv, i, h, s)
				}
				n++
			}
		}
	}
	return n, nil
}

func mismatch(variant string, kv, cv, draw int, h, s [16]byte) error {
	return fmt.Errorf("%s kv=%d cv=%d draw=%d: hardware=%x software=%x (lo=%d hi=%d)",
		variant, kv, cv, draw, h, s,
		binary.LittleEndian.Uint64(h[:8]), binary.LittleEndian.Uint64(h[8:]))
}
