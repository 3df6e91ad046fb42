// Package softaes implements AES-128 and AES-256 encryption without AES
// hardware instructions and without lookup tables, using the fixsliced
// representation described by Adomnicai and Peyrin
// (https://eprint.iacr.org/2020/1123.pdf).
//
// The state of four 128-bit blocks is kept as eight 64-bit bit-planes, the
// S-box is computed as a fixed Boolean circuit, and the ShiftRows permutation
// is folded into the pre-permuted round keys so the encryption rounds only
// cycle through four rotation variants. Four blocks are always encrypted
// together; the CTR generators in this package buffer the batch and serve it
// one block at a time.
package softaes

import "math/bits"

const (
	// BlockSize is the AES block size in bytes.
	BlockSize = 16

	// BatchBlocks is the number of blocks encrypted per batch.
	BatchBlocks = 4

	// KeyWords128 and KeyWords256 are the lengths of the fixsliced round-key
	// schedules: (rounds+1) round keys, each 8 bit-plane words.
	KeyWords128 = 88
	KeyWords256 = 120
)

// Block is a single 128-bit AES block.
type Block = [BlockSize]byte

// Batch holds the four blocks processed in parallel.
type Batch = [BatchBlocks]Block

// state is the 512-bit bitsliced representation of a Batch.
type state = [8]uint64

// ExpandKey128 produces the fixsliced AES-128 round keys for key.
func ExpandKey128(key *[16]byte) []uint64 {
	rk := make([]uint64, KeyWords128)

	bitslice(rk[:8], key, key, key, key)

	rkOff := 0
	for rcon := 0; rcon < 10; rcon++ {
		memshift32(rk, rkOff)
		rkOff += 8

		subBytes(rk[rkOff : rkOff+8])
		subBytesNots(rk[rkOff : rkOff+8])

		if rcon < 8 {
			addRoundConstantBit(rk[rkOff:rkOff+8], rcon)
		} else {
			// Round constants 0x1b and 0x36 span multiple bit-planes.
			addRoundConstantBit(rk[rkOff:rkOff+8], rcon-8)
			addRoundConstantBit(rk[rkOff:rkOff+8], rcon-7)
			addRoundConstantBit(rk[rkOff:rkOff+8], rcon-5)
			addRoundConstantBit(rk[rkOff:rkOff+8], rcon-4)
		}

		xorColumns(rk, rkOff, 8, rorDistance(1, 3))
	}

	// Adjust to match the fixsliced format.
	for i := 8; i < 72; i += 32 {
		invShiftRows1(rk[i : i+8])
		invShiftRows2(rk[i+8 : i+16])
		invShiftRows3(rk[i+16 : i+24])
	}
	invShiftRows1(rk[72:80])

	// Account for the NOTs removed from subBytes.
	for i := 1; i < 11; i++ {
		subBytesNots(rk[i*8 : i*8+8])
	}

	return rk
}

// ExpandKey256 produces the fixsliced AES-256 round keys for key.
func ExpandKey256(key *[32]byte) []uint64 {
	rk := make([]uint64, KeyWords256)

	var low, high Block
	copy(low[:], key[:16])
	copy(high[:], key[16:])

	bitslice(rk[:8], &low, &low, &low, &low)
	bitslice(rk[8:16], &high, &high, &high, &high)

	rkOff := 8
	rcon := 0
	for {
		memshift32(rk, rkOff)
		rkOff += 8

		subBytes(rk[rkOff : rkOff+8])
		subBytesNots(rk[rkOff : rkOff+8])

		addRoundConstantBit(rk[rkOff:rkOff+8], rcon)
		xorColumns(rk, rkOff, 16, rorDistance(1, 3))
		rcon++

		if rcon == 7 {
			break
		}

		memshift32(rk, rkOff)
		rkOff += 8

		subBytes(rk[rkOff : rkOff+8])
		subBytesNots(rk[rkOff : rkOff+8])

		xorColumns(rk, rkOff, 16, rorDistance(0, 3))
	}

	// Adjust to match the fixsliced format.
	for i := 8; i < 104; i += 32 {
		invShiftRows1(rk[i : i+8])
		invShiftRows2(rk[i+8 : i+16])
		invShiftRows3(rk[i+16 : i+24])
	}
	invShiftRows1(rk[104:112])

	// Account for the NOTs removed from subBytes.
	for i := 1; i < 15; i++ {
		subBytesNots(rk[i*8 : i*8+8])
	}

	return rk
}

// EncryptBatch encrypts four blocks in parallel using the fixsliced round
// keys produced by ExpandKey128 or ExpandKey256. The schedule length selects
// the round count; ShiftRows never appears on the data path.
func EncryptBatch(rk []uint64, blocks *Batch) Batch {
	var st state

	bitslice(st[:], &blocks[0], &blocks[1], &blocks[2], &blocks[3])

	addRoundKey(&st, rk[:8])

	rkOff := 8
	last := len(rk) - 8
	for {
		subBytes(st[:])
		mixColumns1(&st)
		addRoundKey(&st, rk[rkOff:rkOff+8])
		rkOff += 8

		if rkOff == last {
			break
		}

		subBytes(st[:])
		mixColumns2(&st)
		addRoundKey(&st, rk[rkOff:rkOff+8])
		rkOff += 8

		subBytes(st[:])
		mixColumns3(&st)
		addRoundKey(&st, rk[rkOff:rkOff+8])
		rkOff += 8

		subBytes(st[:])
		mixColumns0(&st)
		addRoundKey(&st, rk[rkOff:rkOff+8])
		rkOff += 8
	}

	// Final round: no MixColumns, but the state must be realigned since the
	// last full round applied the variant-1 rotation.
	shiftRows2(st[:])
	subBytes(st[:])
	addRoundKey(&st, rk[last:])

	return invBitslice(&st)
}

// addRoundKey XORs a pre-permuted fixsliced round key into the state.
func addRoundKey(st *state, rk []uint64) {
	for i := range st {
		st[i] ^= rk[i]
	}
}

// subBytes computes the AES S-box as the 113-gate Boolean circuit of Boyar,
// Peralta and Calik (http://www.cs.yale.edu/homes/peralta/CircuitStuff/SLP_AES_113.txt)
// over the eight bit-planes at once. The four bitwise NOTs of the circuit are
// omitted here and compensated for in the key schedule (see subBytesNots).
func subBytes(st []uint64) {
	u7 := st[0]
	u6 := st[1]
	u5 := st[2]
	u4 := st[3]
	u3 := st[4]
	u2 := st[5]
	u1 := st[6]
	u0 := st[7]

	y14 := u3 ^ u5
	y13 := u0 ^ u6
	y12 := y13 ^ y14
	t1 := u4 ^ y12
	y15 := t1 ^ u5
	t2 := y12 & y15
	y6 := y15 ^ u7
	y20 := t1 ^ u1
	y9 := u0 ^ u3
	y11 := y20 ^ y9
	t12 := y9 & y11
	y7 := u7 ^ y11
	y8 := u0 ^ u5
	t0 := u1 ^ u2
	y10 := y15 ^ t0
	y17 := y10 ^ y11
	t13 := y14 & y17
	t14 := t13 ^ t12
	y19 := y10 ^ y8
	t15 := y8 & y10
	t16 := t15 ^ t12
	y16 := t0 ^ y11
	y21 := y13 ^ y16
	t7 := y13 & y16
	y18 := u0 ^ y16
	y1 := t0 ^ u7
	y4 := y1 ^ u3
	t5 := y4 & u7
	t6 := t5 ^ t2
	t18 := t6 ^ t16
	t22 := t18 ^ y19
	y2 := y1 ^ u0
	t10 := y2 & y7
	t11 := t10 ^ t7
	t20 := t11 ^ t16
	t24 := t20 ^ y18
	y5 := y1 ^ u6
	t8 := y5 & y1
	t9 := t8 ^ t7
	t19 := t9 ^ t14
	t23 := t19 ^ y21
	y3 := y5 ^ y8
	t3 := y3 & y6
	t4 := t3 ^ t2
	t17 := t4 ^ y20
	t21 := t17 ^ t14
	t26 := t21 & t23
	t27 := t24 ^ t26
	t31 := t22 ^ t26
	t25 := t21 ^ t22
	t28 := t25 & t27
	t29 := t28 ^ t22
	z14 := t29 & y2
	z5 := t29 & y7
	t30 := t23 ^ t24
	t32 := t31 & t30
	t33 := t32 ^ t24
	t35 := t27 ^ t33
	t36 := t24 & t35
	t38 := t27 ^ t36
	t39 := t29 & t38
	t40 := t25 ^ t39
	t43 := t29 ^ t40
	z3 := t43 & y16
	tc12 := z3 ^ z5
	z12 := t43 & y13
	z13 := t40 & y5
	z4 := t40 & y1
	tc6 := z3 ^ z4
	t34 := t23 ^ t33
	t37 := t36 ^ t34
	t41 := t40 ^ t37
	z8 := t41 & y10
	z17 := t41 & y8
	t44 := t33 ^ t37
	z0 := t44 & y15
	z9 := t44 & y12
	z10 := t37 & y3
	z1 := t37 & y6
	tc5 := z1 ^ z0
	tc11 := tc6 ^ tc5
	z11 := t33 & y4
	t42 := t29 ^ t33
	t45 := t42 ^ t41
	z7 := t45 & y17
	tc8 := z7 ^ tc6
	z16 := t45 & y14
	z6 := t42 & y11
	tc16 := z6 ^ tc8
	z15 := t42 & y9
	tc20 := z15 ^ tc16
	tc1 := z15 ^ z16
	tc2 := z10 ^ tc1
	tc21 := tc2 ^ z11
	tc3 := z9 ^ tc2
	s0 := tc3 ^ tc16
	s3 := tc3 ^ tc11
	s1 := s3 ^ tc16
	tc13 := z13 ^ tc1
	z2 := t33 & u7
	tc4 := z0 ^ z2
	tc7 := z12 ^ tc4
	tc9 := z8 ^ tc7
	tc10 := tc8 ^ tc9
	tc17 := z14 ^ tc10
	s5 := tc21 ^ tc17
	tc26 := tc17 ^ tc20
	s2 := tc26 ^ z17
	tc14 := tc4 ^ tc12
	tc18 := tc13 ^ tc14
	s6 := tc10 ^ tc18
	s7 := z12 ^ tc18
	s4 := tc14 ^ s3

	st[0] = s7
	st[1] = s6
	st[2] = s5
	st[3] = s4
	st[4] = s3
	st[5] = s2
	st[6] = s1
	st[7] = s0
}

// subBytesNots applies the four NOT operations omitted in subBytes.
func subBytesNots(st []uint64) {
	st[0] ^= 0xFFFFFFFFFFFFFFFF
	st[1] ^= 0xFFFFFFFFFFFFFFFF
	st[5] ^= 0xFFFFFFFFFFFFFFFF
	st[6] ^= 0xFFFFFFFFFFFFFFFF
}

// addRoundConstantBit XORs one bit of the round constant into the indicated
// bit-plane, constant-folded into the fixsliced layout.
func addRoundConstantBit(st []uint64, bit int) {
	st[bit] ^= 0x00000000F0000000
}

func ror(x uint64, y int) uint64 {
	return bits.RotateLeft64(x, -y)
}

// rorDistance converts a (rows, columns) rotation of the 4x4 byte matrix into
// a bit-plane rotation distance.
func rorDistance(rows, cols int) int {
	return (rows << 4) + (cols << 2)
}

func invShiftRows1(st []uint64) { shiftRows3(st) }
func invShiftRows2(st []uint64) { shiftRows2(st) }
func invShiftRows3(st []uint64) { shiftRows1(st) }

// shiftRows1 applies ShiftRows once on an AES state (or key).
func shiftRows1(st []uint64) {
	for i := range st {
		deltaSwap1(&st[i], 8, 0x00F000FF000F0000)
		deltaSwap1(&st[i], 4, 0x0F0F00000F0F0000)
	}
}

// shiftRows2 applies ShiftRows twice on an AES state (or key).
func shiftRows2(st []uint64) {
	for i := range st {
		deltaSwap1(&st[i], 8, 0x00FF000000FF0000)
	}
}

// shiftRows3 applies ShiftRows three times on an AES state (or key).
func shiftRows3(st []uint64) {
	for i := range st {
		deltaSwap1(&st[i], 8, 0x000F00FF00F00000)
		deltaSwap1(&st[i], 4, 0x0F0F00000F0F0000)
	}
}

func deltaSwap1(a *uint64, shift int, mask uint64) {
	t := (*a ^ (*a >> shift)) & mask
	*a ^= t ^ (t << shift)
}

func deltaSwap2(a, b *uint64, shift int, mask uint64) {
	t := (*a ^ (*b >> shift)) & mask
	*a ^= t
	*b ^= t << shift
}

// memshift32 copies the 8 schedule words at src to an 8-word offset.
func memshift32(buf []uint64, src int) {
	dst := src + 8
	for i := 7; i >= 0; i-- {
		buf[dst+i] = buf[src+i]
	}
}

// xorColumns XORs the columns after the S-box during the key schedule round
// function. idxXor is the word distance to the previous round key (8 for
// AES-128, 16 for AES-256) and idxRor the rotation applied to the S-box
// output, which varies between the schedules.
func xorColumns(rk []uint64, offset, idxXor, idxRor int) {
	for i := 0; i < 8; i++ {
		off := offset + i
		v := rk[off-idxXor] ^ (0x000F000F000F000F & ror(rk[off], idxRor))
		rk[off] = v ^
			(0xFFF0FFF0FFF0FFF0 & (v << 4)) ^
			(0xFF00FF00FF00FF00 & (v << 8)) ^
			(0xF000F000F000F000 & (v << 12))
	}
}

// bitslice packs four 128-bit blocks into eight 64-bit bit-planes.
//
// Bitslicing is a bit index permutation. AES data is 4 blocks, each a 4x4
// column-major matrix of bytes, so each input bit sits at index
// ([b]lock, [c]olumn, [r]ow, [p]osition):
//
//	b1 b0 c1 c0 r1 r0 p2 p1 p0
//
// The bitsliced layout groups first by bit position, then row, column, block:
//
//	p2 p1 p0 r1 r0 c1 c0 b1 b0
func bitslice(out []uint64, in0, in1, in2, in3 *Block) {
	// Reorder each block's bytes on input
	//     __ __ c1 c0 r1 r0 __ __ __ => __ __ c0 r1 r0 c1 __ __ __
	// Reorder by relabeling (note the order of input)
	//     b1 b0 c0 __ __ __ __ __ __ => c0 b1 b0 __ __ __ __ __ __
	t0 := readReordered(in0[0x00:0x0C])
	t4 := readReordered(in0[0x04:0x10])
	t1 := readReordered(in1[0x00:0x0C])
	t5 := readReordered(in1[0x04:0x10])
	t2 := readReordered(in2[0x00:0x0C])
	t6 := readReordered(in2[0x04:0x10])
	t3 := readReordered(in3[0x00:0x0C])
	t7 := readReordered(in3[0x04:0x10])

	// Bit index swap 6 <-> 0:
	//     __ __ b0 __ __ __ __ __ p0 => __ __ p0 __ __ __ __ __ b0
	const m0 = 0x5555555555555555
	deltaSwap2(&t1, &t0, 1, m0)
	deltaSwap2(&t3, &t2, 1, m0)
	deltaSwap2(&t5, &t4, 1, m0)
	deltaSwap2(&t7, &t6, 1, m0)

	// Bit index swap 7 <-> 1:
	//     __ b1 __ __ __ __ __ p1 __ => __ p1 __ __ __ __ __ b1 __
	const m1 = 0x3333333333333333
	deltaSwap2(&t2, &t0, 2, m1)
	deltaSwap2(&t3, &t1, 2, m1)
	deltaSwap2(&t6, &t4, 2, m1)
	deltaSwap2(&t7, &t5, 2, m1)

	// Bit index swap 8 <-> 2:
	//     c0 __ __ __ __ __ p2 __ __ => p2 __ __ __ __ __ c0 __ __
	const m2 = 0x0F0F0F0F0F0F0F0F
	deltaSwap2(&t4, &t0, 4, m2)
	deltaSwap2(&t5, &t1, 4, m2)
	deltaSwap2(&t6, &t2, 4, m2)
	deltaSwap2(&t7, &t3, 4, m2)

	out[0] = t0
	out[1] = t1
	out[2] = t2
	out[3] = t3
	out[4] = t4
	out[5] = t5
	out[6] = t6
	out[7] = t7
}

// invBitslice unpacks eight 64-bit bit-planes into four 128-bit blocks,
// inverting bitslice.
func invBitslice(st *state) Batch {
	t0 := st[0]
	t1 := st[1]
	t2 := st[2]
	t3 := st[3]
	t4 := st[4]
	t5 := st[5]
	t6 := st[6]
	t7 := st[7]

	const m0 = 0x5555555555555555
	deltaSwap2(&t1, &t0, 1, m0)
	deltaSwap2(&t3, &t2, 1, m0)
	deltaSwap2(&t5, &t4, 1, m0)
	deltaSwap2(&t7, &t6, 1, m0)

	const m1 = 0x3333333333333333
	deltaSwap2(&t2, &t0, 2, m1)
	deltaSwap2(&t3, &t1, 2, m1)
	deltaSwap2(&t6, &t4, 2, m1)
	deltaSwap2(&t7, &t5, 2, m1)

	const m2 = 0x0F0F0F0F0F0F0F0F
	deltaSwap2(&t4, &t0, 4, m2)
	deltaSwap2(&t5, &t1, 4, m2)
	deltaSwap2(&t6, &t2, 4, m2)
	deltaSwap2(&t7, &t3, 4, m2)

	var out Batch
	writeReordered(t0, out[0][0x00:0x0C])
	writeReordered(t4, out[0][0x04:0x10])
	writeReordered(t1, out[1][0x00:0x0C])
	writeReordered(t5, out[1][0x04:0x10])
	writeReordered(t2, out[2][0x00:0x0C])
	writeReordered(t6, out[2][0x04:0x10])
	writeReordered(t3, out[3][0x00:0x0C])
	writeReordered(t7, out[3][0x04:0x10])

	return out
}

func readReordered(in []byte) uint64 {
	return uint64(in[0x0]) |
		uint64(in[0x1])<<0x10 |
		uint64(in[0x2])<<0x20 |
		uint64(in[0x3])<<0x30 |
		uint64(in[0x8])<<0x08 |
		uint64(in[0x9])<<0x18 |
		uint64(in[0xa])<<0x28 |
		uint64(in[0xb])<<0x38
}

func writeReordered(columns uint64, out []byte) {
	out[0x0] = byte(columns)
	out[0x1] = byte(columns >> 0x10)
	out[0x2] = byte(columns >> 0x20)
	out[0x3] = byte(columns >> 0x30)
	out[0x8] = byte(columns >> 0x08)
	out[0x9] = byte(columns >> 0x18)
	out[0xa] = byte(columns >> 0x28)
	out[0xb] = byte(columns >> 0x38)
}

// mixColumnsN computes the MixColumns transformation in the fixsliced
// representation, with rotations selected by round number mod 4. Based on
// the Kasper-Schwabe formulation.
func mixColumns0(st *state) { mixColumnsRot(st, rotateRows1, rotateRows2) }
func mixColumns1(st *state) { mixColumnsRot(st, rotateRowsAndColumns11, rotateRowsAndColumns22) }
func mixColumns2(st *state) { mixColumnsRot(st, rotateRowsAndColumns12, rotateRows2) }
func mixColumns3(st *state) { mixColumnsRot(st, rotateRowsAndColumns13, rotateRowsAndColumns22) }

func mixColumnsRot(st *state, first, second func(uint64) uint64) {
	a0, a1, a2, a3 := st[0], st[1], st[2], st[3]
	a4, a5, a6, a7 := st[4], st[5], st[6], st[7]

	b0 := first(a0)
	b1 := first(a1)
	b2 := first(a2)
	b3 := first(a3)
	b4 := first(a4)
	b5 := first(a5)
	b6 := first(a6)
	b7 := first(a7)

	c0 := a0 ^ b0
	c1 := a1 ^ b1
	c2 := a2 ^ b2
	c3 := a3 ^ b3
	c4 := a4 ^ b4
	c5 := a5 ^ b5
	c6 := a6 ^ b6
	c7 := a7 ^ b7

	st[0] = b0 ^ c7 ^ second(c0)
	st[1] = b1 ^ c0 ^ c7 ^ second(c1)
	st[2] = b2 ^ c1 ^ second(c2)
	st[3] = b3 ^ c2 ^ c7 ^ second(c3)
	st[4] = b4 ^ c3 ^ c7 ^ second(c4)
	st[5] = b5 ^ c4 ^ second(c5)
	st[6] = b6 ^ c5 ^ second(c6)
	st[7] = b7 ^ c6 ^ second(c7)
}

func rotateRows1(x uint64) uint64 {
	return ror(x, rorDistance(1, 0))
}

func rotateRows2(x uint64) uint64 {
	return ror(x, rorDistance(2, 0))
}

func rotateRowsAndColumns11(x uint64) uint64 {
	return (ror(x, rorDistance(1, 1)) & 0x0FFF0FFF0FFF0FFF) |
		(ror(x, rorDistance(0, 1)) & 0xF000F000F000F000)
}

func rotateRowsAndColumns12(x uint64) uint64 {
	return (ror(x, rorDistance(1, 2)) & 0x00FF00FF00FF00FF) |
		(ror(x, rorDistance(0, 2)) & 0xFF00FF00FF00FF00)
}

func rotateRowsAndColumns13(x uint64) uint64 {
	return (ror(x, rorDistance(1, 3)) & 0x000F000F000F000F) |
		(ror(x, rorDistance(0, 3)) & 0xFFF0FFF0FFF0FFF0)
}

func rotateRowsAndColumns22(x uint64) uint64 {
	return (ror(x, rorDistance(2, 2)) & 0x00FF00FF00FF00FF) |
		(ror(x, rorDistance(1, 2)) & 0xFF00FF00FF00FF00)
}
