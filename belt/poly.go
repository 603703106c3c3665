//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package belt

// Block is a 128-bit value viewed as four 32-bit little-endian limbs,
// the representation used for all polynomial arithmetic.
type Block [4]uint32

// BlockFromBytes reinterprets 16 little-endian octets as a Block. This is
// the single octet-to-limb conversion before the XOR into T; each limb is
// assembled explicitly in little-endian order, so the result is the same
// on little- and big-endian hosts and no separate byte swap is needed.
func BlockFromBytes(b []byte) Block {
	if len(b) != BlockSize {
		panic("belt: BlockFromBytes: bad length")
	}
	return Block{le32(b[0:4]), le32(b[4:8]), le32(b[8:12]), le32(b[12:16])}
}

// Bytes renders a Block back to 16 little-endian octets.
func (blk Block) Bytes() []byte {
	out := make([]byte, BlockSize)
	putLe32(out[0:4], blk[0])
	putLe32(out[4:8], blk[1])
	putLe32(out[8:12], blk[2])
	putLe32(out[12:16], blk[3])
	return out
}

// XOR returns blk XOR other, limb-wise.
func (blk Block) XOR(other Block) Block {
	return Block{blk[0] ^ other[0], blk[1] ^ other[1], blk[2] ^ other[2], blk[3] ^ other[3]}
}

func (blk Block) to64() (lo, hi uint64) {
	lo = uint64(blk[0]) | uint64(blk[1])<<32
	hi = uint64(blk[2]) | uint64(blk[3])<<32
	return
}

func blockFrom64(lo, hi uint64) Block {
	return Block{uint32(lo), uint32(lo >> 32), uint32(hi), uint32(hi >> 32)}
}

// reductionByte is the low-order byte of the BELT reduction polynomial
// x^128 + x^7 + x^2 + x + 1, applied whenever doubling overflows bit 127.
const reductionByte = 0x87

// PolyMul is the GF(2^128) carryless multiplier, reduced modulo the
// fixed BELT polynomial. It is a pure function: scratch is accepted to
// mirror an implementation-defined scratch buffer some renditions of
// this primitive use, but this implementation needs none; callers may
// pass nil.
func PolyMul(a, b Block, scratch []byte) Block {
	_ = scratch
	vlo, vhi := a.to64()
	ylo, yhi := b.to64()

	var zlo, zhi uint64

	double := func() {
		carry := vhi >> 63
		vhi = vhi<<1 | vlo>>63
		vlo = vlo << 1
		if carry != 0 {
			vlo ^= reductionByte
		}
	}

	for i := 0; i < 64; i++ {
		if ylo&(1<<uint(i)) != 0 {
			zlo ^= vlo
			zhi ^= vhi
		}
		double()
	}
	for i := 0; i < 64; i++ {
		if yhi&(1<<uint(i)) != 0 {
			zlo ^= vlo
			zhi ^= vhi
		}
		double()
	}

	return blockFrom64(zlo, zhi)
}

// ScratchSize reports the scratch buffer size PolyMul expects; callers
// query it rather than hard-coding a constant.
func ScratchSize() int {
	return 0
}
