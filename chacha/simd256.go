package chacha

import "github.com/klauspost/cpuid/v2"

// simd256Backend processes two blocks per invocation, interleaving two
// states S0 (counter c) and S1 (counter c+1) into four 256-bit
// row-registers whose low 128-bit half carries S0's row and whose high
// half carries S1's row (spec.md §4.2). It requires AVX2.
type simd256Backend struct{}

func (simd256Backend) priority() int     { return 20 }
func (simd256Backend) isSupported() bool { return cpuid.CPU.Supports(cpuid.AVX2) }
func (simd256Backend) name() string      { return "simd256" }

// blockPair computes two consecutive keystream blocks from s0 and s1 —
// s1 must equal s0 with word 12 (the counter) incremented by one, per
// spec.md §3's invariant that "the two interleaved lanes differ only in
// the counter word, which is c and c+1." Output holds block 0 in
// out[0:64] and block 1 in out[64:128].
func (simd256Backend) blockPair(s0, s1 state, out *[2 * BlockSize]byte) {
	interleave := func(row int) vec8 {
		return vec8{
			s0[row*4+0], s0[row*4+1], s0[row*4+2], s0[row*4+3],
			s1[row*4+0], s1[row*4+1], s1[row*4+2], s1[row*4+3],
		}
	}

	a := interleave(0)
	b := interleave(1)
	c := interleave(2)
	d := interleave(3)
	origA, origB, origC, origD := a, b, c, d

	for i := 0; i < rounds/2; i++ {
		a, b, c, d = quarterRoundVec8(a, b, c, d)
		b = shuffleVec8Left(b, 1)
		c = shuffleVec8Left(c, 2)
		d = shuffleVec8Left(d, 3)
		a, b, c, d = quarterRoundVec8(a, b, c, d)
		b = shuffleVec8Right(b, 1)
		c = shuffleVec8Right(c, 2)
		d = shuffleVec8Right(d, 3)
	}

	a = addVec8(a, origA)
	b = addVec8(b, origB)
	c = addVec8(c, origC)
	d = addVec8(d, origD)

	// De-interleave: lanes 0..3 of each register form block 0 in
	// row-major order; lanes 4..7 form block 1.
	storeRow := func(blockOut []byte, v vec8, lowHalf bool) {
		base := 0
		if !lowHalf {
			base = 4
		}
		for i := 0; i < 4; i++ {
			storeLE32(blockOut, i*4, v[base+i])
		}
	}
	storeRow(out[0:16], a, true)
	storeRow(out[16:32], b, true)
	storeRow(out[32:48], c, true)
	storeRow(out[48:64], d, true)
	storeRow(out[64:80], a, false)
	storeRow(out[80:96], b, false)
	storeRow(out[96:112], c, false)
	storeRow(out[112:128], d, false)
}
