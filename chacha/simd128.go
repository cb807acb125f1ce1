package chacha

import "github.com/klauspost/cpuid/v2"

// simd128Backend processes one block per invocation using four 128-bit
// row-registers (a, b, c, d), each lane holding one column/diagonal word
// of the state, per spec.md §4.2. It requires SSE2, which is effectively
// universal on amd64 but is still probed explicitly so the backend list
// stays honest about what it depends on.
type simd128Backend struct{}

func (simd128Backend) priority() int     { return 10 }
func (simd128Backend) isSupported() bool { return cpuid.CPU.Supports(cpuid.SSE2) }
func (simd128Backend) name() string      { return "simd128" }

func (simd128Backend) block(s state, out *[BlockSize]byte) {
	a := vec4{s[0], s[1], s[2], s[3]}
	b := vec4{s[4], s[5], s[6], s[7]}
	c := vec4{s[8], s[9], s[10], s[11]}
	d := vec4{s[12], s[13], s[14], s[15]}

	for i := 0; i < rounds/2; i++ {
		// column round
		a, b, c, d = quarterRoundVec4(a, b, c, d)
		// diagonalize: row 1 by 1, row 2 by 2, row 3 by 3
		b = shuffleVec4Left(b, 1)
		c = shuffleVec4Left(c, 2)
		d = shuffleVec4Left(d, 3)
		// diagonal round
		a, b, c, d = quarterRoundVec4(a, b, c, d)
		// undo the diagonal permutation
		b = shuffleVec4Right(b, 1)
		c = shuffleVec4Right(c, 2)
		d = shuffleVec4Right(d, 3)
	}

	a = addVec4(a, vec4{s[0], s[1], s[2], s[3]})
	b = addVec4(b, vec4{s[4], s[5], s[6], s[7]})
	c = addVec4(c, vec4{s[8], s[9], s[10], s[11]})
	d = addVec4(d, vec4{s[12], s[13], s[14], s[15]})

	storeVec4LE(out[:], 0, a)
	storeVec4LE(out[:], 16, b)
	storeVec4LE(out[:], 32, c)
	storeVec4LE(out[:], 48, d)
}
