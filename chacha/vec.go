package chacha

// vec4 models one 128-bit SIMD register holding four 32-bit lanes, used
// by the single-block backend (simd128.go). Each lane carries one
// "column" or "diagonal" word of the ChaCha state, so a column quarter
// round on the whole state becomes one quarterRoundVec4 call across the
// four row-registers (spec.md §4.2).
type vec4 [4]uint32

func addVec4(a, b vec4) (out vec4) {
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return
}

func xorVec4(a, b vec4) (out vec4) {
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return
}

func rotlVec4(v vec4, n uint) (out vec4) {
	for i := range out {
		out[i] = rotl32(v[i], n)
	}
	return
}

// shuffleVec4Left cyclically rotates the four lanes left by n, the
// "shuffle-based diagonal" permutation spec.md §4.2 calls for: row 1
// rotates by 1, row 2 by 2, row 3 by 3.
func shuffleVec4Left(v vec4, n int) (out vec4) {
	for i := range out {
		out[i] = v[(i+n)%4]
	}
	return
}

func shuffleVec4Right(v vec4, n int) vec4 {
	return shuffleVec4Left(v, 4-(n%4))
}

// quarterRoundVec4 runs one ARX quarter round across all four lanes of
// a, b, c, d simultaneously.
func quarterRoundVec4(a, b, c, d vec4) (vec4, vec4, vec4, vec4) {
	a = addVec4(a, b)
	d = rotlVec4(xorVec4(d, a), 16)
	c = addVec4(c, d)
	b = rotlVec4(xorVec4(b, c), 12)
	a = addVec4(a, b)
	d = rotlVec4(xorVec4(d, a), 8)
	c = addVec4(c, d)
	b = rotlVec4(xorVec4(b, c), 7)
	return a, b, c, d
}

// vec8 models one 256-bit SIMD register, its eight lanes split into two
// 128-bit halves: lanes 0-3 belong to state S0, lanes 4-7 to the
// interleaved state S1 (spec.md §4.2, "lane j holds state word of S0
// and lane j+4 holds the corresponding word of S1").
type vec8 [8]uint32

func addVec8(a, b vec8) (out vec8) {
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return
}

func xorVec8(a, b vec8) (out vec8) {
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return
}

func rotlVec8(v vec8, n uint) (out vec8) {
	for i := range out {
		out[i] = rotl32(v[i], n)
	}
	return
}

// shuffleVec8Left permutes lanes within each 128-bit half independently,
// by n positions — the dual-block analog of shuffleVec4Left.
func shuffleVec8Left(v vec8, n int) (out vec8) {
	for i := 0; i < 4; i++ {
		out[i] = v[(i+n)%4]
		out[4+i] = v[4+(i+n)%4]
	}
	return
}

func shuffleVec8Right(v vec8, n int) vec8 {
	return shuffleVec8Left(v, 4-(n%4))
}

func quarterRoundVec8(a, b, c, d vec8) (vec8, vec8, vec8, vec8) {
	a = addVec8(a, b)
	d = rotlVec8(xorVec8(d, a), 16)
	c = addVec8(c, d)
	b = rotlVec8(xorVec8(b, c), 12)
	a = addVec8(a, b)
	d = rotlVec8(xorVec8(d, a), 8)
	c = addVec8(c, d)
	b = rotlVec8(xorVec8(b, c), 7)
	return a, b, c, d
}

// xorStream128 is the "128-bit XOR-stream application" utility of
// spec.md §2: it XORs a 16-byte lane of keystream into dst starting at
// offset. The keystream generator does not call it; Generator.XORKeyStream
// XORs byte by byte.
func xorStream128(dst, keystream []byte, offset int) {
	for i := 0; i < 16 && offset+i < len(dst); i++ {
		dst[offset+i] ^= keystream[offset+i]
	}
}
