package chacha

// Generator produces a lazy sequence of ChaCha20 keystream bytes from an
// initial state, resuming correctly across calls because its counter
// word is updated in place to reflect the next block to be produced
// (spec.md §4.3).
type Generator struct {
	s    state
	kind backendKind
}

// NewGenerator returns a Generator seeded with key, nonce, and the block
// counter counter refers to (0 for the start of the stream).
func NewGenerator(key [KeySize]byte, nonce [NonceSize]byte, counter uint32) *Generator {
	kind, _ := selectBackend()
	return &Generator{s: newState(key, nonce, counter), kind: kind}
}

// Counter returns the block counter the next call to Generate will
// start from.
func (g *Generator) Counter() uint32 { return g.s[12] }

// Generate returns n bytes of keystream and advances the generator's
// counter by ceil(n/BlockSize) (spec.md §8, "Counter progression").
func (g *Generator) Generate(n int) []byte {
	out := make([]byte, n)
	g.fill(out)
	return out
}

func (g *Generator) fill(dst []byte) {
	produced := 0

	if g.kind == kindSIMD256 {
		var pair [2 * BlockSize]byte
		for len(dst)-produced >= 2*BlockSize {
			s0 := g.s
			s1 := g.s
			s1[12] = s0[12] + 1
			(simd256Backend{}).blockPair(s0, s1, &pair)
			copy(dst[produced:], pair[:])
			produced += 2 * BlockSize
			g.s[12] += 2
		}
	}

	// Tail: fewer than one full additional double-block remains (or
	// the backend never processes pairs). The dual-block backend
	// falls back to the single-block routine here to avoid wasted
	// work on a partial pair, per spec.md §4.2.
	var single [BlockSize]byte
	for produced < len(dst) {
		switch g.kind {
		case kindScalar:
			(scalarBackend{}).block(g.s, &single)
		default:
			(simd128Backend{}).block(g.s, &single)
		}
		n := copy(dst[produced:], single[:])
		produced += n
		g.s[12]++
	}
}

// XORKeyStream XORs len(dst) bytes of keystream into dst (dst and src
// may be the same slice, as with crypto/cipher.Stream).
func (g *Generator) XORKeyStream(dst, src []byte) {
	ks := g.Generate(len(src))
	for i := range src {
		dst[i] = src[i] ^ ks[i]
	}
}
