// Package chacha implements the IETF ChaCha20 stream cipher (RFC 8439)
// with three interchangeable backends — scalar, a 128-bit single-block
// backend, and a 256-bit dual-block backend — selected at init time by
// probing CPU features. The quarter-round kernel here follows the
// explicit, unrolled style nullprogram.com/x/chacha uses for its scalar
// cipher (see _examples/skeeto-chacha-go/chacha.go), generalized from
// the original (8-byte nonce, 64-bit counter) Bernstein layout to
// RFC 8439's (12-byte nonce, 32-bit counter) IETF layout, which is what
// spec.md §3 and §4.2 describe.
package chacha

import "encoding/binary"

const (
	// BlockSize is the size, in bytes, of one ChaCha20 keystream block.
	BlockSize = 64

	// KeySize is the ChaCha20 key size in bytes.
	KeySize = 32

	// NonceSize is the IETF (RFC 8439) nonce size in bytes.
	NonceSize = 12

	rounds = 20
)

var constants = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}

// state is the canonical 16-word ChaCha20 state laid out exactly as
// spec.md §4.2 describes: words 0-3 are the fixed constants, 4-11 the
// key, 12 the block counter, 13-15 the nonce.
type state [16]uint32

func newState(key [KeySize]byte, nonce [NonceSize]byte, counter uint32) state {
	var s state
	copy(s[0:4], constants[:])
	for i := 0; i < 8; i++ {
		s[4+i] = binary.LittleEndian.Uint32(key[i*4:])
	}
	s[12] = counter
	for i := 0; i < 3; i++ {
		s[13+i] = binary.LittleEndian.Uint32(nonce[i*4:])
	}
	return s
}

func rotl32(x uint32, n uint) uint32 {
	return (x << n) | (x >> (32 - n))
}

// quarterRound is the ARX quarter-round shared by every backend: left
// rotations by 16, 12, 8, 7, matching spec.md §4.2's "rotation constants
// 16, 12, 8, 7 applied via left-shift XOR right-shift emulation."
func quarterRound(a, b, c, d *uint32) {
	*a += *b
	*d = rotl32(*d^*a, 16)
	*c += *d
	*b = rotl32(*b^*c, 12)
	*a += *b
	*d = rotl32(*d^*a, 8)
	*c += *d
	*b = rotl32(*b^*c, 7)
}
