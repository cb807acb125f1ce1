package chacha

import "encoding/binary"

// scalarBackend is the portable fallback: it always qualifies, so the
// backend selector (backend.go) returns it when no wider backend is
// supported (spec.md §4.1).
type scalarBackend struct{}

func (scalarBackend) priority() int     { return 0 }
func (scalarBackend) isSupported() bool { return true }
func (scalarBackend) name() string      { return "scalar" }

// block computes one 64-byte keystream block from s (without mutating
// it) into out.
func (scalarBackend) block(s state, out *[BlockSize]byte) {
	x := s
	for i := 0; i < rounds; i += 2 {
		// column round
		quarterRound(&x[0], &x[4], &x[8], &x[12])
		quarterRound(&x[1], &x[5], &x[9], &x[13])
		quarterRound(&x[2], &x[6], &x[10], &x[14])
		quarterRound(&x[3], &x[7], &x[11], &x[15])
		// diagonal round
		quarterRound(&x[0], &x[5], &x[10], &x[15])
		quarterRound(&x[1], &x[6], &x[11], &x[12])
		quarterRound(&x[2], &x[7], &x[8], &x[13])
		quarterRound(&x[3], &x[4], &x[9], &x[14])
	}
	for i := range x {
		x[i] += s[i]
		binary.LittleEndian.PutUint32(out[i*4:], x[i])
	}
}
