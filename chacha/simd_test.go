package chacha

import "testing"

func TestSIMD128MatchesScalar(t *testing.T) {
	key, nonce, _ := rfc8439BlockVector(t)
	s := newState(key, nonce, 1)

	var scalarOut, simdOut [BlockSize]byte
	(scalarBackend{}).block(s, &scalarOut)
	(simd128Backend{}).block(s, &simdOut)

	if scalarOut != simdOut {
		t.Fatalf("simd128 block = %x, want %x (scalar)", simdOut, scalarOut)
	}
}

func TestSIMD256MatchesScalarPair(t *testing.T) {
	key, nonce, _ := rfc8439BlockVector(t)
	s0 := newState(key, nonce, 1)
	s1 := newState(key, nonce, 2)

	var want [2 * BlockSize]byte
	(scalarBackend{}).block(s0, (*[BlockSize]byte)(want[0:BlockSize]))
	(scalarBackend{}).block(s1, (*[BlockSize]byte)(want[BlockSize:]))

	var got [2 * BlockSize]byte
	(simd256Backend{}).blockPair(s0, s1, &got)

	if got != want {
		t.Fatalf("simd256 blockPair = %x, want %x (scalar x2)", got, want)
	}
}
