package chacha

import (
	"encoding/hex"
	"testing"
)

// rfc8439BlockVector returns the key, nonce, and expected keystream block
// from RFC 8439 §2.3.2.
func rfc8439BlockVector(t *testing.T) (key [KeySize]byte, nonce [NonceSize]byte, want []byte) {
	t.Helper()
	for i := range key {
		key[i] = byte(i)
	}
	nonce = [NonceSize]byte{0x00, 0x00, 0x00, 0x09, 0x00, 0x00, 0x00, 0x4a, 0x00, 0x00, 0x00, 0x00}
	want, err := hex.DecodeString(
		"10f1e7e4d13b5915500fdd1fa32071c4" +
			"c7d1f4c733c068030422aa9ac3d46c4e" +
			"d2826446079faa0914c2d705d98b02a2" +
			"b5129cd1de164eb9cbd083e8a2503c4e")
	if err != nil {
		t.Fatalf("decoding expected vector: %v", err)
	}
	return key, nonce, want
}

func TestScalarBlockRFC8439(t *testing.T) {
	key, nonce, want := rfc8439BlockVector(t)
	s := newState(key, nonce, 1)

	var out [BlockSize]byte
	(scalarBackend{}).block(s, &out)

	if len(want) != BlockSize {
		t.Fatalf("bad test vector length %d", len(want))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("byte %d = %#02x, want %#02x", i, out[i], want[i])
		}
	}
}
