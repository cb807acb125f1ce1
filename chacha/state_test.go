package chacha

import "testing"

func TestQuarterRound(t *testing.T) {
	// RFC 8439 §2.1.1 test vector.
	a, b, c, d := uint32(0x11111111), uint32(0x01020304), uint32(0x9b8d6f43), uint32(0x01234567)
	quarterRound(&a, &b, &c, &d)

	want := [4]uint32{0xea2a92f4, 0xcb1cf8ce, 0x4581472e, 0x5881c4bb}
	got := [4]uint32{a, b, c, d}
	if got != want {
		t.Fatalf("quarterRound() = %#08x, want %#08x", got, want)
	}
}

func TestNewState(t *testing.T) {
	// RFC 8439 §2.3.2 test vector: key is the 32 bytes 00..1f, nonce is
	// 00:00:00:09:00:00:00:4a:00:00:00:00, counter is 1.
	var key [KeySize]byte
	for i := range key {
		key[i] = byte(i)
	}
	nonce := [NonceSize]byte{0x00, 0x00, 0x00, 0x09, 0x00, 0x00, 0x00, 0x4a, 0x00, 0x00, 0x00, 0x00}

	s := newState(key, nonce, 1)

	wantWord12 := uint32(1)
	if s[12] != wantWord12 {
		t.Fatalf("counter word = %#x, want %#x", s[12], wantWord12)
	}
	if s[0] != constants[0] || s[1] != constants[1] || s[2] != constants[2] || s[3] != constants[3] {
		t.Fatalf("constant words = %#x, want %#x", s[0:4], constants)
	}
}
