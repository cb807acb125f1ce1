// Package padding implements the minimal padding service spec.md treats
// as an external collaborator ("padding service: scheme lookup, block
// size, scan/trim helpers"): scheme lookup by cipher, block size, a
// tail-length computation for every Scheme variant, and padding removal
// built on it.
package padding

import "fmt"

// Scheme identifies a block-cipher padding scheme.
type Scheme int

const (
	// None indicates the cipher does not pad (stream ciphers).
	None Scheme = iota
	// PKCS7 pads with N bytes each holding the value N.
	PKCS7
	// Zero pads with zero bytes (ambiguous for plaintexts that end in
	// zero, but included for completeness against spec.md's variant
	// list).
	Zero
	// ISO10126 pads with random bytes, the last of which holds the
	// pad length.
	ISO10126
	// AnsiX923 pads with zero bytes, the last of which holds the pad
	// length.
	AnsiX923
)

// SchemeFor returns the padding scheme a registered cipher tag uses.
// Stream ciphers (CC20, XCCH, SL20) use None; the padded block ciphers
// in the catalog use PKCS7 — filecrypt's one concrete padded-block
// cipher (AES_, see the aescbc package) pads with PKCS7, and the
// unimplemented legacy tags (RC2_, 3DES, 3FSH, AESG) are assumed PKCS7
// as well since that is by far the most common convention for them.
func SchemeFor(tag string) Scheme {
	switch tag {
	case "CC20", "XCCH", "SL20":
		return None
	default:
		return PKCS7
	}
}

// BlockSize returns the cipher's block size in bytes. All padded block
// ciphers this catalog lists are 8- or 16-byte block ciphers; filecrypt
// only implements AES (16 bytes), so that is the size returned for any
// tag whose scheme is not None. Stream ciphers return 0.
func BlockSize(tag string) int {
	if SchemeFor(tag) == None {
		return 0
	}
	return 16
}

// CalculatePaddingLength inspects the final bytes of a decrypted buffer
// (at least one block, see RemovePadding) and returns how many trailing
// bytes are padding under scheme. It returns an error if the tail is
// malformed (e.g. a PKCS7 pad byte greater than blockSize or zero).
func CalculatePaddingLength(tail []byte, scheme Scheme, blockSize int) (int, error) {
	switch scheme {
	case None:
		return 0, nil
	case PKCS7, AnsiX923:
		if len(tail) == 0 {
			return 0, fmt.Errorf("padding: empty tail")
		}
		n := int(tail[len(tail)-1])
		if n <= 0 || n > blockSize || n > len(tail) {
			return 0, fmt.Errorf("padding: invalid pad length %d", n)
		}
		return n, nil
	case ISO10126:
		if len(tail) == 0 {
			return 0, fmt.Errorf("padding: empty tail")
		}
		n := int(tail[len(tail)-1])
		if n <= 0 || n > blockSize || n > len(tail) {
			return 0, fmt.Errorf("padding: invalid pad length %d", n)
		}
		return n, nil
	case Zero:
		n := 0
		for i := len(tail) - 1; i >= 0 && tail[i] == 0 && n < blockSize; i-- {
			n++
		}
		return n, nil
	default:
		return 0, fmt.Errorf("padding: unknown scheme %d", scheme)
	}
}

// RemovePadding returns the length buf should be truncated to once its
// trailing padding (computed per scheme) is removed. It never modifies
// buf itself — callers truncate.
func RemovePadding(buf []byte, scheme Scheme, blockSize int) (int, error) {
	if scheme == None || len(buf) == 0 {
		return len(buf), nil
	}
	tailLen := blockSize
	if tailLen > len(buf) {
		tailLen = len(buf)
	}
	n, err := CalculatePaddingLength(buf[len(buf)-tailLen:], scheme, blockSize)
	if err != nil {
		return 0, err
	}
	return len(buf) - n, nil
}
