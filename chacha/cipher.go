package chacha

import (
	"crypto/rand"
	"fmt"
)

// zeroNonce is used for every CC20 invocation. Per-chunk or per-message
// nonce management is explicitly out of scope (spec.md §1 Non-goals:
// "per-chunk nonces"); what the spec's dual-block backend and large/
// very-large pipeline modes need demonstrated is that independent chunks
// of one continuous counter-mode stream can be produced out of order and
// in parallel, which only requires a stable nonce and a per-chunk
// counter offset, not a fresh nonce per chunk.
var zeroNonce [NonceSize]byte

// CC20 is the ChaCha20 stream cipher, registered under the "CC20" tag.
// It implements filecrypt.Cipher structurally (this package does not
// import filecrypt, to avoid a dependency cycle — registration happens
// in the init() of a separate bootstrap package, ciphers, the same way
// cmd/caddy blank-imports module packages for their side-effecting
// init()).
type CC20 struct{}

// GenerateKey returns a fresh random 32-byte key.
func (CC20) GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("chacha: generating key: %w", err)
	}
	return key, nil
}

// Identity returns CC20's registered tag.
func (CC20) Identity() string { return "CC20" }

// Encrypt XORs plaintext with the keystream starting at counter 0 — the
// whole-file, single-shot entry point small mode uses.
func (c CC20) Encrypt(plaintext []byte, key []byte) ([]byte, error) {
	return c.EncryptAt(plaintext, key, 0)
}

// Decrypt is identical to Encrypt: ChaCha20 is its own inverse under a
// fixed (nonce, counter).
func (c CC20) Decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	return c.EncryptAt(ciphertext, key, 0)
}

// EncryptAt XORs data with the keystream starting at the given block
// offset, letting callers (the large/very-large pipeline modes) apply
// the cipher to independent, non-overlapping chunks of one logical
// stream without serializing on a shared cipher state (spec.md §4.2,
// §4.4). blockOffset must be such that the chunk begins on a BlockSize
// boundary of the logical stream, which the pipeline's chunk-size table
// guarantees.
func (c CC20) EncryptAt(data []byte, key []byte, blockOffset uint64) ([]byte, error) {
	var k [KeySize]byte
	if len(key) != KeySize {
		return nil, fmt.Errorf("chacha: key must be %d bytes, got %d", KeySize, len(key))
	}
	copy(k[:], key)

	gen := NewGenerator(k, zeroNonce, uint32(blockOffset))
	out := make([]byte, len(data))
	gen.XORKeyStream(out, data)
	return out, nil
}

// DecryptAt is EncryptAt's inverse (and, for a stream cipher, identical
// to it).
func (c CC20) DecryptAt(data []byte, key []byte, blockOffset uint64) ([]byte, error) {
	return c.EncryptAt(data, key, blockOffset)
}
