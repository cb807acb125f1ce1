// Package aescbc implements AES-256-CBC with PKCS7 padding, registered
// under the "AES_" tag. It stands in for spec.md's padded-block-cipher
// example (spec.md scenario 6 names "RC2_"): real RC2 is legacy and
// available in neither the standard library nor anything in the example
// corpus, and the property scenario 6 actually exercises — a cipher
// whose output is longer than its input, which very-large mode must
// segment and decrypt back to the exact original length — is exactly as
// well demonstrated by AES-CBC.
package aescbc

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
)

// BlockSize is AES's block size in bytes.
const BlockSize = aes.BlockSize

// KeySize is the key size this cipher requires (AES-256).
const KeySize = 32

// AES256CBC implements filecrypt.Cipher. Each call to Encrypt/Decrypt
// is a self-contained message: a random IV is generated and prepended to
// the ciphertext by Encrypt, and read back off the front by Decrypt.
// This makes every pipeline chunk/segment an independently decryptable
// CBC message, which is why this cipher is not a SeekableCipher and is
// therefore restricted to small and very-large pipeline modes (spec.md
// §4.4, §9).
type AES256CBC struct{}

// GenerateKey returns a fresh random 32-byte key.
func (AES256CBC) GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("aescbc: generating key: %w", err)
	}
	return key, nil
}

// Identity returns AES256CBC's registered tag.
func (AES256CBC) Identity() string { return "AES_" }

// Encrypt pads plaintext with PKCS7, generates a random IV, and returns
// iv || ciphertext.
func (AES256CBC) Encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aescbc: %w", err)
	}

	padded := pkcs7Pad(plaintext, BlockSize)

	iv := make([]byte, BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("aescbc: generating iv: %w", err)
	}

	out := make([]byte, BlockSize+len(padded))
	copy(out, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[BlockSize:], padded)
	return out, nil
}

// Decrypt reads the IV from the front of ciphertext, decrypts the
// remainder, and strips PKCS7 padding.
func (AES256CBC) Decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aescbc: %w", err)
	}
	if len(ciphertext) < BlockSize || (len(ciphertext)-BlockSize)%BlockSize != 0 {
		return nil, fmt.Errorf("aescbc: ciphertext is not a valid multiple of the block size")
	}

	iv := ciphertext[:BlockSize]
	body := make([]byte, len(ciphertext)-BlockSize)
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(body, ciphertext[BlockSize:])

	return pkcs7Unpad(body, BlockSize)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - (len(data) % blockSize)
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("aescbc: invalid padded length %d", len(data))
	}
	padLen := int(data[len(data)-1])
	if padLen <= 0 || padLen > blockSize || padLen > len(data) {
		return nil, fmt.Errorf("aescbc: invalid padding length %d", padLen)
	}
	return data[:len(data)-padLen], nil
}
