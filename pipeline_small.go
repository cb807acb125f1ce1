package filecrypt

import (
	"fmt"
	"os"
)

// encryptSmall implements spec.md §4.4's small mode: read the whole
// input, write header || cipher.Encrypt(input, key). No parallelism.
func encryptSmall(rc runContext, inputPath, outputPath string, cipher Cipher, key Key) error {
	plaintext, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("filecrypt: reading input: %w", err)
	}

	ciphertext, err := cipher.Encrypt(plaintext, key)
	if err != nil {
		return fmt.Errorf("filecrypt: encrypting: %w", err)
	}

	hdr := NewHeader(cipher.Identity())
	out := append(hdr.ToByteArray(), ciphertext...)

	if err := os.WriteFile(outputPath, out, 0o600); err != nil {
		return fmt.Errorf("filecrypt: writing output: %w", err)
	}
	return nil
}

// ErrTruncatedContainer is returned by small-mode decryption when the
// input is shorter than HeaderSize bytes (spec.md §4.4).
var ErrTruncatedContainer = fmt.Errorf("filecrypt: %w: truncated container", ErrInvalidContainer)

// decryptSmall implements spec.md §4.4's small-mode decrypt path: verify
// the input is at least HeaderSize bytes, parse the header, decrypt the
// remainder.
func decryptSmall(rc runContext, inputPath, outputPath string, cipher Cipher, key Key) error {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("filecrypt: reading input: %w", err)
	}
	if len(raw) < HeaderSize {
		return ErrTruncatedContainer
	}

	if _, err := parseHeader(raw[:HeaderSize]); err != nil {
		return err
	}

	plaintext, err := cipher.Decrypt(raw[HeaderSize:], key)
	if err != nil {
		return fmt.Errorf("filecrypt: decrypting: %w", err)
	}

	if err := os.WriteFile(outputPath, plaintext, 0o600); err != nil {
		return fmt.Errorf("filecrypt: writing output: %w", err)
	}
	return nil
}
