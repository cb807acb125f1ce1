package filecrypt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// mode is which of spec.md §4.4's three processing strategies applies
// to a given file size.
type mode int

const (
	modeSmall mode = iota
	modeLarge
	modeVeryLarge
)

func (m mode) String() string {
	switch m {
	case modeSmall:
		return "small"
	case modeLarge:
		return "large"
	case modeVeryLarge:
		return "very-large"
	default:
		return "unknown"
	}
}

// modeFor implements spec.md §4.4's dispatch rule.
func modeFor(size int64, cfg *Config) mode {
	switch {
	case size <= cfg.LargeFileThreshold:
		return modeSmall
	case size <= cfg.VeryLargeFileThreshold:
		return modeLarge
	default:
		return modeVeryLarge
	}
}

// ErrInputMissing is returned (wrapping the underlying os error) when
// EncryptFile or DecryptFile's input path does not exist.
var ErrInputMissing = errors.New("filecrypt: input file does not exist")

// EncryptFile encrypts inputPath to outputPath under cipher, per
// spec.md §4.4. If key is nil, one is generated with cipher.GenerateKey.
// If keyOutputPath is non-empty, the key is additionally persisted there
// as uppercase hex (spec.md §4.7). The (possibly generated) key is
// always returned so callers can recover it even if keyOutputPath is
// empty.
func EncryptFile(ctx context.Context, inputPath, outputPath string, cipher Cipher, key []byte, keyOutputPath string, cfg *Config) (Key, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	rc := newRunContext(ctx)
	log := rc.logger()

	info, err := os.Stat(inputPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputMissing, inputPath)
		}
		return nil, err
	}

	if key == nil {
		key, err = cipher.GenerateKey()
		if err != nil {
			return nil, fmt.Errorf("filecrypt: generating key: %w", err)
		}
	}
	normalizedKey, err := ValidateKeySize(key)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, fmt.Errorf("filecrypt: creating output directory: %w", err)
	}

	m := modeFor(info.Size(), cfg)
	log.Info("encrypting file",
		zap.String("input", inputPath), zap.String("output", outputPath),
		zap.String("size", humanize.Bytes(uint64(info.Size()))),
		zap.String("mode", m.String()), zap.String("cipher", cipher.Identity()))

	switch m {
	case modeSmall:
		err = encryptSmall(rc, inputPath, outputPath, cipher, normalizedKey)
	case modeLarge:
		err = encryptLarge(rc, inputPath, outputPath, cipher, normalizedKey, cfg)
	default:
		err = encryptVeryLarge(rc, inputPath, outputPath, cipher, normalizedKey, cfg)
	}
	if err != nil {
		return nil, err
	}

	if keyOutputPath != "" {
		if err := SaveKeyHex(keyOutputPath, normalizedKey); err != nil {
			return nil, err
		}
	}

	return normalizedKey, nil
}

// DecryptFile decrypts inputPath to outputPath under cipher and key, per
// spec.md §4.4 and §7. Any cipher failure or other unclassified error
// during decryption is logged and reported as (false, nil) rather than
// propagated, so callers have a single boolean to branch on; a missing
// input file remains a distinguishable propagated error, and
// cancellation is always propagated as-is.
func DecryptFile(ctx context.Context, inputPath, outputPath string, cipher Cipher, key []byte, cfg *Config) (bool, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	rc := newRunContext(ctx)
	log := rc.logger()

	info, err := os.Stat(inputPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("%w: %s", ErrInputMissing, inputPath)
		}
		return false, err
	}

	normalizedKey, err := ValidateKeySize(key)
	if err != nil {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return false, fmt.Errorf("filecrypt: creating output directory: %w", err)
	}

	m := modeFor(info.Size(), cfg)
	log.Info("decrypting file",
		zap.String("input", inputPath), zap.String("output", outputPath),
		zap.String("size", humanize.Bytes(uint64(info.Size()))),
		zap.String("mode", m.String()), zap.String("cipher", cipher.Identity()))

	switch m {
	case modeSmall:
		err = decryptSmall(rc, inputPath, outputPath, cipher, normalizedKey)
	case modeLarge:
		err = decryptLarge(rc, inputPath, outputPath, cipher, normalizedKey, cfg)
	default:
		err = decryptVeryLarge(rc, inputPath, outputPath, cipher, normalizedKey, cfg)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false, err
		}
		log.Error("decryption failed", zap.Error(err))
		return false, nil
	}
	return true, nil
}
