package filecrypt

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// DetectAlgorithm identifies the cipher used to produce an encrypted
// file, per spec.md §4.9: try the header first, then fall back to
// extension-based detection if the header is absent or invalid.
//
// It returns ("", nil, nil) — not an error — when the file does not
// exist, when it is too small to hold a header (whatever its extension),
// and when neither the header nor the extension identifies a cipher. Any
// other I/O error also yields ("", nil, nil), after a debug log line.
func DetectAlgorithm(path string) (tag string, hdr *Header, err error) {
	f, openErr := os.Open(path)
	if openErr != nil {
		if errors.Is(openErr, os.ErrNotExist) {
			return "", nil, nil
		}
		Log().Debug("detect: opening file", logErrField(openErr), logPathField(path))
		return "", nil, nil
	}
	defer f.Close()

	info, statErr := f.Stat()
	if statErr != nil {
		Log().Debug("detect: stat file", logErrField(statErr), logPathField(path))
		return "", nil, nil
	}
	if info.Size() < HeaderSize {
		return "", nil, nil
	}

	h, readErr := ReadHeader(f)
	if readErr == nil {
		return h.AlgorithmTag, &h, nil
	}
	if errors.Is(readErr, ErrInvalidContainer) {
		if t, ok := tagForExtension(extensionOf(path)); ok {
			return t, nil, nil
		}
		return "", nil, nil
	}

	Log().Debug("detect: reading header", logErrField(readErr), logPathField(path))
	return "", nil, nil
}

// EncryptedPathFor returns the conventional output path for encrypting
// original with cipher: the original path with its extension replaced by
// the cipher's registered file suffix (spec.md §6).
func EncryptedPathFor(original string, cipher Cipher) string {
	ext := ExtensionFor(cipher.Identity())
	if ext == "" {
		ext = strings.ToLower(cipher.Identity())
	}
	base := strings.TrimSuffix(original, filepath.Ext(original))
	return base + "." + ext
}

func extensionOf(path string) string {
	ext := filepath.Ext(path)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
