package filecrypt

import (
	"fmt"
	"sort"
	"sync"
)

// Key is a normalized symmetric key: always exactly 32 bytes after
// ValidateKeySize (spec.md §3, "Key").
type Key []byte

// Cipher is the capability set spec.md §3 requires of every algorithm in
// the catalog: it can mint its own key, encrypt, decrypt, and identify
// itself. Concrete ciphers (see chacha.CC20, aescbc.AES256CBC) implement
// this and register a constructor for it with RegisterCipher; the
// pipeline never imports a concrete cipher package directly.
//
// Methods take and return plain []byte rather than the Key type so that
// cipher packages can satisfy this interface structurally without
// importing filecrypt (avoiding an import cycle, since filecrypt never
// imports a concrete cipher package either — registration is the only
// coupling, done from the cipher package's init()).
type Cipher interface {
	// GenerateKey returns a fresh, normalized 32-byte key.
	GenerateKey() ([]byte, error)

	// Encrypt returns the ciphertext for plaintext under key. For
	// stream ciphers len(ciphertext) == len(plaintext); padded block
	// ciphers return more (aescbc.AES256CBC adds a one-block IV plus
	// 1 to blockSize bytes of padding).
	Encrypt(plaintext []byte, key []byte) ([]byte, error)

	// Decrypt returns the plaintext for ciphertext under key.
	Decrypt(ciphertext []byte, key []byte) ([]byte, error)

	// Identity returns the cipher's registered 4-character tag.
	Identity() string
}

// SeekableCipher is implemented by stream ciphers whose keystream can be
// produced starting at an arbitrary block offset, which is what lets the
// large and very-large pipeline modes (spec.md §4.4) apply the cipher to
// independent chunks in parallel while still drawing from one logical
// keystream, rather than re-keying (and reusing keystream) at every
// chunk. Padded block ciphers do not implement this; the pipeline
// restricts large mode to SeekableCipher implementations, per spec.md
// §9's recommended resolution of its large-mode open question.
type SeekableCipher interface {
	Cipher
	EncryptAt(data []byte, key []byte, blockOffset uint64) ([]byte, error)
	DecryptAt(data []byte, key []byte, blockOffset uint64) ([]byte, error)
}

// CipherInfo is what a cipher package hands to RegisterCipher: how to
// construct a fresh Cipher value, plus the display name and file suffix
// used by the extension map (spec.md §4.8).
type CipherInfo struct {
	// New returns a ready-to-use Cipher instance. Called fresh for
	// every lookup, matching the "no side effects" contract of
	// caddy.ModuleInfo.New.
	New func() Cipher

	// DisplayName is the human-readable algorithm name, e.g. "ChaCha20".
	DisplayName string

	// Extension is the file suffix (without the leading dot) used by
	// EncryptedPathFor and extension-based detection, e.g. "cc20".
	Extension string
}

// RegisterCipher registers a cipher by its 4-character tag. It panics if
// the tag is empty, not exactly 4 bytes, or already registered — the same
// fail-fast-at-init-time contract as caddy.RegisterModule, since a
// misconfigured registry is a programming error, not a runtime one.
// Cipher packages call this from their own init(), so registration
// happens as a side effect of importing them.
//
// info.New may be nil for a catalog (extension-only) entry: one known to
// the format but not implemented by this distribution (spec.md §4.8's
// display/extension tables cover algorithms filecrypt recognizes without
// necessarily shipping). GetCipher reports a clear error for those rather
// than RegisterCipher rejecting them outright.
func RegisterCipher(tag string, info CipherInfo) {
	if len(tag) != 4 {
		panic(fmt.Sprintf("filecrypt: cipher tag must be exactly 4 characters: %q", tag))
	}

	ciphersMu.Lock()
	defer ciphersMu.Unlock()

	if _, ok := ciphers[tag]; ok {
		panic(fmt.Sprintf("filecrypt: cipher already registered: %s", tag))
	}
	ciphers[tag] = info
}

// GetCipher constructs a fresh Cipher instance for tag, or an error if no
// cipher is registered under that tag or the tag has no constructor
// (extension-only entries, see §2 item 16 of SPEC_FULL.md).
func GetCipher(tag string) (Cipher, error) {
	ciphersMu.RLock()
	info, ok := ciphers[tag]
	ciphersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("filecrypt: cipher not registered: %s", tag)
	}
	if info.New == nil {
		return nil, fmt.Errorf("filecrypt: cipher %s has no implementation", tag)
	}
	return info.New(), nil
}

// Ciphers returns the tags of every registered cipher (implemented or
// extension-only) in ascending lexicographical order, mirroring
// caddy.Modules().
func Ciphers() []string {
	ciphersMu.RLock()
	defer ciphersMu.RUnlock()

	tags := make([]string, 0, len(ciphers))
	for tag := range ciphers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// DisplayNameFor returns the registered display name for tag, or tag
// itself if it is not registered (spec.md §4.8: "Display fallback
// returns the tag unchanged when no mapping exists").
func DisplayNameFor(tag string) string {
	ciphersMu.RLock()
	defer ciphersMu.RUnlock()
	if info, ok := ciphers[tag]; ok && info.DisplayName != "" {
		return info.DisplayName
	}
	return tag
}

// ExtensionFor returns the registered file extension for tag, or an
// empty string if tag is not registered.
func ExtensionFor(tag string) string {
	ciphersMu.RLock()
	defer ciphersMu.RUnlock()
	return ciphers[tag].Extension
}

// tagForExtension is the reverse of ExtensionFor, used by extension-based
// detection (spec.md §4.9) when header parsing fails.
func tagForExtension(ext string) (string, bool) {
	ciphersMu.RLock()
	defer ciphersMu.RUnlock()
	for tag, info := range ciphers {
		if info.Extension == ext {
			return tag, true
		}
	}
	return "", false
}

var (
	ciphers   = make(map[string]CipherInfo)
	ciphersMu sync.RWMutex
)
