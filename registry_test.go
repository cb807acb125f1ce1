package filecrypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCipher struct{ tag string }

func (f fakeCipher) GenerateKey() ([]byte, error)                   { return make([]byte, KeySize), nil }
func (f fakeCipher) Encrypt(p, k []byte) ([]byte, error)             { return p, nil }
func (f fakeCipher) Decrypt(c, k []byte) ([]byte, error)             { return c, nil }
func (f fakeCipher) Identity() string                                { return f.tag }

func TestRegisterAndGetCipher(t *testing.T) {
	RegisterCipher("TST1", CipherInfo{
		New:         func() Cipher { return fakeCipher{tag: "TST1"} },
		DisplayName: "Test Cipher One",
		Extension:   "tst1",
	})

	c, err := GetCipher("TST1")
	require.NoError(t, err)
	assert.Equal(t, "TST1", c.Identity())
	assert.Equal(t, "Test Cipher One", DisplayNameFor("TST1"))
	assert.Equal(t, "tst1", ExtensionFor("TST1"))

	tag, ok := tagForExtension("tst1")
	assert.True(t, ok)
	assert.Equal(t, "TST1", tag)
}

func TestRegisterCipherRejectsBadTagLength(t *testing.T) {
	assert.Panics(t, func() {
		RegisterCipher("TOO_LONG", CipherInfo{New: func() Cipher { return fakeCipher{} }})
	})
}

func TestRegisterCipherRejectsDuplicate(t *testing.T) {
	RegisterCipher("TST2", CipherInfo{New: func() Cipher { return fakeCipher{tag: "TST2"} }})
	assert.Panics(t, func() {
		RegisterCipher("TST2", CipherInfo{New: func() Cipher { return fakeCipher{tag: "TST2"} }})
	})
}

func TestGetCipherUnregisteredTag(t *testing.T) {
	_, err := GetCipher("ZZZZ")
	assert.Error(t, err)
}

func TestExtensionOnlyEntryHasNoImplementation(t *testing.T) {
	RegisterCipher("TST3", CipherInfo{DisplayName: "Catalog Only", Extension: "tst3"})
	_, err := GetCipher("TST3")
	assert.Error(t, err)
	assert.Equal(t, "Catalog Only", DisplayNameFor("TST3"))
}

func TestDisplayNameForFallsBackToTag(t *testing.T) {
	assert.Equal(t, "ZZZZ", DisplayNameFor("ZZZZ"))
}

func TestCiphersIsSorted(t *testing.T) {
	tags := Ciphers()
	for i := 1; i < len(tags); i++ {
		assert.LessOrEqual(t, tags[i-1], tags[i])
	}
}
