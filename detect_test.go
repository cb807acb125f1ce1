package filecrypt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectAlgorithmFromHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secret.bin")

	h := NewHeader("CC20")
	require.NoError(t, os.WriteFile(path, h.ToByteArray(), 0o600))

	tag, hdr, err := DetectAlgorithm(path)
	require.NoError(t, err)
	assert.Equal(t, "CC20", tag)
	require.NotNil(t, hdr)
	assert.Equal(t, "CC20", hdr.AlgorithmTag)
}

func TestDetectAlgorithmFallsBackToExtension(t *testing.T) {
	RegisterCipher("DET1", CipherInfo{DisplayName: "Detect Test", Extension: "det1"})

	dir := t.TempDir()
	path := filepath.Join(dir, "secret.det1")
	require.NoError(t, os.WriteFile(path, make([]byte, HeaderSize+16), 0o600))

	tag, hdr, err := DetectAlgorithm(path)
	require.NoError(t, err)
	assert.Equal(t, "DET1", tag)
	assert.Nil(t, hdr)
}

func TestDetectAlgorithmTooSmall(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.bin")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	tag, hdr, err := DetectAlgorithm(path)
	require.NoError(t, err)
	assert.Empty(t, tag)
	assert.Nil(t, hdr)
}

func TestDetectAlgorithmMissingFile(t *testing.T) {
	tag, hdr, err := DetectAlgorithm(filepath.Join(t.TempDir(), "nope.bin"))
	require.NoError(t, err)
	assert.Empty(t, tag)
	assert.Nil(t, hdr)
}

func TestDetectAlgorithmUnrecognizedJunk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "junk.unknownext")
	junk := make([]byte, HeaderSize+8)
	for i := range junk {
		junk[i] = 0xAB
	}
	require.NoError(t, os.WriteFile(path, junk, 0o600))

	tag, hdr, err := DetectAlgorithm(path)
	require.NoError(t, err)
	assert.Empty(t, tag)
	assert.Nil(t, hdr)
}

func TestEncryptedPathForUsesRegisteredExtension(t *testing.T) {
	RegisterCipher("DET2", CipherInfo{Extension: "det2"})
	got := EncryptedPathFor("/tmp/report.txt", fakeCipher{tag: "DET2"})
	assert.Equal(t, "/tmp/report.det2", got)
}

func TestEncryptedPathForFallsBackToLowercasedTag(t *testing.T) {
	got := EncryptedPathFor("/tmp/report.txt", fakeCipher{tag: "ZZZZ"})
	assert.Equal(t, "/tmp/report.zzzz", got)
}
