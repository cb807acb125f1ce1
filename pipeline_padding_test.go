package filecrypt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filecrypt-go/filecrypt/padding"
)

func TestDoReconcilePaddingSmallFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "small.bin")
	content := append([]byte("hello world"), 5, 5, 5, 5, 5)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	require.NoError(t, doReconcilePadding(path, padding.PKCS7, 16))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), got)
}

func TestDoReconcilePaddingLargeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "large.bin")

	body := make([]byte, smallReconcileThreshold+4096)
	for i := range body {
		body[i] = byte(i)
	}
	padLen := 6
	for i := 0; i < padLen; i++ {
		body[len(body)-1-i] = byte(padLen)
	}
	require.NoError(t, os.WriteFile(path, body, 0o600))

	require.NoError(t, doReconcilePadding(path, padding.PKCS7, 16))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body[:len(body)-padLen], got)
}

func TestReconcilePaddingSkipsStreamCiphers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stream.bin")
	content := []byte("no padding to remove here")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	require.NoError(t, reconcilePadding(path, "CC20"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestReconcilePaddingSwallowsFailure(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "does-not-exist.bin")

	assert.NoError(t, reconcilePadding(missing, "AES_"))
}
