package filecrypt

import (
	"os"

	"go.uber.org/zap"

	"github.com/filecrypt-go/filecrypt/padding"
)

// reconcilePadding implements spec.md §4.6's padding-reconciliation pass:
// a single trim of a decrypted file's trailing padding, assuming the
// whole file's tail carries one logical padding run. It is best-effort:
// any failure is logged and swallowed, never propagated.
//
// This implementation's very-large mode decrypts each segment as its own
// self-contained IV-prefixed CBC message (see pipeline_verylarge.go's
// cbcSegmentOverhead), so every segment's padding is already stripped
// exactly by its own Decrypt call; running this pass again over that
// output would treat genuine trailing plaintext bytes as a pad-length
// byte and truncate real data. reconcilePadding is therefore not called
// from decryptVeryLarge — it stands as an independently correct, tested
// operation for the container format spec.md describes, where padding is
// a property of the whole decrypted stream rather than of each segment.
func reconcilePadding(path string, cipherTag string) error {
	scheme := padding.SchemeFor(cipherTag)
	if scheme == padding.None {
		return nil
	}
	blockSize := padding.BlockSize(cipherTag)

	if err := doReconcilePadding(path, scheme, blockSize); err != nil {
		Log().Warn("padding reconciliation failed, leaving output as-is",
			zap.String("path", path), zap.Error(err))
	}
	return nil
}

const smallReconcileThreshold = 80 * 1024

func doReconcilePadding(path string, scheme padding.Scheme, blockSize int) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size == 0 {
		return nil
	}

	if size <= smallReconcileThreshold {
		buf := make([]byte, size)
		if _, err := f.ReadAt(buf, 0); err != nil {
			return err
		}
		newLength, err := padding.RemovePadding(buf, scheme, blockSize)
		if err != nil {
			return err
		}
		return f.Truncate(int64(newLength))
	}

	tailLen := int64(2 * blockSize)
	if tailLen > size {
		tailLen = size
	}
	tail := make([]byte, tailLen)
	if _, err := f.ReadAt(tail, size-tailLen); err != nil {
		return err
	}
	padLen, err := padding.CalculatePaddingLength(tail, scheme, blockSize)
	if err != nil {
		return err
	}
	return f.Truncate(size - int64(padLen))
}
