//go:build !unix

package filecrypt

import "os"

// mapSegment falls back to a plain ReadAt into a freshly allocated buffer
// on platforms without unix.Mmap. Very-large mode's segment-at-a-time
// read pattern is identical either way; only the zero-copy benefit of a
// true mapping is lost (spec.md's "segmented memory map" wording
// describes an access pattern, not a requirement on the syscall).
func mapSegment(f *os.File, offset, length int64) ([]byte, func() error, error) {
	if length == 0 {
		return nil, func() error { return nil }, nil
	}
	buf := make([]byte, length)
	if _, err := f.ReadAt(buf, offset); err != nil {
		return nil, nil, err
	}
	return buf, func() error { return nil }, nil
}
