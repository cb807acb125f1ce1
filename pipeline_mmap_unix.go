//go:build unix

package filecrypt

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mapSegment memory-maps length read-only bytes of f starting at offset,
// the "segmented memory map" access pattern spec.md §4.4 names for
// very-large mode's per-segment reads. The caller must call the returned
// unmap function exactly once, after it is done with the returned slice.
//
// mmap's offset argument must be a multiple of the system page size, but
// segment offsets (shifted by HeaderSize, see shiftPlans) generally
// aren't, so this rounds offset down to the nearest page boundary, maps
// from there, and returns the sub-slice starting at the true requested
// offset. The unmap closure still unmaps the full, page-aligned region.
func mapSegment(f *os.File, offset, length int64) ([]byte, func() error, error) {
	if length == 0 {
		return nil, func() error { return nil }, nil
	}

	pageSize := int64(os.Getpagesize())
	alignedOffset := offset - offset%pageSize
	skew := offset - alignedOffset

	mapped, err := unix.Mmap(int(f.Fd()), alignedOffset, int(skew+length), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("filecrypt: mmap offset %d length %d: %w", offset, length, err)
	}
	return mapped[skew : skew+length], func() error { return unix.Munmap(mapped) }, nil
}
