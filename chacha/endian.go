package chacha

import "encoding/binary"

// loadLE32 reads a little-endian 32-bit word from b at offset off.
func loadLE32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off:])
}

// storeLE32 writes v as a little-endian 32-bit word into b at offset
// off.
func storeLE32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:], v)
}

// storeVec4LE serializes a row-register's four lanes little-endian into
// out starting at byteOffset, in row-major order — the per-block half of
// the "128-bit lane store" utility in spec.md §2.
func storeVec4LE(out []byte, byteOffset int, v vec4) {
	for i, word := range v {
		storeLE32(out, byteOffset+i*4, word)
	}
}
