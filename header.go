package filecrypt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// magic identifies a filecrypt container. It is immutable once written
// (spec.md §3, "Encryption Header").
var magic = [4]byte{'F', 'C', 'R', 'Y'}

const formatVersion byte = 1

// HeaderSize is the fixed size, in bytes, of every encryption header.
// It is a compile-time constant per spec.md §4.5.
const HeaderSize = 16

// ErrInvalidContainer is returned by ReadHeader when the magic or version
// fields fail verification (spec.md §3's "invalid container" failure).
var ErrInvalidContainer = errors.New("filecrypt: invalid container")

// Header is the fixed-size, self-describing prefix written before a
// container's ciphertext. It is read-only to everything but this file
// once constructed (spec.md §3).
type Header struct {
	Version      byte
	AlgorithmTag string
}

// NewHeader returns a Header for the given 4-character algorithm tag,
// right-padding it with '_' if it is shorter (spec.md §4.5).
func NewHeader(tag string) Header {
	return Header{Version: formatVersion, AlgorithmTag: padTag(tag)}
}

func padTag(tag string) string {
	if len(tag) >= 4 {
		return tag[:4]
	}
	return tag + string(bytes.Repeat([]byte{'_'}, 4-len(tag)))
}

// ToByteArray serializes h as magic || version || algorithm_tag || zero
// padding to HeaderSize bytes.
func (h Header) ToByteArray() []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[0:4], magic[:])
	buf[4] = h.Version
	copy(buf[5:9], padTag(h.AlgorithmTag))
	// buf[9:HeaderSize] is left zero-filled reserved space.
	return buf
}

// ReadHeader consumes exactly HeaderSize bytes from r, verifies the magic
// and version, and returns the parsed Header. It returns
// ErrInvalidContainer (wrapped with more detail) if verification fails,
// and the underlying read error (including io.EOF/io.ErrUnexpectedEOF for
// a truncated stream) otherwise.
func ReadHeader(r io.Reader) (Header, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Header{}, err
	}
	return parseHeader(buf)
}

func parseHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("%w: short header (%d bytes)", ErrInvalidContainer, len(buf))
	}
	if !bytes.Equal(buf[0:4], magic[:]) {
		return Header{}, fmt.Errorf("%w: bad magic", ErrInvalidContainer)
	}
	if buf[4] != formatVersion {
		return Header{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidContainer, buf[4])
	}
	return Header{Version: buf[4], AlgorithmTag: string(buf[5:9])}, nil
}
