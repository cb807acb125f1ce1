package filecrypt

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// chunkSizeFor implements spec.md §4.4's chunk-size table for large
// mode.
func chunkSizeFor(fileSize int64) int64 {
	switch {
	case fileSize > 1024*1024*1024:
		return 4 * 1024 * 1024
	case fileSize > 100*1024*1024:
		return 1 * 1024 * 1024
	default:
		return 256 * 1024
	}
}

// largeModeBlockSize is the keystream/unit block size SeekableCipher
// offsets are counted in.
const largeModeBlockSize = 64

// asSeekable type-asserts cipher as a SeekableCipher, returning an error
// naming the unsupported cipher otherwise. Large mode is restricted to
// stream ciphers per spec.md §4.4's ordering caveat and §9's "recommended"
// resolution: a cipher whose output length can differ from its input
// length cannot be chunked this way without either serializing writes or
// tracking cumulative output length, neither of which this pipeline
// implements for large mode (very-large mode exists precisely to support
// padded block ciphers, at the cost of a per-segment IV and padding
// overhead).
func asSeekable(cipher Cipher) (SeekableCipher, error) {
	sc, ok := cipher.(SeekableCipher)
	if !ok {
		return nil, fmt.Errorf("filecrypt: cipher %s does not support large mode (not a stream cipher); use a smaller file to force small mode or a larger one for very-large mode", cipher.Identity())
	}
	return sc, nil
}

// encryptLarge implements spec.md §4.4's large mode: write the header,
// then stream the input through bounded-parallel chunked cipher
// invocations onto a positioned output file.
func encryptLarge(rc runContext, inputPath, outputPath string, cipher Cipher, key Key, cfg *Config) error {
	sc, err := asSeekable(cipher)
	if err != nil {
		return err
	}

	inF, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("filecrypt: opening input: %w", err)
	}
	defer inF.Close()

	outF, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("filecrypt: creating output: %w", err)
	}
	defer outF.Close()

	hdr := NewHeader(cipher.Identity())
	if _, err := outF.Write(hdr.ToByteArray()); err != nil {
		return fmt.Errorf("filecrypt: writing header: %w", err)
	}

	info, err := inF.Stat()
	if err != nil {
		return err
	}

	return streamChunks(rc, inF, outF, info.Size(), 0, HeaderSize, key, cfg, sc.EncryptAt)
}

// decryptLarge implements spec.md §4.4's large-mode decrypt path,
// including the "legacy compatibility" fallback: if the header fails to
// parse as a valid container, rewind to the start of the file, log a
// warning, and treat the whole file as payload rather than erroring.
func decryptLarge(rc runContext, inputPath, outputPath string, cipher Cipher, key Key, cfg *Config) error {
	sc, err := asSeekable(cipher)
	if err != nil {
		return err
	}

	inF, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("filecrypt: opening input: %w", err)
	}
	defer inF.Close()

	info, err := inF.Stat()
	if err != nil {
		return err
	}

	headerOffset := int64(HeaderSize)
	if _, err := ReadHeader(inF); err != nil {
		if !errors.Is(err, ErrInvalidContainer) {
			return err
		}
		rc.logger().Warn("large mode: no valid container header, treating file as headerless legacy payload",
			zap.String("input", inputPath), zap.Error(err))
		if _, err := inF.Seek(0, io.SeekStart); err != nil {
			return err
		}
		headerOffset = 0
	}

	outF, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("filecrypt: creating output: %w", err)
	}
	defer outF.Close()

	return streamChunks(rc, inF, outF, info.Size(), headerOffset, 0, key, cfg, sc.DecryptAt)
}

// streamChunks is the bounded-parallel chunk scheduler shared by
// encryptLarge and decryptLarge: it reads one chunk at a time
// sequentially starting at readBase in inF, and dispatches each to a
// worker from a pool bounded to cfg.parallelism() in-flight tasks
// (spec.md §5), writing each chunk's result to outF at writeBase plus
// its chunk-relative offset as soon as that task completes. readBase
// and writeBase differ because exactly one of the two files carries a
// container header: encryptLarge reads headerless input and writes a
// headered output, decryptLarge the reverse. The bound is a buffered
// channel used as a counting token bucket; an errgroup carries
// cancellation (from rc.Context, or the first worker error) to every
// in-flight and not-yet-started task.
func streamChunks(rc runContext, inF *os.File, outF *os.File, totalSize, readBase, writeBase int64, key Key, cfg *Config, apply func(data []byte, key []byte, blockOffset uint64) ([]byte, error)) error {
	payloadSize := totalSize - readBase
	if payloadSize <= 0 {
		return nil
	}

	chunkSize := chunkSizeFor(totalSize)
	tokens := make(chan struct{}, cfg.parallelism())
	g, ctx := errgroup.WithContext(rc.Context)

	buf := make([]byte, chunkSize)
	var chunkOffset int64
	for chunkOffset < payloadSize {
		select {
		case <-ctx.Done():
			_ = g.Wait()
			return ctx.Err()
		default:
		}

		n, readErr := inF.ReadAt(buf, readBase+chunkOffset)
		if n == 0 && readErr != nil {
			if readErr == io.EOF {
				break
			}
			_ = g.Wait()
			return fmt.Errorf("filecrypt: reading chunk at offset %d: %w", chunkOffset, readErr)
		}

		chunk := make([]byte, n)
		copy(chunk, buf[:n])
		offset := chunkOffset
		blockOffset := uint64(offset) / largeModeBlockSize

		select {
		case tokens <- struct{}{}:
		case <-ctx.Done():
			_ = g.Wait()
			return ctx.Err()
		}

		g.Go(func() error {
			defer func() { <-tokens }()
			out, err := apply(chunk, key, blockOffset)
			if err != nil {
				return fmt.Errorf("filecrypt: applying cipher to chunk at offset %d: %w", offset, err)
			}
			if _, err := outF.WriteAt(out, writeBase+offset); err != nil {
				return fmt.Errorf("filecrypt: writing chunk at offset %d: %w", offset, err)
			}
			return nil
		})

		chunkOffset += int64(n)
		if readErr == io.EOF {
			break
		}
	}

	return g.Wait()
}
