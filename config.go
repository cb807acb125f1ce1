package filecrypt

import (
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Size thresholds and knobs that govern pipeline mode dispatch, chunking,
// and concurrency. These are process-wide and read once at startup,
// matching spec.md §6 ("Configuration knobs"); callers construct one with
// NewConfig or LoadConfigFile and pass it explicitly rather than reaching
// for mutable global state (see DESIGN.md on why Caddy's reloadable
// *Config was not carried over).
type Config struct {
	// BufferSize is the configured I/O buffer size. No pipeline mode
	// reads it: small mode reads the whole file at once and large mode
	// sizes its chunks from chunkSizeFor.
	BufferSize int64

	// LargeFileThreshold is the upper bound (inclusive on the small
	// side: a file of exactly this size is still small mode) past which
	// encrypt/decrypt switches from small to large mode.
	LargeFileThreshold int64

	// VeryLargeFileThreshold is the upper bound past which encrypt/
	// decrypt switches from large to very-large (segmented) mode.
	VeryLargeFileThreshold int64

	// SegmentSize is the stride of each very-large-mode segment.
	SegmentSize int64

	// MaxParallelism bounds the number of concurrently in-flight
	// cipher tasks in large and very-large mode. Zero means "use
	// runtime.NumCPU()".
	MaxParallelism int
}

const (
	defaultBufferSize             = 80 * 1024
	defaultLargeFileThreshold     = 10 * 1024 * 1024
	defaultVeryLargeFileThreshold = 1024 * 1024 * 1024
	defaultSegmentSize            = 64 * 1024 * 1024
)

// NewConfig returns a Config populated with spec.md §6's defaults.
func NewConfig() *Config {
	return &Config{
		BufferSize:             defaultBufferSize,
		LargeFileThreshold:     defaultLargeFileThreshold,
		VeryLargeFileThreshold: defaultVeryLargeFileThreshold,
		SegmentSize:            defaultSegmentSize,
		MaxParallelism:         runtime.NumCPU(),
	}
}

// parallelism returns cfg.MaxParallelism, or runtime.NumCPU() if cfg is
// nil or the field was left at zero.
func (cfg *Config) parallelism() int {
	if cfg == nil || cfg.MaxParallelism <= 0 {
		return runtime.NumCPU()
	}
	return cfg.MaxParallelism
}

// tomlConfig mirrors Config with TOML-friendly field names; it exists
// only as LoadConfigFile's unmarshal target.
type tomlConfig struct {
	BufferSize             int64 `toml:"buffer_size"`
	LargeFileThreshold     int64 `toml:"large_file_threshold"`
	VeryLargeFileThreshold int64 `toml:"very_large_file_threshold"`
	SegmentSize            int64 `toml:"segment_size"`
	MaxParallelism         int   `toml:"max_parallelism"`
}

// LoadConfigFile reads a TOML config file at path and validates it,
// falling back to NewConfig()'s default for any field left as zero.
// Any field that is set must be positive, and SegmentSize must not
// exceed VeryLargeFileThreshold.
func LoadConfigFile(path string) (*Config, error) {
	var raw tomlConfig
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("filecrypt: config file %s: %w", path, err)
		}
		return nil, fmt.Errorf("filecrypt: parsing config file %s: %w", path, err)
	}

	for name, v := range map[string]int64{
		"buffer_size":               raw.BufferSize,
		"large_file_threshold":      raw.LargeFileThreshold,
		"very_large_file_threshold": raw.VeryLargeFileThreshold,
		"segment_size":              raw.SegmentSize,
		"max_parallelism":           int64(raw.MaxParallelism),
	} {
		if v < 0 {
			return nil, fmt.Errorf("filecrypt: %s must be positive, got %d", name, v)
		}
	}

	cfg := NewConfig()
	if raw.BufferSize > 0 {
		cfg.BufferSize = raw.BufferSize
	}
	if raw.LargeFileThreshold > 0 {
		cfg.LargeFileThreshold = raw.LargeFileThreshold
	}
	if raw.VeryLargeFileThreshold > 0 {
		cfg.VeryLargeFileThreshold = raw.VeryLargeFileThreshold
	}
	if raw.SegmentSize > 0 {
		cfg.SegmentSize = raw.SegmentSize
	}
	if raw.MaxParallelism > 0 {
		cfg.MaxParallelism = raw.MaxParallelism
	}

	if cfg.SegmentSize > cfg.VeryLargeFileThreshold {
		return nil, fmt.Errorf("filecrypt: segment_size (%d) exceeds very_large_file_threshold (%d)", cfg.SegmentSize, cfg.VeryLargeFileThreshold)
	}

	return cfg, nil
}
