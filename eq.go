package eq

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-audio-eq/internal/filter"
	"github.com/tphakala/go-audio-eq/internal/pipeline"
	"github.com/tphakala/go-audio-eq/internal/simdops"
)

// Float is the constraint for supported sample types.
type Float = simdops.Float

// Response selects one of the two filter stages.
type Response = filter.Response

// Filter stages.
const (
	Lowpass  = filter.Lowpass
	Highpass = filter.Highpass
)

// Config holds equalizer configuration.
type Config struct {
	// SampleRate is the processing sample rate in Hz.
	SampleRate float64

	// MaxBlockSize is the largest number of samples per channel expected in
	// one Process call. Larger blocks are still accepted and processed in
	// chunks. Set to 0 to use the default.
	MaxBlockSize int

	// Channels is the number of audio channels to process.
	Channels int

	// NormalizeDCGain scales every low-pass design to unity DC gain.
	// The plain windowed-sinc design loses gain at low cutoffs; enabling this
	// changes the output relative to it.
	NormalizeDCGain bool

	// Params is the parameter store the processor reads cutoffs from.
	// Set to nil to create a fresh store with default values.
	Params *Params
}

// Common errors returned by the equalizer.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid equalizer configuration")

	// ErrNotPrepared indicates processing before the processor was prepared.
	ErrNotPrepared = pipeline.ErrNotPrepared

	// ErrChannelMismatch indicates a buffer with more channels than prepared.
	ErrChannelMismatch = pipeline.ErrChannelMismatch

	// ErrInvalidBuffer indicates an interleaved buffer whose length is not a
	// multiple of the channel count.
	ErrInvalidBuffer = errors.New("invalid interleaved buffer")

	// ErrInvalidState indicates a persisted state blob that cannot be decoded.
	ErrInvalidState = errors.New("invalid equalizer state")
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := filter.ValidateSampleRate(c.SampleRate); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if c.MaxBlockSize < 0 {
		return fmt.Errorf("%w: max block size must not be negative", ErrInvalidConfig)
	}

	if c.Channels < 1 {
		return fmt.Errorf("%w: channels must be at least 1", ErrInvalidConfig)
	}

	if c.Channels > maxChannels {
		return fmt.Errorf("%w: too many channels (max %d)", ErrInvalidConfig, maxChannels)
	}

	return nil
}

func (c *Config) blockSize() int {
	if c.MaxBlockSize == 0 {
		return defaultMaxBlockSize
	}
	return c.MaxBlockSize
}

// Info describes a processor.
type Info struct {
	// Algorithm describes the filter design in use.
	Algorithm string

	// FilterLength is the number of taps per stage.
	FilterLength int

	// Stages is the number of FIR stages in series.
	Stages int

	// Latency is the processing latency in samples.
	Latency int

	// MemoryUsage is the approximate memory usage in bytes.
	MemoryUsage int64

	// SIMDType describes the SIMD instruction set in use.
	SIMDType string
}
