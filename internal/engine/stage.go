// Package engine implements the FIR filter stage used by the equalizer
// pipeline: one installed tap vector shared by N channels, each with its own
// input history.
package engine

import (
	"errors"
	"fmt"
	"slices"

	"github.com/tphakala/go-audio-eq/internal/simdops"
)

// Stage errors.
var (
	// ErrNotPrepared indicates Process was called before Prepare.
	ErrNotPrepared = errors.New("stage not prepared")

	// ErrChannelOutOfRange indicates a channel index beyond the prepared count.
	ErrChannelOutOfRange = errors.New("channel out of range")

	// ErrLengthMismatch indicates a tap vector whose length differs from the order.
	ErrLengthMismatch = errors.New("tap vector length does not match filter order")

	// ErrInvalidSize indicates a non-positive order, block size or channel count.
	ErrInvalidSize = errors.New("invalid stage size")
)

// Stage is a direct-form FIR filter processing blocks in place.
//
// Each channel owns a work buffer laid out as
//
//	[ order-1 samples of history | up to maxBlockSize new samples ]
//
// so a block is filtered with a single valid convolution over the work
// buffer, and the tail of the buffer becomes the next block's history.
// All buffers are sized by Prepare; Process never allocates.
//
// Installed tap vectors are never modified. Install writes the new taps into
// the inactive half of a double buffer and then flips the active index.
//
// A Stage is not safe for concurrent use.
type Stage[F simdops.Float] struct {
	order        int
	maxBlockSize int

	// Double-buffered taps. kernels hold the taps time-reversed for
	// ConvolveValid; taps hold the float64 design for inspection.
	taps      [2][]float64
	kernels   [2][]F
	active    int
	installed bool

	// Per-channel history + block scratch
	work [][]F

	ops *simdops.Ops[F]
}

// NewStage creates a stage of the given order with no channels prepared and
// no taps installed.
func NewStage[F simdops.Float](order int) (*Stage[F], error) {
	if order < 1 {
		return nil, fmt.Errorf("%w: order %d", ErrInvalidSize, order)
	}

	s := &Stage[F]{
		order: order,
		ops:   simdops.For[F](),
	}
	for i := range s.taps {
		s.taps[i] = make([]float64, order)
		s.kernels[i] = make([]F, order)
	}
	return s, nil
}

// Prepare allocates history for numChannels channels and blocks of up to
// maxBlockSize samples, and clears all history. Installed taps are kept.
func (s *Stage[F]) Prepare(maxBlockSize, numChannels int) error {
	if maxBlockSize < 1 {
		return fmt.Errorf("%w: max block size %d", ErrInvalidSize, maxBlockSize)
	}
	if numChannels < 1 {
		return fmt.Errorf("%w: channel count %d", ErrInvalidSize, numChannels)
	}

	s.maxBlockSize = maxBlockSize
	s.work = make([][]F, numChannels)
	for ch := range s.work {
		s.work[ch] = make([]F, s.historyLen()+maxBlockSize)
	}
	return nil
}

// Reset zeroes the history of every channel without reallocating.
func (s *Stage[F]) Reset() {
	for _, w := range s.work {
		clear(w)
	}
}

// Install replaces the active tap vector. taps must have exactly Order()
// elements; the stage keeps its own copy.
func (s *Stage[F]) Install(taps []float64) error {
	if len(taps) != s.order {
		return fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(taps), s.order)
	}

	spare := 1 - s.active
	copy(s.taps[spare], taps)
	simdops.FromFloat64(s.kernels[spare], taps)
	slices.Reverse(s.kernels[spare])

	s.active = spare
	s.installed = true
	return nil
}

// Process filters block in place for channel ch using that channel's
// history. Blocks longer than the prepared maximum are processed in
// maxBlockSize chunks.
func (s *Stage[F]) Process(ch int, block []F) error {
	if s.work == nil {
		return ErrNotPrepared
	}
	if ch < 0 || ch >= len(s.work) {
		return ErrChannelOutOfRange
	}

	hist := s.historyLen()
	kernel := s.kernels[s.active]
	w := s.work[ch]

	for len(block) > 0 {
		n := min(len(block), s.maxBlockSize)

		copy(w[hist:hist+n], block[:n])
		s.ops.ConvolveValid(block[:n], w[:hist+n], kernel)

		// Keep the newest order-1 inputs as history
		copy(w[:hist], w[n:n+hist])

		block = block[n:]
	}

	return nil
}

// Order returns the number of taps.
func (s *Stage[F]) Order() int {
	return s.order
}

// Channels returns the number of prepared channels.
func (s *Stage[F]) Channels() int {
	return len(s.work)
}

// MaxBlockSize returns the prepared maximum block size.
func (s *Stage[F]) MaxBlockSize() int {
	return s.maxBlockSize
}

// Prepared reports whether Prepare has succeeded.
func (s *Stage[F]) Prepared() bool {
	return s.work != nil
}

// Installed reports whether a tap vector has been installed.
func (s *Stage[F]) Installed() bool {
	return s.installed
}

// Taps returns a copy of the active tap vector, or nil if none is installed.
func (s *Stage[F]) Taps() []float64 {
	if !s.installed {
		return nil
	}
	return slices.Clone(s.taps[s.active])
}

// Latency returns the group delay of the stage in samples.
func (s *Stage[F]) Latency() int {
	return s.historyLen() / latencyDivisor
}

// MemoryUsage returns the approximate bytes held by taps and history.
func (s *Stage[F]) MemoryUsage() int64 {
	bytesPerElement := int64(bytesPerFloat32)
	var zero F
	if _, ok := any(zero).(float64); ok {
		bytesPerElement = bytesPerFloat64
	}

	usage := int64(len(s.taps)*s.order) * bytesPerFloat64
	usage += int64(len(s.kernels)*s.order) * bytesPerElement
	for _, w := range s.work {
		usage += int64(cap(w)) * bytesPerElement
	}
	return usage
}

func (s *Stage[F]) historyLen() int {
	return s.order - 1
}
