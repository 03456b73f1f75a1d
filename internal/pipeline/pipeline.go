// Package pipeline implements the equalizer's dual-stage FIR pipeline: a
// low-pass stage in series with a high-pass stage, with change-gated
// coefficient design.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-audio-eq/internal/engine"
	"github.com/tphakala/go-audio-eq/internal/filter"
	"github.com/tphakala/go-audio-eq/internal/simdops"
)

// Pipeline errors.
var (
	// ErrNotPrepared indicates processing before Prepare, or before the first
	// coefficient install.
	ErrNotPrepared = errors.New("pipeline not prepared")

	// ErrChannelMismatch indicates a buffer with more channels than prepared.
	ErrChannelMismatch = errors.New("buffer channel count exceeds prepared channels")

	// ErrInvalidSetup indicates invalid Prepare arguments.
	ErrInvalidSetup = errors.New("invalid processing setup")
)

// DesignFunc writes a tap vector of length len(dst) for the given response.
// filter.DesignInto is the default; tests substitute counting wrappers.
type DesignFunc func(dst []float64, resp filter.Response, cutoffHz, sampleRateHz float64) error

// Option configures a DualStage.
type Option func(*options)

type options struct {
	designer    DesignFunc
	normalizeDC bool
}

// WithDesigner replaces the coefficient designer.
func WithDesigner(fn DesignFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.designer = fn
		}
	}
}

// WithDCNormalization scales low-pass designs to unity DC gain. This changes
// output relative to the plain windowed-sinc design and is off by default.
func WithDCNormalization(enabled bool) Option {
	return func(o *options) {
		o.normalizeDC = enabled
	}
}

// DualStage runs a low-pass FIR stage followed by a high-pass FIR stage over
// every channel of a block, in place.
//
// UpdateIfChanged and ProcessBlock are meant for a single audio goroutine:
// they never allocate, lock or block. Prepare allocates and must not run
// concurrently with them.
type DualStage[F simdops.Float] struct {
	lowpass  *engine.Stage[F]
	highpass *engine.Stage[F]

	designer    DesignFunc
	normalizeDC bool

	// Design scratch, reused for every install
	scratch []float64

	// Last-applied cutoff cache. Exact float equality gates redesign.
	lastLpCutoff   float64
	lastHpCutoff   float64
	lastSampleRate float64

	sampleRate float64
	prepared   bool
}

// NewDualStage creates an unprepared pipeline of order filter.DefaultOrder.
func NewDualStage[F simdops.Float](opts ...Option) *DualStage[F] {
	o := options{designer: filter.DesignInto}
	for _, opt := range opts {
		opt(&o)
	}

	// DefaultOrder is a positive constant, NewStage cannot fail
	lp, _ := engine.NewStage[F](filter.DefaultOrder)
	hp, _ := engine.NewStage[F](filter.DefaultOrder)

	d := &DualStage[F]{
		lowpass:     lp,
		highpass:    hp,
		designer:    o.designer,
		normalizeDC: o.normalizeDC,
		scratch:     make([]float64, filter.DefaultOrder),
	}
	d.invalidateCache()
	return d
}

// Prepare sizes per-channel history for both stages, clears it, and resets
// the cutoff cache so the next UpdateIfChanged always designs. It must be
// called before processing and again after any sample-rate or channel-count
// change.
func (d *DualStage[F]) Prepare(sampleRateHz float64, maxBlockSize, numChannels int) error {
	if err := filter.ValidateSampleRate(sampleRateHz); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSetup, err)
	}
	if maxBlockSize < 1 {
		return fmt.Errorf("%w: max block size %d", ErrInvalidSetup, maxBlockSize)
	}
	if numChannels < 1 {
		return fmt.Errorf("%w: channel count %d", ErrInvalidSetup, numChannels)
	}

	if err := d.lowpass.Prepare(maxBlockSize, numChannels); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSetup, err)
	}
	if err := d.highpass.Prepare(maxBlockSize, numChannels); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSetup, err)
	}

	d.sampleRate = sampleRateHz
	d.invalidateCache()
	d.prepared = true
	return nil
}

// Reset zeroes the history of both stages without reallocating.
// Installed coefficients and the cutoff cache are kept.
func (d *DualStage[F]) Reset() {
	d.lowpass.Reset()
	d.highpass.Reset()
}

// UpdateIfChanged redesigns and installs the taps of each stage whose cutoff
// differs from the last applied value. A change of sampleRateHz redesigns
// both. When nothing changed this is a no-op.
//
// The comparison is exact float equality: any parameter jitter, however
// small, triggers a full redesign of that stage.
func (d *DualStage[F]) UpdateIfChanged(lpCutoff, hpCutoff, sampleRateHz float64) error {
	if !d.prepared {
		return ErrNotPrepared
	}

	rateChanged := sampleRateHz != d.lastSampleRate

	if rateChanged || lpCutoff != d.lastLpCutoff {
		if err := d.install(d.lowpass, filter.Lowpass, lpCutoff, sampleRateHz); err != nil {
			return err
		}
		d.lastLpCutoff = lpCutoff
	}

	if rateChanged || hpCutoff != d.lastHpCutoff {
		if err := d.install(d.highpass, filter.Highpass, hpCutoff, sampleRateHz); err != nil {
			return err
		}
		d.lastHpCutoff = hpCutoff
	}

	d.lastSampleRate = sampleRateHz
	return nil
}

func (d *DualStage[F]) install(stage *engine.Stage[F], resp filter.Response, cutoffHz, sampleRateHz float64) error {
	if err := d.designer(d.scratch, resp, cutoffHz, sampleRateHz); err != nil {
		return err
	}
	if d.normalizeDC && resp == filter.Lowpass {
		filter.NormalizeDCGain(d.scratch, unityGain)
	}
	return stage.Install(d.scratch)
}

// ProcessBlock filters every channel of buffer through the low-pass stage
// and then the high-pass stage, in place. Channels are independent; buffer
// may hold fewer channels than prepared but not more.
//
// Before Prepare and the first coefficient install the buffer is silenced
// and ErrNotPrepared returned. Builds with the eqdebug tag panic instead.
func (d *DualStage[F]) ProcessBlock(buffer [][]F) error {
	if !d.Ready() {
		if debugAssertions {
			panic("pipeline: ProcessBlock called before Prepare and UpdateIfChanged")
		}
		silence(buffer)
		return ErrNotPrepared
	}
	if len(buffer) > d.lowpass.Channels() {
		return ErrChannelMismatch
	}

	for ch, samples := range buffer {
		if err := d.lowpass.Process(ch, samples); err != nil {
			return err
		}
		if err := d.highpass.Process(ch, samples); err != nil {
			return err
		}
	}

	return nil
}

// Ready reports whether the pipeline is prepared and both stages have taps.
func (d *DualStage[F]) Ready() bool {
	return d.prepared && d.lowpass.Installed() && d.highpass.Installed()
}

// Prepared reports whether Prepare has succeeded.
func (d *DualStage[F]) Prepared() bool {
	return d.prepared
}

// Taps returns a copy of the installed taps for resp, or nil.
func (d *DualStage[F]) Taps(resp filter.Response) []float64 {
	switch resp {
	case filter.Lowpass:
		return d.lowpass.Taps()
	case filter.Highpass:
		return d.highpass.Taps()
	default:
		return nil
	}
}

// LastApplied returns the cached cutoffs and sample rate of the installed
// coefficients. Before the first install they hold the sentinel -1.
func (d *DualStage[F]) LastApplied() (lpCutoff, hpCutoff, sampleRateHz float64) {
	return d.lastLpCutoff, d.lastHpCutoff, d.lastSampleRate
}

// Latency returns the combined group delay of both stages in samples.
func (d *DualStage[F]) Latency() int {
	return d.lowpass.Latency() + d.highpass.Latency()
}

// Order returns the tap count of each stage.
func (d *DualStage[F]) Order() int {
	return d.lowpass.Order()
}

// Channels returns the prepared channel count.
func (d *DualStage[F]) Channels() int {
	return d.lowpass.Channels()
}

// MaxBlockSize returns the prepared maximum block size.
func (d *DualStage[F]) MaxBlockSize() int {
	return d.lowpass.MaxBlockSize()
}

// SampleRate returns the sample rate given to Prepare.
func (d *DualStage[F]) SampleRate() float64 {
	return d.sampleRate
}

// MemoryUsage returns the approximate bytes held by both stages.
func (d *DualStage[F]) MemoryUsage() int64 {
	return d.lowpass.MemoryUsage() + d.highpass.MemoryUsage() + int64(len(d.scratch))*bytesPerFloat64
}

func (d *DualStage[F]) invalidateCache() {
	d.lastLpCutoff = sentinelCutoff
	d.lastHpCutoff = sentinelCutoff
	d.lastSampleRate = sentinelCutoff
}

func silence[F simdops.Float](buffer [][]F) {
	for _, samples := range buffer {
		clear(samples)
	}
}
