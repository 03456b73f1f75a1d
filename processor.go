package eq

import (
	"fmt"

	"github.com/go-audio/audio"
	"github.com/tphakala/go-audio-eq/internal/pipeline"
	"github.com/tphakala/simd/cpu"
)

// Processor applies the low-pass then high-pass FIR pair to multichannel
// audio, reading both cutoffs from its parameter store on every block.
//
// Process, ProcessInterleaved and ProcessFloatBuffer run on a single audio
// goroutine and never allocate once prepared. Prepare, SaveState and
// LoadState belong to the control path. Parameters may be changed from any
// goroutine at any time.
type Processor[F Float] struct {
	config   Config
	params   *Params
	pipeline *pipeline.DualStage[F]

	// Planar scratch for interleaved input, one full-size slice per channel
	planar [][]F
	views  [][]F
}

// New creates a processor and prepares it for config.SampleRate,
// config.MaxBlockSize and config.Channels.
func New[F Float](config *Config) (*Processor[F], error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	params := config.Params
	if params == nil {
		params = NewParams()
	}

	p := &Processor[F]{
		config:   *config,
		params:   params,
		pipeline: pipeline.NewDualStage[F](pipeline.WithDCNormalization(config.NormalizeDCGain)),
	}
	p.config.Params = params

	if err := p.Prepare(config.SampleRate, config.blockSize(), config.Channels); err != nil {
		return nil, err
	}

	return p, nil
}

// Prepare sizes the processor for a new stream, clears filter history and
// designs coefficients for the current parameter values. Call it again
// whenever the sample rate, block size or channel count changes.
func (p *Processor[F]) Prepare(sampleRate float64, maxBlockSize, channels int) error {
	next := p.config
	next.SampleRate = sampleRate
	next.MaxBlockSize = maxBlockSize
	next.Channels = channels
	if err := next.Validate(); err != nil {
		return err
	}

	if err := p.pipeline.Prepare(sampleRate, next.blockSize(), channels); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	p.pipeline.Reset()

	p.config = next
	p.planar = make([][]F, channels)
	for ch := range p.planar {
		p.planar[ch] = make([]F, next.blockSize())
	}
	p.views = make([][]F, channels)

	return p.update()
}

// Reset clears filter history without changing coefficients or parameters.
func (p *Processor[F]) Reset() {
	p.pipeline.Reset()
}

// update loads both cutoffs and redesigns whichever stage changed.
func (p *Processor[F]) update() error {
	return p.pipeline.UpdateIfChanged(
		p.params.Lowpass.Get(),
		p.params.Highpass.Get(),
		p.config.SampleRate,
	)
}

// Process filters buffer in place. Each slice is one channel; all channels
// are expected to hold the same number of samples. Buffers may carry fewer
// channels than prepared but not more.
func (p *Processor[F]) Process(buffer [][]F) error {
	updateErr := p.update()
	if err := p.pipeline.ProcessBlock(buffer); err != nil {
		return err
	}
	return updateErr
}

// ProcessInterleaved filters interleaved samples [c0, c1, ..., c0, c1, ...]
// in place using the prepared channel count. Frames beyond the prepared
// block size are processed in several passes.
func (p *Processor[F]) ProcessInterleaved(samples []F) error {
	channels := p.config.Channels
	if len(samples)%channels != 0 {
		return fmt.Errorf("%w: %d samples is not a multiple of %d channels",
			ErrInvalidBuffer, len(samples), channels)
	}

	frames := len(samples) / channels
	blockSize := len(p.planar[0])
	for start := 0; start < frames; start += blockSize {
		n := min(blockSize, frames-start)
		chunk := samples[start*channels : (start+n)*channels]

		for ch := range channels {
			view := p.planar[ch][:n]
			for i := range n {
				view[i] = chunk[i*channels+ch]
			}
			p.views[ch] = view
		}

		if err := p.Process(p.views); err != nil {
			return err
		}

		for ch, view := range p.views {
			for i, v := range view {
				chunk[i*channels+ch] = v
			}
		}
	}

	return nil
}

// ProcessFloatBuffer filters a go-audio buffer in place. The buffer's
// channel count must not exceed the prepared count.
func (p *Processor[F]) ProcessFloatBuffer(buf *audio.FloatBuffer) error {
	if buf == nil || buf.Format == nil {
		return fmt.Errorf("%w: buffer has no format", ErrInvalidBuffer)
	}

	channels := buf.Format.NumChannels
	if channels < 1 || channels > p.config.Channels {
		return fmt.Errorf("%w: buffer has %d channels, prepared for %d",
			ErrChannelMismatch, channels, p.config.Channels)
	}
	if len(buf.Data)%channels != 0 {
		return fmt.Errorf("%w: %d samples is not a multiple of %d channels",
			ErrInvalidBuffer, len(buf.Data), channels)
	}

	frames := len(buf.Data) / channels
	blockSize := len(p.planar[0])
	for start := 0; start < frames; start += blockSize {
		n := min(blockSize, frames-start)
		chunk := buf.Data[start*channels : (start+n)*channels]

		views := p.views[:channels]
		for ch := range channels {
			view := p.planar[ch][:n]
			for i := range n {
				view[i] = F(chunk[i*channels+ch])
			}
			views[ch] = view
		}

		if err := p.Process(views); err != nil {
			return err
		}

		for ch, view := range views {
			for i, v := range view {
				chunk[i*channels+ch] = float64(v)
			}
		}
	}

	return nil
}

// Params returns the parameter store the processor reads from.
func (p *Processor[F]) Params() *Params {
	return p.params
}

// Config returns a copy of the active configuration.
func (p *Processor[F]) Config() Config {
	return p.config
}

// Latency returns the combined group delay of both stages in samples.
func (p *Processor[F]) Latency() int {
	return p.pipeline.Latency()
}

// TailLengthSeconds returns how long output keeps ringing after the input
// falls silent: the length of the cascaded impulse response minus one.
func (p *Processor[F]) TailLengthSeconds() float64 {
	return float64(tailStages*(p.pipeline.Order()-1)) / p.config.SampleRate
}

// Taps returns a copy of the installed taps of the given stage.
func (p *Processor[F]) Taps(resp Response) []float64 {
	return p.pipeline.Taps(resp)
}

// Info returns information about the processor.
func (p *Processor[F]) Info() Info {
	return Info{
		Algorithm:    "windowed-sinc FIR (Hamming), low-pass then high-pass",
		FilterLength: p.pipeline.Order(),
		Stages:       tailStages,
		Latency:      p.Latency(),
		MemoryUsage:  p.pipeline.MemoryUsage(),
		SIMDType:     cpu.Info(),
	}
}

// SupportsLayout reports whether an input/output channel layout can be
// processed: mono or stereo, with matching input and output counts.
func SupportsLayout(inputChannels, outputChannels int) bool {
	if outputChannels != monoChannels && outputChannels != stereoChannels {
		return false
	}
	return inputChannels == outputChannels
}

// ClearExtraChannels silences every channel of buffer at index
// inputChannels or above. Hosts that hand over more output than input
// channels leave garbage in the extra ones.
func ClearExtraChannels[F Float](buffer [][]F, inputChannels int) {
	for ch := max(inputChannels, 0); ch < len(buffer); ch++ {
		clear(buffer[ch])
	}
}
