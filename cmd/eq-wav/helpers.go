package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	eq "github.com/tphakala/go-audio-eq"
)

// filterStats summarizes one filtered file.
type filterStats struct {
	sampleRate   int
	channels     int
	bitDepth     int
	latency      int
	inputFrames  int64
	outputFrames int64
}

// loadParams builds the parameter store from flags, or from a state file
// when one is given.
func loadParams(opts *options) (*eq.Params, error) {
	params := eq.NewParams()
	params.Lowpass.Set(opts.lowpassHz)
	params.Highpass.Set(opts.highpassHz)

	if opts.statePath == "" {
		return params, nil
	}

	f, err := os.Open(opts.statePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open state file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := params.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return params, nil
}

// saveParams writes the cutoffs in params to path.
func saveParams(path string, params *eq.Params) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create state file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	if _, err := params.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file        *os.File
	decoder     *wav.Decoder
	rate        int
	channels    int
	bitDepth    int
	totalFrames int64
	format      *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)

	if decoder.WavAudioFormat != wavFormatPCM {
		_ = inputFile.Close()
		return nil, fmt.Errorf("unsupported WAV audio format %d (integer PCM only)", decoder.WavAudioFormat)
	}
	if getMaxValue(bitDepth) == 0 {
		_ = inputFile.Close()
		return nil, fmt.Errorf("unsupported bit depth %d (16, 24 or 32 only)", bitDepth)
	}

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", format.SampleRate, format.NumChannels, bitDepth)
	}

	// Get total duration for progress reporting
	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}
	totalFrames := int64(duration.Seconds() * float64(format.SampleRate))

	return &wavInputInfo{
		file:        inputFile,
		decoder:     decoder,
		rate:        format.SampleRate,
		channels:    format.NumChannels,
		bitDepth:    bitDepth,
		totalFrames: totalFrames,
		format:      format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// wavOutputWriter wraps the output file and its go-audio encoder.
type wavOutputWriter struct {
	file    *os.File
	encoder *wav.Encoder
}

// createWAVOutput creates the output file and encoder.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutputWriter{
		file:    outputFile,
		encoder: wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, wavFormatPCM),
	}, nil
}

// Write encodes interleaved samples.
func (w *wavOutputWriter) Write(buf *audio.IntBuffer) error {
	return w.encoder.Write(buf)
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// filterBuffers holds all preallocated buffers for one file.
type filterBuffers[F eq.Float] struct {
	intBuffer   *audio.IntBuffer
	outBuffer   *audio.IntBuffer
	channelBufs [][]F
	views       [][]F
	invMaxVal   float64
	maxVal      float64
}

// newFilterBuffers preallocates processing buffers for blockSize frames.
func newFilterBuffers[F eq.Float](channels, blockSize, bitDepth int, format *audio.Format) *filterBuffers[F] {
	channelBufs := make([][]F, channels)
	for ch := range channels {
		channelBufs[ch] = make([]F, blockSize)
	}

	maxVal := getMaxValue(bitDepth)

	return &filterBuffers[F]{
		intBuffer: &audio.IntBuffer{
			Data:           make([]int, blockSize*channels),
			Format:         format,
			SourceBitDepth: bitDepth,
		},
		outBuffer: &audio.IntBuffer{
			Data:           make([]int, blockSize*channels),
			Format:         format,
			SourceBitDepth: bitDepth,
		},
		channelBufs: channelBufs,
		views:       make([][]F, channels),
		invMaxVal:   1.0 / maxVal,
		maxVal:      maxVal,
	}
}

// filterFrames runs the first frames samples of every channel buffer through
// p and stores the interleaved result in outBuffer.
func (b *filterBuffers[F]) filterFrames(p *eq.Processor[F], frames int) error {
	for ch, buf := range b.channelBufs {
		b.views[ch] = buf[:frames]
	}

	if err := p.Process(b.views); err != nil {
		return err
	}

	n := interleaveInto(b.views, b.outBuffer.Data[:cap(b.outBuffer.Data)], b.maxVal)
	b.outBuffer.Data = b.outBuffer.Data[:n]
	return nil
}

// getMaxValue returns the maximum sample value for the given bit depth, or
// zero when the depth is unsupported.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return 0
	}
}

// deinterleaveInto converts interleaved int samples into preallocated per-channel buffers.
func deinterleaveInto[F eq.Float](data []int, channelBufs [][]F, numChannels, frames int, invMaxVal float64) {
	// Fast path for mono
	if numChannels == monoChannels {
		buf := channelBufs[0]
		for i := range frames {
			buf[i] = F(float64(data[i]) * invMaxVal)
		}
		return
	}

	// Fast path for stereo
	if numChannels == stereoChannels {
		buf0, buf1 := channelBufs[0], channelBufs[1]
		for i := range frames {
			idx := i * stereoChannels
			buf0[i] = F(float64(data[idx]) * invMaxVal)
			buf1[i] = F(float64(data[idx+1]) * invMaxVal)
		}
		return
	}

	for i := range frames {
		base := i * numChannels
		for ch := range numChannels {
			channelBufs[ch][i] = F(float64(data[base+ch]) * invMaxVal)
		}
	}
}

// interleaveInto converts per-channel float slices into a preallocated int
// buffer, clamping to full scale. Returns the number of elements written,
// or zero if dst is too small.
func interleaveInto[F eq.Float](channels [][]F, dst []int, maxVal float64) int {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return 0
	}

	numChannels := len(channels)
	frames := len(channels[0])
	totalLen := frames * numChannels
	if len(dst) < totalLen {
		return 0
	}

	for i := range frames {
		base := i * numChannels
		for ch := range numChannels {
			sample := max(-1.0, min(1.0, float64(channels[ch][i])))
			dst[base+ch] = int(math.Round(sample * maxVal))
		}
	}

	return totalLen
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalFrames  int64
	lastProgress int
	verbose      bool
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(totalFrames int64, verbose bool) *progressTracker {
	return &progressTracker{
		totalFrames: totalFrames,
		verbose:     verbose,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentFrames int64) {
	if !p.verbose || p.totalFrames == 0 {
		return
	}

	progress := int(float64(currentFrames) / float64(p.totalFrames) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}

// filterWAV streams inputPath through the equalizer into outputPath.
func filterWAV[F eq.Float](inputPath, outputPath string, params *eq.Params, opts *options) (stats *filterStats, err error) {
	input, err := openWAVInput(inputPath, opts.verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	p, err := eq.New[F](&eq.Config{
		SampleRate:      float64(input.rate),
		MaxBlockSize:    opts.blockSize,
		Channels:        input.channels,
		NormalizeDCGain: opts.normalize,
		Params:          params,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create equalizer: %w", err)
	}

	output, err := createWAVOutput(outputPath, input.rate, input.bitDepth, input.channels)
	if err != nil {
		return nil, err
	}
	// Close output, capturing close errors on success path (the encoder
	// rewrites the WAV header on close)
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	buffers := newFilterBuffers[F](input.channels, opts.blockSize, input.bitDepth, input.format)
	stats = &filterStats{
		sampleRate: input.rate,
		channels:   input.channels,
		bitDepth:   input.bitDepth,
		latency:    p.Latency(),
	}
	progress := newProgressTracker(input.totalFrames, opts.verbose)

	for {
		n, err := input.decoder.PCMBuffer(buffers.intBuffer)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}

		// n counts interleaved samples
		frames := n / input.channels
		if frames == 0 {
			break
		}

		deinterleaveInto(buffers.intBuffer.Data, buffers.channelBufs, input.channels, frames, buffers.invMaxVal)
		if err := buffers.filterFrames(p, frames); err != nil {
			return nil, fmt.Errorf("failed to filter audio: %w", err)
		}
		if err := output.Write(buffers.outBuffer); err != nil {
			return nil, fmt.Errorf("failed to write audio data: %w", err)
		}

		stats.inputFrames += int64(frames)
		stats.outputFrames += int64(frames)
		progress.reportIfNeeded(stats.inputFrames)
	}

	if opts.tail {
		tailFrames := int(math.Round(p.TailLengthSeconds() * float64(input.rate)))
		for tailFrames > 0 {
			frames := min(tailFrames, opts.blockSize)
			for _, buf := range buffers.channelBufs {
				clear(buf[:frames])
			}
			if err := buffers.filterFrames(p, frames); err != nil {
				return nil, fmt.Errorf("failed to filter tail: %w", err)
			}
			if err := output.Write(buffers.outBuffer); err != nil {
				return nil, fmt.Errorf("failed to write tail: %w", err)
			}
			stats.outputFrames += int64(frames)
			tailFrames -= frames
		}
	}

	return stats, nil
}
