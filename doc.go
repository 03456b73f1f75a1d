// Package eq provides a two-stage FIR equalizer in pure Go: a low-pass
// filter in series with a high-pass filter, each driven by an adjustable
// cutoff frequency.
//
// Both stages are 21-tap windowed-sinc designs (Hamming window). The
// coefficients are recomputed only when a cutoff, or the sample rate,
// actually changes, and the new taps are swapped in without clearing
// filter history or allocating.
//
// # Features
//
//   - Low-pass and high-pass windowed-sinc FIR design
//   - Change-gated coefficient updates driven by lock-free parameters
//   - Allocation-free block processing on the audio goroutine
//   - float32 and float64 processing from a single generic codebase
//   - Optional SIMD acceleration (AVX2/SSE/NEON) via github.com/tphakala/simd
//   - Planar, interleaved and go-audio buffer input
//   - Compact binary state for saving and restoring cutoffs
//
// # Quick Start
//
// For simple one-shot filtering:
//
//	output, err := eq.FilterMono(input, 48000, 8000, 200)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For streaming with a reusable processor:
//
//	p, err := eq.New[float32](&eq.Config{
//	    SampleRate:   48000,
//	    MaxBlockSize: 512,
//	    Channels:     2,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p.Params().Lowpass.Set(8000)
//	p.Params().Highpass.Set(200)
//
//	for block := range blocks {
//	    if err := p.Process(block); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Parameters
//
// Each cutoff spans [MinCutoffHz, MaxCutoffHz] in 1 Hz steps. The defaults
// (low-pass 20 kHz, high-pass 10 Hz) leave the signal essentially
// unfiltered. [Parameter.SetNormalized] maps host automation in [0, 1]
// through a 0.5 skew so that the lower octaves get more of the travel.
//
// Cutoffs above the Nyquist frequency are clamped just below it when the
// coefficients are designed.
//
// # Response
//
// The filters are not normalized: the cutoff sits near the -6 dB point and
// low cutoffs lose some passband gain. Set [Config.NormalizeDCGain] to scale
// the low-pass stage to unity gain at DC instead.
//
// Latency is 20 samples (10 per stage).
//
// # Thread Safety
//
// [Processor.Process] and its variants must be called from one goroutine at
// a time. Parameters may be set concurrently from any goroutine; the audio
// goroutine picks up new values on the next block. [Processor.Prepare] must
// not run concurrently with processing.
package eq
