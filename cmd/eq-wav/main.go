// Command eq-wav filters WAV audio files through the low-pass/high-pass
// equalizer.
//
// Usage:
//
//	eq-wav -lp 8000 -hp 200 input.wav output.wav
//	eq-wav -lp 3400 -hp 300 -fast speech.wav telephone.wav   # float32 precision
//	eq-wav -lp 1000 -normalize -tail input.wav output.wav    # unity DC gain, keep ring-out
//	eq-wav -state preset.bin input.wav output.wav             # cutoffs from a saved state
//
// Output keeps the input's sample rate, channel count and bit depth.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	eq "github.com/tphakala/go-audio-eq"
)

const (
	// Frames per processing block
	defaultBlockSize = 4096

	// Channel count constants for fast paths
	monoChannels   = 1
	stereoChannels = 2

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt16         = 32767.0
	maxInt24         = 8388607.0
	maxInt32         = 2147483647.0
	progressInterval = 10 // Print progress every N%

	// CLI defaults
	minRequiredArgs = 2
	percentScale    = 100

	// WAV audio format tag for integer PCM
	wavFormatPCM = 1
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	lowpassHz  float64
	highpassHz float64
	blockSize  int
	fast       bool
	normalize  bool
	tail       bool
	statePath  string
	saveState  string
	verbose    bool
}

func run() error {
	var opts options
	flag.Float64Var(&opts.lowpassHz, "lp", eq.DefaultLowpassCutoffHz, "Low-pass cutoff in Hz (10-20000)")
	flag.Float64Var(&opts.highpassHz, "hp", eq.DefaultHighpassCutoffHz, "High-pass cutoff in Hz (10-20000)")
	flag.IntVar(&opts.blockSize, "block", defaultBlockSize, "Frames per processing block")
	flag.BoolVar(&opts.fast, "fast", false, "Use float32 precision (sufficient for 16-bit audio)")
	flag.BoolVar(&opts.normalize, "normalize", false, "Scale the low-pass stage to unity DC gain")
	flag.BoolVar(&opts.tail, "tail", false, "Append the filter ring-out after the last input sample")
	flag.StringVar(&opts.statePath, "state", "", "Load cutoffs from a state file (overrides -lp/-hp)")
	flag.StringVar(&opts.saveState, "save-state", "", "Write the cutoffs used to a state file")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -lp 8000 -hp 200 input.wav output.wav   # Band-limit to 200 Hz-8 kHz\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -hp 80 vocals.wav vocals_hp.wav           # Remove rumble\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	if opts.blockSize < 1 {
		return fmt.Errorf("block size must be at least 1, got %d", opts.blockSize)
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	inputPath := args[0]
	outputPath := args[1]

	params, err := loadParams(&opts)
	if err != nil {
		return err
	}

	if opts.verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("%s", params.Lowpass)
		log.Printf("%s", params.Highpass)
		if opts.fast {
			log.Printf("Precision: float32 (fast mode)")
		} else {
			log.Printf("Precision: float64 (high precision)")
		}
	}

	start := time.Now()
	var stats *filterStats
	if opts.fast {
		stats, err = filterWAV[float32](inputPath, outputPath, params, &opts)
	} else {
		stats, err = filterWAV[float64](inputPath, outputPath, params, &opts)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if opts.saveState != "" {
		if err := saveParams(opts.saveState, params); err != nil {
			return err
		}
	}

	fmt.Printf("Filtered %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  Low-pass %.0f Hz, high-pass %.0f Hz\n", params.Lowpass.Get(), params.Highpass.Get())
	fmt.Printf("  %d Hz, %d channels, %d-bit\n", stats.sampleRate, stats.channels, stats.bitDepth)
	fmt.Printf("  %d frames in -> %d frames out (latency %d)\n", stats.inputFrames, stats.outputFrames, stats.latency)
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(),
		float64(stats.inputFrames)/float64(stats.sampleRate)/elapsed.Seconds())

	return nil
}
