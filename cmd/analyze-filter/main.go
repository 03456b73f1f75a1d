// Command analyze-filter prints the designed taps and magnitude response of
// the equalizer's low-pass and high-pass stages.
//
// Usage:
//
//	analyze-filter -lp 8000 -hp 200 -rate 48000
//	analyze-filter -lp 1000 -normalize
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/tphakala/go-audio-eq/internal/filter"
	"github.com/tphakala/go-audio-eq/internal/mathutil"
	"gonum.org/v1/gonum/floats"
)

const (
	defaultRate       = 48000.0
	defaultLowpassHz  = 8000.0
	defaultHighpassHz = 200.0
	defaultPoints     = 512

	// Magnitude levels searched for in the response
	halfPowerDB     = -3.0
	halfAmplitudeDB = -6.0
)

// Probe frequencies for the response table
var probeFrequencies = []float64{20, 50, 100, 200, 500, 1000, 2000, 4000, 8000, 12000, 16000, 20000}

func main() {
	lowpassHz := flag.Float64("lp", defaultLowpassHz, "Low-pass cutoff in Hz")
	highpassHz := flag.Float64("hp", defaultHighpassHz, "High-pass cutoff in Hz")
	rate := flag.Float64("rate", defaultRate, "Sample rate in Hz")
	points := flag.Int("points", defaultPoints, "Frequency response resolution")
	normalize := flag.Bool("normalize", false, "Scale the low-pass taps to unity DC gain")
	flag.Parse()

	lp, err := filter.Design(filter.Lowpass, *lowpassHz, *rate, filter.DefaultOrder)
	if err != nil {
		log.Fatal(err)
	}
	if *normalize {
		filter.NormalizeDCGain(lp, 1.0)
	}

	hp, err := filter.Design(filter.Highpass, *highpassHz, *rate, filter.DefaultOrder)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== Equalizer Filter Analysis ===")
	fmt.Printf("Sample rate: %.0f Hz, order: %d, latency: %d samples\n\n",
		*rate, filter.DefaultOrder, 2*filter.GroupDelay(filter.DefaultOrder))

	printStage("Low-pass", lp, filter.ClampCutoff(*lowpassHz, *rate), *rate, *points)
	printStage("High-pass", hp, filter.ClampCutoff(*highpassHz, *rate), *rate, *points)

	cascade := filter.Cascade(lp, hp)
	fmt.Println("=== Series response (low-pass then high-pass) ===")
	printProbes(cascade, *rate)
}

func printStage(name string, taps []float64, cutoffHz, rate float64, points int) {
	fmt.Printf("=== %s, cutoff %.2f Hz ===\n", name, cutoffHz)

	fmt.Println("Taps:")
	for i, h := range taps {
		fmt.Printf("  h[%2d] = %+.10f\n", i, h)
	}

	dc := floats.Sum(taps)
	fmt.Printf("DC gain: %.6f (%.2f dB)\n", dc, mathutil.AmplitudeToDB(dc))
	fmt.Printf("Gain at cutoff: %.2f dB\n", filter.MagnitudeDB(filter.MagnitudeAt(taps, cutoffHz, rate)))

	resp := filter.ComputeFrequencyResponse(taps, points)
	fmt.Printf("Peak: %.2f dB\n", resp.PeakDB())
	for _, level := range []float64{halfPowerDB, halfAmplitudeDB} {
		if f, ok := crossing(resp, level); ok {
			fmt.Printf("%+.0f dB crossing: %.1f Hz\n", level, f*rate)
		}
	}

	printProbes(taps, rate)
	fmt.Println()
}

func printProbes(taps []float64, rate float64) {
	nyquist := mathutil.Nyquist(rate)
	for _, f := range probeFrequencies {
		if f >= nyquist {
			continue
		}
		fmt.Printf("  %6.0f Hz: %7.2f dB\n", f, filter.MagnitudeDB(filter.MagnitudeAt(taps, f, rate)))
	}
}

// crossing returns the first normalized frequency (cycles per sample) where
// the response passes through level dB relative to its peak.
func crossing(resp filter.FilterResponse, level float64) (float64, bool) {
	peak := resp.PeakDB()
	for i := 1; i < len(resp.Magnitude); i++ {
		a := filter.MagnitudeDB(resp.Magnitude[i-1]) - peak
		b := filter.MagnitudeDB(resp.Magnitude[i]) - peak
		if (a-level)*(b-level) <= 0 && a != b {
			t := (level - a) / (b - a)
			return resp.Frequencies[i-1] + t*(resp.Frequencies[i]-resp.Frequencies[i-1]), true
		}
	}
	return 0, false
}
