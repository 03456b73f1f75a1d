// Package filter provides windowed-sinc FIR design for the equalizer's
// low-pass and high-pass stages.
package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-audio-eq/internal/mathutil"
	"github.com/tphakala/simd/f64"
)

// Response selects the filter response produced by the designer.
type Response int

const (
	// Lowpass passes frequencies below the cutoff.
	Lowpass Response = iota

	// Highpass passes frequencies above the cutoff. It is the spectral
	// inversion of the low-pass design at the same cutoff.
	Highpass
)

// String returns the response name.
func (r Response) String() string {
	switch r {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	default:
		return fmt.Sprintf("Response(%d)", int(r))
	}
}

// Common errors returned by the designer.
var (
	// ErrInvalidOrder indicates an even, too short or too long filter order.
	ErrInvalidOrder = errors.New("invalid filter order")

	// ErrInvalidSampleRate indicates a non-finite or too low sample rate.
	ErrInvalidSampleRate = errors.New("invalid sample rate")

	// ErrInvalidResponse indicates an unknown Response value.
	ErrInvalidResponse = errors.New("invalid filter response")
)

// ValidateOrder checks that order is odd and within [minOrder, maxOrder].
// Odd orders have a single center tap, which the design formula relies on.
func ValidateOrder(order int) error {
	if order < minOrder || order > maxOrder {
		return fmt.Errorf("%w: %d taps (must be %d-%d)", ErrInvalidOrder, order, minOrder, maxOrder)
	}
	if order%2 == 0 {
		return fmt.Errorf("%w: %d taps (must be odd)", ErrInvalidOrder, order)
	}
	return nil
}

// ValidateSampleRate checks that sampleRateHz is finite and at least minSampleRate.
func ValidateSampleRate(sampleRateHz float64) error {
	if !mathutil.IsFinite(sampleRateHz) || sampleRateHz < minSampleRate {
		return fmt.Errorf("%w: %v Hz", ErrInvalidSampleRate, sampleRateHz)
	}
	return nil
}

// ClampCutoff limits cutoffHz to [ε, fs/2 − ε] so that the normalized
// cutoff never reaches DC or aliases past Nyquist. NaN maps to ε.
func ClampCutoff(cutoffHz, sampleRateHz float64) float64 {
	return mathutil.Clamp(cutoffHz, cutoffGuardHz, mathutil.Nyquist(sampleRateHz)-cutoffGuardHz)
}

// Design returns a new Hamming-windowed sinc FIR tap vector of length order.
//
// The ideal impulse response is sampled at order points around the center
// tap c = (order-1)/2 with ω = 2π·cutoff/fs:
//
//	lowpass:  h[c] = ω/π,     h[n] =  sin(ω(n−c)) / (π(n−c))
//	highpass: h[c] = 1 − ω/π, h[n] = −sin(ω(n−c)) / (π(n−c))
//
// and multiplied by the Hamming window. The taps are not normalized, so the
// low-pass DC gain is whatever the windowed sinc sums to (see NormalizeDCGain).
func Design(resp Response, cutoffHz, sampleRateHz float64, order int) ([]float64, error) {
	if err := ValidateOrder(order); err != nil {
		return nil, err
	}

	taps := make([]float64, order)
	if err := DesignInto(taps, resp, cutoffHz, sampleRateHz); err != nil {
		return nil, err
	}
	return taps, nil
}

// DesignInto is Design writing into dst, whose length is the filter order.
// It does not allocate and is safe to call from the audio goroutine.
func DesignInto(dst []float64, resp Response, cutoffHz, sampleRateHz float64) error {
	order := len(dst)
	if err := ValidateOrder(order); err != nil {
		return err
	}
	if err := ValidateSampleRate(sampleRateHz); err != nil {
		return err
	}
	if resp != Lowpass && resp != Highpass {
		return fmt.Errorf("%w: %d", ErrInvalidResponse, int(resp))
	}

	omega := mathutil.NormalizedAngular(ClampCutoff(cutoffHz, sampleRateHz), sampleRateHz)
	center := (order - 1) / 2

	for n := range order {
		var h float64
		if n == center {
			// sin(ωx)/(πx) → ω/π as x → 0
			h = omega / math.Pi
			if resp == Highpass {
				h = 1.0 - h
			}
		} else {
			x := float64(n - center)
			h = math.Sin(omega*x) / (math.Pi * x)
			if resp == Highpass {
				h = -h
			}
		}

		dst[n] = h * hammingAt(n, order)
	}

	return nil
}

// NormalizeDCGain scales taps in place so that they sum to gain.
// Sums too close to zero (high-pass designs) are left untouched.
//
// This is an opt-in deviation: the default designs are not normalized.
func NormalizeDCGain(taps []float64, gain float64) {
	sum := f64.Sum(taps)
	if math.Abs(sum) > sumZeroThreshold {
		f64.Scale(taps, taps, gain/sum)
	}
}

// GroupDelay returns the constant group delay of a linear-phase filter of
// the given order, in samples.
func GroupDelay(order int) int {
	return (order - 1) / halfDivisor
}
