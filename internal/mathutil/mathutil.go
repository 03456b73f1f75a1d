// Package mathutil provides small numeric helpers shared by the filter
// design and processing packages.
package mathutil

import (
	"math"
)

// Clamp limits v to [lo, hi]. NaN is mapped to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Nyquist returns the Nyquist frequency for a sample rate.
func Nyquist(sampleRate float64) float64 {
	return sampleRate / halfDivisor
}

// NormalizedAngular converts a frequency in Hz to a normalized angular
// frequency ω = 2π·f/fs in radians per sample.
func NormalizedAngular(freqHz, sampleRate float64) float64 {
	return twoPi * freqHz / sampleRate
}

// AmplitudeToDB converts a linear amplitude to decibels.
// Amplitudes below minAmplitude are floored to avoid log(0).
func AmplitudeToDB(amplitude float64) float64 {
	if amplitude < minAmplitude {
		amplitude = minAmplitude
	}
	return dbMultiplier * math.Log10(amplitude)
}

// DBToAmplitude converts decibels to a linear amplitude.
func DBToAmplitude(db float64) float64 {
	return math.Pow(dbBase, db/dbMultiplier)
}

// SnapToInterval rounds v to the nearest multiple of interval measured from
// origin. A non-positive interval returns v unchanged.
func SnapToInterval(v, origin, interval float64) float64 {
	if interval <= 0 {
		return v
	}
	return origin + math.Round((v-origin)/interval)*interval
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
