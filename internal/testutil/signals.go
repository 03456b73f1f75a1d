package testutil

import "math"

// Impulse returns a unit impulse of length n with the spike at index 0.
func Impulse(n int) []float64 {
	s := make([]float64, n)
	if n > 0 {
		s[0] = 1
	}
	return s
}

// Sine returns n samples of a sine at freqHz with the given amplitude.
func Sine(n int, freqHz, sampleRate, amplitude float64) []float64 {
	s := make([]float64, n)
	omega := 2 * math.Pi * freqHz / sampleRate
	for i := range s {
		s[i] = amplitude * math.Sin(omega*float64(i))
	}
	return s
}

// Noise returns n deterministic pseudo-random samples in [-1, 1).
func Noise(n int, seed uint32) []float64 {
	s := make([]float64, n)
	state := seed | 1
	for i := range s {
		// xorshift32
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		s[i] = float64(state)/float64(math.MaxUint32)*2 - 1
	}
	return s
}

// ToFloat32 converts a float64 slice to float32.
func ToFloat32(s []float64) []float32 {
	out := make([]float32, len(s))
	for i, v := range s {
		out[i] = float32(v)
	}
	return out
}

// ToFloat64 converts a float32 slice to float64.
func ToFloat64(s []float32) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}

// ConvolveTruncated returns the first len(signal) samples of the linear
// convolution of signal with taps, assuming zero history.
func ConvolveTruncated(signal, taps []float64) []float64 {
	out := make([]float64, len(signal))
	for n := range signal {
		var acc float64
		for k, h := range taps {
			if n-k < 0 {
				break
			}
			acc += h * signal[n-k]
		}
		out[n] = acc
	}
	return out
}

// ToneAmplitude estimates the amplitude of a sinusoid at freqHz in s by
// projecting onto sine and cosine. s should span an integer number of periods.
func ToneAmplitude(s []float64, freqHz, sampleRate float64) float64 {
	if len(s) == 0 {
		return 0
	}
	omega := 2 * math.Pi * freqHz / sampleRate
	var re, im float64
	for i, v := range s {
		re += v * math.Cos(omega*float64(i))
		im += v * math.Sin(omega*float64(i))
	}
	return 2 * math.Hypot(re, im) / float64(len(s))
}
