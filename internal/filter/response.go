package filter

import (
	"math"
	"math/cmplx"

	"github.com/tphakala/go-audio-eq/internal/mathutil"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// FilterResponse holds the frequency response of a filter.
type FilterResponse struct {
	// Frequencies at which response was calculated (normalized, 0 to 0.5)
	Frequencies []float64

	// Magnitude response at each frequency (linear scale)
	Magnitude []float64

	// Phase response at each frequency (radians)
	Phase []float64
}

// ComputeFrequencyResponse evaluates the response of a FIR filter at
// numPoints evenly spaced frequencies in [0, 0.5).
//
// The taps are zero-padded to 2·numPoints and transformed with a real FFT,
// so point k sits at normalized frequency k/(2·numPoints). numPoints is
// raised if needed so the padded length covers every tap.
func ComputeFrequencyResponse(coeffs []float64, numPoints int) FilterResponse {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}
	if 2*numPoints < len(coeffs) {
		numPoints = (len(coeffs) + 1) / halfDivisor
	}

	fftSize := 2 * numPoints
	padded := make([]float64, fftSize)
	copy(padded, coeffs)

	fft := fourier.NewFFT(fftSize)
	spectrum := fft.Coefficients(nil, padded)

	response := FilterResponse{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
		Phase:       make([]float64, numPoints),
	}

	for k := range numPoints {
		response.Frequencies[k] = float64(k) / float64(fftSize)
		response.Magnitude[k] = cmplx.Abs(spectrum[k])
		response.Phase[k] = cmplx.Phase(spectrum[k])
	}

	return response
}

// PeakDB returns the largest magnitude in the response, in dB.
func (r FilterResponse) PeakDB() float64 {
	if len(r.Magnitude) == 0 {
		return MagnitudeDB(0)
	}
	return MagnitudeDB(floats.Max(r.Magnitude))
}

// MagnitudeAt evaluates |H(e^jω)| of a FIR filter at exactly freqHz using
// the discrete-time Fourier transform.
func MagnitudeAt(coeffs []float64, freqHz, sampleRateHz float64) float64 {
	omega := mathutil.NormalizedAngular(freqHz, sampleRateHz)

	var realPart, imagPart float64
	for n, h := range coeffs {
		angle := omega * float64(n)
		realPart += h * math.Cos(angle)
		imagPart -= h * math.Sin(angle)
	}

	return math.Hypot(realPart, imagPart)
}

// MagnitudeDB converts linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	return mathutil.AmplitudeToDB(magnitude)
}

// Cascade returns the impulse response of two FIR filters in series, the
// full linear convolution of a and b (length len(a)+len(b)-1).
func Cascade(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return []float64{}
	}

	out := make([]float64, len(a)+len(b)-1)
	for i, x := range a {
		for j, y := range b {
			out[i+j] += x * y
		}
	}
	return out
}
