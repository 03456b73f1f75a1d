package filter

import "math"

// HammingWindow generates a Hamming window of the specified length:
//
//	w[n] = 0.54 − 0.46·cos(2πn/(N−1))
//
// The window is symmetric: w[i] = w[length-1-i]. For odd lengths the
// center value is exactly 1.0.
func HammingWindow(length int) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)
	for n := range length {
		window[n] = hammingAt(n, length)
	}
	return window
}

// hammingAt returns the n-th Hamming coefficient for a window of length.
func hammingAt(n, length int) float64 {
	if length == 1 {
		return 1.0
	}
	return hammingAlpha - hammingBeta*math.Cos(2*math.Pi*float64(n)/float64(length-1))
}
