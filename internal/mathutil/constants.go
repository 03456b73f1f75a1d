package mathutil

import "math"

// Common division constants
const (
	halfDivisor = 2.0 // Division by 2
)

const (
	twoPi = 2 * math.Pi
)

// Decibel conversion constants
const (
	minAmplitude = 1e-10 // Avoid log(0)
	dbMultiplier = 20.0  // 20*log10 for amplitude
	dbBase       = 10.0
)
