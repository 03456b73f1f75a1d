package filter

const (
	// DefaultOrder is the fixed tap count of both equalizer stages.
	DefaultOrder = 21

	// Filter order bounds
	minOrder = 3
	maxOrder = 8191

	// Lowest accepted sample rate in Hz
	minSampleRate = 1.0

	// Distance kept between the cutoff and both DC and Nyquist, in Hz
	cutoffGuardHz = 0.01

	// Sums below this are treated as zero when normalizing
	sumZeroThreshold = 1e-10

	halfDivisor = 2
)

// Hamming window coefficients
const (
	hammingAlpha = 0.54
	hammingBeta  = 0.46
)

// Frequency response defaults
const (
	defaultResponsePoints = 512
)
