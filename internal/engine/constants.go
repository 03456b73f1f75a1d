package engine

const (
	// Latency calculation divisor (half the filter length for symmetric FIR).
	latencyDivisor = 2

	// Byte sizes for float types.
	bytesPerFloat32 = 4
	bytesPerFloat64 = 8
)
