package pipeline

const (
	// sentinelCutoff marks the cache as empty; no valid cutoff or sample
	// rate is negative, so the first update always designs.
	sentinelCutoff = -1.0

	unityGain = 1.0

	bytesPerFloat64 = 8
)
