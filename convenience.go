package eq

import "slices"

// NewMono creates a single-channel processor at sampleRate with default
// cutoffs.
func NewMono[F Float](sampleRate float64) (*Processor[F], error) {
	return New[F](&Config{
		SampleRate: sampleRate,
		Channels:   monoChannels,
	})
}

// NewStereo creates a two-channel processor at sampleRate with default
// cutoffs.
func NewStereo[F Float](sampleRate float64) (*Processor[F], error) {
	return New[F](&Config{
		SampleRate: sampleRate,
		Channels:   stereoChannels,
	})
}

// FilterMono filters a whole mono signal in one call and returns a new
// slice. The input is left untouched.
//
// Example:
//
//	out, err := eq.FilterMono(samples, eq.RateDAT, 8000, 200)
func FilterMono[F Float](input []F, sampleRate, lowpassHz, highpassHz float64) ([]F, error) {
	p, err := newOneShot[F](sampleRate, monoChannels, len(input), lowpassHz, highpassHz)
	if err != nil {
		return nil, err
	}

	output := slices.Clone(input)
	if err := p.Process([][]F{output}); err != nil {
		return nil, err
	}
	return output, nil
}

// FilterStereo filters a stereo pair in one call. Both channels are
// truncated to the shorter length.
func FilterStereo[F Float](left, right []F, sampleRate, lowpassHz, highpassHz float64) (leftOut, rightOut []F, err error) {
	n := min(len(left), len(right))
	p, err := newOneShot[F](sampleRate, stereoChannels, n, lowpassHz, highpassHz)
	if err != nil {
		return nil, nil, err
	}

	leftOut = slices.Clone(left[:n])
	rightOut = slices.Clone(right[:n])
	if err := p.Process([][]F{leftOut, rightOut}); err != nil {
		return nil, nil, err
	}
	return leftOut, rightOut, nil
}

func newOneShot[F Float](sampleRate float64, channels, length int, lowpassHz, highpassHz float64) (*Processor[F], error) {
	params := NewParams()
	params.Lowpass.Set(lowpassHz)
	params.Highpass.Set(highpassHz)

	return New[F](&Config{
		SampleRate:   sampleRate,
		MaxBlockSize: min(max(length, 1), defaultMaxBlockSize),
		Channels:     channels,
		Params:       params,
	})
}

// InterleaveToStereo converts two mono channels to interleaved stereo.
// Output format: [L0, R0, L1, R1, L2, R2, ...]
func InterleaveToStereo[F Float](left, right []F) []F {
	minLen := min(len(left), len(right))
	result := make([]F, minLen*stereoChannels)
	for i := range minLen {
		result[i*stereoChannels] = left[i]
		result[i*stereoChannels+1] = right[i]
	}
	return result
}

// DeinterleaveFromStereo converts interleaved stereo to two mono channels.
// Input format: [L0, R0, L1, R1, L2, R2, ...]
func DeinterleaveFromStereo[F Float](interleaved []F) (left, right []F) {
	numSamples := len(interleaved) / stereoChannels
	left = make([]F, numSamples)
	right = make([]F, numSamples)
	for i := range numSamples {
		left[i] = interleaved[i*stereoChannels]
		right[i] = interleaved[i*stereoChannels+1]
	}
	return left, right
}
