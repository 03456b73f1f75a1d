package eq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-eq/internal/filter"
	"github.com/tphakala/go-audio-eq/internal/testutil"
)

func TestNewMonoStereo(t *testing.T) {
	mono, err := NewMono[float32](RateCD)
	require.NoError(t, err)
	assert.Equal(t, 1, mono.Config().Channels)

	stereo, err := NewStereo[float64](RateCD)
	require.NoError(t, err)
	assert.Equal(t, 2, stereo.Config().Channels)
	assert.InDelta(t, float64(RateCD), stereo.Config().SampleRate, 0)

	_, err = NewMono[float32](0)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestFilterMono_ImpulseResponse(t *testing.T) {
	lp, err := filter.Design(filter.Lowpass, 8000, RateDAT, filter.DefaultOrder)
	require.NoError(t, err)
	hp, err := filter.Design(filter.Highpass, 200, RateDAT, filter.DefaultOrder)
	require.NoError(t, err)
	want := filter.Cascade(lp, hp)

	input := testutil.Impulse(len(want))
	output, err := FilterMono(input, RateDAT, 8000, 200)
	require.NoError(t, err)

	testutil.AssertSlicesClose(t, want, output, 1e-12)
	assert.InDelta(t, 1.0, input[0], 0, "input must not be modified")
}

func TestFilterMono_Empty(t *testing.T) {
	output, err := FilterMono([]float32{}, RateDAT, 8000, 200)
	require.NoError(t, err)
	assert.Empty(t, output)
}

func TestFilterStereo(t *testing.T) {
	left := testutil.ToFloat32(testutil.Noise(100, 1))
	right := testutil.ToFloat32(testutil.Noise(80, 2))

	leftOut, rightOut, err := FilterStereo(left, right, RateDAT, 4000, 100)
	require.NoError(t, err)
	assert.Len(t, leftOut, 80)
	assert.Len(t, rightOut, 80)

	monoLeft, err := FilterMono(left[:80], RateDAT, 4000, 100)
	require.NoError(t, err)
	assert.Equal(t, monoLeft, leftOut)
}

func TestInterleaveRoundTrip(t *testing.T) {
	left := []float32{1, 2, 3}
	right := []float32{4, 5, 6, 7}

	interleaved := InterleaveToStereo(left, right)
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, interleaved)

	l, r := DeinterleaveFromStereo(interleaved)
	assert.Equal(t, left, l)
	assert.Equal(t, right[:3], r)
}
