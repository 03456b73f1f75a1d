package filter

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-eq/internal/testutil"
)

const (
	// Test tolerances
	defaultTolerance = 1e-12
	windowTolerance  = 1e-12

	// Test sample rates
	testRate44k = 44100.0
	testRate48k = 48000.0
	testRate96k = 96000.0
)

// referenceLowpass is an independent, literal evaluation of the windowed
// sinc formula used to cross-check Design.
func referenceLowpass(cutoff, rate float64, order int) []float64 {
	wc := 2.0 * math.Pi * cutoff / rate
	c := float64(order-1) / 2.0
	out := make([]float64, order)
	for n := range order {
		if float64(n) == c {
			out[n] = wc / math.Pi
		} else {
			out[n] = math.Sin(wc*(float64(n)-c)) / (math.Pi * (float64(n) - c))
		}
		out[n] *= 0.54 - 0.46*math.Cos(2*math.Pi*float64(n)/float64(order-1))
	}
	return out
}

func TestDesign_MatchesReference(t *testing.T) {
	tests := []struct {
		cutoff float64
		rate   float64
	}{
		{8000, testRate48k},
		{1000, testRate44k},
		{200, testRate96k},
		{15000, testRate48k},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.0f@%.0f", tt.cutoff, tt.rate), func(t *testing.T) {
			taps, err := Design(Lowpass, tt.cutoff, tt.rate, DefaultOrder)
			require.NoError(t, err)
			testutil.AssertSlicesClose(t, referenceLowpass(tt.cutoff, tt.rate, DefaultOrder), taps, defaultTolerance)
		})
	}
}

// TestDesign_KnownCenterTaps checks the center tap of both responses at
// cutoff = fs/6, where ω/π = 1/3 exactly.
func TestDesign_KnownCenterTaps(t *testing.T) {
	center := DefaultOrder / 2

	lp, err := Design(Lowpass, 8000, testRate48k, DefaultOrder)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, lp[center], defaultTolerance)

	hp, err := Design(Highpass, 8000, testRate48k, DefaultOrder)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, hp[center], defaultTolerance)
}

func TestDesign_Determinism(t *testing.T) {
	for _, resp := range []Response{Lowpass, Highpass} {
		first, err := Design(resp, 3150, testRate44k, DefaultOrder)
		require.NoError(t, err)

		for range 5 {
			again, err := Design(resp, 3150, testRate44k, DefaultOrder)
			require.NoError(t, err)
			assert.Equal(t, first, again, "%s design must be bit-identical", resp)
		}
	}
}

func TestDesign_Symmetry(t *testing.T) {
	tests := []struct {
		cutoff float64
		rate   float64
	}{
		{10, testRate44k},
		{440, testRate48k},
		{8000, testRate48k},
		{12345, testRate96k},
		{20000, testRate44k},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.0f@%.0f", tt.cutoff, tt.rate), func(t *testing.T) {
			lp, err := Design(Lowpass, tt.cutoff, tt.rate, DefaultOrder)
			require.NoError(t, err)
			testutil.AssertSymmetric(t, lp, defaultTolerance)

			hp, err := Design(Highpass, tt.cutoff, tt.rate, DefaultOrder)
			require.NoError(t, err)
			testutil.AssertSymmetric(t, hp, defaultTolerance)
		})
	}
}

func TestDesign_SpectralInversion(t *testing.T) {
	window := HammingWindow(DefaultOrder)
	center := DefaultOrder / 2

	for _, cutoff := range []float64{50, 1000, 8000, 18000} {
		t.Run(fmt.Sprintf("%.0f", cutoff), func(t *testing.T) {
			lp, err := Design(Lowpass, cutoff, testRate48k, DefaultOrder)
			require.NoError(t, err)
			hp, err := Design(Highpass, cutoff, testRate48k, DefaultOrder)
			require.NoError(t, err)

			for n := range DefaultOrder {
				if n == center {
					assert.InDelta(t, window[center]-lp[center], hp[center], defaultTolerance)
					continue
				}
				assert.InDelta(t, -lp[n], hp[n], defaultTolerance, "tap %d", n)
			}
		})
	}
}

func TestDesign_FiniteAcrossSweep(t *testing.T) {
	for _, rate := range []float64{testRate44k, testRate48k, testRate96k} {
		for cutoff := 10.0; cutoff <= 20000; cutoff *= 1.07 {
			for _, resp := range []Response{Lowpass, Highpass} {
				taps, err := Design(resp, cutoff, rate, DefaultOrder)
				require.NoError(t, err)
				if !testutil.AssertNoNaNOrInf(t, taps) {
					t.Fatalf("%s at %.2f Hz / %.0f Hz produced non-finite taps", resp, cutoff, rate)
				}
			}
		}
	}
}

func TestDesign_PassbandAndStopband(t *testing.T) {
	lp, err := Design(Lowpass, 8000, testRate48k, DefaultOrder)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, MagnitudeAt(lp, 1000, testRate48k), 0.01, "passband should be near unity")
	assert.Less(t, MagnitudeDB(MagnitudeAt(lp, 16000, testRate48k)), -40.0, "stopband should be attenuated")

	hp, err := Design(Highpass, 8000, testRate48k, DefaultOrder)
	require.NoError(t, err)

	assert.Less(t, MagnitudeDB(MagnitudeAt(hp, 0, testRate48k)), -40.0, "high-pass should block DC")
	assert.InDelta(t, 1.0, MagnitudeAt(hp, 20000, testRate48k), 0.01)
}

func TestDesign_CutoffIsClamped(t *testing.T) {
	tests := []struct {
		name    string
		cutoff  float64
		equalTo float64
	}{
		{"above_nyquist", 30000, 24000},
		{"negative", -100, 0},
		{"zero", 0, 0},
		{"nan", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Design(Lowpass, tt.cutoff, testRate48k, DefaultOrder)
			require.NoError(t, err)
			testutil.AssertNoNaNOrInf(t, got)

			want, err := Design(Lowpass, tt.equalTo, testRate48k, DefaultOrder)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestClampCutoff(t *testing.T) {
	assert.InDelta(t, 1000.0, ClampCutoff(1000, testRate48k), 0)
	assert.InDelta(t, 24000-cutoffGuardHz, ClampCutoff(24000, testRate48k), 1e-9)
	assert.InDelta(t, cutoffGuardHz, ClampCutoff(0, testRate48k), 0)
	assert.Less(t, ClampCutoff(1e9, testRate44k), 22050.0)
}

func TestDesign_InvalidParameters(t *testing.T) {
	tests := []struct {
		name    string
		resp    Response
		rate    float64
		order   int
		wantErr error
	}{
		{"even_order", Lowpass, testRate48k, 20, ErrInvalidOrder},
		{"order_too_small", Lowpass, testRate48k, 1, ErrInvalidOrder},
		{"order_too_large", Lowpass, testRate48k, 10001, ErrInvalidOrder},
		{"zero_rate", Lowpass, 0, DefaultOrder, ErrInvalidSampleRate},
		{"negative_rate", Highpass, -48000, DefaultOrder, ErrInvalidSampleRate},
		{"nan_rate", Highpass, math.NaN(), DefaultOrder, ErrInvalidSampleRate},
		{"inf_rate", Lowpass, math.Inf(1), DefaultOrder, ErrInvalidSampleRate},
		{"unknown_response", Response(7), testRate48k, DefaultOrder, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			taps, err := Design(tt.resp, 1000, tt.rate, tt.order)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, taps)
		})
	}
}

func TestDesignInto_NoAllocations(t *testing.T) {
	dst := make([]float64, DefaultOrder)
	allocs := testing.AllocsPerRun(100, func() {
		_ = DesignInto(dst, Highpass, 2500, testRate48k)
	})
	assert.Zero(t, allocs, "DesignInto must not allocate")
}

func TestDesignInto_MatchesDesign(t *testing.T) {
	dst := make([]float64, DefaultOrder)
	require.NoError(t, DesignInto(dst, Highpass, 640, testRate44k))

	want, err := Design(Highpass, 640, testRate44k, DefaultOrder)
	require.NoError(t, err)
	assert.Equal(t, want, dst)
}

func TestNormalizeDCGain(t *testing.T) {
	lp, err := Design(Lowpass, 1000, testRate48k, DefaultOrder)
	require.NoError(t, err)

	// A short 1 kHz design at 48 kHz is far from unity DC gain
	assert.Less(t, sum(lp), 0.5)

	NormalizeDCGain(lp, 1.0)
	testutil.AssertDCGain(t, lp, 1.0, 1e-9)
	testutil.AssertSymmetric(t, lp, defaultTolerance)
}

func TestNormalizeDCGain_ZeroSumUntouched(t *testing.T) {
	taps := []float64{-0.5, 1.0, -0.5}
	NormalizeDCGain(taps, 1.0)
	assert.Equal(t, []float64{-0.5, 1.0, -0.5}, taps)
}

func TestGroupDelay(t *testing.T) {
	assert.Equal(t, 10, GroupDelay(DefaultOrder))
	assert.Equal(t, 1, GroupDelay(3))
}

func TestResponse_String(t *testing.T) {
	assert.Equal(t, "lowpass", Lowpass.String())
	assert.Equal(t, "highpass", Highpass.String())
	assert.Equal(t, "Response(9)", Response(9).String())
}

func sum(s []float64) float64 {
	var total float64
	for _, v := range s {
		total += v
	}
	return total
}
