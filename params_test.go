package eq

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParams_Defaults(t *testing.T) {
	ps := NewParams()

	assert.Equal(t, LowpassCutoffID, ps.Lowpass.ID())
	assert.Equal(t, "Low Pass Cutoff Frequency", ps.Lowpass.Name())
	assert.InDelta(t, DefaultLowpassCutoffHz, ps.Lowpass.Get(), 0)
	assert.InDelta(t, DefaultLowpassCutoffHz, ps.Lowpass.Default(), 0)

	assert.Equal(t, HighpassCutoffID, ps.Highpass.ID())
	assert.Equal(t, "High Pass Cutoff Frequency", ps.Highpass.Name())
	assert.InDelta(t, DefaultHighpassCutoffHz, ps.Highpass.Get(), 0)

	lo, hi := ps.Highpass.Range()
	assert.InDelta(t, MinCutoffHz, lo, 0)
	assert.InDelta(t, MaxCutoffHz, hi, 0)
}

func TestParameter_SetConstrains(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"in_range", 8000, 8000},
		{"snaps_down", 1234.4, 1234},
		{"snaps_up", 1234.6, 1235},
		{"below_min", 1, MinCutoffHz},
		{"negative", -500, MinCutoffHz},
		{"above_max", 30000, MaxCutoffHz},
		{"nan", math.NaN(), MinCutoffHz},
		{"pos_inf", math.Inf(1), MaxCutoffHz},
		{"neg_inf", math.Inf(-1), MinCutoffHz},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParams().Lowpass
			p.Set(tt.in)
			assert.InDelta(t, tt.want, p.Get(), 0)
		})
	}
}

func TestParameter_Normalized(t *testing.T) {
	p := NewParams().Lowpass

	p.Set(MinCutoffHz)
	assert.InDelta(t, 0.0, p.Normalized(), 1e-12)

	p.Set(MaxCutoffHz)
	assert.InDelta(t, 1.0, p.Normalized(), 1e-12)

	// Skew 0.5: the quarter point of the plain range lands mid-travel
	p.SetNormalized(0.5)
	assert.InDelta(t, MinCutoffHz+(MaxCutoffHz-MinCutoffHz)*0.25, p.Get(), 1)

	p.SetNormalized(-1)
	assert.InDelta(t, MinCutoffHz, p.Get(), 0)
	p.SetNormalized(2)
	assert.InDelta(t, MaxCutoffHz, p.Get(), 0)
}

func TestParameter_NormalizedRoundTrip(t *testing.T) {
	p := NewParams().Highpass

	for _, hz := range []float64{10, 100, 1000, 8000, 19999} {
		p.Set(hz)
		p.SetNormalized(p.Normalized())
		assert.InDelta(t, hz, p.Get(), 0, "round trip of %g Hz", hz)
	}
}

func TestParameter_FormatParse(t *testing.T) {
	p := NewParams().Lowpass
	p.Set(8000)
	assert.Equal(t, "8000 Hz", p.Format())
	assert.Equal(t, "Low Pass Cutoff Frequency: 8000 Hz", p.String())

	require.NoError(t, p.Parse("1234.4 Hz"))
	assert.InDelta(t, 1234.0, p.Get(), 0)

	require.NoError(t, p.Parse("500"))
	assert.InDelta(t, 500.0, p.Get(), 0)

	require.Error(t, p.Parse("loud"))
	assert.InDelta(t, 500.0, p.Get(), 0)
}

func TestParams_ByIDAndReset(t *testing.T) {
	ps := NewParams()

	lp, ok := ps.ByID(LowpassCutoffID)
	require.True(t, ok)
	assert.Same(t, ps.Lowpass, lp)

	hp, ok := ps.ByID(HighpassCutoffID)
	require.True(t, ok)
	assert.Same(t, ps.Highpass, hp)

	_, ok = ps.ByID("gain")
	assert.False(t, ok)

	assert.Len(t, ps.All(), 2)

	ps.Lowpass.Set(100)
	ps.Highpass.Set(5000)
	ps.Reset()
	assert.InDelta(t, DefaultLowpassCutoffHz, ps.Lowpass.Get(), 0)
	assert.InDelta(t, DefaultHighpassCutoffHz, ps.Highpass.Get(), 0)
}

func TestParameter_ConcurrentAccess(t *testing.T) {
	p := NewParams().Lowpass

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for i := range 1000 {
				p.Set(float64(100 + seed*1000 + i))
			}
		}(w)
	}

	for range 1000 {
		v := p.Get()
		assert.GreaterOrEqual(t, v, MinCutoffHz)
		assert.LessOrEqual(t, v, MaxCutoffHz)
	}
	wg.Wait()
}
