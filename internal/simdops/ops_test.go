package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor_ReturnsMatchingOps(t *testing.T) {
	require.NotNil(t, For[float32]())
	require.NotNil(t, For[float64]())
	assert.Same(t, &ops64, For[float64]())
	assert.Same(t, &ops32, For[float32]())
}

func TestConvolveValid_MatchesDirect(t *testing.T) {
	signal := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	kernel := []float64{0.5, 0.25, -1}

	dst := make([]float64, len(signal)-len(kernel)+1)
	For[float64]().ConvolveValid(dst, signal, kernel)

	for i := range dst {
		var want float64
		for k := range kernel {
			want += signal[i+k] * kernel[k]
		}
		assert.InDelta(t, want, dst[i], 1e-12, "dst[%d]", i)
	}
}

func TestDotProductAndSum_Float32(t *testing.T) {
	ops := For[float32]()
	a := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}
	b := []float32{1, 1, 1, 1, 1, 1, 1, 1, 1}

	assert.InDelta(t, 45.0, float64(ops.DotProductUnsafe(a, b)), 1e-5)
	assert.InDelta(t, 45.0, float64(ops.Sum(a)), 1e-5)

	scaled := make([]float32, len(a))
	ops.Scale(scaled, a, 2)
	assert.InDelta(t, 18.0, float64(scaled[8]), 1e-6)
}

func TestFromFloat64(t *testing.T) {
	src := []float64{0.1, 0.2, 0.3}
	dst := make([]float32, 5)

	n := FromFloat64(dst, src)
	assert.Equal(t, 3, n)
	assert.InDelta(t, 0.3, float64(dst[2]), 1e-7)
	assert.Zero(t, dst[3])
}
