package frontier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestSampleProducesValidWeights(t *testing.T) {
	sampler := NewSampler(42)

	for i := 0; i < 1000; i++ {
		weights, err := sampler.Sample(5)
		require.NoError(t, err)
		require.Len(t, weights, 5)

		for _, w := range weights {
			assert.GreaterOrEqual(t, w, 0.0)
			assert.LessOrEqual(t, w, 1.0)
		}
		assert.InDelta(t, 1.0, floats.Sum(weights), WeightTolerance)
	}
}

func TestSampleDeterministicUnderSeed(t *testing.T) {
	a := NewSampler(7)
	b := NewSampler(7)

	for i := 0; i < 100; i++ {
		wa, err := a.Sample(4)
		require.NoError(t, err)
		wb, err := b.Sample(4)
		require.NoError(t, err)
		assert.Equal(t, wa, wb)
	}
}

func TestSampleDifferentSeedsDiverge(t *testing.T) {
	wa, err := NewSampler(1).Sample(4)
	require.NoError(t, err)
	wb, err := NewSampler(2).Sample(4)
	require.NoError(t, err)
	assert.NotEqual(t, wa, wb)
}

func TestSampleSingleAsset(t *testing.T) {
	weights, err := NewSampler(42).Sample(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0}, weights)
}

func TestSampleRejectsZeroAssets(t *testing.T) {
	_, err := NewSampler(42).Sample(0)
	assert.ErrorIs(t, err, ErrInvalidWeights)
}
