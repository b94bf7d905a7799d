package frontier

import (
	"fmt"
	"math/rand"
)

// maxRedraws bounds the retries on an all-zero draw before the sampler
// gives up. The event has probability ~0 with a uniform source; the bound
// exists so a broken source cannot loop forever.
const maxRedraws = 8

// Sampler draws random long-only weight vectors. Each draw takes
// assetCount independent uniform [0,1) values and normalizes them by their
// sum, so every weight lies in [0,1] and the vector sums to 1. No shorting
// or leverage is modeled.
//
// The sampler owns its generator, so one estimate run is deterministic
// under a fixed seed and independent of any process-wide random state.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a sampler seeded with the given value.
func NewSampler(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Sample draws one weight vector over assetCount assets.
func (s *Sampler) Sample(assetCount int) ([]float64, error) {
	if assetCount < 1 {
		return nil, fmt.Errorf("%w: asset count must be >= 1, got %d",
			ErrInvalidWeights, assetCount)
	}

	weights := make([]float64, assetCount)
	for attempt := 0; attempt <= maxRedraws; attempt++ {
		var sum float64
		for i := range weights {
			weights[i] = s.rng.Float64()
			sum += weights[i]
		}
		if sum == 0 {
			continue
		}
		for i := range weights {
			weights[i] /= sum
		}
		return weights, nil
	}

	return nil, fmt.Errorf("%w: all-zero draw after %d attempts",
		ErrDegenerateSample, maxRedraws+1)
}
