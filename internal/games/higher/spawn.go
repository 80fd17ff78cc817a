package higher

import (
	"math"
	"math/rand"
)

// placeBatch picks x positions for up to count obstacles in [0, span).
// Each candidate is redrawn while it lies closer than minSpacing to an
// already accepted position; after attempts failures the slot is dropped,
// so a batch may come back short.
func placeBatch(rng *rand.Rand, count int, span, minSpacing float64, attempts int) []float64 {
	if span < 0 {
		span = 0
	}
	positions := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		for try := 0; try < attempts; try++ {
			x := rng.Float64() * span
			if farFromAll(x, positions, minSpacing) {
				positions = append(positions, x)
				break
			}
		}
	}
	return positions
}

func farFromAll(x float64, positions []float64, minSpacing float64) bool {
	for _, p := range positions {
		if math.Abs(x-p) < minSpacing {
			return false
		}
	}
	return true
}
