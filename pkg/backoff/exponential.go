package backoff

import (
	"math"
	"math/rand"
	"time"
)

// CalculateRetryDelay calculates the retry delay using exponential backoff with jitter.
func CalculateRetryDelay(attempt int, baseRetryDelay time.Duration) time.Duration {
	if attempt <= 1 {
		return 0 // No delay for the first attempt or invalid input
	}
	if baseRetryDelay <= 0 {
		return 0
	}

	// Base delay: 2^(attempt-1) * baseDelay
	backoff := math.Pow(2, float64(attempt-1))
	baseDelayCalc := time.Duration(backoff) * baseRetryDelay

	// Jitter: +/- 50% of the base delay
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	jitterRange := float64(baseDelayCalc) * 0.5
	jitter := time.Duration(rng.Float64()*2*jitterRange - jitterRange) // [-50%, +50%]

	finalDelay := baseDelayCalc + jitter
	if finalDelay < 0 {
		finalDelay = 0
	}
	return finalDelay
}
