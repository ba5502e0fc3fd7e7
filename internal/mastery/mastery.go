package mastery

// DefaultAlpha is the smoothing factor used when settings carry no override.
// Higher alpha makes recent performance dominate faster.
const DefaultAlpha = 0.15

// Update returns the new mastery estimate after one attempt, using an
// exponentially weighted moving average toward 1 (correct) or 0 (incorrect).
// Inputs are assumed valid: current in [0,1] and alpha in (0,1).
func Update(current float64, isCorrect bool, alpha float64) float64 {
	var target float64
	if isCorrect {
		target = 1.0
	}
	return alpha*target + (1-alpha)*current
}

// SeedForUnseen is a reasonable starting mastery for a question that has
// never been attempted.
func SeedForUnseen() float64 {
	return 0.3
}
