package matching

import "fmt"

// Weights holds the per-dimension contribution to the overall score. The
// vector does not have to sum to 1: Combine normalizes by the weight total,
// so caller-supplied vectors stay well behaved.
type Weights struct {
	Skills     float64 `mapstructure:"skills" validate:"gte=0"`
	Experience float64 `mapstructure:"experience" validate:"gte=0"`
	Seniority  float64 `mapstructure:"seniority" validate:"gte=0"`
	Employment float64 `mapstructure:"employment" validate:"gte=0"`
	Location   float64 `mapstructure:"location" validate:"gte=0"`
}

// DefaultWeights is the standard vector: skills carry half the score.
func DefaultWeights() Weights {
	return Weights{
		Skills:     0.5,
		Experience: 0.2,
		Seniority:  0.15,
		Employment: 0.1,
		Location:   0.05,
	}
}

func (w Weights) sum() float64 {
	return w.Skills + w.Experience + w.Seniority + w.Employment + w.Location
}

// Validate rejects vectors that cannot produce a score: negative entries or
// an all-zero vector.
func (w Weights) Validate() error {
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("invalid weights: %w", err)
	}
	if w.sum() <= 0 {
		return fmt.Errorf("invalid weights: at least one weight must be positive")
	}
	return nil
}

// Combine aggregates the per-dimension sub-scores into one overall score on
// the [0,1] scale, clamped so bonus-heavy vectors can never overflow.
func (w Weights) Combine(s SubScores) float64 {
	total := w.sum()
	if total <= 0 {
		return 0.0
	}

	score := (s.Skills*w.Skills +
		s.Experience*w.Experience +
		s.Seniority*w.Seniority +
		s.Employment*w.Employment +
		s.Location*w.Location) / total

	return clamp01(score)
}

// SubScores carries the per-dimension matcher outputs for one candidate.
type SubScores struct {
	Skills     float64
	Experience float64
	Seniority  float64
	Employment float64
	Location   float64
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
