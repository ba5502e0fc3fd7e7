package study

import (
	"errors"
	"math/rand"
	"time"

	"github.com/study-booster/backend/internal/models"
)

// ErrEmptyPool is returned when recommendation is asked to pick from an
// empty question pool. Callers are expected to guarantee a non-empty pool.
var ErrEmptyPool = errors.New("question pool is empty")

// RecommendOptions are the normalized recommendation filters.
type RecommendOptions struct {
	PreferWrongQuestions bool
	ExcludeRecent        bool
	DifficultyRange      []models.Difficulty
	Subjects             []string
	RecentWindow         time.Duration
}

var difficultyWeights = map[models.Difficulty]float64{
	models.DifficultyEasy:   1.0,
	models.DifficultyMedium: 1.2,
	models.DifficultyHard:   1.5,
}

// Weight computes the sampling weight for one candidate question. Lower
// mastery, membership in the wrong-question set, higher difficulty, and
// longer time since last seen all raise the weight.
func Weight(q *models.Question, inWrongSet, preferWrong bool, now time.Time) float64 {
	weight := 1.0

	if preferWrong && inWrongSet {
		weight *= 3
	}

	// (1-mastery)*2 + 0.5 spans [0.5, 2.5]
	weight *= (1-q.Mastery)*2 + 0.5

	if dw, ok := difficultyWeights[q.Difficulty]; ok {
		weight *= dw
	}

	if q.LastSeen == nil {
		weight *= 1.5
	} else {
		daysSince := now.Sub(*q.LastSeen).Hours() / 24
		factor := daysSince / 7 // grows toward a full week since last seen
		if factor > 2 {
			factor = 2
		}
		weight *= factor
	}

	return weight
}

// Recommend picks the next question by weighted random sampling. Filters are
// applied first; if they empty the candidate set the whole pool is used
// instead, so a non-empty pool always yields a question.
func Recommend(pool []models.Question, wrongSet map[string]bool, opts RecommendOptions, now time.Time, rng *rand.Rand) (models.Question, error) {
	if len(pool) == 0 {
		return models.Question{}, ErrEmptyPool
	}

	candidates := filterCandidates(pool, opts, now)
	if len(candidates) == 0 {
		candidates = pool
	}

	weights := make([]float64, len(candidates))
	total := 0.0
	for i := range candidates {
		weights[i] = Weight(&candidates[i], wrongSet[candidates[i].ID], opts.PreferWrongQuestions, now)
		total += weights[i]
	}

	return candidates[pickWeighted(weights, total, rng)], nil
}

func filterCandidates(pool []models.Question, opts RecommendOptions, now time.Time) []models.Question {
	var out []models.Question
	for _, q := range pool {
		if len(opts.Subjects) > 0 && !subjectMatches(&q, opts.Subjects) {
			continue
		}
		if len(opts.DifficultyRange) > 0 && !difficultyMatches(q.Difficulty, opts.DifficultyRange) {
			continue
		}
		if opts.ExcludeRecent && q.LastSeen != nil && now.Sub(*q.LastSeen) < opts.RecentWindow {
			continue
		}
		out = append(out, q)
	}
	return out
}

func subjectMatches(q *models.Question, wanted []string) bool {
	for _, tag := range q.Subject {
		for _, w := range wanted {
			if tag == w {
				return true
			}
		}
	}
	return false
}

func difficultyMatches(d models.Difficulty, allowed []models.Difficulty) bool {
	for _, a := range allowed {
		if d == a {
			return true
		}
	}
	return false
}

// pickWeighted draws one index proportionally to weights: sample uniform in
// [0,total), walk the weights subtracting each. The final index is a
// fallback for floating-point drift, not an error path.
func pickWeighted(weights []float64, total float64, rng *rand.Rand) int {
	remainder := rng.Float64() * total
	for i, w := range weights {
		remainder -= w
		if remainder <= 0 {
			return i
		}
	}
	return len(weights) - 1
}
