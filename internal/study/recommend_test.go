package study

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/study-booster/backend/internal/models"
)

func testQuestion(id string, subject string, difficulty models.Difficulty, mastery float64) models.Question {
	return models.Question{
		ID:         id,
		Subject:    []string{subject},
		Difficulty: difficulty,
		Mastery:    mastery,
	}
}

func TestWeightComponents(t *testing.T) {
	now := time.Now()

	// Unseen, medium difficulty, mastery 0.5:
	// 1 * ((1-0.5)*2+0.5) * 1.2 * 1.5
	q := testQuestion("q1", "math", models.DifficultyMedium, 0.5)
	got := Weight(&q, false, true, now)
	want := 1.5 * 1.2 * 1.5
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Weight = %f, want %f", got, want)
	}

	// Wrong-set membership triples the weight when preferred.
	inWrong := Weight(&q, true, true, now)
	if math.Abs(inWrong-3*got) > 1e-9 {
		t.Errorf("wrong-set weight = %f, want %f", inWrong, 3*got)
	}

	// ...but not when preference is off.
	notPreferred := Weight(&q, true, false, now)
	if math.Abs(notPreferred-got) > 1e-9 {
		t.Errorf("weight with preference off = %f, want %f", notPreferred, got)
	}
}

func TestWeightMasteryRange(t *testing.T) {
	now := time.Now()

	// The mastery factor spans [0.5, 2.5].
	low := testQuestion("q1", "math", models.DifficultyEasy, 0.0)
	high := testQuestion("q2", "math", models.DifficultyEasy, 1.0)

	gotLow := Weight(&low, false, false, now)
	gotHigh := Weight(&high, false, false, now)
	if math.Abs(gotLow-2.5*1.5) > 1e-9 {
		t.Errorf("weight at mastery 0 = %f, want %f", gotLow, 2.5*1.5)
	}
	if math.Abs(gotHigh-0.5*1.5) > 1e-9 {
		t.Errorf("weight at mastery 1 = %f, want %f", gotHigh, 0.5*1.5)
	}
}

func TestWeightRecency(t *testing.T) {
	now := time.Now()

	q := testQuestion("q1", "math", models.DifficultyEasy, 0.5)

	// Seen 3.5 days ago: factor 0.5.
	seen := now.Add(-84 * time.Hour)
	q.LastSeen = &seen
	got := Weight(&q, false, false, now)
	want := 1.5 * 0.5
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("weight 3.5 days after seen = %f, want %f", got, want)
	}

	// Seen a month ago: capped at 2.
	longAgo := now.Add(-30 * 24 * time.Hour)
	q.LastSeen = &longAgo
	got = Weight(&q, false, false, now)
	want = 1.5 * 2
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("weight a month after seen = %f, want %f", got, want)
	}
}

func TestWeightDifficultyFactors(t *testing.T) {
	now := time.Now()
	factors := map[models.Difficulty]float64{
		models.DifficultyEasy:   1.0,
		models.DifficultyMedium: 1.2,
		models.DifficultyHard:   1.5,
	}

	for difficulty, factor := range factors {
		q := testQuestion("q", "math", difficulty, 0.5)
		got := Weight(&q, false, false, now)
		want := 1.5 * factor * 1.5
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("Weight(%s) = %f, want %f", difficulty, got, want)
		}
	}
}

func TestRecommendEmptyPool(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := Recommend(nil, nil, RecommendOptions{}, time.Now(), rng)
	if err != ErrEmptyPool {
		t.Errorf("Recommend on empty pool: err = %v, want ErrEmptyPool", err)
	}
}

func TestRecommendFilters(t *testing.T) {
	now := time.Now()
	rng := rand.New(rand.NewSource(1))
	pool := []models.Question{
		testQuestion("q1", "math", models.DifficultyEasy, 0.5),
		testQuestion("q2", "physics", models.DifficultyHard, 0.5),
	}

	// Subject filter always lands on the matching question.
	for i := 0; i < 20; i++ {
		got, err := Recommend(pool, nil, RecommendOptions{Subjects: []string{"physics"}}, now, rng)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		if got.ID != "q2" {
			t.Fatalf("subject filter returned %s, want q2", got.ID)
		}
	}

	// Difficulty filter likewise.
	for i := 0; i < 20; i++ {
		got, err := Recommend(pool, nil, RecommendOptions{DifficultyRange: []models.Difficulty{models.DifficultyEasy}}, now, rng)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		if got.ID != "q1" {
			t.Fatalf("difficulty filter returned %s, want q1", got.ID)
		}
	}
}

func TestRecommendExcludeRecent(t *testing.T) {
	now := time.Now()
	rng := rand.New(rand.NewSource(1))

	justSeen := now.Add(-10 * time.Minute)
	pool := []models.Question{
		testQuestion("q1", "math", models.DifficultyEasy, 0.5),
		testQuestion("q2", "math", models.DifficultyEasy, 0.5),
	}
	pool[0].LastSeen = &justSeen

	opts := RecommendOptions{ExcludeRecent: true, RecentWindow: 2 * time.Hour}
	for i := 0; i < 20; i++ {
		got, err := Recommend(pool, nil, opts, now, rng)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		if got.ID != "q2" {
			t.Fatalf("recently seen question recommended: %s", got.ID)
		}
	}
}

func TestRecommendFallsBackToFullPool(t *testing.T) {
	now := time.Now()
	rng := rand.New(rand.NewSource(1))
	pool := []models.Question{
		testQuestion("q1", "math", models.DifficultyEasy, 0.5),
	}

	// Filter matches nothing; the full pool is used rather than failing.
	got, err := Recommend(pool, nil, RecommendOptions{Subjects: []string{"history"}}, now, rng)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if got.ID != "q1" {
		t.Errorf("fallback returned %s, want q1", got.ID)
	}
}

func TestRecommendDistributionFollowsWeights(t *testing.T) {
	now := time.Now()
	rng := rand.New(rand.NewSource(42))

	// Identical except mastery: weights 2.3 vs 0.7, so the low-mastery
	// question should win ~76.7% of draws.
	pool := []models.Question{
		testQuestion("low", "math", models.DifficultyEasy, 0.1),
		testQuestion("high", "math", models.DifficultyEasy, 0.9),
	}

	const trials = 10000
	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		got, err := Recommend(pool, nil, RecommendOptions{}, now, rng)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		counts[got.ID]++
	}

	if counts["low"] <= counts["high"] {
		t.Fatalf("low-mastery question picked %d times, high-mastery %d; want low > high",
			counts["low"], counts["high"])
	}

	gotShare := float64(counts["low"]) / trials
	wantShare := 2.3 / 3.0
	if math.Abs(gotShare-wantShare) > 0.03 {
		t.Errorf("low-mastery share = %.3f, want %.3f ± 0.03", gotShare, wantShare)
	}
}

func TestPickWeightedDriftFallback(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	// All-zero weights never trip the running remainder below zero on a
	// strictly positive draw, so the guard matters for degenerate inputs.
	idx := pickWeighted([]float64{0, 0, 0}, 0, rng)
	if idx < 0 || idx > 2 {
		t.Errorf("pickWeighted returned out-of-range index %d", idx)
	}
}
