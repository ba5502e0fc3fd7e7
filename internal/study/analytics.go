package study

import (
	"time"

	"github.com/study-booster/backend/internal/models"
)

// Project computes the read-only analytics snapshot over the attempts whose
// timestamps fall inside the trailing window of windowDays days. lookup
// resolves a question id to its pool entry; attempts referencing unknown
// questions still count toward accuracy and study time but are left out of
// the subject and difficulty distributions.
func Project(attempts []models.Attempt, lookup func(id string) (*models.Question, bool), windowDays int, now time.Time) models.AnalyticsSnapshot {
	start := now.AddDate(0, 0, -windowDays)

	var windowed []models.Attempt
	for _, a := range attempts {
		if !a.Timestamp.Before(start) && !a.Timestamp.After(now) {
			windowed = append(windowed, a)
		}
	}

	subjectDist := map[string]int{}
	difficultyDist := map[models.Difficulty]int{
		models.DifficultyEasy:   0,
		models.DifficultyMedium: 0,
		models.DifficultyHard:   0,
	}
	for _, a := range windowed {
		if q, ok := lookup(a.QuestionID); ok {
			subjectDist[q.PrimarySubject()]++
			difficultyDist[q.Difficulty]++
		}
	}

	if windowed == nil {
		windowed = []models.Attempt{}
	}

	return models.AnalyticsSnapshot{
		Attempts:               windowed,
		Accuracy:               accuracy(windowed),
		StudyTime:              studyMinutes(windowed),
		SubjectDistribution:    subjectDist,
		DifficultyDistribution: difficultyDist,
		DailyProgress:          dailyProgress(windowed, windowDays, now),
		Improvements:           improvements(windowed),
	}
}

// accuracy returns the percentage of correct attempts, 0 for an empty slice.
func accuracy(attempts []models.Attempt) float64 {
	if len(attempts) == 0 {
		return 0
	}
	correct := 0
	for _, a := range attempts {
		if a.IsCorrect {
			correct++
		}
	}
	return float64(correct) / float64(len(attempts)) * 100
}

// studyMinutes sums time spent, converted from seconds to minutes.
func studyMinutes(attempts []models.Attempt) float64 {
	total := 0
	for _, a := range attempts {
		total += a.TimeSpentSeconds
	}
	return float64(total) / 60
}

// dailyProgress returns one entry per calendar day, oldest first, computed
// only from that day's attempts.
func dailyProgress(attempts []models.Attempt, windowDays int, now time.Time) []models.DailyProgress {
	progress := make([]models.DailyProgress, 0, windowDays)

	byDay := map[string][]models.Attempt{}
	for _, a := range attempts {
		key := a.Timestamp.Format("2006-01-02")
		byDay[key] = append(byDay[key], a)
	}

	for i := windowDays - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		day := byDay[date]
		progress = append(progress, models.DailyProgress{
			Date:      date,
			Questions: len(day),
			Accuracy:  accuracy(day),
			StudyTime: studyMinutes(day),
		})
	}
	return progress
}

// improvements compares the accuracy of the most recent 50 attempts against
// the 50 before them, by position in the window. The comparison is strict,
// so an exact tie reports "declining".
func improvements(attempts []models.Attempt) models.Improvements {
	n := len(attempts)
	recent := attempts[max(n-50, 0):]
	older := attempts[max(n-100, 0):max(n-50, 0)]

	recentAcc := accuracy(recent)
	olderAcc := accuracy(older)

	trend := models.TrendDeclining
	if recentAcc > olderAcc {
		trend = models.TrendImproving
	}

	return models.Improvements{
		AccuracyChange: recentAcc - olderAcc,
		Trend:          trend,
	}
}
