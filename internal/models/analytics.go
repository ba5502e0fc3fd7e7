package models

// ── Analytics Types ──────────────────────────────────────

type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
)

// DailyProgress is one calendar day inside the analytics window.
type DailyProgress struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	Questions int     `json:"questions"`
	Accuracy  float64 `json:"accuracy"`   // percent
	StudyTime float64 `json:"study_time"` // minutes
}

// Improvements compares the accuracy of the most recent 50 attempts in the
// window against the 50 before them. A tie counts as declining.
type Improvements struct {
	AccuracyChange float64        `json:"accuracy_change"`
	Trend          TrendDirection `json:"trend"`
}

// AnalyticsSnapshot is a read-only projection over the attempts that fall
// inside a trailing window of whole days.
type AnalyticsSnapshot struct {
	Attempts               []Attempt          `json:"attempts"`
	Accuracy               float64            `json:"accuracy"`   // percent
	StudyTime              float64            `json:"study_time"` // minutes
	SubjectDistribution    map[string]int     `json:"subject_distribution"`
	DifficultyDistribution map[Difficulty]int `json:"difficulty_distribution"`
	DailyProgress          []DailyProgress    `json:"daily_progress"`
	Improvements           Improvements       `json:"improvements"`
}
