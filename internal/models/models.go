package models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var ValidDifficulties = map[Difficulty]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

// ── Core Structs ───────────────────────────────────────

// Question is a single entry in the question pool. Mastery and LastSeen are
// the only mutable fields; everything else is fixed at creation.
type Question struct {
	ID            string     `json:"id"`
	Subject       []string   `json:"subject"` // first entry is the primary subject
	Difficulty    Difficulty `json:"difficulty"`
	Stem          string     `json:"stem"`
	Options       []string   `json:"options"`
	Answer        int        `json:"answer"`
	Explanation   string     `json:"explanation"`
	Mastery       float64    `json:"mastery"` // [0,1]
	LastSeen      *time.Time `json:"last_seen,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	EstimatedTime int        `json:"estimated_time,omitempty"` // seconds
	NeedsReview   bool       `json:"needs_review,omitempty"`   // true for AI-drafted questions
}

// PrimarySubject returns the first subject tag, or "" if none are set.
func (q *Question) PrimarySubject() string {
	if len(q.Subject) == 0 {
		return ""
	}
	return q.Subject[0]
}

// Attempt is an immutable, append-only record of one answered question.
type Attempt struct {
	ID               string    `json:"id"`
	QuestionID       string    `json:"question_id"`
	IsCorrect        bool      `json:"is_correct"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	Timestamp        time.Time `json:"timestamp"`
}

type SubjectDaily struct {
	Questions int     `json:"questions"`
	Correct   int     `json:"correct"`
	Time      float64 `json:"time"` // minutes
}

// DailyStats is the counters for one calendar day. It is replaced wholesale
// at day rollover.
type DailyStats struct {
	Date           string                   `json:"date"` // YYYY-MM-DD, local time
	Questions      int                      `json:"questions"`
	CorrectAnswers int                      `json:"correct_answers"`
	StudyTime      float64                  `json:"study_time"` // minutes
	Subjects       map[string]*SubjectDaily `json:"subjects"`
}

func NewDailyStats(date string) DailyStats {
	return DailyStats{
		Date:     date,
		Subjects: map[string]*SubjectDaily{},
	}
}

type UserStats struct {
	TotalQuestions int        `json:"total_questions"`
	TotalStudyTime float64    `json:"total_study_time"` // minutes
	Streak         int        `json:"streak"`
	LongestStreak  int        `json:"longest_streak"`
	DailyStats     DailyStats `json:"daily_stats"`
}

type DailyGoals struct {
	Questions int     `json:"questions"`
	StudyTime float64 `json:"study_time"` // minutes
	Accuracy  float64 `json:"accuracy"`   // percent
}

type Goals struct {
	Daily    DailyGoals `json:"daily"`
	LongTerm []string   `json:"long_term"`
}

// ── Settings ───────────────────────────────────────────

type ProfileSettings struct {
	DisplayName string   `json:"display_name"`
	StudyLevel  string   `json:"study_level"`
	Subjects    []string `json:"subjects"`
}

type AppearanceSettings struct {
	Theme        string `json:"theme"`
	FontSize     string `json:"font_size"`
	Animations   bool   `json:"animations"`
	SoundEffects bool   `json:"sound_effects"`
}

type NotificationSettings struct {
	StudyReminder   bool   `json:"study_reminder"`
	GoalAchievement bool   `json:"goal_achievement"`
	ReviewReminder  bool   `json:"review_reminder"`
	WeeklyReport    bool   `json:"weekly_report"`
	ReminderTime    string `json:"reminder_time"`
}

// AdvancedSettings holds the tunables of the recommendation and mastery
// engine. RecentWindowMinutes and MasteryExitThreshold were fixed constants
// historically; they are configurable now but keep the same defaults.
type AdvancedSettings struct {
	EwmaAlpha            float64 `json:"ewma_alpha"`
	DifficultyFactor     float64 `json:"difficulty_factor"`
	ForgettingCurve      float64 `json:"forgetting_curve"`
	RecentWindowMinutes  int     `json:"recent_window_minutes"`
	MasteryExitThreshold float64 `json:"mastery_exit_threshold"`
	AIRecommendation     bool    `json:"ai_recommendation"`
}

type Settings struct {
	Profile       ProfileSettings      `json:"profile"`
	Appearance    AppearanceSettings   `json:"appearance"`
	Notifications NotificationSettings `json:"notifications"`
	Advanced      AdvancedSettings     `json:"advanced"`
}

// ── Export / Import ────────────────────────────────────

// ExportPayload is the single JSON document produced by export and accepted
// by import. Questions, Settings and Attempts are required on import.
type ExportPayload struct {
	Questions      []Question `json:"questions"`
	Settings       *Settings  `json:"settings"`
	Attempts       []Attempt  `json:"attempts"`
	WrongQuestions []string   `json:"wrong_questions"`
	UserStats      *UserStats `json:"user_stats"`
	Goals          *Goals     `json:"goals"`
	ExportDate     time.Time  `json:"export_date"`
}

// ── Requests / Responses ───────────────────────────────

type RecordAttemptRequest struct {
	QuestionID       string `json:"question_id"`
	IsCorrect        bool   `json:"is_correct"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
}

// RecommendRequest mirrors the recommendation options. Boolean fields are
// pointers so an absent field falls back to its default (both true).
type RecommendRequest struct {
	PreferWrongQuestions *bool        `json:"prefer_wrong_questions,omitempty"`
	ExcludeRecent        *bool        `json:"exclude_recent,omitempty"`
	DifficultyRange      []Difficulty `json:"difficulty_range,omitempty"`
	Subjects             []string     `json:"subjects,omitempty"`
}

type StatsResponse struct {
	UserStats UserStats `json:"user_stats"`
	Goals     Goals     `json:"goals"`
}

type GenerateRequest struct {
	Subject string `json:"subject,omitempty"` // empty = weakest subject
	Count   int    `json:"count,omitempty"`
}

type GenerateResponse struct {
	Subject   string     `json:"subject"`
	Questions []Question `json:"questions"`
}

type ImportResponse struct {
	Imported  bool `json:"imported"`
	Questions int  `json:"questions"`
	Attempts  int  `json:"attempts"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
