package study

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/study-booster/backend/internal/mastery"
	"github.com/study-booster/backend/internal/models"
)

// Storage keys for the six persisted state collections.
const (
	keyQuestions      = "questions"
	keySettings       = "settings"
	keyAttempts       = "attempts"
	keyWrongQuestions = "wrongQuestions"
	keyUserStats      = "userStats"
	keyGoals          = "goals"
)

// BlobStore is the persistence collaborator. Load returns false when the key
// is missing (the caller keeps its default); Save and Reset failures are the
// store's problem, not ours.
type BlobStore interface {
	Load(key string, into interface{}) bool
	Save(key string, value interface{})
	Reset() error
}

// Service owns all study state: the question pool, the append-only attempt
// log, the wrong-question set, user statistics, settings and goals. Every
// operation runs under one mutex, so no operation observes another halfway.
type Service struct {
	mu    sync.Mutex
	store BlobStore

	questions []models.Question
	index     map[string]int // question id -> position in questions
	settings  models.Settings
	attempts  []models.Attempt
	wrong     map[string]bool
	stats     models.UserStats
	goals     models.Goals

	now func() time.Time
	rng *rand.Rand
}

// NewService loads all state collections from the store, substituting
// defaults for anything missing, and rolls the day boundary if needed.
func NewService(store BlobStore) *Service {
	s := &Service{
		store:     store,
		questions: models.DefaultQuestions(),
		settings:  models.DefaultSettings(),
		attempts:  []models.Attempt{},
		wrong:     map[string]bool{},
		stats:     models.DefaultUserStats(),
		goals:     models.DefaultGoals(),
		now:       time.Now,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	store.Load(keyQuestions, &s.questions)
	store.Load(keySettings, &s.settings)
	store.Load(keyAttempts, &s.attempts)
	store.Load(keyUserStats, &s.stats)
	store.Load(keyGoals, &s.goals)

	var wrongIDs []string
	if store.Load(keyWrongQuestions, &wrongIDs) {
		for _, id := range wrongIDs {
			s.wrong[id] = true
		}
	}

	s.rebuildIndex()
	s.rolloverIfNeeded(s.now())

	log.Printf("[study] loaded %d questions, %d attempts, %d wrong, streak=%d",
		len(s.questions), len(s.attempts), len(s.wrong), s.stats.Streak)

	return s
}

func (s *Service) rebuildIndex() {
	s.index = make(map[string]int, len(s.questions))
	for i := range s.questions {
		s.index[s.questions[i].ID] = i
	}
}

// ── Attempt Recording ───────────────────────────────────

// RecordAttempt appends one attempt to the log and updates mastery, the
// wrong-question set and all counters. An attempt referencing an unknown
// question is still logged, but its statistics updates are skipped.
func (s *Service) RecordAttempt(questionID string, isCorrect bool, timeSpentSeconds int) (models.Attempt, error) {
	if timeSpentSeconds <= 0 {
		return models.Attempt{}, fmt.Errorf("time spent must be positive, got %d", timeSpentSeconds)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	attempt := models.Attempt{
		ID:               uuid.NewString(),
		QuestionID:       questionID,
		IsCorrect:        isCorrect,
		TimeSpentSeconds: timeSpentSeconds,
		Timestamp:        now,
	}
	s.attempts = append(s.attempts, attempt)

	alpha := s.settings.Advanced.EwmaAlpha
	if alpha <= 0 || alpha >= 1 {
		alpha = mastery.DefaultAlpha
	}

	var question *models.Question
	if i, ok := s.index[questionID]; ok {
		question = &s.questions[i]
		question.Mastery = mastery.Update(question.Mastery, isCorrect, alpha)
		seen := now
		question.LastSeen = &seen
	} else {
		log.Printf("[study] WARN: attempt references unknown question %q; stats skipped", questionID)
	}

	if !isCorrect {
		s.wrong[questionID] = true
	} else if question != nil && question.Mastery > s.settings.Advanced.MasteryExitThreshold {
		delete(s.wrong, questionID)
	}

	s.rolloverIfNeeded(now)

	if question != nil {
		minutes := float64(timeSpentSeconds) / 60
		daily := &s.stats.DailyStats

		daily.Questions++
		if isCorrect {
			daily.CorrectAnswers++
		}
		daily.StudyTime += minutes

		subject := question.PrimarySubject()
		sub, ok := daily.Subjects[subject]
		if !ok {
			sub = &models.SubjectDaily{}
			daily.Subjects[subject] = sub
		}
		sub.Questions++
		if isCorrect {
			sub.Correct++
		}
		sub.Time += minutes

		s.stats.TotalQuestions++
		s.stats.TotalStudyTime += minutes
	}

	s.saveAll()
	return attempt, nil
}

// rolloverIfNeeded replaces the daily stats record when the local calendar
// date has changed since the last attempt, evaluating the completed day's
// goals first. It runs at most once per day: subsequent attempts on the same
// date find a matching record and return immediately.
func (s *Service) rolloverIfNeeded(now time.Time) {
	today := now.Format("2006-01-02")
	if s.stats.DailyStats.Date == today {
		return
	}

	// A zero date means a fresh install; there is no completed day to score.
	if s.stats.DailyStats.Date != "" {
		s.evaluateDailyGoals(s.stats.DailyStats)
	}

	s.stats.DailyStats = models.NewDailyStats(today)
}

// evaluateDailyGoals scores a completed day against the daily goals. Meeting
// at least two of the three criteria extends the streak; anything less
// resets it.
func (s *Service) evaluateDailyGoals(day models.DailyStats) {
	goals := s.goals.Daily

	answered := day.Questions
	if answered < 1 {
		answered = 1 // avoid dividing by zero on an idle day
	}
	accuracy := float64(day.CorrectAnswers) / float64(answered)

	achieved := 0
	if day.Questions >= goals.Questions {
		achieved++
	}
	if day.StudyTime >= goals.StudyTime {
		achieved++
	}
	if accuracy >= goals.Accuracy/100 {
		achieved++
	}

	if achieved >= 2 {
		s.stats.Streak++
		if s.stats.Streak > s.stats.LongestStreak {
			s.stats.LongestStreak = s.stats.Streak
		}
	} else {
		s.stats.Streak = 0
	}
}

// ── Recommendation ──────────────────────────────────────

// Recommend picks the next question for the given filters. Unset boolean
// options default to true.
func (s *Service) Recommend(req models.RecommendRequest) (models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opts := RecommendOptions{
		PreferWrongQuestions: req.PreferWrongQuestions == nil || *req.PreferWrongQuestions,
		ExcludeRecent:        req.ExcludeRecent == nil || *req.ExcludeRecent,
		DifficultyRange:      req.DifficultyRange,
		Subjects:             req.Subjects,
		RecentWindow:         time.Duration(s.settings.Advanced.RecentWindowMinutes) * time.Minute,
	}

	return Recommend(s.questions, s.wrong, opts, s.now(), s.rng)
}

// ── Analytics ───────────────────────────────────────────

// AnalyticsData projects the attempt history over a trailing window of
// windowDays days.
func (s *Service) AnalyticsData(windowDays int) models.AnalyticsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Project(s.attempts, s.lookupQuestion, windowDays, s.now())
}

func (s *Service) lookupQuestion(id string) (*models.Question, bool) {
	if i, ok := s.index[id]; ok {
		return &s.questions[i], true
	}
	return nil, false
}

// ── Accessors ───────────────────────────────────────────

func (s *Service) Questions() []models.Question {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

func (s *Service) Question(id string) (models.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[id]; ok {
		return s.questions[i], true
	}
	return models.Question{}, false
}

func (s *Service) WrongQuestionIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wrongIDsLocked()
}

func (s *Service) wrongIDsLocked() []string {
	ids := make([]string, 0, len(s.wrong))
	for id := range s.wrong {
		ids = append(ids, id)
	}
	return ids
}

// Stats rolls the day boundary first so an idle service still reports a
// fresh daily record after midnight.
func (s *Service) Stats() models.StatsResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rolloverIfNeeded(s.now())
	return models.StatsResponse{UserStats: s.stats, Goals: s.goals}
}

func (s *Service) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Service) SetGoals(goals models.Goals) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.goals = goals
	s.saveAll()
}

// AddQuestions appends new questions to the pool, skipping ids that already
// exist.
func (s *Service) AddQuestions(questions []models.Question) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, q := range questions {
		if _, exists := s.index[q.ID]; exists {
			continue
		}
		s.index[q.ID] = len(s.questions)
		s.questions = append(s.questions, q)
		added++
	}
	if added > 0 {
		s.saveAll()
	}
	return added
}

// WeakestSubject returns the primary subject with the lowest mean mastery.
func (s *Service) WeakestSubject() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	sums := map[string]float64{}
	counts := map[string]int{}
	for i := range s.questions {
		subject := s.questions[i].PrimarySubject()
		if subject == "" {
			continue
		}
		sums[subject] += s.questions[i].Mastery
		counts[subject]++
	}

	weakest := ""
	lowest := 2.0
	for subject, sum := range sums {
		mean := sum / float64(counts[subject])
		if mean < lowest {
			lowest = mean
			weakest = subject
		}
	}
	return weakest
}

// ── Export / Import / Reset ─────────────────────────────

func (s *Service) Export() models.ExportPayload {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.settings
	stats := s.stats
	goals := s.goals

	questions := make([]models.Question, len(s.questions))
	copy(questions, s.questions)
	attempts := make([]models.Attempt, len(s.attempts))
	copy(attempts, s.attempts)

	return models.ExportPayload{
		Questions:      questions,
		Settings:       &settings,
		Attempts:       attempts,
		WrongQuestions: s.wrongIDsLocked(),
		UserStats:      &stats,
		Goals:          &goals,
		ExportDate:     s.now(),
	}
}

// Import replaces all six state collections from a JSON document. The
// payload must carry non-null questions, settings and attempts; missing
// optional collections fall back to defaults. A rejected import leaves
// existing state untouched.
func (s *Service) Import(data []byte) (models.ImportResponse, error) {
	var payload models.ExportPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return models.ImportResponse{}, fmt.Errorf("invalid import document: %w", err)
	}

	if payload.Questions == nil || payload.Settings == nil || payload.Attempts == nil {
		return models.ImportResponse{}, fmt.Errorf("import document missing required fields (questions, settings, attempts)")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.questions = payload.Questions
	s.settings = *payload.Settings
	s.attempts = payload.Attempts

	s.wrong = map[string]bool{}
	for _, id := range payload.WrongQuestions {
		s.wrong[id] = true
	}

	if payload.UserStats != nil {
		s.stats = *payload.UserStats
	} else {
		s.stats = models.DefaultUserStats()
	}
	if payload.Goals != nil {
		s.goals = *payload.Goals
	} else {
		s.goals = models.DefaultGoals()
	}

	s.rebuildIndex()
	s.saveAll()

	return models.ImportResponse{
		Imported:  true,
		Questions: len(s.questions),
		Attempts:  len(s.attempts),
	}, nil
}

// Reset irreversibly clears all persisted state and reinitializes defaults.
// Confirmation is the caller's responsibility.
func (s *Service) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Reset(); err != nil {
		return fmt.Errorf("reset store: %w", err)
	}

	s.questions = models.DefaultQuestions()
	s.settings = models.DefaultSettings()
	s.attempts = []models.Attempt{}
	s.wrong = map[string]bool{}
	s.stats = models.DefaultUserStats()
	s.goals = models.DefaultGoals()
	s.rebuildIndex()
	s.rolloverIfNeeded(s.now())
	s.saveAll()

	log.Printf("[study] all state reset to defaults")
	return nil
}

// ── Persistence ─────────────────────────────────────────

// saveAll persists the six state collections. Callers must hold the lock.
func (s *Service) saveAll() {
	s.store.Save(keyQuestions, s.questions)
	s.store.Save(keySettings, s.settings)
	s.store.Save(keyAttempts, s.attempts)
	s.store.Save(keyWrongQuestions, s.wrongIDsLocked())
	s.store.Save(keyUserStats, s.stats)
	s.store.Save(keyGoals, s.goals)
}

// Save persists current state; used by the autosave worker and at shutdown.
func (s *Service) Save() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveAll()
}

// StartAutoSaveWorker periodically persists state until the context is
// cancelled, with one final save on the way out.
func (s *Service) StartAutoSaveWorker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("[study] autosave worker started (every %s)", interval)

	for {
		select {
		case <-ctx.Done():
			s.Save()
			log.Println("[study] autosave worker shutting down")
			return
		case <-ticker.C:
			s.Save()
		}
	}
}
