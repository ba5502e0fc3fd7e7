package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/study-booster/backend/internal/models"
)

type DraftBatch struct {
	Questions []DraftQuestion `json:"questions"`
}

type DraftQuestion struct {
	Stem          string   `json:"stem"`
	Options       []string `json:"options"`
	Answer        int      `json:"answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	Tags          []string `json:"tags"`
	EstimatedTime int      `json:"estimated_time"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseResponse parses the model output into a validated draft batch.
func ParseResponse(responseBody string) (*DraftBatch, error) {
	cleaned := stripCodeFences(responseBody)

	var batch DraftBatch
	if err := json.Unmarshal([]byte(cleaned), &batch); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateBatch(&batch); err != nil {
		return nil, err
	}

	return &batch, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

var validDraftDifficulties = map[string]bool{"easy": true, "medium": true, "hard": true}

func validateBatch(batch *DraftBatch) error {
	var errs []string

	if len(batch.Questions) == 0 {
		return &ValidationError{Errors: []string{"no questions in batch"}}
	}

	for i, q := range batch.Questions {
		qNum := i + 1

		if strings.TrimSpace(q.Stem) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty stem", qNum))
		}
		if len(q.Options) != 4 {
			errs = append(errs, fmt.Sprintf("question %d: expected 4 options, got %d", qNum, len(q.Options)))
		}
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			errs = append(errs, fmt.Sprintf("question %d: answer index %d out of range", qNum, q.Answer))
		}
		if strings.TrimSpace(q.Explanation) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty explanation", qNum))
		}
		if !validDraftDifficulties[q.Difficulty] {
			errs = append(errs, fmt.Sprintf("question %d: invalid difficulty %q", qNum, q.Difficulty))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// ToQuestion converts a validated draft into a pool question. The caller
// supplies the id and the subject it was drafted for. Drafts start at the
// unseen-mastery seed and are flagged for review.
func (d *DraftQuestion) ToQuestion(id, subject string, seedMastery float64) models.Question {
	estimated := d.EstimatedTime
	if estimated <= 0 {
		estimated = 60
	}
	return models.Question{
		ID:            id,
		Subject:       append([]string{subject}, d.Tags...),
		Difficulty:    models.Difficulty(d.Difficulty),
		Stem:          d.Stem,
		Options:       d.Options,
		Answer:        d.Answer,
		Explanation:   d.Explanation,
		Mastery:       seedMastery,
		Tags:          d.Tags,
		EstimatedTime: estimated,
		NeedsReview:   true,
	}
}
