package study

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/study-booster/backend/internal/mastery"
	"github.com/study-booster/backend/internal/models"
)

// Generate drafts new practice questions for a subject (the user's weakest
// by default) and adds them to the pool flagged for review. The endpoint is
// gated by the ai_recommendation setting.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	if h.generator == nil {
		writeJSON(w, http.StatusServiceUnavailable, models.ErrorResponse{Error: "Question generation is not configured"})
		return
	}

	settings := h.service.Settings()
	if !settings.Advanced.AIRecommendation {
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "AI recommendation is disabled in settings"})
		return
	}

	var req models.GenerateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
			return
		}
	}

	subject := req.Subject
	if subject == "" {
		subject = h.service.WeakestSubject()
	}
	if subject == "" {
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "No subject to generate for"})
		return
	}

	count := req.Count
	if count <= 0 {
		count = 3
	}
	if count > 10 {
		count = 10
	}

	batch, err := h.generator.DraftQuestions(r.Context(), subject, settings.Profile.StudyLevel, count)
	if err != nil {
		log.Printf("[study] question drafting failed: %v", err)
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Generation failed: " + err.Error()})
		return
	}

	questions := make([]models.Question, 0, len(batch.Questions))
	for i := range batch.Questions {
		id := fmt.Sprintf("gen_%s", uuid.NewString()[:8])
		questions = append(questions, batch.Questions[i].ToQuestion(id, subject, mastery.SeedForUnseen()))
	}

	added := h.service.AddQuestions(questions)
	log.Printf("[study] drafted %d questions for %q (%d added to pool)", len(questions), subject, added)

	writeJSON(w, http.StatusCreated, models.GenerateResponse{
		Subject:   subject,
		Questions: questions,
	})
}
