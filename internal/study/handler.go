package study

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/study-booster/backend/internal/dashboard"
	"github.com/study-booster/backend/internal/generator"
	"github.com/study-booster/backend/internal/models"
)

type Handler struct {
	service   *Service
	generator *generator.Generator
}

func NewHandler(service *Service, gen *generator.Generator) *Handler {
	return &Handler{service: service, generator: gen}
}

func (h *Handler) RecordAttempt(w http.ResponseWriter, r *http.Request) {
	var req models.RecordAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.QuestionID == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "question_id is required"})
		return
	}
	if req.TimeSpentSeconds <= 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "time_spent_seconds must be positive"})
		return
	}

	attempt, err := h.service.RecordAttempt(req.QuestionID, req.IsCorrect, req.TimeSpentSeconds)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, attempt)
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Questions())
}

func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	question, ok := h.service.Question(vars["id"])
	if !ok {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question not found"})
		return
	}

	writeJSON(w, http.StatusOK, question)
}

func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
			return
		}
	}

	for _, d := range req.DifficultyRange {
		if !models.ValidDifficulties[d] {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "difficulty_range entries must be 'easy', 'medium', or 'hard'"})
			return
		}
	}

	question, err := h.service.Recommend(req)
	if err != nil {
		if errors.Is(err, ErrEmptyPool) {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Question pool is empty"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Recommendation failed"})
		return
	}

	writeJSON(w, http.StatusOK, question)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Stats())
}

func (h *Handler) UpdateGoals(w http.ResponseWriter, r *http.Request) {
	var goals models.Goals
	if err := json.NewDecoder(r.Body).Decode(&goals); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if goals.Daily.Questions < 0 || goals.Daily.StudyTime < 0 || goals.Daily.Accuracy < 0 || goals.Daily.Accuracy > 100 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "daily goals out of range"})
		return
	}

	h.service.SetGoals(goals)
	writeJSON(w, http.StatusOK, goals)
}

func (h *Handler) ListWrongQuestions(w http.ResponseWriter, r *http.Request) {
	ids := h.service.WrongQuestionIDs()
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	days := intQueryParam(r.URL.Query(), "days", 7)
	writeJSON(w, http.StatusOK, h.service.AnalyticsData(days))
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	days := intQueryParam(r.URL.Query(), "days", 7)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboard.Render(w, h.service.AnalyticsData(days)); err != nil {
		log.Printf("[study] dashboard render failed: %v", err)
	}
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Disposition", `attachment; filename="study_booster_backup.json"`)
	writeJSON(w, http.StatusOK, h.service.Export())
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Failed to read request body"})
		return
	}

	resp, err := h.service.Import(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Reset requires ?confirm=true"})
		return
	}

	if err := h.service.Reset(); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Reset failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"reset": true})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func intQueryParam(query url.Values, key string, defaultVal int) int {
	s := query.Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	return v
}
