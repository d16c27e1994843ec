package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"pulse-backend/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type PeriodHandler struct {
	periodStore   PeriodStore
	templateStore TemplateStore
}

func NewPeriodHandler(periodStore PeriodStore, templateStore TemplateStore) *PeriodHandler {
	return &PeriodHandler{
		periodStore:   periodStore,
		templateStore: templateStore,
	}
}

type CreatePeriodRequest struct {
	Department string   `json:"department" validate:"required"`
	StartDate  string   `json:"start_date" validate:"required"`
	EndDate    string   `json:"end_date" validate:"required"`
	Questions  []string `json:"questions"`
	TemplateID string   `json:"template_id"`
}

type SetActiveRequest struct {
	Active bool `json:"active"`
}

// parseDate accepts both the date-picker format and full timestamps.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// --- GET /admin/periods ---

func (h *PeriodHandler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.periodStore.FindAll(r.Context())
	if err != nil {
		log.Printf("Error fetching periods: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"periods": periods})
}

// --- POST /admin/periods ---

// CreatePeriod publishes a new feedback period, already active.
// Questions come either inline or copied from a template; the copy
// mints fresh question ids and keeps no link back to the template.
func (h *PeriodHandler) CreatePeriod(w http.ResponseWriter, r *http.Request) {
	var req CreatePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "department, start_date and end_date are required")
		return
	}

	dept := models.Department(req.Department)
	if !dept.IsValid() {
		writeError(w, http.StatusBadRequest, "unknown department")
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date")
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date")
		return
	}
	if startDate.After(endDate) {
		writeError(w, http.StatusBadRequest, "start_date must not be after end_date")
		return
	}

	texts := req.Questions
	if req.TemplateID != "" {
		templateID, err := bson.ObjectIDFromHex(req.TemplateID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid template_id")
			return
		}
		template, err := h.templateStore.FindByID(r.Context(), templateID)
		if err != nil {
			log.Printf("Error fetching template: %v", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if template == nil {
			writeError(w, http.StatusNotFound, "question template not found")
			return
		}
		texts = template.Questions
	}

	questions := make([]models.Question, 0, len(texts))
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			writeError(w, http.StatusBadRequest, "questions must not be blank")
			return
		}
		questions = append(questions, models.Question{
			ID:         uuid.New().String(),
			Text:       text,
			Department: dept,
		})
	}
	if len(questions) == 0 {
		writeError(w, http.StatusBadRequest, "at least one question is required")
		return
	}

	period := &models.FeedbackPeriod{
		Department: dept,
		StartDate:  startDate,
		EndDate:    endDate,
		Questions:  questions,
		Active:     true,
	}
	if err := h.periodStore.Create(r.Context(), period); err != nil {
		log.Printf("Error creating period: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create feedback period")
		return
	}

	writeJSON(w, http.StatusCreated, period)
}

// --- PATCH /admin/periods/{id}/active ---

func (h *PeriodHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	periodID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period ID")
		return
	}

	var req SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.periodStore.SetActive(r.Context(), periodID, req.Active); err != nil {
		if err == mongo.ErrNoDocuments {
			writeError(w, http.StatusNotFound, "feedback period not found")
			return
		}
		log.Printf("Error updating period: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update feedback period")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "feedback period updated",
		"active":  req.Active,
	})
}

// --- DELETE /admin/periods/{id} ---

// DeletePeriod removes the period for good. Feedback already submitted
// against it survives and keeps counting in statistics.
func (h *PeriodHandler) DeletePeriod(w http.ResponseWriter, r *http.Request) {
	periodID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period ID")
		return
	}

	if err := h.periodStore.Delete(r.Context(), periodID); err != nil {
		if err == mongo.ErrNoDocuments {
			writeError(w, http.StatusNotFound, "feedback period not found")
			return
		}
		log.Printf("Error deleting period: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete feedback period")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "feedback period deleted",
	})
}
