package handlers

import (
	"log"
	"net/http"

	"pulse-backend/internal/core"
	"pulse-backend/internal/models"
)

type StatsHandler struct {
	feedbackStore FeedbackStore
}

func NewStatsHandler(feedbackStore FeedbackStore) *StatsHandler {
	return &StatsHandler{feedbackStore: feedbackStore}
}

// --- GET /admin/stats ---

// GetStats recomputes department statistics from the full feedback
// collection on every call. Stats are derived view state, never
// persisted. Pass ?department= to narrow to one department.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	forDepartments := models.Departments
	if dept := models.Department(r.URL.Query().Get("department")); dept != "" {
		if !dept.IsValid() {
			writeError(w, http.StatusBadRequest, "unknown department")
			return
		}
		forDepartments = []models.Department{dept}
	}

	allFeedback, err := h.feedbackStore.FindAll(r.Context())
	if err != nil {
		log.Printf("Error fetching feedback: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	stats := core.ComputeStats(allFeedback, forDepartments)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_feedbacks": len(allFeedback),
		"stats":           stats,
	})
}

// --- GET /admin/feedbacks ---

// ListFeedbacks returns raw submissions, optionally filtered by the
// department being rated.
func (h *StatsHandler) ListFeedbacks(w http.ResponseWriter, r *http.Request) {
	var (
		feedbacks []models.Feedback
		err       error
	)
	if dept := models.Department(r.URL.Query().Get("department")); dept != "" {
		if !dept.IsValid() {
			writeError(w, http.StatusBadRequest, "unknown department")
			return
		}
		feedbacks, err = h.feedbackStore.FindByTargetDepartment(r.Context(), dept)
	} else {
		feedbacks, err = h.feedbackStore.FindAll(r.Context())
	}
	if err != nil {
		log.Printf("Error fetching feedback: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"feedbacks": feedbacks})
}
