package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"pulse-backend/internal/core"
	"pulse-backend/internal/middleware"
	"pulse-backend/internal/models"
	"pulse-backend/internal/slack"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type FeedbackHandler struct {
	feedbackStore FeedbackStore
	periodStore   PeriodStore
	userStore     UserStore
	notifier      slack.Notifier
}

func NewFeedbackHandler(feedbackStore FeedbackStore, periodStore PeriodStore, userStore UserStore, notifier slack.Notifier) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackStore: feedbackStore,
		periodStore:   periodStore,
		userStore:     userStore,
		notifier:      notifier,
	}
}

type SubmitFeedbackRequest struct {
	PeriodID          string                 `json:"period_id" validate:"required"`
	Answers           map[string]core.Answer `json:"answers"`
	AdditionalComment string                 `json:"additional_comment"`
}

// currentUser resolves the session to a full user record. Writes the
// error response itself and returns nil when the caller should bail.
func (h *FeedbackHandler) currentUser(w http.ResponseWriter, r *http.Request) *models.User {
	userIDHex := middleware.GetUserID(r.Context())
	if userIDHex == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil
	}
	userID, err := bson.ObjectIDFromHex(userIDHex)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user ID")
		return nil
	}
	user, err := h.userStore.FindByID(r.Context(), userID)
	if err != nil {
		log.Printf("Error finding user: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return nil
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return nil
	}
	return user
}

// --- GET /periods ---

// ListEligiblePeriods returns the feedback periods the caller may
// still complete, soonest ending first.
func (h *FeedbackHandler) ListEligiblePeriods(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	now := time.Now()
	periods, err := h.periodStore.FindActive(r.Context(), now)
	if err != nil {
		log.Printf("Error fetching periods: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	submitted, err := h.feedbackStore.FindByUser(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error fetching submissions: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	eligible := core.EligiblePeriods(*user, periods, submitted, now)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"periods":               eligible,
		"submitted_departments": core.SubmittedDepartments(*user, submitted),
	})
}

// --- GET /periods/{id} ---

// GetPeriod loads one period for the feedback form, applying the same
// gate the form page applies: own department and closed periods are
// rejected up front. The submit endpoint re-checks both.
func (h *FeedbackHandler) GetPeriod(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	periodID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period ID")
		return
	}
	period, err := h.periodStore.FindByID(r.Context(), periodID)
	if err != nil {
		log.Printf("Error fetching period: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if period == nil {
		writeError(w, http.StatusNotFound, "feedback form not found")
		return
	}
	if period.Department == user.Department {
		writeError(w, http.StatusForbidden, "you cannot submit feedback for your own department")
		return
	}
	if !period.Active || period.Expired(time.Now()) {
		writeError(w, http.StatusGone, "this feedback period is no longer active")
		return
	}

	writeJSON(w, http.StatusOK, period)
}

// --- POST /feedback ---

func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "period_id is required")
		return
	}

	periodID, err := bson.ObjectIDFromHex(req.PeriodID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period ID")
		return
	}
	period, err := h.periodStore.FindByID(r.Context(), periodID)
	if err != nil {
		log.Printf("Error fetching period: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if period == nil {
		writeError(w, http.StatusNotFound, "feedback form not found")
		return
	}

	// One submission per user per target department. Best-effort:
	// enforced by this pre-check, not by a storage constraint.
	existing, err := h.feedbackStore.FindByUserAndTarget(r.Context(), user.ID, period.Department)
	if err != nil {
		log.Printf("Error checking prior submission: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "you have already submitted feedback for this department")
		return
	}

	validated, err := core.ValidateSubmission(*user, *period, req.Answers, req.AdditionalComment, time.Now())
	if err != nil {
		writeCoreError(w, err)
		return
	}

	feedback := &models.Feedback{
		UserID:            user.ID,
		UserName:          user.Name,
		UserEmail:         user.Email,
		UserDepartment:    user.Department,
		TargetDepartment:  period.Department,
		Questions:         validated.Questions,
		AdditionalComment: validated.AdditionalComment,
	}

	if err := h.feedbackStore.Create(r.Context(), feedback); err != nil {
		log.Printf("Error creating feedback: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to submit feedback")
		return
	}

	// Fire Slack notification in a background goroutine (non-blocking)
	go func() {
		message := formatSlackMessage(feedback)
		if err := h.notifier.Publish(context.Background(), message); err != nil {
			log.Printf("Error publishing to Slack: %v", err)
		}
	}()

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "feedback submitted successfully",
		"feedback": feedback,
	})
}

// --- GET /feedback/mine ---

// ListMySubmissions returns the departments the caller already rated.
func (h *FeedbackHandler) ListMySubmissions(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	submitted, err := h.feedbackStore.FindByUser(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error fetching submissions: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"submitted_departments": core.SubmittedDepartments(*user, submitted),
	})
}

func formatSlackMessage(f *models.Feedback) string {
	total := 0
	for _, q := range f.Questions {
		total += q.Rating
	}
	avg := 0.0
	if len(f.Questions) > 0 {
		avg = float64(total) / float64(len(f.Questions))
	}
	return fmt.Sprintf("📝 *New Department Feedback*\nFrom: %s (%s)\nTarget: %s\nAverage rating: %.1f over %d questions",
		f.UserName, f.UserDepartment, f.TargetDepartment, avg, len(f.Questions))
}
