package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"pulse-backend/internal/core"

	"github.com/go-playground/validator"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeCoreError maps the engine error taxonomy onto HTTP statuses.
// Validation failures are user-correctable; integrity violations are
// refused outright.
func writeCoreError(w http.ResponseWriter, err error) {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		status := http.StatusBadRequest
		switch verr.Code {
		case core.CodeSelfRatingForbidden:
			status = http.StatusForbidden
		case core.CodePeriodNoLongerActive:
			status = http.StatusGone
		}
		payload := map[string]string{
			"error": verr.Message,
			"code":  string(verr.Code),
		}
		if verr.QuestionID != "" {
			payload["question_id"] = verr.QuestionID
		}
		writeJSON(w, status, payload)
		return
	}

	var derr *core.DataIntegrityError
	if errors.As(err, &derr) {
		log.Printf("Data integrity violation: %v", derr)
		writeError(w, http.StatusUnprocessableEntity, derr.Message)
		return
	}

	log.Printf("Unexpected error: %v", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
