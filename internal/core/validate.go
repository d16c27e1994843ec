package core

import (
	"fmt"
	"strings"
	"time"

	"pulse-backend/internal/models"
)

// Answer is one question's response as it arrives from the form. A
// missing rating decodes as zero, which fails the range check.
type Answer struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ValidatedFeedback is an answer set that passed every submission
// rule, ready for persistence. Optional text fields are never left
// absent: comments default to "" so the persisted shape stays uniform.
type ValidatedFeedback struct {
	Questions         []models.FeedbackQuestion
	AdditionalComment string
}

// ValidateSubmission checks a full answer set against a feedback
// period. Rules run in order and the first failure wins:
//
//  1. every period question needs a rating in [1,5]
//  2. ratings of 3 or below need a non-blank comment
//  3. the submitter must not belong to the period's department
//  4. the period must still be active and unexpired at submit time
//
// The activity check is repeated here, not only at form load, to close
// the race where the period expires while the form is open.
func ValidateSubmission(user models.User, period models.FeedbackPeriod, answers map[string]Answer, additionalComment string, now time.Time) (*ValidatedFeedback, error) {
	if len(period.Questions) == 0 {
		return nil, &DataIntegrityError{Message: fmt.Sprintf("feedback period %s has no questions", period.ID.Hex())}
	}
	known := make(map[string]bool, len(period.Questions))
	for _, q := range period.Questions {
		known[q.ID] = true
	}
	for id := range answers {
		if !known[id] {
			return nil, &DataIntegrityError{Message: fmt.Sprintf("answer references unknown question %s", id)}
		}
	}

	for _, q := range period.Questions {
		a, ok := answers[q.ID]
		if !ok || a.Rating < 1 || a.Rating > 5 {
			return nil, missingOrInvalidRating(q.ID)
		}
	}
	for _, q := range period.Questions {
		a := answers[q.ID]
		if a.Rating <= 3 && strings.TrimSpace(a.Comment) == "" {
			return nil, missingJustification(q.ID)
		}
	}
	if user.Department == period.Department {
		return nil, selfRatingForbidden()
	}
	if !period.Active || period.EndDate.Before(now) {
		return nil, periodNoLongerActive()
	}

	questions := make([]models.FeedbackQuestion, 0, len(period.Questions))
	for _, q := range period.Questions {
		a := answers[q.ID]
		questions = append(questions, models.FeedbackQuestion{
			Question: q,
			Rating:   a.Rating,
			Comment:  a.Comment,
		})
	}
	return &ValidatedFeedback{
		Questions:         questions,
		AdditionalComment: additionalComment,
	}, nil
}
