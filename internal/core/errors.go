package core

import "fmt"

// ValidationCode identifies which submission rule was violated.
type ValidationCode string

const (
	CodeMissingOrInvalidRating ValidationCode = "missing_or_invalid_rating"
	CodeMissingJustification   ValidationCode = "missing_justification"
	CodeSelfRatingForbidden    ValidationCode = "self_rating_forbidden"
	CodePeriodNoLongerActive   ValidationCode = "period_no_longer_active"
)

// ValidationError is a user-correctable submission failure. It carries
// the offending question id when the rule is per-question.
type ValidationError struct {
	Code       ValidationCode
	QuestionID string
	Message    string
}

func (e *ValidationError) Error() string {
	if e.QuestionID != "" {
		return fmt.Sprintf("%s (question %s): %s", e.Code, e.QuestionID, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// DataIntegrityError marks input the engines refuse to process rather
// than guess at, e.g. a period with zero questions or an answer for a
// question id the period does not contain.
type DataIntegrityError struct {
	Message string
}

func (e *DataIntegrityError) Error() string {
	return "data integrity violation: " + e.Message
}

func missingOrInvalidRating(questionID string) *ValidationError {
	return &ValidationError{
		Code:       CodeMissingOrInvalidRating,
		QuestionID: questionID,
		Message:    "a rating between 1 and 5 is required",
	}
}

func missingJustification(questionID string) *ValidationError {
	return &ValidationError{
		Code:       CodeMissingJustification,
		QuestionID: questionID,
		Message:    "please provide details for ratings of 3 or below",
	}
}

func selfRatingForbidden() *ValidationError {
	return &ValidationError{
		Code:    CodeSelfRatingForbidden,
		Message: "you cannot submit feedback for your own department",
	}
}

func periodNoLongerActive() *ValidationError {
	return &ValidationError{
		Code:    CodePeriodNoLongerActive,
		Message: "this feedback period is no longer active",
	}
}
