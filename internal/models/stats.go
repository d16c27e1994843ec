package models

// QuestionStats is the per-question slice of a department's
// aggregated ratings.
type QuestionStats struct {
	QuestionID    string  `json:"question_id"`
	QuestionText  string  `json:"question_text"`
	AverageRating float64 `json:"average_rating"`
}

// DepartmentFeedbackStats is derived view state, recomputed on demand
// from the full feedback collection and never persisted.
type DepartmentFeedbackStats struct {
	Department     Department      `json:"department"`
	AverageRating  float64         `json:"average_rating"`
	TotalFeedbacks int             `json:"total_feedbacks"`
	QuestionStats  []QuestionStats `json:"question_stats"`
}
