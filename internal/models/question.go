package models

// Question is one evaluation prompt authored for a target department.
// Immutable once attached to a published feedback period.
type Question struct {
	ID         string     `bson:"id" json:"id"`
	Text       string     `bson:"text" json:"text"`
	Department Department `bson:"department" json:"department"`
}

// FeedbackQuestion is a question together with the answer a single
// submission gave it. Comment is always persisted, empty when the
// rating did not require one.
type FeedbackQuestion struct {
	Question `bson:",inline"`
	Rating   int    `bson:"rating" json:"rating"`
	Comment  string `bson:"comment" json:"comment"`
}
