package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// FeedbackPeriod is a time-boxed questionnaire targeting one
// department. Questions are owned by value: copied in at creation and
// never mutated afterwards. Active is independent of the date range —
// an active period past its end date is hidden from employees but
// still counts in statistics.
type FeedbackPeriod struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Department Department    `bson:"department" json:"department"`
	StartDate  time.Time     `bson:"start_date" json:"start_date"`
	EndDate    time.Time     `bson:"end_date" json:"end_date"`
	Questions  []Question    `bson:"questions" json:"questions"`
	Active     bool          `bson:"active" json:"active"`
	CreatedAt  time.Time     `bson:"created_at" json:"created_at"`
}

// Expired reports whether the period's end date has passed.
func (p *FeedbackPeriod) Expired(now time.Time) bool {
	return !p.EndDate.After(now)
}
