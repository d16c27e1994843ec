package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// QuestionTemplate is a reusable set of question texts for a
// department, used only to pre-fill new feedback periods. Periods keep
// no link back to the template they were seeded from, so editing a
// template never changes existing periods.
type QuestionTemplate struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Department Department    `bson:"department" json:"department"`
	Questions  []string      `bson:"questions" json:"questions"`
	CreatedAt  time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time     `bson:"updated_at" json:"updated_at"`
}
