package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Feedback is one employee's completed questionnaire for a target
// department. The question list is copied by value from the period at
// submission time; later changes to the period never touch it.
type Feedback struct {
	ID                bson.ObjectID      `bson:"_id,omitempty" json:"id"`
	UserID            bson.ObjectID      `bson:"user_id" json:"user_id"`
	UserName          string             `bson:"user_name" json:"user_name"`
	UserEmail         string             `bson:"user_email" json:"user_email"`
	UserDepartment    Department         `bson:"user_department" json:"user_department"`
	TargetDepartment  Department         `bson:"target_department" json:"target_department"`
	Questions         []FeedbackQuestion `bson:"questions" json:"questions"`
	AdditionalComment string             `bson:"additional_comment" json:"additional_comment"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
}
