package handlers

import (
	"context"
	"time"

	"pulse-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Narrow store interfaces per handler so tests can mock persistence.
// The repository package implements all of them over MongoDB.

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type TokenStore interface {
	Create(ctx context.Context, token *models.AuthToken) error
	FindByToken(ctx context.Context, token string) (*models.AuthToken, error)
	MarkUsed(ctx context.Context, token string) error
	CountRecentByEmail(ctx context.Context, email string, duration time.Duration) (int64, error)
}

type PeriodStore interface {
	Create(ctx context.Context, period *models.FeedbackPeriod) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.FeedbackPeriod, error)
	FindActive(ctx context.Context, endingAfter time.Time) ([]models.FeedbackPeriod, error)
	FindAll(ctx context.Context) ([]models.FeedbackPeriod, error)
	SetActive(ctx context.Context, id bson.ObjectID, active bool) error
	Delete(ctx context.Context, id bson.ObjectID) error
}

type FeedbackStore interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	FindByUserAndTarget(ctx context.Context, userID bson.ObjectID, target models.Department) (*models.Feedback, error)
	FindByUser(ctx context.Context, userID bson.ObjectID) ([]models.Feedback, error)
	FindAll(ctx context.Context) ([]models.Feedback, error)
	FindByTargetDepartment(ctx context.Context, target models.Department) ([]models.Feedback, error)
}

type TemplateStore interface {
	Create(ctx context.Context, template *models.QuestionTemplate) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.QuestionTemplate, error)
	FindAll(ctx context.Context) ([]models.QuestionTemplate, error)
	Update(ctx context.Context, id bson.ObjectID, department models.Department, questions []string) error
	Delete(ctx context.Context, id bson.ObjectID) error
}
