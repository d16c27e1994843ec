package repository

import (
	"context"
	"time"

	"pulse-backend/internal/database"
	"pulse-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type FeedbackRepo struct {
	collection *mongo.Collection
}

func NewFeedbackRepo() *FeedbackRepo {
	return &FeedbackRepo{
		collection: database.GetCollection("feedbacks"),
	}
}

func (r *FeedbackRepo) Create(ctx context.Context, feedback *models.Feedback) error {
	feedback.CreatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, feedback)
	if err != nil {
		return err
	}
	feedback.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

// FindByUserAndTarget is the duplicate pre-check: has this user already
// rated this department? Best-effort only — there is no storage-level
// uniqueness constraint backing it.
func (r *FeedbackRepo) FindByUserAndTarget(ctx context.Context, userID bson.ObjectID, target models.Department) (*models.Feedback, error) {
	var feedback models.Feedback
	err := r.collection.FindOne(ctx, bson.M{
		"user_id":           userID,
		"target_department": target,
	}).Decode(&feedback)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &feedback, nil
}

// FindByUser returns every submission made by one user, oldest first.
func (r *FeedbackRepo) FindByUser(ctx context.Context, userID bson.ObjectID) ([]models.Feedback, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

// FindAll returns the full feedback collection for aggregation.
func (r *FeedbackRepo) FindAll(ctx context.Context) ([]models.Feedback, error) {
	return r.find(ctx, bson.M{})
}

// FindByTargetDepartment returns submissions rating one department.
func (r *FeedbackRepo) FindByTargetDepartment(ctx context.Context, target models.Department) ([]models.Feedback, error) {
	return r.find(ctx, bson.M{"target_department": target})
}

func (r *FeedbackRepo) find(ctx context.Context, filter bson.M) ([]models.Feedback, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	feedbacks := []models.Feedback{}
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, err
	}
	return feedbacks, nil
}

// EnsureIndexes creates necessary indexes for the feedbacks collection.
// The (user_id, target_department) index is intentionally non-unique:
// the one-submission-per-department rule stays an application-level
// pre-check, matching the original guarantee.
func (r *FeedbackRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "target_department", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "target_department", Value: 1}},
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
