package repository

import (
	"context"
	"time"

	"pulse-backend/internal/database"
	"pulse-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type PeriodRepo struct {
	collection *mongo.Collection
}

func NewPeriodRepo() *PeriodRepo {
	return &PeriodRepo{
		collection: database.GetCollection("feedback_periods"),
	}
}

func (r *PeriodRepo) Create(ctx context.Context, period *models.FeedbackPeriod) error {
	period.CreatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, period)
	if err != nil {
		return err
	}
	period.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

func (r *PeriodRepo) FindByID(ctx context.Context, id bson.ObjectID) (*models.FeedbackPeriod, error) {
	var period models.FeedbackPeriod
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&period)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &period, nil
}

// FindActive returns active periods ending after the cutoff, soonest
// end date first — the order the eligibility listing shows them in.
func (r *PeriodRepo) FindActive(ctx context.Context, endingAfter time.Time) ([]models.FeedbackPeriod, error) {
	filter := bson.M{
		"active":   true,
		"end_date": bson.M{"$gt": endingAfter},
	}
	opts := options.Find().SetSort(bson.D{{Key: "end_date", Value: 1}})
	return r.find(ctx, filter, opts)
}

// FindAll returns every period, newest first, for the admin listing.
func (r *PeriodRepo) FindAll(ctx context.Context) ([]models.FeedbackPeriod, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

// SetActive flips the active flag; reversible in either direction.
func (r *PeriodRepo) SetActive(ctx context.Context, id bson.ObjectID, active bool) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"active": active},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes the period entirely. Hard delete — submitted feedback
// referencing it is kept and still counts in statistics.
func (r *PeriodRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *PeriodRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptionsBuilder) ([]models.FeedbackPeriod, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	periods := []models.FeedbackPeriod{}
	if err := cursor.All(ctx, &periods); err != nil {
		return nil, err
	}
	return periods, nil
}

// EnsureIndexes creates necessary indexes for the feedback_periods collection
func (r *PeriodRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "active", Value: 1}, {Key: "end_date", Value: 1}},
	})
	return err
}
