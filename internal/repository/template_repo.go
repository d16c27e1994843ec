package repository

import (
	"context"
	"time"

	"pulse-backend/internal/database"
	"pulse-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type TemplateRepo struct {
	collection *mongo.Collection
}

func NewTemplateRepo() *TemplateRepo {
	return &TemplateRepo{
		collection: database.GetCollection("question_templates"),
	}
}

func (r *TemplateRepo) Create(ctx context.Context, template *models.QuestionTemplate) error {
	template.CreatedAt = time.Now()
	template.UpdatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, template)
	if err != nil {
		return err
	}
	template.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

func (r *TemplateRepo) FindByID(ctx context.Context, id bson.ObjectID) (*models.QuestionTemplate, error) {
	var template models.QuestionTemplate
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&template)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

func (r *TemplateRepo) FindAll(ctx context.Context) ([]models.QuestionTemplate, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	templates := []models.QuestionTemplate{}
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// Update replaces the template's department and question texts.
// Periods already seeded from it are untouched — they own copies.
func (r *TemplateRepo) Update(ctx context.Context, id bson.ObjectID, department models.Department, questions []string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"department": department,
			"questions":  questions,
			"updated_at": time.Now(),
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *TemplateRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *TemplateRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates necessary indexes for the question_templates collection
func (r *TemplateRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "department", Value: 1}},
	})
	return err
}
