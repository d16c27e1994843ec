package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	client *mongo.Client
	DB     *mongo.Database
)

func Connect(uri, dbName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri)
	c, err := mongo.Connect(clientOpts)
	if err != nil {
		return err
	}

	// Ping the database to verify connection
	if err := c.Ping(ctx, nil); err != nil {
		return err
	}

	client = c
	DB = c.Database(dbName)
	log.Println("✅ Connected to MongoDB")
	return nil
}

func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

func GetCollection(name string) *mongo.Collection {
	return DB.Collection(name)
}
