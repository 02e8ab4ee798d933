package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collectionIndexes maps the env var naming each collection to the indexes
// that collection needs. The repos resolve their collections from these same
// env vars, so the indexes always land where the reads and writes go.
func collectionIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		"HABITS_COLLECTION": {
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "created_at", Value: -1},
				},
				Options: options.Index().
					SetName("user_habits_date").
					SetUnique(false),
			},
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "category", Value: 1},
				},
				Options: options.Index().
					SetName("user_habits_category"),
			},
		},
		// The unique compound index is what enforces at-most-one completion
		// per habit+owner+calendar-day. Inserts for an already-logged day fail
		// with a duplicate key error instead of racing a read-then-write check.
		"COMPLETIONS_COLLECTION": {
			{
				Keys: bson.D{
					{Key: "habit_id", Value: 1},
					{Key: "user_id", Value: 1},
					{Key: "day", Value: 1},
				},
				Options: options.Index().
					SetName("habit_user_day_unique").
					SetUnique(true),
			},
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "completed_at", Value: -1},
				},
				Options: options.Index().
					SetName("user_completions_date"),
			},
		},
		"EVENTS_COLLECTION": {
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "start_time", Value: 1},
				},
				Options: options.Index().
					SetName("user_events_time"),
			},
		},
		"USERS_COLLECTION": {
			{
				Keys: bson.D{{Key: "user_id", Value: 1}},
				Options: options.Index().
					SetName("user_id_unique").
					SetUnique(true),
			},
			{
				Keys: bson.D{{Key: "username", Value: 1}},
				Options: options.Index().
					SetName("username_unique").
					SetUnique(true),
			},
		},
		"POINTS_COLLECTION": {
			{
				Keys: bson.D{{Key: "user_id", Value: 1}},
				Options: options.Index().
					SetName("points_user_unique").
					SetUnique(true),
			},
		},
	}
}

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for envVar, models := range collectionIndexes() {
		name := os.Getenv(envVar)
		if name == "" {
			return fmt.Errorf("%s is not set", envVar)
		}
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", name, err)
		}
	}

	log.Println("Successfully created all indexes")
	return nil
}
