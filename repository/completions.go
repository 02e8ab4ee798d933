package repository

import (
	"context"
	"errors"
	"os"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateCompletion signals a second completion log for the same
// habit+owner+calendar-day. The unique index on (habit_id, user_id, day)
// makes the insert conditional, so concurrent writers cannot race past the
// at-most-one-per-day invariant.
var ErrDuplicateCompletion = errors.New("habit already completed for this day")

type CompletionsRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for completion logs
func GetCompletionsRepo(client *mongo.Client) *CompletionsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("COMPLETIONS_COLLECTION")
	return &CompletionsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

func (r *CompletionsRepo) CreateCompletion(ctx context.Context, entry *model.CompletionLog) error {
	timer := utils.TrackDBOperation("insert", "completions")
	defer timer.ObserveDuration()

	if entry.HabitID == "" || entry.UserID == "" {
		utils.TrackError("database", "invalid_completion_data")
		return errors.New("habit ID and user ID are required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.TrackError("database", "duplicate_completion")
			return ErrDuplicateCompletion
		}
		utils.TrackError("database", "completion_creation_failed")
		return err
	}

	return nil
}

// Retrieves all completion log entries for a habit
func (r *CompletionsRepo) GetHabitCompletions(ctx context.Context, habitID, userID string) ([]*model.CompletionLog, error) {
	timer := utils.TrackDBOperation("find", "completions")
	defer timer.ObserveDuration()

	var entries []*model.CompletionLog
	filter := bson.M{
		"habit_id": habitID,
		"user_id":  userID,
	}

	cursor, err := r.MongoCollection.Find(ctx, filter)
	if err != nil {
		utils.TrackError("database", "completion_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		utils.TrackError("database", "completion_decode_failed")
		return nil, err
	}
	return entries, nil
}

// Cascade delete for habit removal
func (r *CompletionsRepo) DeleteHabitCompletions(ctx context.Context, habitID, userID string) error {
	timer := utils.TrackDBOperation("delete", "completions")
	defer timer.ObserveDuration()

	filter := bson.M{
		"habit_id": habitID,
		"user_id":  userID,
	}

	_, err := r.MongoCollection.DeleteMany(ctx, filter)
	if err != nil {
		utils.TrackError("database", "completion_deletion_failed")
		return err
	}
	return nil
}

func (r *CompletionsRepo) DeleteUserCompletions(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", "completions")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "completion_deletion_failed")
		return err
	}
	return nil
}
