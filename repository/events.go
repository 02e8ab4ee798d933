package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrEventNotFound = errors.New("event not found")

type EventsRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for events
func GetEventsRepo(client *mongo.Client) *EventsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("EVENTS_COLLECTION")
	return &EventsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

func (r *EventsRepo) CreateEvent(ctx context.Context, event *model.Event) error {
	timer := utils.TrackDBOperation("insert", "events")
	defer timer.ObserveDuration()

	if event.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, event)
	if err != nil {
		utils.TrackError("database", "event_creation_failed")
		return err
	}
	return nil
}

// Retrieves all events owned by the user, soonest first
func (r *EventsRepo) GetUserEvents(ctx context.Context, userID string) ([]*model.Event, error) {
	timer := utils.TrackDBOperation("find", "events")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.M{"start_time": 1})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		utils.TrackError("database", "event_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*model.Event
	if err = cursor.All(ctx, &events); err != nil {
		utils.TrackError("database", "event_decode_failed")
		return nil, err
	}
	return events, nil
}

func (r *EventsRepo) GetEventByID(ctx context.Context, eventID, userID string) (*model.Event, error) {
	timer := utils.TrackDBOperation("find", "events")
	defer timer.ObserveDuration()

	var event model.Event
	filter := bson.M{
		"_id":     eventID,
		"user_id": userID,
	}

	err := r.MongoCollection.FindOne(ctx, filter).Decode(&event)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "event_fetch_failed")
		return nil, err
	}
	return &event, nil
}

func (r *EventsRepo) UpdateEvent(ctx context.Context, eventID, userID string, updates *model.Event) error {
	timer := utils.TrackDBOperation("update", "events")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     eventID,
		"user_id": userID,
	}

	update := bson.M{
		"$set": bson.M{
			"title":       updates.Title,
			"description": updates.Description,
			"start_time":  updates.StartTime,
			"location":    updates.Location,
			"reminder_at": updates.ReminderAt,
			"updated_at":  time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "event_update_failed")
		return err
	}

	if result.MatchedCount == 0 {
		utils.TrackError("database", "event_not_found")
		return ErrEventNotFound
	}
	return nil
}

func (r *EventsRepo) DeleteEvent(ctx context.Context, eventID, userID string) error {
	timer := utils.TrackDBOperation("delete", "events")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     eventID,
		"user_id": userID,
	}

	result, err := r.MongoCollection.DeleteOne(ctx, filter)
	if err != nil {
		utils.TrackError("database", "event_deletion_failed")
		return err
	}

	if result.DeletedCount == 0 {
		utils.TrackError("database", "event_not_found")
		return ErrEventNotFound
	}
	return nil
}

func (r *EventsRepo) DeleteUserEvents(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", "events")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "event_deletion_failed")
		return err
	}
	return nil
}
