package repository

import (
	"context"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PointsRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for the per-user points counters
func GetPointsRepo(client *mongo.Client) *PointsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("POINTS_COLLECTION")
	return &PointsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// IncrementPoints atomically adds delta to the user's counter, creating the
// document on first award.
func (r *PointsRepo) IncrementPoints(ctx context.Context, userID string, delta int) error {
	timer := utils.TrackDBOperation("update", "points")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$inc": bson.M{"points": delta},
		"$set": bson.M{"updated_at": time.Now()},
	}

	_, err := r.MongoCollection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		utils.TrackError("database", "points_increment_failed")
		return err
	}
	return nil
}

func (r *PointsRepo) GetPoints(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("find", "points")
	defer timer.ObserveDuration()

	var counter model.UserPoints
	err := r.MongoCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&counter)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		utils.TrackError("database", "points_fetch_failed")
		return 0, err
	}
	return counter.Points, nil
}

func (r *PointsRepo) DeleteUserPoints(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", "points")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "points_deletion_failed")
		return err
	}
	return nil
}
