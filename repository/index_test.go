package repository

import (
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestCollectionIndexesCoverRepoCollections(t *testing.T) {
	indexes := collectionIndexes()

	// Every indexed collection is named by the same env var its repo reads,
	// so a non-default collection name still gets its indexes.
	for _, envVar := range []string{
		"HABITS_COLLECTION",
		"COMPLETIONS_COLLECTION",
		"EVENTS_COLLECTION",
		"USERS_COLLECTION",
		"POINTS_COLLECTION",
	} {
		if _, ok := indexes[envVar]; !ok {
			t.Errorf("no indexes declared for %s", envVar)
		}
	}
}

func TestCompletionDayIndexIsUnique(t *testing.T) {
	models := collectionIndexes()["COMPLETIONS_COLLECTION"]
	var found *mongo.IndexModel
	for i := range models {
		if models[i].Options != nil && models[i].Options.Name != nil && *models[i].Options.Name == "habit_user_day_unique" {
			found = &models[i]
			break
		}
	}
	if found == nil {
		t.Fatal("habit_user_day_unique index not declared for completions")
	}
	if found.Options.Unique == nil || !*found.Options.Unique {
		t.Error("habit_user_day_unique must be a unique index")
	}
}
