package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindwell/utils"
)

// CounterRepo hands out monotonically increasing integer ids, one sequence
// per name.
type CounterRepo struct {
	MongoCollection *mongo.Collection
}

func GetCounterRepo(db *mongo.Database) *CounterRepo {
	return &CounterRepo{MongoCollection: db.Collection("counters")}
}

func (r *CounterRepo) Next(ctx context.Context, name string) (int64, error) {
	timer := utils.TrackDBOperation("increment", "counters")
	defer timer.ObserveDuration()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := r.MongoCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&doc)
	if err != nil {
		utils.TrackError("database", "counter_increment_failed")
		return 0, fmt.Errorf("next %s id: %w", name, err)
	}
	return doc.Seq, nil
}
