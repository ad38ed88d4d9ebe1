package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindwell/model"
	"mindwell/utils"
)

type InsightRepo struct {
	MongoCollection *mongo.Collection
}

func GetInsightRepo(db *mongo.Database) *InsightRepo {
	return &InsightRepo{MongoCollection: db.Collection("insights")}
}

func (r *InsightRepo) Insert(ctx context.Context, insight *model.Insight) error {
	timer := utils.TrackDBOperation("insert", "insights")
	defer timer.ObserveDuration()

	if insight.ID == "" || insight.UserID == "" {
		utils.TrackError("database", "invalid_insight_data")
		return errors.New("insight requires an id and a user")
	}
	if _, err := r.MongoCollection.InsertOne(ctx, insight); err != nil {
		utils.TrackError("database", "insight_creation_failed")
		return fmt.Errorf("insert insight: %w", err)
	}
	return nil
}

func (r *InsightRepo) FindByID(ctx context.Context, userID, id string) (*model.Insight, error) {
	timer := utils.TrackDBOperation("find", "insights")
	defer timer.ObserveDuration()

	var insight model.Insight
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&insight)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		utils.TrackError("database", "insight_lookup_failed")
		return nil, fmt.Errorf("find insight %s: %w", id, err)
	}
	return &insight, nil
}

// FindByUser lists a user's insights, latest period first.
func (r *InsightRepo) FindByUser(ctx context.Context, userID string) ([]model.Insight, error) {
	timer := utils.TrackDBOperation("find", "insights")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{
		{Key: "period_end", Value: -1},
		{Key: "timestamp", Value: -1},
	})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		utils.TrackError("database", "insight_query_failed")
		return nil, fmt.Errorf("find insights: %w", err)
	}
	defer cursor.Close(ctx)

	insights := []model.Insight{}
	if err := cursor.All(ctx, &insights); err != nil {
		return nil, fmt.Errorf("decode insights: %w", err)
	}
	return insights, nil
}
