package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindwell/model"
	"mindwell/utils"
)

const moodEntrySequence = "mood_entries"

type MoodEntryRepo struct {
	MongoCollection *mongo.Collection
	Counters        *CounterRepo
}

func GetMoodEntryRepo(db *mongo.Database) *MoodEntryRepo {
	return &MoodEntryRepo{
		MongoCollection: db.Collection("mood_entries"),
		Counters:        GetCounterRepo(db),
	}
}

// EntryQuery selects one user's entries. Zero fields do not filter.
// Since is inclusive, Until exclusive.
type EntryQuery struct {
	UserID       string
	Mood         string
	Since        time.Time
	Until        time.Time
	Search       string
	AutoDetected *bool
	Limit        int64
}

func buildEntryFilter(q EntryQuery) bson.M {
	filter := bson.M{"user_id": q.UserID}
	if q.Mood != "" {
		filter["mood"] = q.Mood
	}
	window := bson.M{}
	if !q.Since.IsZero() {
		window["$gte"] = q.Since
	}
	if !q.Until.IsZero() {
		window["$lt"] = q.Until
	}
	if len(window) > 0 {
		filter["timestamp"] = window
	}
	if q.AutoDetected != nil {
		filter["is_auto_detected"] = *q.AutoDetected
	}
	if q.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"mood": re},
			bson.M{"notes": re},
			bson.M{"tags": re},
			bson.M{"activities": re},
		}
	}
	return filter
}

// Insert assigns the next integer id when entry.ID is zero.
func (r *MoodEntryRepo) Insert(ctx context.Context, entry *model.MoodEntry) error {
	if entry.UserID == "" {
		utils.TrackError("database", "invalid_entry_data")
		return errors.New("mood entry requires a user")
	}
	if entry.ID == 0 {
		id, err := r.Counters.Next(ctx, moodEntrySequence)
		if err != nil {
			return err
		}
		entry.ID = id
	}

	timer := utils.TrackDBOperation("insert", "mood_entries")
	defer timer.ObserveDuration()

	if _, err := r.MongoCollection.InsertOne(ctx, entry); err != nil {
		utils.TrackError("database", "entry_creation_failed")
		return fmt.Errorf("insert mood entry: %w", err)
	}
	return nil
}

func (r *MoodEntryRepo) FindByID(ctx context.Context, userID string, id int64) (*model.MoodEntry, error) {
	timer := utils.TrackDBOperation("find", "mood_entries")
	defer timer.ObserveDuration()

	var entry model.MoodEntry
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		utils.TrackError("database", "entry_lookup_failed")
		return nil, fmt.Errorf("find mood entry %d: %w", id, err)
	}
	return &entry, nil
}

// Find returns matching entries newest first.
func (r *MoodEntryRepo) Find(ctx context.Context, q EntryQuery) ([]model.MoodEntry, error) {
	timer := utils.TrackDBOperation("find", "mood_entries")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{
		{Key: "timestamp", Value: -1},
		{Key: "_id", Value: -1},
	})
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := r.MongoCollection.Find(ctx, buildEntryFilter(q), opts)
	if err != nil {
		utils.TrackError("database", "entry_query_failed")
		return nil, fmt.Errorf("find mood entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []model.MoodEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode mood entries: %w", err)
	}
	return entries, nil
}

// Replace overwrites the stored entry. Last write wins.
func (r *MoodEntryRepo) Replace(ctx context.Context, entry *model.MoodEntry) error {
	timer := utils.TrackDBOperation("update", "mood_entries")
	defer timer.ObserveDuration()

	res, err := r.MongoCollection.ReplaceOne(ctx,
		bson.M{"_id": entry.ID, "user_id": entry.UserID}, entry)
	if err != nil {
		utils.TrackError("database", "entry_update_failed")
		return fmt.Errorf("replace mood entry %d: %w", entry.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MoodEntryRepo) Delete(ctx context.Context, userID string, id int64) error {
	timer := utils.TrackDBOperation("delete", "mood_entries")
	defer timer.ObserveDuration()

	res, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		utils.TrackError("database", "entry_deletion_failed")
		return fmt.Errorf("delete mood entry %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AttachInsight links every entry of the user inside [from, to] to insightID.
func (r *MoodEntryRepo) AttachInsight(ctx context.Context, userID, insightID string, from, to time.Time) (int64, error) {
	timer := utils.TrackDBOperation("update", "mood_entries")
	defer timer.ObserveDuration()

	res, err := r.MongoCollection.UpdateMany(ctx,
		bson.M{
			"user_id":   userID,
			"timestamp": bson.M{"$gte": from, "$lte": to},
		},
		bson.M{"$set": bson.M{"insight_id": insightID}},
	)
	if err != nil {
		utils.TrackError("database", "entry_insight_link_failed")
		return 0, fmt.Errorf("attach insight %s: %w", insightID, err)
	}
	return res.ModifiedCount, nil
}
