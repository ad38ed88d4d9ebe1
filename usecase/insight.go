package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"mindwell/analysis"
	"mindwell/model"
	"mindwell/repository"
	"mindwell/utils"
)

// MaxInsightEntries caps how many of the newest lookback entries one
// generation reads.
const MaxInsightEntries = 2000

// InsightGenerator turns a user's recent entries into an unsaved insight.
type InsightGenerator interface {
	Name() string
	Generate(ctx context.Context, userID string, entries []model.MoodEntry, now time.Time) (model.Insight, error)
}

// StubGenerator returns the fixed "Weekly Mood Analysis" insight whatever the
// entries say.
type StubGenerator struct{}

func (StubGenerator) Name() string { return "stub" }

func (StubGenerator) Generate(_ context.Context, userID string, _ []model.MoodEntry, now time.Time) (model.Insight, error) {
	return model.WeeklyInsight(userID, now, utils.NewID), nil
}

// AnalyzerGenerator computes correlations from the entries.
type AnalyzerGenerator struct {
	Analyzer *analysis.Analyzer
}

func (AnalyzerGenerator) Name() string { return "analyzer" }

func (g AnalyzerGenerator) Generate(_ context.Context, userID string, entries []model.MoodEntry, now time.Time) (model.Insight, error) {
	insight, err := g.Analyzer.Analyze(entries, now)
	if err != nil {
		return model.Insight{}, err
	}
	insight.UserID = userID
	return insight, nil
}

// NewInsightGenerator picks an implementation by name.
func NewInsightGenerator(name string, lookbackDays int) (InsightGenerator, error) {
	switch name {
	case "stub":
		return StubGenerator{}, nil
	case "", "analyzer":
		return AnalyzerGenerator{Analyzer: analysis.NewAnalyzer(lookbackDays)}, nil
	}
	return nil, fmt.Errorf("unknown insight generator %q", name)
}

type InsightStore interface {
	Insert(ctx context.Context, insight *model.Insight) error
	FindByID(ctx context.Context, userID, id string) (*model.Insight, error)
	FindByUser(ctx context.Context, userID string) ([]model.Insight, error)
}

type InsightCacher interface {
	Get(ctx context.Context, userID string) ([]model.Insight, bool, error)
	Set(ctx context.Context, userID string, insights []model.Insight) error
	Invalidate(ctx context.Context, userID string) error
}

type EntryLinker interface {
	AttachInsight(ctx context.Context, userID, insightID string, from, to time.Time) (int64, error)
}

type Notifier interface {
	Notify(ctx context.Context, n model.Notification) (model.Notification, error)
}

// InsightService stores generated insights. Cache, Linker and Notifier are
// optional.
type InsightService struct {
	Insights     InsightStore
	Entries      MoodEntryStore
	Generator    InsightGenerator
	Cache        InsightCacher
	Linker       EntryLinker
	Notifier     Notifier
	LookbackDays int
	Now          func() time.Time
}

func (s *InsightService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// List returns the user's insights, latest period first.
func (s *InsightService) List(ctx context.Context, userID string) ([]model.Insight, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	log := utils.Logger.WithField("user_id", userID)

	if s.Cache != nil {
		cached, ok, err := s.Cache.Get(ctx, userID)
		if err != nil {
			log.WithError(err).Warn("insight cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	insights, err := s.Insights.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list insights: %w", err)
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, userID, insights); err != nil {
			log.WithError(err).Warn("insight cache write failed")
		}
	}
	return insights, nil
}

func (s *InsightService) Get(ctx context.Context, userID, id string) (model.Insight, error) {
	insight, err := s.Insights.FindByID(ctx, userID, id)
	if err != nil {
		return model.Insight{}, translate(err)
	}
	return *insight, nil
}

// Generate runs the generator over the lookback window and stores the result.
func (s *InsightService) Generate(ctx context.Context, userID string) (model.Insight, error) {
	if userID == "" {
		return model.Insight{}, ErrMissingUser
	}
	lookback := s.LookbackDays
	if lookback <= 0 {
		lookback = analysis.DefaultLookbackDays
	}
	now := s.now().UTC()
	name := s.Generator.Name()
	log := utils.Logger.WithFields(logrus.Fields{
		"user_id":   userID,
		"generator": name,
	})

	entries, err := s.Entries.Find(ctx, repository.EntryQuery{
		UserID: userID,
		Since:  now.AddDate(0, 0, -lookback),
		Limit:  MaxInsightEntries,
	})
	if err != nil {
		return model.Insight{}, fmt.Errorf("failed to load entries: %w", err)
	}

	insight, err := s.Generator.Generate(ctx, userID, entries, now)
	if err != nil {
		status := "error"
		if errors.Is(err, ErrNotEnoughData) {
			status = "insufficient_data"
		}
		utils.TrackInsightGeneration(name, status)
		return model.Insight{}, err
	}

	insight.ID = utils.NewID()
	insight.UserID = userID
	insight.Generator = name
	if insight.Timestamp.IsZero() {
		insight.Timestamp = now
	}
	if err := s.Insights.Insert(ctx, &insight); err != nil {
		utils.TrackInsightGeneration(name, "error")
		return model.Insight{}, fmt.Errorf("failed to store insight: %w", err)
	}
	utils.TrackInsightGeneration(name, "success")

	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx, userID); err != nil {
			log.WithError(err).Warn("insight cache invalidation failed")
		}
	}
	if s.Linker != nil && !insight.PeriodStart.IsZero() {
		if _, err := s.Linker.AttachInsight(ctx, userID, insight.ID, insight.PeriodStart, insight.PeriodEnd); err != nil {
			log.WithError(err).Warn("failed to link entries to insight")
		}
	}
	if s.Notifier != nil {
		_, err := s.Notifier.Notify(ctx, model.Notification{
			UserID:    userID,
			Title:     "New insight available",
			Message:   "We've generated new insights based on your recent mood entries.",
			Type:      model.NotificationSystem,
			ActionURL: "/insights",
		})
		if err != nil {
			log.WithError(err).Warn("failed to send insight notification")
		}
	}

	log.WithField("insight_id", insight.ID).Info("insight generated")
	return insight, nil
}
