package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"mindwell/analysis"
	"mindwell/model"
)

// InsightSource produces insights. The store only caches what it returns.
type InsightSource interface {
	Fetch(ctx context.Context, userID string) ([]model.Insight, error)
	Generate(ctx context.Context, userID string) (model.Insight, error)
}

// HTTPInsightSource asks the API. The server scopes both calls to the token's
// user, so userID is not sent.
type HTTPInsightSource struct {
	API *Client
}

func (h HTTPInsightSource) Fetch(ctx context.Context, _ string) ([]model.Insight, error) {
	raw, err := h.API.getList(ctx, "/api/moods/insights/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[model.Insight](raw)
}

func (h HTTPInsightSource) Generate(ctx context.Context, _ string) (model.Insight, error) {
	var insight model.Insight
	err := h.API.do(ctx, http.MethodPost, "/api/moods/insights/generate/", nil, nil, &insight)
	return insight, err
}

// StubInsightSource returns fixed placeholder insights after Delay.
type StubInsightSource struct {
	Delay time.Duration
	Now   func() time.Time
}

func (s StubInsightSource) wait(ctx context.Context) error {
	if s.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s StubInsightSource) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s StubInsightSource) Fetch(ctx context.Context, userID string) ([]model.Insight, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return model.SampleInsights(userID, s.now(), uuid.NewString), nil
}

func (s StubInsightSource) Generate(ctx context.Context, userID string) (model.Insight, error) {
	if err := s.wait(ctx); err != nil {
		return model.Insight{}, err
	}
	return model.WeeklyInsight(userID, s.now(), uuid.NewString), nil
}

// InsightStore holds the user's insights in the order the source returned
// them, with generated ones appended.
type InsightStore struct {
	state
	source   InsightSource
	insights []model.Insight
}

func NewInsightStore(source InsightSource, opts ...Option) *InsightStore {
	o := buildOptions("insights", opts)
	s := &InsightStore{source: source, insights: []model.Insight{}}
	s.init(o.log)
	return s
}

func (s *InsightStore) Fetch(ctx context.Context, userID string) ([]model.Insight, error) {
	ticket := s.begin(true)

	insights, err := s.source.Fetch(ctx, userID)
	if err != nil {
		err = fmt.Errorf("failed to fetch insights: %w", err)
	}
	if insights == nil {
		insights = []model.Insight{}
	}

	if err := s.finishFetch(ticket, err, func() { s.insights = insights }); err != nil {
		return nil, err
	}
	return append([]model.Insight(nil), insights...), nil
}

// Generate appends one freshly produced insight.
func (s *InsightStore) Generate(ctx context.Context, userID string) (model.Insight, error) {
	s.begin(false)

	insight, err := s.source.Generate(ctx, userID)
	if err != nil {
		err = fmt.Errorf("failed to generate insights: %w", err)
	}

	err = s.finishMutation(err, func() {
		s.insights = append(s.insights, insight)
	})
	return insight, err
}

func (s *InsightStore) Insights() []model.Insight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Insight{}, s.insights...)
}

// Latest returns the most recently appended insight.
func (s *InsightStore) Latest() (model.Insight, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.insights) == 0 {
		return model.Insight{}, false
	}
	return s.insights[len(s.insights)-1], true
}

// RankedImpact lists the activity impact of insight id, strongest first.
func (s *InsightStore) RankedImpact(id string) ([]analysis.Impact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, in := range s.insights {
		if in.ID == id {
			return analysis.RankImpact(in.ActivityImpact), true
		}
	}
	return nil, false
}

func (s *InsightStore) Reset() {
	s.reset(func() { s.insights = []model.Insight{} })
}
