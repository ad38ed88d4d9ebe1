package repository

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"mindwell/analysis"
	"mindwell/model"
)

// MemoryStore keeps every collection in process memory. It is not persistent
// and is only meant for local development (STORAGE_BACKEND=memory) and tests.
// Each repo mirrors the behaviour of its mongo counterpart.
type MemoryStore struct {
	Entries       *MemoryMoodEntryRepo
	Insights      *MemoryInsightRepo
	Notifications *MemoryNotificationRepo
	Users         *MemoryUserRepo
	Sessions      *MemorySessionRepo
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Entries:       &MemoryMoodEntryRepo{entries: make(map[int64]model.MoodEntry)},
		Insights:      &MemoryInsightRepo{},
		Notifications: &MemoryNotificationRepo{},
		Users:         &MemoryUserRepo{byID: make(map[string]model.User)},
		Sessions:      &MemorySessionRepo{sessions: make(map[string]model.Session)},
	}
}

type MemoryMoodEntryRepo struct {
	mu      sync.RWMutex
	seq     int64
	entries map[int64]model.MoodEntry
}

func cloneEntry(e model.MoodEntry) model.MoodEntry {
	e.Activities = append([]string(nil), e.Activities...)
	e.Tags = append([]string(nil), e.Tags...)
	return e
}

func (r *MemoryMoodEntryRepo) Insert(_ context.Context, entry *model.MoodEntry) error {
	if entry.UserID == "" {
		return errors.New("mood entry requires a user")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == 0 {
		r.seq++
		entry.ID = r.seq
	} else if entry.ID > r.seq {
		r.seq = entry.ID
	}
	if _, ok := r.entries[entry.ID]; ok {
		return ErrDuplicate
	}
	r.entries[entry.ID] = cloneEntry(*entry)
	return nil
}

func (r *MemoryMoodEntryRepo) FindByID(_ context.Context, userID string, id int64) (*model.MoodEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok || e.UserID != userID {
		return nil, ErrNotFound
	}
	e = cloneEntry(e)
	return &e, nil
}

func (r *MemoryMoodEntryRepo) Find(_ context.Context, q EntryQuery) ([]model.MoodEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	match := analysis.Filter{Mood: q.Mood, Search: q.Search}
	out := []model.MoodEntry{}
	for _, e := range r.entries {
		if e.UserID != q.UserID || !match.Match(e, time.Time{}) {
			continue
		}
		if !q.Since.IsZero() && e.Timestamp.Before(q.Since) {
			continue
		}
		if !q.Until.IsZero() && !e.Timestamp.Before(q.Until) {
			continue
		}
		if q.AutoDetected != nil && e.IsAutoDetected != *q.AutoDetected {
			continue
		}
		out = append(out, cloneEntry(e))
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	if q.Limit > 0 && int64(len(out)) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *MemoryMoodEntryRepo) Replace(_ context.Context, entry *model.MoodEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.entries[entry.ID]
	if !ok || current.UserID != entry.UserID {
		return ErrNotFound
	}
	r.entries[entry.ID] = cloneEntry(*entry)
	return nil
}

func (r *MemoryMoodEntryRepo) Delete(_ context.Context, userID string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok || e.UserID != userID {
		return ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *MemoryMoodEntryRepo) AttachInsight(_ context.Context, userID, insightID string, from, to time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, e := range r.entries {
		if e.UserID != userID || e.Timestamp.Before(from) || e.Timestamp.After(to) {
			continue
		}
		if e.InsightID != insightID {
			e.InsightID = insightID
			r.entries[id] = e
			n++
		}
	}
	return n, nil
}

type MemoryInsightRepo struct {
	mu       sync.RWMutex
	insights []model.Insight
}

func (r *MemoryInsightRepo) Insert(_ context.Context, insight *model.Insight) error {
	if insight.ID == "" || insight.UserID == "" {
		return errors.New("insight requires an id and a user")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.insights {
		if existing.ID == insight.ID {
			return ErrDuplicate
		}
	}
	r.insights = append(r.insights, *insight)
	return nil
}

func (r *MemoryInsightRepo) FindByID(_ context.Context, userID, id string) (*model.Insight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, insight := range r.insights {
		if insight.ID == id && insight.UserID == userID {
			insight := insight
			return &insight, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryInsightRepo) FindByUser(_ context.Context, userID string) ([]model.Insight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.Insight{}
	for _, insight := range r.insights {
		if insight.UserID == userID {
			out = append(out, insight)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PeriodEnd.Equal(out[j].PeriodEnd) {
			return out[i].PeriodEnd.After(out[j].PeriodEnd)
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

type MemoryNotificationRepo struct {
	mu            sync.RWMutex
	notifications []model.Notification
}

func (r *MemoryNotificationRepo) InsertMany(_ context.Context, notifications []model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, notifications...)
	return nil
}

func (r *MemoryNotificationRepo) FindByUser(_ context.Context, userID string) ([]model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.Notification{}
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (r *MemoryNotificationRepo) index(userID, id string) int {
	for i, n := range r.notifications {
		if n.ID == id && n.UserID == userID {
			return i
		}
	}
	return -1
}

func (r *MemoryNotificationRepo) MarkRead(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(userID, id)
	if i < 0 {
		return ErrNotFound
	}
	r.notifications[i].Read = true
	return nil
}

func (r *MemoryNotificationRepo) MarkAllRead(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i := range r.notifications {
		if r.notifications[i].UserID == userID && !r.notifications[i].Read {
			r.notifications[i].Read = true
			n++
		}
	}
	return n, nil
}

func (r *MemoryNotificationRepo) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(userID, id)
	if i < 0 {
		return ErrNotFound
	}
	r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
	return nil
}

func (r *MemoryNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, notification := range r.notifications {
		if notification.UserID == userID && !notification.Read {
			n++
		}
	}
	return n, nil
}

type MemoryUserRepo struct {
	mu   sync.RWMutex
	byID map[string]model.User
}

func (r *MemoryUserRepo) AddUser(_ context.Context, user *model.User) error {
	if user.UserID == "" || user.Email == "" || user.Password == "" {
		return errors.New("user id, email and password required")
	}
	user.Email = strings.ToLower(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == user.Email || existing.UserID == user.UserID {
			return ErrDuplicate
		}
	}
	r.byID[user.UserID] = *user
	return nil
}

func (r *MemoryUserRepo) FindUserByEmail(_ context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.byID {
		if user.Email == email {
			user := user
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepo) FindUser(_ context.Context, userID string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

type MemorySessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
}

func (r *MemorySessionRepo) CreateSession(_ context.Context, session *model.Session) error {
	if session == nil || session.SessionID == "" || session.UserID == "" {
		return errors.New("invalid session data: missing required fields")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.SessionID] = *session
	return nil
}

func (r *MemorySessionRepo) GetSession(_ context.Context, sessionID string) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return &session, nil
}

func (r *MemorySessionRepo) EndSession(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session, ok := r.sessions[sessionID]; ok {
		session.IsActive = false
		session.LastActivityAt = time.Now()
		r.sessions[sessionID] = session
	}
	return nil
}

func (r *MemorySessionRepo) CountActiveSessions(_ context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	now := time.Now()
	var n int64
	for _, session := range r.sessions {
		if session.UserID == userID && session.IsActive && session.ExpiresAt.After(now) {
			n++
		}
	}
	return n, nil
}

func (r *MemorySessionRepo) EndLeastActiveSession(ctx context.Context, userID string) error {
	r.mu.RLock()
	var oldest *model.Session
	for _, session := range r.sessions {
		if session.UserID != userID || !session.IsActive {
			continue
		}
		if oldest == nil || session.LastActivityAt.Before(oldest.LastActivityAt) {
			session := session
			oldest = &session
		}
	}
	r.mu.RUnlock()

	if oldest == nil {
		return nil
	}
	return r.EndSession(ctx, oldest.SessionID)
}

func (r *MemorySessionRepo) GetUserActiveSessions(_ context.Context, userID string) ([]model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	now := time.Now()
	out := []model.Session{}
	for _, session := range r.sessions {
		if session.UserID == userID && session.IsActive && session.ExpiresAt.After(now) {
			out = append(out, session)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastActivityAt.After(out[j].LastActivityAt)
	})
	return out, nil
}

func (r *MemorySessionRepo) EndAllUserSessions(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for id, session := range r.sessions {
		if session.UserID == userID && session.IsActive {
			session.IsActive = false
			session.LastActivityAt = now
			r.sessions[id] = session
		}
	}
	return nil
}
