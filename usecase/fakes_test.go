package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"mindwell/model"
	"mindwell/repository"
)

type memEntries struct {
	mu      sync.Mutex
	nextID  int64
	entries map[int64]model.MoodEntry
	queries []repository.EntryQuery
}

func newMemEntries(seed ...model.MoodEntry) *memEntries {
	m := &memEntries{entries: map[int64]model.MoodEntry{}}
	for _, e := range seed {
		m.entries[e.ID] = e
		if e.ID > m.nextID {
			m.nextID = e.ID
		}
	}
	return m
}

func (m *memEntries) Insert(_ context.Context, e *model.MoodEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e.ID = m.nextID
	m.entries[e.ID] = *e
	return nil
}

func (m *memEntries) FindByID(_ context.Context, userID string, id int64) (*model.MoodEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok || e.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (m *memEntries) Find(_ context.Context, q repository.EntryQuery) ([]model.MoodEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, q)
	out := []model.MoodEntry{}
	for _, e := range m.entries {
		if e.UserID != q.UserID {
			continue
		}
		if q.Mood != "" && e.Mood != q.Mood {
			continue
		}
		if !q.Since.IsZero() && e.Timestamp.Before(q.Since) {
			continue
		}
		if !q.Until.IsZero() && !e.Timestamp.Before(q.Until) {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(e.Notes), strings.ToLower(q.Search)) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if q.Limit > 0 && int64(len(out)) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *memEntries) Replace(_ context.Context, e *model.MoodEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.entries[e.ID]; !ok || old.UserID != e.UserID {
		return repository.ErrNotFound
	}
	m.entries[e.ID] = *e
	return nil
}

func (m *memEntries) Delete(_ context.Context, userID string, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[id]; !ok || e.UserID != userID {
		return repository.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *memEntries) AttachInsight(_ context.Context, userID, insightID string, from, to time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, e := range m.entries {
		if e.UserID == userID && !e.Timestamp.Before(from) && !e.Timestamp.After(to) {
			e.InsightID = insightID
			m.entries[id] = e
			n++
		}
	}
	return n, nil
}

type memInsights struct {
	mu    sync.Mutex
	items []model.Insight
}

func (m *memInsights) Insert(_ context.Context, i *model.Insight) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, *i)
	return nil
}

func (m *memInsights) FindByID(_ context.Context, userID, id string) (*model.Insight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, i := range m.items {
		if i.ID == id && i.UserID == userID {
			return &i, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memInsights) FindByUser(_ context.Context, userID string) ([]model.Insight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Insight{}
	for _, i := range m.items {
		if i.UserID == userID {
			out = append(out, i)
		}
	}
	return out, nil
}

type memCache struct {
	data        map[string][]model.Insight
	invalidated int
}

func (c *memCache) Get(_ context.Context, userID string) ([]model.Insight, bool, error) {
	v, ok := c.data[userID]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, userID string, insights []model.Insight) error {
	c.data[userID] = insights
	return nil
}

func (c *memCache) Invalidate(_ context.Context, userID string) error {
	delete(c.data, userID)
	c.invalidated++
	return nil
}

type memNotifications struct {
	mu    sync.Mutex
	items []model.Notification
}

func (m *memNotifications) InsertMany(_ context.Context, ns []model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, ns...)
	return nil
}

func (m *memNotifications) FindByUser(_ context.Context, userID string) ([]model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Notification{}
	for _, n := range m.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNotifications) MarkRead(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id && m.items[i].UserID == userID {
			m.items[i].Read = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memNotifications) MarkAllRead(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for i := range m.items {
		if m.items[i].UserID == userID && !m.items[i].Read {
			m.items[i].Read = true
			n++
		}
	}
	return n, nil
}

func (m *memNotifications) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.items {
		if n.ID == id && n.UserID == userID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memNotifications) CountUnread(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, x := range m.items {
		if x.UserID == userID && !x.Read {
			n++
		}
	}
	return n, nil
}

type memUsers struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newMemUsers() *memUsers { return &memUsers{users: map[string]model.User{}} }

func (m *memUsers) AddUser(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	m.users[u.UserID] = *u
	return nil
}

func (m *memUsers) FindUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == strings.ToLower(email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) FindUser(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

type memSessions struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
	ended    int
}

func newMemSessions() *memSessions { return &memSessions{sessions: map[string]*model.Session{}} }

func (m *memSessions) CreateSession(_ context.Context, s *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sessions[s.SessionID] = &cp
	return nil
}

func (m *memSessions) GetSession(_ context.Context, id string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSessions) EndSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		s.IsActive = false
	}
	return nil
}

func (m *memSessions) CountActiveSessions(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, s := range m.sessions {
		if s.UserID == userID && s.IsActive {
			n++
		}
	}
	return n, nil
}

func (m *memSessions) EndLeastActiveSession(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var oldest *model.Session
	for _, s := range m.sessions {
		if s.UserID == userID && s.IsActive && (oldest == nil || s.LastActivityAt.Before(oldest.LastActivityAt)) {
			oldest = s
		}
	}
	if oldest != nil {
		oldest.IsActive = false
		m.ended++
	}
	return nil
}

func (m *memSessions) GetUserActiveSessions(_ context.Context, userID string) ([]model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Session{}
	for _, s := range m.sessions {
		if s.UserID == userID && s.IsActive {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *memSessions) EndAllUserSessions(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.UserID == userID && s.IsActive {
			s.IsActive = false
			m.ended++
		}
	}
	return nil
}
