package usecase

import (
	"go.mongodb.org/mongo-driver/mongo"

	"mindwell/repository"
	"mindwell/services"
)

type EntryRepository interface {
	MoodEntryStore
	EntryLinker
}

// Stores groups the persistence the services are built on.
type Stores struct {
	Entries       EntryRepository
	Insights      InsightStore
	Notifications NotificationStore
	Users         UserStore
	Sessions      SessionStore
}

func MemoryStores(m *repository.MemoryStore) Stores {
	return Stores{
		Entries:       m.Entries,
		Insights:      m.Insights,
		Notifications: m.Notifications,
		Users:         m.Users,
		Sessions:      m.Sessions,
	}
}

func MongoStores(db *mongo.Database) Stores {
	return Stores{
		Entries:       repository.GetMoodEntryRepo(db),
		Insights:      repository.GetInsightRepo(db),
		Notifications: repository.GetNotificationRepo(db),
		Users:         repository.GetUserRepo(db),
		Sessions:      repository.GetSessionRepo(db),
	}
}

// Options carries the non-storage collaborators. Cache and Blacklist may be
// nil.
type Options struct {
	Tokens            *services.TokenIssuer
	Generator         InsightGenerator
	Cache             InsightCacher
	Blacklist         TokenRevoker
	LookbackDays      int
	MaxActiveSessions int
}

type Services struct {
	Users         *UserService
	Moods         *MoodService
	Insights      *InsightService
	Notifications *NotificationService
}

func NewServices(st Stores, opts Options) *Services {
	if opts.Generator == nil {
		opts.Generator = StubGenerator{}
	}

	notifications := &NotificationService{Notifications: st.Notifications}
	return &Services{
		Users: &UserService{
			Users:             st.Users,
			Sessions:          st.Sessions,
			Tokens:            opts.Tokens,
			Blacklist:         opts.Blacklist,
			Onboarding:        notifications,
			MaxActiveSessions: opts.MaxActiveSessions,
		},
		Moods: NewMoodService(st.Entries),
		Insights: &InsightService{
			Insights:     st.Insights,
			Entries:      st.Entries,
			Generator:    opts.Generator,
			Cache:        opts.Cache,
			Linker:       st.Entries,
			Notifier:     notifications,
			LookbackDays: opts.LookbackDays,
		},
		Notifications: notifications,
	}
}
