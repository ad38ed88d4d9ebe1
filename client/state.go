package client

import (
	"errors"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrSuperseded is returned by a fetch whose response arrived after a newer
// fetch or a successful mutation. Its result is not applied.
var ErrSuperseded = errors.New("response superseded by a newer request")

// state is the idle -> loading -> idle machine every store embeds. The mutex
// also guards the embedding store's collection.
//
// Fetches take a generation ticket; a fetch only applies if no other fetch,
// mutation or reset happened since it started.
type state struct {
	mu      sync.RWMutex
	gen     uint64
	pending int
	lastErr string

	log *logrus.Entry

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

func (s *state) init(log *logrus.Entry) {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	s.log = log
	s.subs = make(map[int]chan struct{})
}

// Loading reports whether any action is in flight.
func (s *state) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending > 0
}

// LastError is the message of the most recent failure, cleared when the next
// action starts.
func (s *state) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Subscribe returns a channel that receives a value after every state change.
// Notifications coalesce; a slow reader sees at least the latest change.
func (s *state) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *state) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *state) begin(fetch bool) uint64 {
	s.mu.Lock()
	s.pending++
	s.lastErr = ""
	if fetch {
		s.gen++
	}
	ticket := s.gen
	s.mu.Unlock()
	s.notify()
	return ticket
}

// finishFetch applies a fetch result if ticket is still current.
func (s *state) finishFetch(ticket uint64, err error, apply func()) error {
	s.mu.Lock()
	s.pending--
	stale := ticket != s.gen
	switch {
	case stale:
	case err != nil:
		s.lastErr = err.Error()
	default:
		apply()
	}
	s.mu.Unlock()
	s.notify()

	if err != nil {
		s.log.WithError(err).Debug("fetch failed")
		return err
	}
	if stale {
		s.log.Debug("discarding superseded response")
		return ErrSuperseded
	}
	return nil
}

// finishMutation applies a successful mutation and invalidates any fetch
// still in flight, since its snapshot predates the change.
func (s *state) finishMutation(err error, apply func()) error {
	return s.finishMutationOr(err, apply, nil)
}

// finishMutationOr is finishMutation with a rollback that runs under the lock,
// before subscribers are notified, when err is set.
func (s *state) finishMutationOr(err error, apply, rollback func()) error {
	s.mu.Lock()
	s.pending--
	if err != nil {
		s.lastErr = err.Error()
		if rollback != nil {
			rollback()
		}
	} else {
		apply()
		s.gen++
	}
	s.mu.Unlock()
	s.notify()

	if err != nil {
		s.log.WithError(err).Debug("mutation failed")
	}
	return err
}

// fail records an error raised outside a network action.
func (s *state) fail(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	s.notify()
}

// reset runs clear and drops every in-flight fetch.
func (s *state) reset(clear func()) {
	s.mu.Lock()
	s.gen++
	s.lastErr = ""
	clear()
	s.mu.Unlock()
	s.notify()
}
