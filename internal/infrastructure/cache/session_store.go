package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"hirelink/internal/domain/interview"
)

// SessionStore persists interview sessions in Redis, falling back to process
// memory when Redis is unreachable, at startup or on any failed command.
type SessionStore struct {
	redis *Redis
	ttl   time.Duration
	now   func() time.Time

	mu     sync.Mutex
	memory map[string]memoryEntry
}

type memoryEntry struct {
	session   interview.Session
	expiresAt time.Time
}

func NewSessionStore(r *Redis, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &SessionStore{
		redis:  r,
		ttl:    ttl,
		now:    time.Now,
		memory: make(map[string]memoryEntry),
	}
}

func (s *SessionStore) Save(ctx context.Context, sess interview.Session) error {
	if s.redis.Available() {
		err := s.redis.SetJSON(ctx, InterviewSessionKey(sess.ID), sess, s.ttl)
		if err == nil {
			return nil
		}
		s.redis.warnUnavailableOnce(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpired()
	s.memory[sess.ID] = memoryEntry{session: cloneSession(sess), expiresAt: s.now().Add(s.ttl)}
	return nil
}

// Get looks in Redis first and then in memory, where sessions written during
// an outage live.
func (s *SessionStore) Get(ctx context.Context, id string) (interview.Session, error) {
	if s.redis.Available() {
		var sess interview.Session
		found, err := s.redis.GetJSON(ctx, InterviewSessionKey(id), &sess)
		if err == nil && found {
			return sess, nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(id)
	if !ok {
		return interview.Session{}, interview.ErrSessionNotFound
	}
	return cloneSession(e.session), nil
}

// Update applies fn to the stored session atomically and returns the result.
// Concurrent updates of one session never overwrite each other; an error
// from fn leaves the stored session untouched.
func (s *SessionStore) Update(ctx context.Context, id string, fn func(*interview.Session) error) (interview.Session, error) {
	if s.redis.Available() {
		var (
			out   interview.Session
			fnErr error
		)
		err := s.redis.Update(ctx, InterviewSessionKey(id), s.ttl, func(current []byte) ([]byte, error) {
			if current == nil {
				fnErr = interview.ErrSessionNotFound
				return nil, fnErr
			}
			var sess interview.Session
			if err := json.Unmarshal(current, &sess); err != nil {
				return nil, err
			}
			if fnErr = fn(&sess); fnErr != nil {
				return nil, fnErr
			}
			out = sess
			return json.Marshal(sess)
		})
		switch {
		case err == nil:
			return out, nil
		case errors.Is(err, ErrConflict):
			return interview.Session{}, err
		case fnErr != nil && errors.Is(err, fnErr):
			// not in Redis; it may have been written to memory during an outage
			if !errors.Is(fnErr, interview.ErrSessionNotFound) {
				return interview.Session{}, fnErr
			}
		default:
			s.redis.warnUnavailableOnce(err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(id)
	if !ok {
		return interview.Session{}, interview.ErrSessionNotFound
	}
	sess := cloneSession(e.session)
	if err := fn(&sess); err != nil {
		return interview.Session{}, err
	}
	s.memory[id] = memoryEntry{session: cloneSession(sess), expiresAt: s.now().Add(s.ttl)}
	return sess, nil
}

// lookup must be called with s.mu held.
func (s *SessionStore) lookup(id string) (memoryEntry, bool) {
	e, ok := s.memory[id]
	if !ok || s.now().After(e.expiresAt) {
		delete(s.memory, id)
		return memoryEntry{}, false
	}
	return e, true
}

func (s *SessionStore) evictExpired() {
	now := s.now()
	for id, e := range s.memory {
		if now.After(e.expiresAt) {
			delete(s.memory, id)
		}
	}
}

// cloneSession copies every slice and pointer so callers never share backing
// arrays with the stored entry.
func cloneSession(s interview.Session) interview.Session {
	out := s
	out.Settings.FocusAreas = append([]string(nil), s.Settings.FocusAreas...)
	out.Questions = append([]string(nil), s.Questions...)
	if s.Answers != nil {
		out.Answers = append(make([]interview.Answer, 0, len(s.Answers)), s.Answers...)
	}
	if s.FinishedAt != nil {
		t := *s.FinishedAt
		out.FinishedAt = &t
	}
	return out
}
