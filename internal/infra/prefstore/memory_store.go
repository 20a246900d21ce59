package prefstore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
	"github.com/yanqian/outfit-advisor/internal/domain/wardrobe"
)

type sessionRecord struct {
	session   outfit.Session
	expiresAt time.Time
}

// MemoryStore keeps style preferences and question sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	prefs    map[string][]wardrobe.StylePreference
	sessions map[string]sessionRecord
	now      func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		prefs:    make(map[string][]wardrobe.StylePreference),
		sessions: make(map[string]sessionRecord),
		now:      time.Now,
	}
}

// ListPreferences implements wardrobe.PreferenceRepository.
func (s *MemoryStore) ListPreferences(_ context.Context, owner string) ([]wardrobe.StylePreference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.prefs[owner]
	out := make([]wardrobe.StylePreference, len(stored))
	copy(out, stored)
	return out, nil
}

// SavePreferences replaces the owner's preferences.
func (s *MemoryStore) SavePreferences(_ context.Context, owner string, prefs []wardrobe.StylePreference) error {
	cp := make([]wardrobe.StylePreference, len(prefs))
	copy(cp, prefs)
	s.mu.Lock()
	s.prefs[owner] = cp
	s.mu.Unlock()
	return nil
}

// GetSession implements outfit.SessionStore. Expired sessions are dropped.
func (s *MemoryStore) GetSession(_ context.Context, id string) (outfit.Session, bool, error) {
	s.mu.RLock()
	record, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return outfit.Session{}, false, nil
	}
	if !record.expiresAt.IsZero() && record.expiresAt.Before(s.now()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return outfit.Session{}, false, nil
	}
	return cloneSession(record.session), true, nil
}

// SaveSession stores the session with an optional TTL.
func (s *MemoryStore) SaveSession(_ context.Context, session outfit.Session, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.sessions[session.ID] = sessionRecord{session: cloneSession(session), expiresAt: exp}
	s.mu.Unlock()
	return nil
}

// cloneSession copies the answers map so callers cannot mutate stored state.
func cloneSession(in outfit.Session) outfit.Session {
	out := in
	out.Answers = make(outfit.Answers, len(in.Answers))
	for k, v := range in.Answers {
		out.Answers[k] = v
	}
	return out
}

var (
	_ wardrobe.PreferenceRepository = (*MemoryStore)(nil)
	_ outfit.SessionStore           = (*MemoryStore)(nil)
)
