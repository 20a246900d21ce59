package prefstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
	"github.com/yanqian/outfit-advisor/internal/domain/wardrobe"
)

// ValkeyStore persists preferences and sessions in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "outfit"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) ListPreferences(ctx context.Context, owner string) ([]wardrobe.StylePreference, error) {
	var prefs []wardrobe.StylePreference
	found, err := s.getJSON(ctx, s.preferencesKey(owner), &prefs)
	if err != nil {
		return nil, err
	}
	if !found || prefs == nil {
		return []wardrobe.StylePreference{}, nil
	}
	return prefs, nil
}

func (s *ValkeyStore) SavePreferences(ctx context.Context, owner string, prefs []wardrobe.StylePreference) error {
	if prefs == nil {
		prefs = []wardrobe.StylePreference{}
	}
	return s.setJSON(ctx, s.preferencesKey(owner), prefs, 0)
}

func (s *ValkeyStore) GetSession(ctx context.Context, id string) (outfit.Session, bool, error) {
	var session outfit.Session
	found, err := s.getJSON(ctx, s.sessionKey(id), &session)
	if err != nil || !found {
		return outfit.Session{}, false, err
	}
	if session.Answers == nil {
		session.Answers = outfit.Answers{}
	}
	return session, true, nil
}

func (s *ValkeyStore) SaveSession(ctx context.Context, session outfit.Session, ttl time.Duration) error {
	return s.setJSON(ctx, s.sessionKey(session.ID), session, ttl)
}

func (s *ValkeyStore) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(key).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(payload), dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *ValkeyStore) setJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(key).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) preferencesKey(owner string) string {
	return fmt.Sprintf("%s:%s:stylePreferences", s.prefix, owner)
}

func (s *ValkeyStore) sessionKey(id string) string {
	return fmt.Sprintf("%s:session:%s", s.prefix, id)
}

var (
	_ wardrobe.PreferenceRepository = (*ValkeyStore)(nil)
	_ outfit.SessionStore           = (*ValkeyStore)(nil)
)
