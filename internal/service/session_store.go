package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"dadmind/internal/cache"
	"dadmind/internal/domain"
	"dadmind/internal/logger"

	"go.uber.org/zap"
)

// SessionSnapshot is the persisted state of one client's conversations.
type SessionSnapshot struct {
	Sessions []*domain.ChatSession `json:"sessions"`
	ActiveID string                `json:"active_id"`
}

// SessionStore persists chat sessions per client.
type SessionStore interface {
	// Load returns the stored snapshot. A missing or corrupt snapshot is an
	// empty one; a backend failure is returned as an error.
	Load(ctx context.Context, clientID string) (SessionSnapshot, error)
	Save(ctx context.Context, clientID string, snapshot SessionSnapshot) error
}

type cacheSessionStore struct {
	cache domain.Cache
}

// NewSessionStore stores sessions under the chat keys of the given cache.
// Entries never expire.
func NewSessionStore(c domain.Cache) SessionStore {
	if c == nil {
		logger.Get().Warn("SessionStore initialized with nil cache. Sessions will not survive a restart.")
		return &noopSessionStore{}
	}
	return &cacheSessionStore{cache: c}
}

func (s *cacheSessionStore) Load(ctx context.Context, clientID string) (SessionSnapshot, error) {
	l := logger.Get().With(zap.String("clientID", clientID))
	var snap SessionSnapshot

	raw, err := s.cache.Get(ctx, cache.ChatSessionsKey(clientID))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return snap, nil
		}
		return snap, domain.NewInternalError("failed to load chat sessions", err)
	}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &snap.Sessions); err != nil {
			l.Warn("Stored chat sessions are corrupt, starting empty", zap.Error(err))
			return SessionSnapshot{}, nil
		}
	}

	active, err := s.cache.Get(ctx, cache.ActiveSessionKey(clientID))
	switch {
	case err == nil:
		snap.ActiveID = active
	case errors.Is(err, domain.ErrCacheMiss):
	default:
		l.Warn("Failed to load active session id", zap.Error(err))
	}
	return snap, nil
}

func (s *cacheSessionStore) Save(ctx context.Context, clientID string, snapshot SessionSnapshot) error {
	sessions := snapshot.Sessions
	if sessions == nil {
		sessions = []*domain.ChatSession{}
	}
	data, err := json.Marshal(sessions)
	if err != nil {
		return domain.NewInternalError("failed to marshal chat sessions", err)
	}
	if err := s.cache.Set(ctx, cache.ChatSessionsKey(clientID), string(data), 0); err != nil {
		return domain.NewInternalError(fmt.Sprintf("failed to save chat sessions for client %s", clientID), err)
	}
	if snapshot.ActiveID == "" {
		err = s.cache.Delete(ctx, cache.ActiveSessionKey(clientID))
	} else {
		err = s.cache.Set(ctx, cache.ActiveSessionKey(clientID), snapshot.ActiveID, 0)
	}
	if err != nil {
		return domain.NewInternalError(fmt.Sprintf("failed to save active session for client %s", clientID), err)
	}
	return nil
}

type noopSessionStore struct{}

func (noopSessionStore) Load(ctx context.Context, clientID string) (SessionSnapshot, error) {
	return SessionSnapshot{}, nil
}

func (noopSessionStore) Save(ctx context.Context, clientID string, snapshot SessionSnapshot) error {
	return nil
}
