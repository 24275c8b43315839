package service

import (
	"context"
	"sync"

	"dadmind/internal/logger"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultClientID = "anonymous"

	// DefaultMaxConversations bounds the conversations kept in memory.
	DefaultMaxConversations = 1024
)

// RegistryOption configures a ConversationRegistry.
type RegistryOption func(*ConversationRegistry)

// WithMaxConversations caps the in-memory conversations. Values below 1 keep
// the default.
func WithMaxConversations(n int) RegistryOption {
	return func(r *ConversationRegistry) {
		if n > 0 {
			r.maxConversations = n
		}
	}
}

// ConversationRegistry keeps one Conversation per client, loaded lazily from
// the session store on first use. The least recently used conversations are
// dropped beyond the cap; every mutation is already persisted, so the next
// request reloads them from the store. A conversation evicted with a send in
// flight is parked until its client returns, so two copies never coexist.
type ConversationRegistry struct {
	deps             ConversationDeps
	maxConversations int

	conversations *lru.Cache[string, *Conversation]
	draining      sync.Map // clientID -> *Conversation
	loads         singleflight.Group
}

func NewConversationRegistry(deps ConversationDeps, opts ...RegistryOption) *ConversationRegistry {
	r := &ConversationRegistry{deps: deps, maxConversations: DefaultMaxConversations}
	for _, opt := range opts {
		opt(r)
	}
	// lru.NewWithEvict only fails for a non-positive size.
	r.conversations, _ = lru.NewWithEvict[string, *Conversation](r.maxConversations, r.onEvict)
	return r
}

func (r *ConversationRegistry) onEvict(clientID string, conv *Conversation) {
	r.draining.Range(func(key, value any) bool {
		if !value.(*Conversation).Busy() {
			r.draining.Delete(key)
		}
		return true
	})
	if conv.Busy() {
		r.draining.Store(clientID, conv)
	}
	logger.Get().Debug("Conversation evicted", zap.String("clientID", clientID), zap.Bool("busy", conv.Busy()))
}

// Len returns the number of conversations held in memory.
func (r *ConversationRegistry) Len() int {
	return r.conversations.Len()
}

// Get returns the client's conversation, loading it once. Concurrent first
// calls for the same client share a single load. A failed load is not kept.
func (r *ConversationRegistry) Get(ctx context.Context, clientID string) (*Conversation, error) {
	if clientID == "" {
		clientID = DefaultClientID
	}

	if conv, ok := r.conversations.Get(clientID); ok {
		return conv, nil
	}

	v, err, _ := r.loads.Do(clientID, func() (interface{}, error) {
		if existing, ok := r.conversations.Get(clientID); ok {
			return existing, nil
		}
		if parked, ok := r.draining.LoadAndDelete(clientID); ok {
			conv := parked.(*Conversation)
			r.conversations.Add(clientID, conv)
			return conv, nil
		}

		conv := NewConversation(clientID, r.deps)
		if err := conv.Load(ctx); err != nil {
			return nil, err
		}
		r.conversations.Add(clientID, conv)
		logger.Get().Debug("Conversation registered", zap.String("clientID", clientID))
		return conv, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Conversation), nil
}
