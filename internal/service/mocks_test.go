package service

import (
	"context"
	"sync"
	"time"

	"dadmind/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockCompletionProvider ---
type MockCompletionProvider struct {
	mock.Mock
}

func (m *MockCompletionProvider) NewChat(systemInstruction string, history []domain.Turn) (domain.ChatHandle, error) {
	args := m.Called(systemInstruction, history)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.ChatHandle), args.Error(1)
}

func (m *MockCompletionProvider) Generate(ctx context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	args := m.Called(ctx, prompt, opts)
	return args.String(0), args.Error(1)
}

// --- scriptedHandle ---
// scriptedHandle streams a fixed list of chunks. When gate is set, the stream
// waits for it to close before sending anything.
type scriptedHandle struct {
	mu      sync.Mutex
	chunks  []domain.StreamChunk
	openErr error
	gate    chan struct{}
	sent    [][]string
}

func (h *scriptedHandle) SendMessageStream(ctx context.Context, parts []string) (<-chan domain.StreamChunk, error) {
	h.mu.Lock()
	h.sent = append(h.sent, append([]string(nil), parts...))
	h.mu.Unlock()
	if h.openErr != nil {
		return nil, h.openErr
	}
	out := make(chan domain.StreamChunk)
	go func() {
		defer close(out)
		if h.gate != nil {
			<-h.gate
		}
		for _, c := range h.chunks {
			out <- c
		}
	}()
	return out, nil
}

func (h *scriptedHandle) Sent() [][]string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([][]string(nil), h.sent...)
}

// --- MockContextRetriever ---
type MockContextRetriever struct {
	mock.Mock
}

func (m *MockContextRetriever) Retrieve(ctx context.Context, query string, docs []domain.KnowledgeDocument) (string, bool, error) {
	args := m.Called(ctx, query, docs)
	return args.String(0), args.Bool(1), args.Error(2)
}

// --- MockAdviceService ---
type MockAdviceService struct {
	mock.Mock
}

func (m *MockAdviceService) Synthesize(ctx context.Context, result *domain.AssessmentResult) (string, error) {
	args := m.Called(ctx, result)
	return args.String(0), args.Error(1)
}

// --- MockDocumentSource ---
type MockDocumentSource struct {
	mock.Mock
}

func (m *MockDocumentSource) Fetch(ctx context.Context, location string) ([]byte, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// --- MockDocumentDecoder ---
type MockDocumentDecoder struct {
	mock.Mock
}

func (m *MockDocumentDecoder) Decode(data []byte) ([][]string, error) {
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]string), args.Error(1)
}

// --- memoryCache ---
// memoryCache is a map-backed domain.Cache for tests that round-trip data.
type memoryCache struct {
	mu      sync.Mutex
	data    map[string]string
	setErr  error
	getErr  error
	setKeys []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	c.setKeys = append(c.setKeys, key)
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memoryCache) Ping(ctx context.Context) error {
	return nil
}

// --- memorySessionStore ---
type memorySessionStore struct {
	mu      sync.Mutex
	snaps   map[string]SessionSnapshot
	saves   int
	loadErr error
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{snaps: map[string]SessionSnapshot{}}
}

func (s *memorySessionStore) Load(ctx context.Context, clientID string) (SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return SessionSnapshot{}, s.loadErr
	}
	return s.snaps[clientID], nil
}

func (s *memorySessionStore) Save(ctx context.Context, clientID string, snapshot SessionSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[clientID] = snapshot
	s.saves++
	return nil
}

func (s *memorySessionStore) Snapshot(clientID string) SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snaps[clientID]
}
