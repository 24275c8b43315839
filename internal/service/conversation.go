package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"dadmind/internal/domain"
	"dadmind/internal/logger"
	"dadmind/internal/util"

	"go.uber.org/zap"
)

// ConversationDeps are the collaborators of a Conversation. Provider may be
// nil when AI features are disabled; sends are then rejected.
type ConversationDeps struct {
	Provider          domain.CompletionProvider
	Retriever         ContextRetriever
	Knowledge         *domain.KnowledgeBase
	Store             SessionStore
	SystemInstruction string
	NewID             func() string
	Now               func() time.Time
}

// SendResult describes the outcome of one send. A failed completion is not a
// Go error: it is recorded as an error message in the session and reported in
// Error.
type SendResult struct {
	SessionID    string              `json:"session_id"`
	UserMessage  domain.ChatMessage  `json:"user_message"`
	BotMessage   *domain.ChatMessage `json:"bot_message,omitempty"`
	ErrorMessage *domain.ChatMessage `json:"error_message,omitempty"`
	ContextUsed  bool                `json:"context_used"`
	Warning      string              `json:"warning,omitempty"`
	Error        error               `json:"-"`
}

// Conversation owns the chat sessions of one client: the session collection
// (newest first), the active session and one chat handle per activated
// session. Every mutation persists a full snapshot.
type Conversation struct {
	clientID          string
	provider          domain.CompletionProvider
	retriever         ContextRetriever
	kb                *domain.KnowledgeBase
	store             SessionStore
	systemInstruction string
	newID             func() string
	now               func() time.Time

	mu       sync.Mutex
	sessions []*domain.ChatSession
	activeID string
	handles  map[string]domain.ChatHandle
	sending  map[string]bool
	version  uint64

	persistMu sync.Mutex
	persisted uint64
}

func NewConversation(clientID string, deps ConversationDeps) *Conversation {
	c := &Conversation{
		clientID:          clientID,
		provider:          deps.Provider,
		retriever:         deps.Retriever,
		kb:                deps.Knowledge,
		store:             deps.Store,
		systemInstruction: deps.SystemInstruction,
		newID:             deps.NewID,
		now:               deps.Now,
		handles:           map[string]domain.ChatHandle{},
		sending:           map[string]bool{},
	}
	if c.store == nil {
		c.store = noopSessionStore{}
	}
	if c.systemInstruction == "" {
		c.systemInstruction = domain.ChatSystemInstruction
	}
	if c.newID == nil {
		c.newID = util.NewULID
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Load restores the persisted sessions. When nothing was stored a fresh
// session is created. A store failure is returned without writing anything, so
// the stored sessions stay intact and a later Load can retry.
func (c *Conversation) Load(ctx context.Context) error {
	l := logger.Get().With(zap.String("clientID", c.clientID))

	snap, err := c.store.Load(ctx, c.clientID)
	if err != nil {
		l.Error("Failed to load chat sessions", zap.Error(err))
		return err
	}

	c.mu.Lock()
	c.sessions = c.sessions[:0]
	for _, s := range snap.Sessions {
		if s != nil && s.ID != "" {
			c.sessions = append(c.sessions, s)
		}
	}
	c.handles = map[string]domain.ChatHandle{}

	if len(c.sessions) == 0 {
		c.sessions = []*domain.ChatSession{domain.NewChatSession(c.newID(), c.now())}
	}
	c.activeID = c.sessions[0].ID
	if c.findLocked(snap.ActiveID) != nil {
		c.activeID = snap.ActiveID
	}
	c.activateLocked(c.activeID)
	next, v := c.snapshotLocked()
	c.mu.Unlock()

	c.save(ctx, next, v)
	l.Info("Chat sessions loaded", zap.Int("sessions", len(next.Sessions)), zap.String("activeID", next.ActiveID))
	return nil
}

// Sessions returns copies of all sessions, newest first.
func (c *Conversation) Sessions() []*domain.ChatSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*domain.ChatSession, 0, len(c.sessions))
	for _, s := range c.sessions {
		out = append(out, s.Clone())
	}
	return out
}

// Session returns a copy of the session with the given id.
func (c *Conversation) Session(id string) (*domain.ChatSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.findLocked(id)
	if s == nil {
		return nil, domain.NewSessionNotFoundError(id)
	}
	return s.Clone(), nil
}

// ActiveID returns the id of the active session, or "" when there is none.
func (c *Conversation) ActiveID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeID
}

// Busy reports whether a send is outstanding on any session.
func (c *Conversation) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sending) > 0
}

// ActiveSession returns a copy of the active session.
func (c *Conversation) ActiveSession() (*domain.ChatSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.findLocked(c.activeID)
	if s == nil {
		return nil, domain.NewNoActiveSessionError()
	}
	return s.Clone(), nil
}

// CreateSession starts a new session seeded with the welcome message and makes
// it active with an empty model history.
func (c *Conversation) CreateSession(ctx context.Context) (*domain.ChatSession, error) {
	c.mu.Lock()
	s := c.createLocked()
	out := s.Clone()
	snap, v := c.snapshotLocked()
	c.mu.Unlock()

	c.save(ctx, snap, v)
	logger.Get().Info("Chat session created", zap.String("clientID", c.clientID), zap.String("sessionID", out.ID))
	return out, nil
}

// SwitchSession makes the given session active and rebuilds its chat handle
// from the stored history.
func (c *Conversation) SwitchSession(ctx context.Context, id string) (*domain.ChatSession, error) {
	c.mu.Lock()
	s := c.findLocked(id)
	if s == nil {
		c.mu.Unlock()
		return nil, domain.NewSessionNotFoundError(id)
	}
	c.activeID = id
	delete(c.handles, id)
	c.activateLocked(id)
	out := s.Clone()
	snap, v := c.snapshotLocked()
	c.mu.Unlock()

	c.save(ctx, snap, v)
	return out, nil
}

// DeleteSession removes a session. When it was active, the most recently
// created remaining session becomes active, or a new one is created when none
// remain. It returns the active session afterwards.
func (c *Conversation) DeleteSession(ctx context.Context, id string) (*domain.ChatSession, error) {
	c.mu.Lock()
	idx := -1
	for i, s := range c.sessions {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return nil, domain.NewSessionNotFoundError(id)
	}
	c.sessions = append(c.sessions[:idx], c.sessions[idx+1:]...)
	delete(c.handles, id)

	switch {
	case len(c.sessions) == 0:
		c.createLocked()
	case c.activeID == id:
		c.activeID = c.sessions[0].ID
		c.activateLocked(c.activeID)
	}
	active := c.findLocked(c.activeID).Clone()
	snap, v := c.snapshotLocked()
	c.mu.Unlock()

	c.save(ctx, snap, v)
	logger.Get().Info("Chat session deleted", zap.String("clientID", c.clientID), zap.String("sessionID", id))
	return active, nil
}

// SendMessage runs one chat turn on the active session. onUpdate, when set,
// receives every message as it is appended or its text grows.
//
// Empty text, disabled AI features, a knowledge base still loading, a missing
// active session and a send already outstanding for the session are rejected
// without touching state.
func (c *Conversation) SendMessage(ctx context.Context, text string, onUpdate func(domain.ChatMessage)) (*SendResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewInvalidInputError("message text must not be empty")
	}
	if c.provider == nil {
		return nil, domain.NewAIUnavailableError("no completion provider is configured")
	}
	if c.kb != nil && c.kb.Loading() {
		return nil, domain.NewKnowledgeLoadingError()
	}
	notify := func(m domain.ChatMessage) {
		if onUpdate != nil {
			onUpdate(m)
		}
	}
	l := logger.Get().With(zap.String("clientID", c.clientID))

	c.mu.Lock()
	session := c.findLocked(c.activeID)
	if session == nil {
		c.mu.Unlock()
		return nil, domain.NewNoActiveSessionError()
	}
	sessionID := session.ID
	if c.sending[sessionID] {
		c.mu.Unlock()
		return nil, domain.NewSendInProgressError(sessionID)
	}
	handle, err := c.handleLocked(session)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.sending[sessionID] = true

	userMsg := domain.ChatMessage{
		ID:        c.newID(),
		Sender:    domain.SenderUser,
		Kind:      domain.MessageKindChat,
		Text:      text,
		Timestamp: c.now(),
		Avatar:    domain.UserAvatar,
	}
	if session.Title == domain.DefaultSessionTitle && !session.HasUserMessage() {
		session.Title = domain.DeriveTitle(text, session.CreatedAt)
	}
	session.Append(userMsg)
	snap, v := c.snapshotLocked()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.sending, sessionID)
		c.mu.Unlock()
	}()

	c.save(ctx, snap, v)
	notify(userMsg)

	result := &SendResult{SessionID: sessionID, UserMessage: userMsg}

	parts := []string{text}
	if c.retriever != nil && c.kb != nil && c.kb.HasText() {
		excerpt, found, err := c.retriever.Retrieve(ctx, text, c.kb.Documents())
		switch {
		case err != nil:
			l.Warn("Continuing without knowledge base context", zap.String("sessionID", sessionID), zap.Error(err))
			result.Warning = err.Error()
		case found:
			parts = []string{domain.ContextPrefix + excerpt, text}
			result.ContextUsed = true
		}
	}

	stream, err := handle.SendMessageStream(ctx, parts)
	if err != nil {
		c.recordFailure(ctx, sessionID, "", err, result, notify)
		return result, nil
	}

	placeholder := domain.ChatMessage{
		ID:        c.newID(),
		Sender:    domain.SenderBot,
		Kind:      domain.MessageKindChat,
		Timestamp: c.now(),
		Avatar:    domain.BotAvatar,
	}
	c.mutate(ctx, sessionID, func(s *domain.ChatSession) { s.Append(placeholder) })
	notify(placeholder)

	var answer strings.Builder
	var streamErr error
	for chunk := range stream {
		if chunk.Err != nil {
			streamErr = chunk.Err
			continue
		}
		if chunk.Text == "" {
			continue
		}
		answer.WriteString(chunk.Text)
		current := answer.String()
		updated := placeholder
		updated.Text = current
		c.mutate(ctx, sessionID, func(s *domain.ChatSession) {
			if m, ok := s.ReplaceText(placeholder.ID, current, c.now()); ok {
				updated = m
			}
		})
		notify(updated)
	}

	if streamErr != nil {
		placeholderID := placeholder.ID
		if answer.Len() > 0 {
			partial := placeholder
			partial.Text = answer.String()
			result.BotMessage = &partial
			placeholderID = ""
		}
		c.recordFailure(ctx, sessionID, placeholderID, streamErr, result, notify)
		return result, nil
	}

	final := placeholder
	final.Text = answer.String()
	c.mutate(ctx, sessionID, func(s *domain.ChatSession) {
		if m, ok := s.ReplaceText(placeholder.ID, final.Text, c.now()); ok {
			final = m
		}
	})
	result.BotMessage = &final
	l.Debug("Chat turn completed", zap.String("sessionID", sessionID), zap.Int("answerChars", len([]rune(final.Text))), zap.Bool("contextUsed", result.ContextUsed))
	return result, nil
}

// recordFailure writes a visible error message. It takes the place of an
// empty placeholder when placeholderID is set, otherwise it is appended.
func (c *Conversation) recordFailure(ctx context.Context, sessionID, placeholderID string, err error, result *SendResult, notify func(domain.ChatMessage)) {
	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		err = domain.NewLLMServiceError(err)
	}
	logger.Get().Error("Chat completion failed",
		zap.String("clientID", c.clientID),
		zap.String("sessionID", sessionID),
		zap.Error(err))

	msg := domain.ChatMessage{
		ID:        placeholderID,
		Sender:    domain.SenderBot,
		Kind:      domain.MessageKindError,
		Text:      domain.ChatErrorPrefix + err.Error(),
		Timestamp: c.now(),
		Avatar:    domain.BotAvatar,
	}
	if msg.ID == "" {
		msg.ID = c.newID()
	}
	c.mutate(ctx, sessionID, func(s *domain.ChatSession) {
		if placeholderID == "" || !s.Replace(msg) {
			s.Append(msg)
		}
	})
	notify(msg)

	result.ErrorMessage = &msg
	result.Error = err
}

// mutate applies fn to the session with the given id and persists. A session
// deleted meanwhile is skipped.
func (c *Conversation) mutate(ctx context.Context, sessionID string, fn func(*domain.ChatSession)) {
	c.mu.Lock()
	s := c.findLocked(sessionID)
	if s == nil {
		c.mu.Unlock()
		logger.Get().Debug("Dropping update for deleted chat session", zap.String("sessionID", sessionID))
		return
	}
	fn(s)
	snap, v := c.snapshotLocked()
	c.mu.Unlock()
	c.save(ctx, snap, v)
}

func (c *Conversation) findLocked(id string) *domain.ChatSession {
	if id == "" {
		return nil
	}
	for _, s := range c.sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// createLocked starts a session and makes it active. When the chat is usable
// and the knowledge base has text, the session announces it.
func (c *Conversation) createLocked() *domain.ChatSession {
	s := domain.NewChatSession(c.newID(), c.now())
	if c.provider != nil && c.kb != nil && c.kb.HasText() {
		s.Append(domain.SystemMessage(c.newID(), domain.KnowledgeReadyText, c.now()))
	}
	c.sessions = append([]*domain.ChatSession{s}, c.sessions...)
	c.activeID = s.ID
	c.activateLocked(s.ID)
	return s
}

// activateLocked builds the chat handle of a session. A provider failure is
// logged; the handle is retried on the next send.
func (c *Conversation) activateLocked(id string) {
	s := c.findLocked(id)
	if s == nil || c.provider == nil {
		return
	}
	if _, err := c.handleLocked(s); err != nil {
		logger.Get().Warn("Failed to build chat handle", zap.String("sessionID", id), zap.Error(err))
	}
}

func (c *Conversation) handleLocked(s *domain.ChatSession) (domain.ChatHandle, error) {
	if h, ok := c.handles[s.ID]; ok {
		return h, nil
	}
	h, err := c.provider.NewChat(c.systemInstruction, s.HistoryTurns())
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, domain.NewLLMServiceError(err)
	}
	c.handles[s.ID] = h
	return h, nil
}

func (c *Conversation) snapshotLocked() (SessionSnapshot, uint64) {
	c.version++
	sessions := make([]*domain.ChatSession, 0, len(c.sessions))
	for _, s := range c.sessions {
		sessions = append(sessions, s.Clone())
	}
	return SessionSnapshot{Sessions: sessions, ActiveID: c.activeID}, c.version
}

// save writes a snapshot unless a newer one was already written.
func (c *Conversation) save(ctx context.Context, snap SessionSnapshot, version uint64) {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()
	if version <= c.persisted {
		return
	}
	c.persisted = version
	if err := c.store.Save(ctx, c.clientID, snap); err != nil {
		logger.Get().Warn("Failed to persist chat sessions", zap.String("clientID", c.clientID), zap.Error(err))
	}
}
