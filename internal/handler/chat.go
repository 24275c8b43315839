package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"dadmind/internal/domain"
	"dadmind/internal/dto"
	"dadmind/internal/logger"
	"dadmind/internal/middleware"
	"dadmind/internal/service"
	"dadmind/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ChatHandler handles chat session HTTP requests. Every request is scoped to
// the client resolved by middleware.ClientScope.
type ChatHandler struct {
	registry  *service.ConversationRegistry
	validator *validation.Validator
}

// NewChatHandler creates a new ChatHandler instance
func NewChatHandler(registry *service.ConversationRegistry) *ChatHandler {
	return &ChatHandler{
		registry:  registry,
		validator: validation.NewValidator(),
	}
}

func (h *ChatHandler) conversation(c *fiber.Ctx) (*service.Conversation, error) {
	return h.registry.Get(c.UserContext(), middleware.ClientID(c))
}

// ListSessions godoc
// @Summary List chat sessions
// @Tags chat
// @Produce json
// @Param X-Client-ID header string false "Client identifier"
// @Success 200 {object} dto.SessionListResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /chat/sessions [get]
func (h *ChatHandler) ListSessions(c *fiber.Ctx) error {
	conv, err := h.conversation(c)
	if err != nil {
		return err
	}
	activeID := conv.ActiveID()
	sessions := conv.Sessions()
	resp := dto.SessionListResponse{Sessions: make([]dto.SessionSummary, 0, len(sessions)), ActiveID: activeID}
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, toSessionSummary(s, activeID))
	}
	return c.JSON(resp)
}

// CreateSession godoc
// @Summary Start a chat session
// @Description Creates a session and makes it active
// @Tags chat
// @Produce json
// @Param X-Client-ID header string false "Client identifier"
// @Success 201 {object} dto.SessionResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /chat/sessions [post]
func (h *ChatHandler) CreateSession(c *fiber.Ctx) error {
	conv, err := h.conversation(c)
	if err != nil {
		return err
	}
	s, err := conv.CreateSession(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toSessionResponse(s, s.ID))
}

// GetSession godoc
// @Summary Get a chat session
// @Tags chat
// @Produce json
// @Param X-Client-ID header string false "Client identifier"
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /chat/sessions/{id} [get]
func (h *ChatHandler) GetSession(c *fiber.Ctx) error {
	conv, err := h.conversation(c)
	if err != nil {
		return err
	}
	s, err := conv.Session(middleware.ValidatedID(c))
	if err != nil {
		return err
	}
	return c.JSON(toSessionResponse(s, conv.ActiveID()))
}

// ActivateSession godoc
// @Summary Switch the active session
// @Tags chat
// @Produce json
// @Param X-Client-ID header string false "Client identifier"
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /chat/sessions/{id}/active [put]
func (h *ChatHandler) ActivateSession(c *fiber.Ctx) error {
	conv, err := h.conversation(c)
	if err != nil {
		return err
	}
	s, err := conv.SwitchSession(c.UserContext(), middleware.ValidatedID(c))
	if err != nil {
		return err
	}
	return c.JSON(toSessionResponse(s, s.ID))
}

// DeleteSession godoc
// @Summary Delete a chat session
// @Description Returns the session that is active afterwards
// @Tags chat
// @Produce json
// @Param X-Client-ID header string false "Client identifier"
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /chat/sessions/{id} [delete]
func (h *ChatHandler) DeleteSession(c *fiber.Ctx) error {
	conv, err := h.conversation(c)
	if err != nil {
		return err
	}
	active, err := conv.DeleteSession(c.UserContext(), middleware.ValidatedID(c))
	if err != nil {
		return err
	}
	return c.JSON(toSessionResponse(active, active.ID))
}

// SendMessage godoc
// @Summary Send a chat message
// @Description With "Accept: text/event-stream" every message update is streamed as a "message" event followed by a "done" event; otherwise the final outcome is returned as JSON
// @Tags chat
// @Accept json
// @Produce json,text/event-stream
// @Param X-Client-ID header string false "Client identifier"
// @Param request body dto.SendMessageRequest true "Message text"
// @Success 200 {object} dto.SendMessageResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /chat/messages [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be a JSON object with a text field")
	}
	if errs := h.validator.ValidateSendMessage(req.Text); len(errs) > 0 {
		return errs
	}
	conv, err := h.conversation(c)
	if err != nil {
		return err
	}

	if !strings.Contains(c.Get(fiber.HeaderAccept), "text/event-stream") {
		res, err := conv.SendMessage(c.UserContext(), req.Text, nil)
		if err != nil {
			return err
		}
		return c.JSON(toSendMessageResponse(res))
	}

	clientID := middleware.ClientID(c)
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		// The fiber context is recycled once the handler returns.
		ctx := context.Background()
		res, err := conv.SendMessage(ctx, req.Text, func(m domain.ChatMessage) {
			writeEvent(w, "message", toMessageResponse(m))
		})
		if err != nil {
			logger.Get().Warn("Streamed send rejected", zap.String("clientID", clientID), zap.Error(err))
			writeEvent(w, "error", middleware.ErrorResponse{
				Code:    errorCode(err),
				Message: err.Error(),
			})
			return
		}
		writeEvent(w, "done", toSendMessageResponse(res))
	})
	return nil
}

func writeEvent(w *bufio.Writer, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Get().Error("Failed to encode stream event", zap.String("event", event), zap.Error(err))
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	if err := w.Flush(); err != nil {
		logger.Get().Debug("Stream client went away", zap.String("event", event), zap.Error(err))
	}
}
