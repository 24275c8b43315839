package handler

import (
	"context"
	"strings"
	"time"

	"dadmind/internal/domain"
	"dadmind/internal/dto"

	"github.com/gofiber/fiber/v2"
)

const defaultGreetingName = "bạn"

// SystemHandler serves health, greeting and knowledge base diagnostics
type SystemHandler struct {
	knowledge *domain.KnowledgeBase
	store     domain.Cache
	aiEnabled bool
}

// NewSystemHandler accepts a nil store when sessions are not persisted.
func NewSystemHandler(knowledge *domain.KnowledgeBase, store domain.Cache, aiEnabled bool) *SystemHandler {
	return &SystemHandler{knowledge: knowledge, store: store, aiEnabled: aiEnabled}
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *SystemHandler) Health(c *fiber.Ctx) error {
	storeReady := false
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		storeReady = h.store.Ping(ctx) == nil
	}
	return c.JSON(dto.HealthResponse{Status: "ok", AIEnabled: h.aiEnabled, StoreReady: storeReady})
}

// Greeting godoc
// @Summary Greet a user by name
// @Tags system
// @Produce json
// @Param name query string false "Display name"
// @Success 200 {object} dto.GreetingResponse
// @Router /greeting [get]
func (h *SystemHandler) Greeting(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		name = defaultGreetingName
	}
	return c.JSON(dto.GreetingResponse{Greeting: domain.Greeting(name)})
}

// KnowledgeStatus godoc
// @Summary Knowledge base status
// @Description Reports the configured documents and which of them loaded
// @Tags system
// @Produce json
// @Success 200 {object} dto.KnowledgeStatusResponse
// @Router /knowledge [get]
func (h *SystemHandler) KnowledgeStatus(c *fiber.Ctx) error {
	status := h.knowledge.Status()
	descriptors := h.knowledge.Descriptors()
	names := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		names = append(names, d.Name)
	}
	return c.JSON(dto.KnowledgeStatusResponse{
		Loading:   status.Loading,
		Documents: names,
		Loaded:    status.Loaded,
		Errors:    status.Errors,
	})
}
