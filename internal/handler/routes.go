package handler

import (
	"dadmind/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups the handlers mounted under /api.
type Handlers struct {
	Assessment *AssessmentHandler
	Chat       *ChatHandler
	System     *SystemHandler
}

// RegisterRoutes mounts the API routes on app.
func RegisterRoutes(app *fiber.App, h Handlers) {
	vm := middleware.NewValidationMiddleware()

	apiGroup := app.Group("/api")
	apiGroup.Get("/health", h.System.Health)
	apiGroup.Get("/greeting", h.System.Greeting)
	apiGroup.Get("/knowledge", h.System.KnowledgeStatus)

	assessmentGroup := apiGroup.Group("/assessment")
	assessmentGroup.Get("/questions", h.Assessment.GetQuestions)
	assessmentGroup.Post("", h.Assessment.Submit)
	resultID := vm.ValidateIDParam("result_id")
	assessmentGroup.Get("/results/:id", resultID, h.Assessment.GetResult)
	assessmentGroup.Get("/results/:id/advice", resultID, h.Assessment.GetAdvice)
	assessmentGroup.Get("/results/:id/report", resultID, h.Assessment.GetReport)

	chatGroup := apiGroup.Group("/chat", middleware.ClientScope())
	sessionID := vm.ValidateIDParam("session_id")
	chatGroup.Get("/sessions", h.Chat.ListSessions)
	chatGroup.Post("/sessions", h.Chat.CreateSession)
	chatGroup.Get("/sessions/:id", sessionID, h.Chat.GetSession)
	chatGroup.Put("/sessions/:id/active", sessionID, h.Chat.ActivateSession)
	chatGroup.Delete("/sessions/:id", sessionID, h.Chat.DeleteSession)
	chatGroup.Post("/messages", h.Chat.SendMessage)
}
