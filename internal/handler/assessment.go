package handler

import (
	"dadmind/internal/domain"
	"dadmind/internal/dto"
	"dadmind/internal/logger"
	"dadmind/internal/middleware"
	"dadmind/internal/service"
	"dadmind/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AssessmentHandler handles the self-assessment HTTP requests
type AssessmentHandler struct {
	service   service.AssessmentService
	validator *validation.Validator
}

// NewAssessmentHandler creates a new AssessmentHandler instance
func NewAssessmentHandler(service service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// GetQuestions godoc
// @Summary List assessment questions
// @Description Returns the questionnaire in display order
// @Tags assessment
// @Produce json
// @Success 200 {object} dto.QuestionsResponse
// @Router /assessment/questions [get]
func (h *AssessmentHandler) GetQuestions(c *fiber.Ctx) error {
	questions := h.service.Questions()
	resp := dto.QuestionsResponse{
		Questions: make([]dto.QuestionResponse, 0, len(questions)),
		Total:     len(questions),
	}
	for _, q := range questions {
		resp.Questions = append(resp.Questions, toQuestionResponse(q))
	}
	return c.JSON(resp)
}

// Submit godoc
// @Summary Submit an assessment
// @Description Scores a complete answer set and stores the result
// @Tags assessment
// @Accept json
// @Produce json
// @Param request body dto.SubmitAssessmentRequest true "Answers keyed by question id"
// @Success 201 {object} dto.AssessmentResultResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /assessment [post]
func (h *AssessmentHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be a JSON object with an answers map")
	}
	if errs := h.validator.ValidateAnswers(req.Answers); len(errs) > 0 {
		return errs
	}

	stored, err := h.service.Submit(c.UserContext(), domain.AnswerSet(req.Answers))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toResultResponse(stored, domain.DefaultThresholds.CategoryAttention))
}

// GetResult godoc
// @Summary Get an assessment result
// @Tags assessment
// @Produce json
// @Param id path string true "Result ID"
// @Success 200 {object} dto.AssessmentResultResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /assessment/results/{id} [get]
func (h *AssessmentHandler) GetResult(c *fiber.Ctx) error {
	stored, err := h.service.Result(c.UserContext(), middleware.ValidatedID(c))
	if err != nil {
		return err
	}
	return c.JSON(toResultResponse(stored, domain.DefaultThresholds.CategoryAttention))
}

// GetAdvice godoc
// @Summary Get advice for a result
// @Description A synthesis failure is still a 200: the fallback text is shown with the error next to it
// @Tags assessment
// @Produce json
// @Param id path string true "Result ID"
// @Success 200 {object} dto.AdviceResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /assessment/results/{id}/advice [get]
func (h *AssessmentHandler) GetAdvice(c *fiber.Ctx) error {
	id := middleware.ValidatedID(c)
	outcome, err := h.service.Advice(c.UserContext(), id)
	if err != nil {
		return err
	}

	resp := dto.AdviceResponse{ResultID: id, Advice: outcome.Advice, Cached: outcome.Cached}
	if outcome.Err != nil {
		logger.Get().Warn("Serving advice fallback", zap.String("resultID", id), zap.Error(outcome.Err))
		resp.Error = service.AdviceErrorMessage(outcome.Err)
		resp.ErrorCode = errorCode(outcome.Err)
	}
	return c.JSON(resp)
}

// GetReport godoc
// @Summary Get the detailed report for a result
// @Tags assessment
// @Produce json
// @Param id path string true "Result ID"
// @Success 200 {object} dto.ReportResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /assessment/results/{id}/report [get]
func (h *AssessmentHandler) GetReport(c *fiber.Ctx) error {
	id := middleware.ValidatedID(c)
	report, err := h.service.Report(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.ReportResponse{ResultID: id, Report: report.Report, ActionPlan: report.ActionPlan})
}
