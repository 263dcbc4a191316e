package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"robo-advisor/internal/scoring"
	"robo-advisor/internal/service"
)

// QuestionnaireHandler expone el cuestionario y el envio de respuestas.
type QuestionnaireHandler struct {
	logger *zap.Logger
	svc    *service.QuestionnaireService
}

func NewQuestionnaireHandler(logger *zap.Logger, svc *service.QuestionnaireService) *QuestionnaireHandler {
	return &QuestionnaireHandler{logger: logger, svc: svc}
}

// ListQuestions maneja GET /questions.
func (h *QuestionnaireHandler) ListQuestions(c *gin.Context) {
	questions, err := h.svc.ListQuestions(c.Request.Context())
	if err != nil {
		h.logger.Error("list questions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list questions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

type submitRequest struct {
	Responses []struct {
		ID       string `json:"id" binding:"required"`
		Response string `json:"response"`
	} `json:"responses" binding:"required,dive"`
}

// Submit maneja POST /questions/responses.
func (h *QuestionnaireHandler) Submit(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid submission request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	answers := make([]service.SubmittedAnswer, 0, len(req.Responses))
	for _, r := range req.Responses {
		answers = append(answers, service.SubmittedAnswer{QuestionID: r.ID, Response: r.Response})
	}

	metrics, err := h.svc.Submit(c.Request.Context(), userID, answers)
	if err != nil {
		var perr *scoring.ParseError
		switch {
		case errors.As(err, &perr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":    "malformed numeric answer",
				"category": perr.Category,
				"response": perr.Answer,
			})
		case errors.Is(err, service.ErrEmptySubmission):
			c.JSON(http.StatusBadRequest, gin.H{"error": "no responses submitted"})
		case errors.Is(err, service.ErrUnknownQuestion):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUnknownUser):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		default:
			h.logger.Error("submit questionnaire failed", zap.Error(err), zap.String("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save responses"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Responses saved successfully.", "metrics": metrics})
}

// SubmissionResponses maneja GET /questions/responses/:submission_id.
func (h *QuestionnaireHandler) SubmissionResponses(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	responses, err := h.svc.SubmissionResponses(c.Request.Context(), userID, c.Param("submission_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
		case errors.Is(err, service.ErrUnknownUser):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		default:
			h.logger.Error("list submission responses failed", zap.Error(err), zap.String("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load responses"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"responses": responses})
}
