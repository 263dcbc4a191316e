package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"robo-advisor/internal/service"
)

// PortfolioHandler expone la recomendacion de cartera y el historial.
type PortfolioHandler struct {
	logger *zap.Logger
	svc    *service.PortfolioService
}

func NewPortfolioHandler(logger *zap.Logger, svc *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{logger: logger, svc: svc}
}

// Generate maneja POST /portfolio.
func (h *PortfolioHandler) Generate(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	rec, err := h.svc.Generate(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err, "generate portfolio failed")
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// MetricsHistory maneja GET /metrics/history?limit=N.
func (h *PortfolioHandler) MetricsHistory(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	items, err := h.svc.MetricsHistory(c.Request.Context(), userID, queryLimit(c))
	if err != nil {
		h.writeError(c, err, "metrics history failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"metrics": items})
}

// RecommendationHistory maneja GET /portfolio/history?limit=N.
func (h *PortfolioHandler) RecommendationHistory(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	items, err := h.svc.RecommendationHistory(c.Request.Context(), userID, queryLimit(c))
	if err != nil {
		h.writeError(c, err, "recommendation history failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": items})
}

func (h *PortfolioHandler) writeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrQuestionnaireIncomplete):
		c.JSON(http.StatusBadRequest, gin.H{"error": "please fill the questionnaire"})
	case errors.Is(err, service.ErrUnknownUser):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
	default:
		h.logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func queryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		return 0
	}
	return limit
}
