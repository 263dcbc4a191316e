package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"robo-advisor/internal/service"
)

// Pinger comprueba una dependencia externa para /healthz.
type Pinger func(ctx context.Context) error

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	corsOrigins []string,
	jwtSvc *service.JWTService,
	authH *AuthHandler,
	questionnaireH *QuestionnaireHandler,
	portfolioH *PortfolioHandler,
	ping Pinger,
) *gin.Engine {
	r := gin.New()

	r.Use(
		zapLoggerMiddleware(logger),
		gin.Recovery(),
		processTimeMiddleware(),
		corsMiddleware(corsOrigins),
		jsonValidationMiddleware(),
		jsonContentTypeMiddleware(),
	)

	r.GET("/healthz", healthHandler(ping))

	auth := r.Group("/auth")
	auth.POST("/signup", authH.Signup)
	auth.POST("/signin", authH.Signin)
	auth.POST("/signout", JWTAuthMiddleware(jwtSvc), authH.Signout)

	private := r.Group("", JWTAuthMiddleware(jwtSvc))
	private.GET("/questions", questionnaireH.ListQuestions)
	private.POST("/questions/responses", questionnaireH.Submit)
	private.GET("/questions/responses/:submission_id", questionnaireH.SubmissionResponses)
	private.GET("/metrics/history", portfolioH.MetricsHistory)
	private.POST("/portfolio", portfolioH.Generate)
	private.GET("/portfolio/history", portfolioH.RecommendationHistory)

	return r
}

func healthHandler(ping Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
