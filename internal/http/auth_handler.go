package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"robo-advisor/internal/domain"
	"robo-advisor/internal/service"
)

// AuthHandler expone alta, inicio y cierre de sesion.
type AuthHandler struct {
	logger       *zap.Logger
	userServ     *service.UserService
	jwtServ      *service.JWTService
	cookieSecure bool
}

func NewAuthHandler(logger *zap.Logger, userServ *service.UserService, jwtServ *service.JWTService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		logger:       logger,
		userServ:     userServ,
		jwtServ:      jwtServ,
		cookieSecure: cookieSecure,
	}
}

type authResponse struct {
	Username string `json:"username"`
	Message  string `json:"message"`
	Token    string `json:"token"`
}

// Signup maneja POST /auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid signup request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.userServ.Signup(c.Request.Context(), service.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "username already taken"})
		case errors.Is(err, service.ErrInvalidSignup):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signup data"})
		default:
			h.logger.Error("signup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		}
		return
	}

	h.respondWithToken(c, http.StatusCreated, user, "User created successfully.")
}

// Signin maneja POST /auth/signin.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid signin request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.userServ.Signin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
		default:
			h.logger.Error("signin failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not sign in"})
		}
		return
	}

	h.respondWithToken(c, http.StatusOK, user, "Sign in successful.")
}

// Signout maneja POST /auth/signout. Requiere JWTAuthMiddleware.
func (h *AuthHandler) Signout(c *gin.Context) {
	token := c.GetString(authTokenKey)
	if err := h.jwtServ.Revoke(c.Request.Context(), token); err != nil {
		h.logger.Error("signout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not sign out"})
		return
	}
	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out successfully."})
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user domain.User, message string) {
	token, expiresAt, err := h.jwtServ.GenerateAccessToken(user)
	if err != nil {
		h.logger.Error("jwt issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}
	h.setCookie(c, token, int(time.Until(expiresAt).Seconds()))
	c.JSON(status, authResponse{
		Username: user.Username,
		Message:  message,
		Token:    token,
	})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookie, value, maxAge, "/", "", h.cookieSecure, true)
}
