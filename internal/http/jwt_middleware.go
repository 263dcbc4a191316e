package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"robo-advisor/internal/service"
)

const (
	authClaimsKey = "auth_claims"
	authTokenKey  = "auth_token"
	authCookie    = "jwt_token"
)

// JWTAuthMiddleware valida el token de acceso (cookie o cabecera Bearer)
// y guarda claims y token en el contexto.
func JWTAuthMiddleware(jwtSvc *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSvc == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "jwt not configured"})
			return
		}

		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := jwtSvc.ParseAccessToken(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrJWTRevoked):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user signed out"})
			case errors.Is(err, service.ErrJWTExpired):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
			case errors.Is(err, service.ErrJWTInvalid):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			default:
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "could not validate token"})
			}
			return
		}

		c.Set(authClaimsKey, claims)
		c.Set(authTokenKey, token)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(authCookie); err == nil && strings.TrimSpace(cookie) != "" {
		return strings.TrimSpace(cookie)
	}
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) > len("Bearer ") && strings.EqualFold(header[:len("Bearer ")], "bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return ""
}

// GetAuthClaims obtiene claims de JWT desde el contexto.
func GetAuthClaims(c *gin.Context) (service.Claims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := val.(service.Claims)
	return claims, ok
}

func authUserID(c *gin.Context) (string, bool) {
	claims, ok := GetAuthClaims(c)
	if !ok || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}
