package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"robo-advisor/internal/domain"
)

// JWTService emite, valida y revoca tokens de acceso.
type JWTService struct {
	secret    []byte
	accessTTL time.Duration
	issuer    string
	revoked   TokenRevocationStore
}

type Claims struct {
	UserID    string `json:"uid"`
	Username  string `json:"username"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

var (
	ErrJWTInvalid = errors.New("jwt invalid")
	ErrJWTExpired = errors.New("jwt expired")
	ErrJWTRevoked = errors.New("jwt revoked")
)

const tokenTypeAccess = "access"

func NewJWTService(secret string, accessTTL time.Duration, revoked TokenRevocationStore) *JWTService {
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	if revoked == nil {
		revoked = NewMemoryTokenRevocationStore()
	}
	return &JWTService{
		secret:    []byte(secret),
		accessTTL: accessTTL,
		issuer:    "robo-advisor",
		revoked:   revoked,
	}
}

// GenerateAccessToken devuelve el token firmado y su expiracion.
func (s *JWTService) GenerateAccessToken(user domain.User) (string, time.Time, error) {
	if len(s.secret) == 0 || strings.TrimSpace(user.ID) == "" {
		return "", time.Time{}, ErrJWTInvalid
	}
	now := time.Now().UTC()
	expiresAt := now.Add(s.accessTTL)
	claims := Claims{
		UserID:    user.ID,
		Username:  user.Username,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *JWTService) ParseAccessToken(ctx context.Context, accessToken string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrJWTInvalid
	}
	if strings.TrimSpace(accessToken) == "" {
		return Claims{}, ErrJWTInvalid
	}
	claims, err := s.parseToken(accessToken)
	if err != nil {
		return Claims{}, err
	}
	if claims.TokenType != tokenTypeAccess || !s.isValidClaims(claims) {
		return Claims{}, ErrJWTInvalid
	}
	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return Claims{}, err
	}
	if revoked {
		return Claims{}, ErrJWTRevoked
	}
	return claims, nil
}

// Revoke invalida el token hasta su expiracion natural.
func (s *JWTService) Revoke(ctx context.Context, accessToken string) error {
	claims, err := s.ParseAccessToken(ctx, accessToken)
	if err != nil {
		return err
	}
	if claims.ExpiresAt == nil {
		return ErrJWTInvalid
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	return s.revoked.Revoke(ctx, claims.ID, ttl)
}

func (s *JWTService) AccessTTL() time.Duration {
	return s.accessTTL
}

func (s *JWTService) parseToken(tokenString string) (Claims, error) {
	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrJWTExpired
		}
		return Claims{}, ErrJWTInvalid
	}
	return claims, nil
}

func (s *JWTService) isValidClaims(claims Claims) bool {
	if strings.TrimSpace(claims.UserID) == "" || strings.TrimSpace(claims.ID) == "" {
		return false
	}
	if claims.Subject != claims.UserID {
		return false
	}
	return strings.TrimSpace(claims.Issuer) == s.issuer
}
