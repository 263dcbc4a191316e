package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"robo-advisor/internal/domain"
	"robo-advisor/internal/repository"
)

// UserService coordina alta e inicio de sesion de usuarios.
type UserService struct {
	logger  *zap.Logger
	users   repository.UserRepository
	limiter SigninRateLimiter
}

func NewUserService(logger *zap.Logger, users repository.UserRepository, limiter SigninRateLimiter) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limiter == nil {
		limiter = NewMemorySigninRateLimiter(15*time.Minute, 5)
	}
	return &UserService{
		logger:  logger,
		users:   users,
		limiter: limiter,
	}
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidSignup      = errors.New("invalid signup data")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("rate limited")
)

const minPasswordLength = 8

func (s *UserService) Signup(ctx context.Context, input SignupInput) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if username == "" || len(input.Password) < minPasswordLength {
		return domain.User{}, ErrInvalidSignup
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.User{}, ErrInvalidSignup
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		s.logger.Warn("signup rejected, username or email taken", zap.String("username", username))
		return domain.User{}, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	s.logger.Info("user created", zap.String("user_id", user.ID), zap.String("username", username))
	return user, nil
}

// Signin valida credenciales. Cada intento, fallido o no, consume cupo del limitador.
func (s *UserService) Signin(ctx context.Context, username, password string) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if !s.limiter.Allow(ctx, username) {
		s.logger.Warn("signin rate limited", zap.String("username", username))
		return domain.User{}, ErrRateLimited
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}
	if user.PasswordHash == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}
