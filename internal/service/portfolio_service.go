package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"robo-advisor/internal/domain"
	"robo-advisor/internal/email"
	"robo-advisor/internal/repository"
	"robo-advisor/internal/scoring"
)

// ErrQuestionnaireIncomplete indica que el usuario aun no tiene metricas.
var ErrQuestionnaireIncomplete = errors.New("questionnaire not completed")

const (
	defaultCurrency     = "INR"
	defaultHistoryLimit = 20
)

// PortfolioService genera recomendaciones a partir de las ultimas metricas.
type PortfolioService struct {
	logger          *zap.Logger
	users           repository.UserRepository
	metrics         repository.MetricsRepository
	recommendations repository.RecommendationRepository
	notifier        email.Sender
	currency        string
}

func NewPortfolioService(
	logger *zap.Logger,
	users repository.UserRepository,
	metrics repository.MetricsRepository,
	recommendations repository.RecommendationRepository,
	notifier email.Sender,
	currency string,
) *PortfolioService {
	if logger == nil {
		logger = zap.NewNop()
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if money.GetCurrency(currency) == nil {
		logger.Warn("unknown portfolio currency, falling back", zap.String("currency", currency), zap.String("fallback", defaultCurrency))
		currency = defaultCurrency
	}
	return &PortfolioService{
		logger:          logger,
		users:           users,
		metrics:         metrics,
		recommendations: recommendations,
		notifier:        notifier,
		currency:        currency,
	}
}

// Generate clasifica las ultimas metricas del usuario y guarda la recomendacion.
func (s *PortfolioService) Generate(ctx context.Context, userID string) (domain.PortfolioRecommendation, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return domain.PortfolioRecommendation{}, err
	}

	latest, err := s.metrics.LatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PortfolioRecommendation{}, ErrQuestionnaireIncomplete
		}
		return domain.PortfolioRecommendation{}, fmt.Errorf("load metrics: %w", err)
	}

	c := scoring.Classify(scoring.Metrics{
		RiskCapacity:           latest.RiskCapacity,
		RiskTolerance:          latest.RiskTolerance,
		InvestingPotential:     latest.InvestingPotential,
		LiquidityRatio:         latest.LiquidityRatio,
		DebtToIncomeRatio:      latest.DebtToIncomeRatio,
		InvestmentHorizonScore: latest.InvestmentHorizonScore,
	})

	equity, fixed, err := splitAmount(latest.InvestingPotential, s.currency, c.Equity, c.FixedIncome)
	if err != nil {
		return domain.PortfolioRecommendation{}, err
	}

	rec := domain.PortfolioRecommendation{
		ID:                    uuid.NewString(),
		UserID:                userID,
		MetricsID:             latest.ID,
		PortfolioType:         string(c.Type),
		FinalScore:            c.FinalScore.String(),
		EquityAllocation:      c.Equity,
		FixedIncomeAllocation: c.FixedIncome,
		EquityAmount:          equity.Amount(),
		FixedIncomeAmount:     fixed.Amount(),
		Currency:              s.currency,
		CreatedAt:             time.Now().UTC(),
	}
	if err := s.recommendations.Create(ctx, rec); err != nil {
		return domain.PortfolioRecommendation{}, fmt.Errorf("save recommendation: %w", err)
	}
	s.logger.Info("portfolio generated",
		zap.String("user_id", userID),
		zap.String("portfolio_type", rec.PortfolioType),
		zap.String("final_score", rec.FinalScore),
	)

	s.notify(ctx, user, rec, equity, fixed)
	return rec, nil
}

func (s *PortfolioService) MetricsHistory(ctx context.Context, userID string, limit int) ([]domain.FinancialMetrics, error) {
	if _, err := s.loadUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.metrics.ListByUserID(ctx, userID, historyLimit(limit))
}

func (s *PortfolioService) RecommendationHistory(ctx context.Context, userID string, limit int) ([]domain.PortfolioRecommendation, error) {
	if _, err := s.loadUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.recommendations.ListByUserID(ctx, userID, historyLimit(limit))
}

func (s *PortfolioService) loadUser(ctx context.Context, userID string) (domain.User, error) {
	return lookupUser(ctx, s.users, userID)
}

// notify no falla la generacion: el correo es opcional.
func (s *PortfolioService) notify(ctx context.Context, user domain.User, rec domain.PortfolioRecommendation, equity, fixed *money.Money) {
	if s.notifier == nil || user.Email == "" {
		return
	}
	err := s.notifier.SendPortfolioSummary(ctx, user.Email, email.PortfolioSummary{
		Username:           user.Username,
		PortfolioType:      rec.PortfolioType,
		FinalScore:         rec.FinalScore,
		EquityPercent:      rec.EquityAllocation,
		FixedIncomePercent: rec.FixedIncomeAllocation,
		EquityAmount:       equity.Display(),
		FixedIncomeAmount:  fixed.Display(),
	})
	if errors.Is(err, email.ErrSenderDisabled) {
		s.logger.Debug("portfolio summary not sent", zap.Error(err))
		return
	}
	if err != nil {
		s.logger.Warn("send portfolio summary failed", zap.Error(err), zap.String("user_id", user.ID))
	}
}

// allocateLimit es el mayor importe en unidades menores que Allocate puede
// multiplicar por un porcentaje sin desbordar int64.
const allocateLimit = math.MaxInt64 / 100

// ErrAmountOutOfRange se devuelve si el importe no cabe en unidades menores.
var ErrAmountOutOfRange = errors.New("investing amount out of range")

// splitAmount reparte el importe invertible en unidades menores de la moneda.
// Allocate asigna el resto de redondeo sin perder centimos. Por encima de
// allocateLimit el reparto se hace con decimal y el resto va a renta fija.
func splitAmount(amount float64, currency string, equityPct, fixedPct int) (*money.Money, *money.Money, error) {
	if amount <= 0 {
		return money.New(0, currency), money.New(0, currency), nil
	}
	cur := money.GetCurrency(currency)
	factor := decimal.New(1, int32(cur.Fraction))
	minorDec := decimal.NewFromFloat(amount).Mul(factor).Floor()
	if minorDec.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return nil, nil, fmt.Errorf("%w: %s", ErrAmountOutOfRange, minorDec.String())
	}
	minor := minorDec.IntPart()

	if minor > allocateLimit {
		equity := minorDec.Mul(decimal.NewFromInt(int64(equityPct))).
			Div(decimal.NewFromInt(int64(equityPct + fixedPct))).
			Floor().IntPart()
		return money.New(equity, currency), money.New(minor-equity, currency), nil
	}

	parts, err := money.New(minor, currency).Allocate(equityPct, fixedPct)
	if err != nil {
		return nil, nil, fmt.Errorf("allocate amount: %w", err)
	}
	return parts[0], parts[1], nil
}

func historyLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return defaultHistoryLimit
	}
	return limit
}
