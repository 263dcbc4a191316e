package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"robo-advisor/internal/domain"
	"robo-advisor/internal/repository"
	"robo-advisor/internal/scoring"
)

var (
	ErrUnknownUser     = errors.New("unknown user")
	ErrEmptySubmission = errors.New("empty submission")
	ErrUnknownQuestion = errors.New("unknown question")

	ErrSubmissionNotFound = errors.New("submission not found")
)

// SubmittedAnswer es un par (pregunta, respuesta) tal como llega del cliente.
type SubmittedAnswer struct {
	QuestionID string
	Response   string
}

// QuestionnaireService puntua y persiste envios del cuestionario.
type QuestionnaireService struct {
	logger      *zap.Logger
	users       repository.UserRepository
	questions   repository.QuestionRepository
	submissions repository.SubmissionRepository
	scorer      *scoring.Scorer
}

func NewQuestionnaireService(
	logger *zap.Logger,
	users repository.UserRepository,
	questions repository.QuestionRepository,
	submissions repository.SubmissionRepository,
	scorer *scoring.Scorer,
) *QuestionnaireService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if scorer == nil {
		scorer = scoring.NewScorer(scoring.Options{})
	}
	return &QuestionnaireService{
		logger:      logger,
		users:       users,
		questions:   questions,
		submissions: submissions,
		scorer:      scorer,
	}
}

func (s *QuestionnaireService) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	return s.questions.List(ctx)
}

// Submit resuelve las preguntas, puntua el lote y guarda respuestas y
// metricas en una sola transaccion. Si el lote falla no se guarda nada.
func (s *QuestionnaireService) Submit(ctx context.Context, userID string, answers []SubmittedAnswer) (domain.FinancialMetrics, error) {
	if len(answers) == 0 {
		return domain.FinancialMetrics{}, ErrEmptySubmission
	}
	if _, err := lookupUser(ctx, s.users, userID); err != nil {
		return domain.FinancialMetrics{}, err
	}

	ids := make([]string, 0, len(answers))
	for _, a := range answers {
		ids = append(ids, strings.TrimSpace(a.QuestionID))
	}
	byID, err := s.questions.GetByIDs(ctx, ids)
	if err != nil {
		return domain.FinancialMetrics{}, fmt.Errorf("load questions: %w", err)
	}

	now := time.Now().UTC()
	submissionID := uuid.NewString()
	scored := make([]scoring.Answer, 0, len(answers))
	responses := make([]domain.QuestionResponse, 0, len(answers))
	for i, a := range answers {
		q, ok := byID[ids[i]]
		if !ok {
			return domain.FinancialMetrics{}, fmt.Errorf("%w: %s", ErrUnknownQuestion, ids[i])
		}
		responses = append(responses, domain.QuestionResponse{
			ID:           uuid.NewString(),
			UserID:       userID,
			QuestionID:   q.ID,
			SubmissionID: submissionID,
			Response:     a.Response,
			CreatedAt:    now,
		})
		category, ok := scoring.Resolve(q.Category, q.Text)
		if !ok {
			continue
		}
		scored = append(scored, scoring.Answer{Category: category, Response: a.Response})
	}

	result, err := s.scorer.ScoreBatch(scored)
	if err != nil {
		return domain.FinancialMetrics{}, err
	}
	for _, u := range result.Unrecognized {
		s.logger.Warn("unrecognized answer scored as zero",
			zap.String("user_id", userID),
			zap.String("category", string(u.Category)),
			zap.String("response", u.Response),
		)
	}

	metrics := domain.FinancialMetrics{
		ID:                     uuid.NewString(),
		UserID:                 userID,
		SubmissionID:           submissionID,
		RiskCapacity:           result.Metrics.RiskCapacity,
		RiskTolerance:          result.Metrics.RiskTolerance,
		InvestingPotential:     result.Metrics.InvestingPotential,
		LiquidityRatio:         result.Metrics.LiquidityRatio,
		DebtToIncomeRatio:      result.Metrics.DebtToIncomeRatio,
		InvestmentHorizonScore: result.Metrics.InvestmentHorizonScore,
		CreatedAt:              now,
	}
	if err := s.submissions.SaveSubmission(ctx, responses, metrics); err != nil {
		return domain.FinancialMetrics{}, fmt.Errorf("save submission: %w", err)
	}

	s.logger.Info("questionnaire submitted",
		zap.String("user_id", userID),
		zap.String("submission_id", submissionID),
		zap.Int("responses", len(responses)),
	)
	return metrics, nil
}

// SubmissionResponses devuelve las respuestas de un envio previo del usuario.
func (s *QuestionnaireService) SubmissionResponses(ctx context.Context, userID, submissionID string) ([]domain.QuestionResponse, error) {
	if _, err := lookupUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	responses, err := s.submissions.ListResponses(ctx, userID, strings.TrimSpace(submissionID))
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	if len(responses) == 0 {
		return nil, ErrSubmissionNotFound
	}
	return responses, nil
}

func lookupUser(ctx context.Context, users repository.UserRepository, userID string) (domain.User, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.User{}, ErrUnknownUser
	}
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUnknownUser
		}
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}
