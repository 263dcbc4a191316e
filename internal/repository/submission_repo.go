package repository

import (
	"context"

	"github.com/rotisserie/eris"

	"robo-advisor/internal/db"
	"robo-advisor/internal/domain"
)

// SubmissionRepository persiste un lote de respuestas junto con las metricas
// derivadas, en una unica transaccion.
type SubmissionRepository interface {
	SaveSubmission(ctx context.Context, responses []domain.QuestionResponse, metrics domain.FinancialMetrics) error
	ListResponses(ctx context.Context, userID, submissionID string) ([]domain.QuestionResponse, error)
}

type PgSubmissionRepository struct {
	pool db.Pool
}

func NewPgSubmissionRepository(pool db.Pool) *PgSubmissionRepository {
	return &PgSubmissionRepository{pool: pool}
}

func (r *PgSubmissionRepository) SaveSubmission(ctx context.Context, responses []domain.QuestionResponse, metrics domain.FinancialMetrics) error {
	const insertResponse = `
		INSERT INTO question_responses (id, user_id, question_id, submission_id, response, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	const insertMetrics = `
		INSERT INTO financial_metrics (
			id, user_id, submission_id, risk_capacity, risk_tolerance, investing_potential,
			liquidity_ratio, debt_to_income_ratio, investment_horizon_score, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "submissions: begin transaction")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, resp := range responses {
		if _, err := tx.Exec(ctx, insertResponse,
			resp.ID,
			resp.UserID,
			resp.QuestionID,
			resp.SubmissionID,
			resp.Response,
			resp.CreatedAt,
		); err != nil {
			return eris.Wrapf(err, "submissions: insert response for question %s", resp.QuestionID)
		}
	}
	if _, err := tx.Exec(ctx, insertMetrics,
		metrics.ID,
		metrics.UserID,
		metrics.SubmissionID,
		metrics.RiskCapacity,
		metrics.RiskTolerance,
		metrics.InvestingPotential,
		metrics.LiquidityRatio,
		metrics.DebtToIncomeRatio,
		metrics.InvestmentHorizonScore,
		metrics.CreatedAt,
	); err != nil {
		return eris.Wrap(err, "submissions: insert financial metrics")
	}
	return eris.Wrap(tx.Commit(ctx), "submissions: commit")
}

func (r *PgSubmissionRepository) ListResponses(ctx context.Context, userID, submissionID string) ([]domain.QuestionResponse, error) {
	const query = `
		SELECT id, user_id, question_id, submission_id, response, created_at
		FROM question_responses
		WHERE user_id = $1 AND submission_id = $2
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID, submissionID)
	if err != nil {
		return nil, eris.Wrap(err, "submissions: list responses")
	}
	defer rows.Close()

	var out []domain.QuestionResponse
	for rows.Next() {
		var resp domain.QuestionResponse
		if err := rows.Scan(
			&resp.ID,
			&resp.UserID,
			&resp.QuestionID,
			&resp.SubmissionID,
			&resp.Response,
			&resp.CreatedAt,
		); err != nil {
			return nil, eris.Wrap(err, "submissions: scan response")
		}
		out = append(out, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "submissions: iterate responses")
	}
	return out, nil
}
