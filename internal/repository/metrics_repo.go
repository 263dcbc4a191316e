package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"robo-advisor/internal/db"
	"robo-advisor/internal/domain"
)

type MetricsRepository interface {
	LatestByUserID(ctx context.Context, userID string) (domain.FinancialMetrics, error)
	ListByUserID(ctx context.Context, userID string, limit int) ([]domain.FinancialMetrics, error)
}

type PgMetricsRepository struct {
	pool db.Pool
}

func NewPgMetricsRepository(pool db.Pool) *PgMetricsRepository {
	return &PgMetricsRepository{pool: pool}
}

const metricsColumns = `id, user_id, submission_id, risk_capacity, risk_tolerance, investing_potential, liquidity_ratio, debt_to_income_ratio, investment_horizon_score, created_at`

// LatestByUserID devuelve pgx.ErrNoRows si el usuario no tiene metricas.
func (r *PgMetricsRepository) LatestByUserID(ctx context.Context, userID string) (domain.FinancialMetrics, error) {
	query := `SELECT ` + metricsColumns + ` FROM financial_metrics WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`
	m, err := scanMetrics(r.pool.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.FinancialMetrics{}, err
	}
	if err != nil {
		return domain.FinancialMetrics{}, eris.Wrap(err, "metrics: latest")
	}
	return m, nil
}

// ListByUserID devuelve el historial, del mas reciente al mas antiguo.
func (r *PgMetricsRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]domain.FinancialMetrics, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + metricsColumns + ` FROM financial_metrics WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, eris.Wrap(err, "metrics: list")
	}
	defer rows.Close()

	var out []domain.FinancialMetrics
	for rows.Next() {
		m, err := scanMetrics(rows)
		if err != nil {
			return nil, eris.Wrap(err, "metrics: scan")
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "metrics: iterate")
	}
	return out, nil
}

func scanMetrics(row rowScanner) (domain.FinancialMetrics, error) {
	var m domain.FinancialMetrics
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.SubmissionID,
		&m.RiskCapacity,
		&m.RiskTolerance,
		&m.InvestingPotential,
		&m.LiquidityRatio,
		&m.DebtToIncomeRatio,
		&m.InvestmentHorizonScore,
		&m.CreatedAt,
	)
	return m, err
}
