package repository

import (
	"context"

	"github.com/rotisserie/eris"

	"robo-advisor/internal/db"
	"robo-advisor/internal/domain"
)

type RecommendationRepository interface {
	Create(ctx context.Context, rec domain.PortfolioRecommendation) error
	ListByUserID(ctx context.Context, userID string, limit int) ([]domain.PortfolioRecommendation, error)
}

type PgRecommendationRepository struct {
	pool db.Pool
}

func NewPgRecommendationRepository(pool db.Pool) *PgRecommendationRepository {
	return &PgRecommendationRepository{pool: pool}
}

func (r *PgRecommendationRepository) Create(ctx context.Context, rec domain.PortfolioRecommendation) error {
	const query = `
		INSERT INTO portfolio_recommendations (
			id, user_id, metrics_id, portfolio_type, final_score, equity_allocation,
			fixed_income_allocation, equity_amount, fixed_income_amount, currency, created_at
		) VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		rec.ID,
		rec.UserID,
		rec.MetricsID,
		rec.PortfolioType,
		rec.FinalScore,
		rec.EquityAllocation,
		rec.FixedIncomeAllocation,
		rec.EquityAmount,
		rec.FixedIncomeAmount,
		rec.Currency,
		rec.CreatedAt,
	)
	return eris.Wrap(err, "recommendations: create")
}

func (r *PgRecommendationRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]domain.PortfolioRecommendation, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
		SELECT id, user_id, metrics_id, portfolio_type, final_score::text, equity_allocation,
			fixed_income_allocation, equity_amount, fixed_income_amount, currency, created_at
		FROM portfolio_recommendations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, eris.Wrap(err, "recommendations: list")
	}
	defer rows.Close()

	var out []domain.PortfolioRecommendation
	for rows.Next() {
		var rec domain.PortfolioRecommendation
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.MetricsID,
			&rec.PortfolioType,
			&rec.FinalScore,
			&rec.EquityAllocation,
			&rec.FixedIncomeAllocation,
			&rec.EquityAmount,
			&rec.FixedIncomeAmount,
			&rec.Currency,
			&rec.CreatedAt,
		); err != nil {
			return nil, eris.Wrap(err, "recommendations: scan")
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "recommendations: iterate")
	}
	return out, nil
}
