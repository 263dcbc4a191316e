package domain

import "time"

// FinancialMetrics se deriva de un unico lote de respuestas y nunca se modifica.
type FinancialMetrics struct {
	ID                     string    `json:"id"`
	UserID                 string    `json:"user_id"`
	SubmissionID           string    `json:"submission_id"`
	RiskCapacity           float64   `json:"risk_capacity"`
	RiskTolerance          float64   `json:"risk_tolerance"`
	InvestingPotential     float64   `json:"investing_potential"`
	LiquidityRatio         float64   `json:"liquidity_ratio"`
	DebtToIncomeRatio      float64   `json:"debt_to_income_ratio"`
	InvestmentHorizonScore float64   `json:"investment_horizon_score"`
	CreatedAt              time.Time `json:"created_at"`
}
