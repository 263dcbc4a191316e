package domain

import "time"

// PortfolioRecommendation se deriva de un unico FinancialMetrics.
// EquityAmount y FixedIncomeAmount estan en unidades menores de Currency.
type PortfolioRecommendation struct {
	ID                    string    `json:"id"`
	UserID                string    `json:"user_id"`
	MetricsID             string    `json:"metrics_id"`
	PortfolioType         string    `json:"portfolio_type"`
	FinalScore            string    `json:"final_score"`
	EquityAllocation      int       `json:"equity_allocation"`
	FixedIncomeAllocation int       `json:"fixed_income_allocation"`
	EquityAmount          int64     `json:"equity_amount"`
	FixedIncomeAmount     int64     `json:"fixed_income_amount"`
	Currency              string    `json:"currency"`
	CreatedAt             time.Time `json:"created_at"`
}
