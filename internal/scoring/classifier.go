package scoring

import "github.com/shopspring/decimal"

// PortfolioType es una de las cinco carteras posibles.
type PortfolioType string

const (
	PortfolioUltraConservative PortfolioType = "Ultra Conservative"
	PortfolioConservative      PortfolioType = "Conservative"
	PortfolioModerateGrowth    PortfolioType = "Moderate Growth"
	PortfolioAggressiveGrowth  PortfolioType = "Aggressive Growth"
	PortfolioHighGrowth        PortfolioType = "High Growth"
)

// Allocation es el reparto porcentual de una cartera. Equity + FixedIncome = 100.
type Allocation struct {
	Type        PortfolioType `json:"portfolio_type"`
	Equity      int           `json:"equity_allocation"`
	FixedIncome int           `json:"fixed_income_allocation"`
}

// Classification es el resultado del clasificador.
type Classification struct {
	Allocation
	FinalScore decimal.Decimal `json:"final_score"`
}

var (
	weightRiskCapacity       = decimal.RequireFromString("0.30")
	weightRiskTolerance      = decimal.RequireFromString("0.30")
	weightInvestingPotential = decimal.RequireFromString("0.15")
	weightLiquidityRatio     = decimal.RequireFromString("0.10")
	weightDebtToIncome       = decimal.RequireFromString("0.10")
	weightHorizon            = decimal.RequireFromString("0.05")
)

type tier struct {
	below      decimal.Decimal
	allocation Allocation
}

// Tramos en orden ascendente; cada limite inferior es inclusivo.
var tiers = []tier{
	{decimal.NewFromInt(30), Allocation{PortfolioUltraConservative, 20, 80}},
	{decimal.NewFromInt(50), Allocation{PortfolioConservative, 35, 65}},
	{decimal.NewFromInt(70), Allocation{PortfolioModerateGrowth, 50, 50}},
	{decimal.NewFromInt(85), Allocation{PortfolioAggressiveGrowth, 70, 30}},
}

var topAllocation = Allocation{PortfolioHighGrowth, 90, 10}

// FinalScore combina las metricas con los pesos fijos. Se calcula en
// decimal para que los limites de los tramos sean exactos.
func FinalScore(m Metrics) decimal.Decimal {
	return weightRiskCapacity.Mul(decimal.NewFromFloat(m.RiskCapacity)).
		Add(weightRiskTolerance.Mul(decimal.NewFromFloat(m.RiskTolerance))).
		Add(weightInvestingPotential.Mul(decimal.NewFromFloat(m.InvestingPotential))).
		Add(weightLiquidityRatio.Mul(decimal.NewFromFloat(m.LiquidityRatio))).
		Sub(weightDebtToIncome.Mul(decimal.NewFromFloat(m.DebtToIncomeRatio))).
		Add(weightHorizon.Mul(decimal.NewFromFloat(m.InvestmentHorizonScore)))
}

// ClassifyScore elige el primer tramo cuyo limite superior supera el score.
func ClassifyScore(score decimal.Decimal) Allocation {
	for _, t := range tiers {
		if score.LessThan(t.below) {
			return t.allocation
		}
	}
	return topAllocation
}

// Classify calcula el score final y la cartera correspondiente.
func Classify(m Metrics) Classification {
	score := FinalScore(m)
	return Classification{
		Allocation: ClassifyScore(score),
		FinalScore: score,
	}
}

// Allocations devuelve todas las carteras en orden ascendente de riesgo.
func Allocations() []Allocation {
	out := make([]Allocation, 0, len(tiers)+1)
	for _, t := range tiers {
		out = append(out, t.allocation)
	}
	return append(out, topAllocation)
}
