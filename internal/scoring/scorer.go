package scoring

import (
	"strconv"
	"strings"
)

// MaxInvestingAmount es el mayor importe que las metricas (float64) guardan
// sin redondeo: 2^53.
const MaxInvestingAmount int64 = 1 << 53

// Bucket es el acumulador al que alimenta cada categoria.
type Bucket string

const (
	BucketInvestmentType         Bucket = "investment_type"
	BucketIncomeStability        Bucket = "income_stability"
	BucketOwnsHouse              Bucket = "owns_house"
	BucketSavingsRate            Bucket = "savings_rate"
	BucketInvestmentExperience   Bucket = "investment_experience"
	BucketFixedAssetAllocation   Bucket = "fixed_asset_allocation"
	BucketHasDependents          Bucket = "has_dependents"
	BucketMajorFinancialGoals    Bucket = "major_financial_goals"
	BucketPortfolioCheckingFreq  Bucket = "portfolio_checking_freq"
	BucketMarketDipAction        Bucket = "market_dip_action"
	BucketInvestmentStrategy     Bucket = "investment_strategy"
	BucketPortfolioCrashReaction Bucket = "portfolio_crash_reaction"
	BucketInvestmentHorizon      Bucket = "investment_horizon"
	BucketLiquidityRatio         Bucket = "liquidity_ratio"
	BucketDebtToIncomeRatio      Bucket = "debt_to_income_ratio"
	BucketInvestingPotential     Bucket = "investing_potential"
)

type option struct {
	answer string
	value  int64
}

type answerTable struct {
	bucket  Bucket
	options []option
}

func (t answerTable) lookup(answer string) (int64, bool) {
	for _, o := range t.options {
		if o.answer == answer {
			return o.value, true
		}
	}
	return 0, false
}

var answerTables = map[Category]answerTable{
	CategoryInvestmentMode: {BucketInvestmentType, []option{
		{"One Time", 5},
		{"Monthly SIP", 10},
	}},
	CategoryIncomeRegularity: {BucketIncomeStability, []option{
		{"Regular monthly income", 10},
		{"Irregular income", 5},
		{"No fixed income", 0},
	}},
	CategoryHomeownership: {BucketOwnsHouse, []option{
		{"Yes", 5},
		{"No", 0},
	}},
	CategorySavingsRate: {BucketSavingsRate, []option{
		{">=30%", 10},
		{"10-30%", 5},
		{"<10%", 0},
	}},
	CategoryInvestingExperience: {BucketInvestmentExperience, []option{
		{"more than 10 years", 10},
		{"5-10 years", 7},
		{"1-5 years", 5},
		{"less than 1 year", 0},
	}},
	CategoryFixedAssetAllocation: {BucketFixedAssetAllocation, []option{
		{"<20%", 10},
		{"20-50%", 5},
		{">50%", 0},
	}},
	CategoryDependents: {BucketHasDependents, []option{
		{"Yes", -10},
		{"No", 10},
	}},
	CategoryMajorGoals: {BucketMajorFinancialGoals, []option{
		{"No", 0},
		{"Yes", -5},
	}},
	CategoryCheckingFrequency: {BucketPortfolioCheckingFreq, []option{
		{"Every day", -10},
		{"Every week", -5},
		{"Every month", 0},
		{"Once a year", 5},
	}},
	CategoryDipAction: {BucketMarketDipAction, []option{
		{"down 10%", -10},
		{"down 20%", -5},
		{"down 30%", 0},
		{"I would not sell", 10},
	}},
	CategoryStrategy: {BucketInvestmentStrategy, []option{
		{"capital preservation", 0},
		{"moderate growth", 5},
		{"aggressive growth", 10},
	}},
	CategoryCrashReaction: {BucketPortfolioCrashReaction, []option{
		{"Sell everything", -10},
		{"Sell some", -5},
		{"Hold and wait", 5},
		{"Buy more", 10},
	}},
	CategoryInvestmentHorizon: {BucketInvestmentHorizon, []option{
		{"Less than 1 year", 0},
		{"1-3 years", 3},
		{"3-5 years", 5},
		{"More than 5 years", 10},
	}},
	CategoryEmergencyFund: {BucketLiquidityRatio, []option{
		{"Less than 3 months", 0},
		{"3-6 months", 5},
		{"More than 6 months", 10},
	}},
	CategoryEMIPercentage: {BucketDebtToIncomeRatio, []option{
		{"Less than 20%", 10},
		{"20-40%", 5},
		{"More than 40%", 0},
	}},
}

// KnownAnswers devuelve las respuestas reconocidas de una categoria, en orden.
func KnownAnswers(c Category) []string {
	t, ok := answerTables[c]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(t.options))
	for _, o := range t.options {
		out = append(out, o.answer)
	}
	return out
}

// Contribution es el aporte de una respuesta a un bucket.
type Contribution struct {
	Bucket     Bucket
	Value      int64
	Recognized bool
}

// Options ajusta el comportamiento del scorer.
type Options struct {
	// LegacyDependents reproduce el mapeo historico: el bucket has_dependents
	// se deriva de la respuesta del horizonte de inversion y la pregunta de
	// dependientes se ignora.
	LegacyDependents bool
}

// Scorer convierte pares (categoria, respuesta) en aportes a buckets.
type Scorer struct {
	opts Options
}

func NewScorer(opts Options) *Scorer {
	return &Scorer{opts: opts}
}

// Score devuelve los aportes de una respuesta. Una categoria desconocida no
// aporta nada; una respuesta desconocida aporta 0 con Recognized=false.
// Solo investing_amount puede fallar, con *ParseError.
func (s *Scorer) Score(category Category, answer string) ([]Contribution, error) {
	if category == CategoryInvestingAmount {
		amount, err := strconv.ParseInt(strings.TrimSpace(answer), 10, 64)
		if err != nil {
			return nil, &ParseError{Category: category, Answer: answer, Err: err}
		}
		if amount > MaxInvestingAmount || amount < -MaxInvestingAmount {
			return nil, &ParseError{Category: category, Answer: answer, Err: ErrAmountOutOfRange}
		}
		return []Contribution{{Bucket: BucketInvestingPotential, Value: amount, Recognized: true}}, nil
	}

	if s.legacy() && category == CategoryDependents {
		return nil, nil
	}

	table, ok := answerTables[category]
	if !ok {
		return nil, nil
	}
	value, found := table.lookup(answer)
	out := []Contribution{{Bucket: table.bucket, Value: value, Recognized: found}}

	if s.legacy() && category == CategoryInvestmentHorizon {
		dependents := answerTables[CategoryDependents]
		legacyValue, _ := dependents.lookup(answer)
		out = append(out, Contribution{Bucket: BucketHasDependents, Value: legacyValue, Recognized: true})
	}
	return out, nil
}

func (s *Scorer) legacy() bool {
	return s != nil && s.opts.LegacyDependents
}
