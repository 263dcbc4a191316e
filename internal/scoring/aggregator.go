package scoring

// Answer es una respuesta ya resuelta a su categoria.
type Answer struct {
	Category Category
	Response string
}

// Buckets guarda el valor de cada bucket para un lote. Un bucket ausente vale 0.
type Buckets map[Bucket]int64

// Metrics son las metricas financieras derivadas de un lote de respuestas.
type Metrics struct {
	RiskCapacity           float64 `json:"risk_capacity"`
	RiskTolerance          float64 `json:"risk_tolerance"`
	InvestingPotential     float64 `json:"investing_potential"`
	LiquidityRatio         float64 `json:"liquidity_ratio"`
	DebtToIncomeRatio      float64 `json:"debt_to_income_ratio"`
	InvestmentHorizonScore float64 `json:"investment_horizon_score"`
}

// Result agrupa la salida de un lote.
type Result struct {
	Buckets      Buckets
	Metrics      Metrics
	Unrecognized []Answer
}

// Batch acumula los aportes de un unico envio. No es seguro para uso
// concurrente; cada envio usa el suyo.
type Batch struct {
	scorer       *Scorer
	buckets      Buckets
	unrecognized []Answer
}

func (s *Scorer) NewBatch() *Batch {
	return &Batch{scorer: s, buckets: make(Buckets)}
}

// Add puntua una respuesta. Si la categoria se repite, el ultimo valor
// sobrescribe al anterior.
func (b *Batch) Add(category Category, response string) error {
	contributions, err := b.scorer.Score(category, response)
	if err != nil {
		return err
	}
	for _, c := range contributions {
		b.buckets[c.Bucket] = c.Value
		if !c.Recognized {
			b.unrecognized = append(b.unrecognized, Answer{Category: category, Response: response})
		}
	}
	return nil
}

// Result cierra el lote y calcula las metricas.
func (b *Batch) Result() Result {
	buckets := make(Buckets, len(b.buckets))
	for k, v := range b.buckets {
		buckets[k] = v
	}
	return Result{
		Buckets:      buckets,
		Metrics:      ComputeMetrics(buckets),
		Unrecognized: append([]Answer(nil), b.unrecognized...),
	}
}

// ScoreBatch puntua todas las respuestas de un envio. Un error de parseo
// invalida el lote completo.
func (s *Scorer) ScoreBatch(answers []Answer) (Result, error) {
	batch := s.NewBatch()
	for _, a := range answers {
		if err := batch.Add(a.Category, a.Response); err != nil {
			return Result{}, err
		}
	}
	return batch.Result(), nil
}

// ComputeMetrics aplica las formulas fijas sobre los buckets.
func ComputeMetrics(b Buckets) Metrics {
	riskCapacity := 10*b[BucketIncomeStability] +
		b[BucketSavingsRate] +
		b[BucketOwnsHouse] +
		b[BucketInvestmentExperience] +
		b[BucketFixedAssetAllocation] +
		b[BucketHasDependents] +
		b[BucketMajorFinancialGoals]

	riskTolerance := b[BucketPortfolioCheckingFreq] +
		b[BucketMarketDipAction] +
		b[BucketInvestmentStrategy] +
		b[BucketPortfolioCrashReaction] +
		b[BucketInvestmentType]

	return Metrics{
		RiskCapacity:           float64(riskCapacity),
		RiskTolerance:          float64(riskTolerance),
		InvestingPotential:     float64(b[BucketInvestingPotential]),
		LiquidityRatio:         float64(b[BucketLiquidityRatio]),
		DebtToIncomeRatio:      float64(b[BucketDebtToIncomeRatio]),
		InvestmentHorizonScore: float64(b[BucketInvestmentHorizon]),
	}
}
