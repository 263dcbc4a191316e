package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_DocumentedTable(t *testing.T) {
	cases := []struct {
		category Category
		answer   string
		bucket   Bucket
		want     int64
	}{
		{CategoryInvestmentMode, "One Time", BucketInvestmentType, 5},
		{CategoryInvestmentMode, "Monthly SIP", BucketInvestmentType, 10},
		{CategoryIncomeRegularity, "Regular monthly income", BucketIncomeStability, 10},
		{CategoryIncomeRegularity, "Irregular income", BucketIncomeStability, 5},
		{CategoryIncomeRegularity, "No fixed income", BucketIncomeStability, 0},
		{CategoryHomeownership, "Yes", BucketOwnsHouse, 5},
		{CategoryHomeownership, "No", BucketOwnsHouse, 0},
		{CategorySavingsRate, ">=30%", BucketSavingsRate, 10},
		{CategorySavingsRate, "10-30%", BucketSavingsRate, 5},
		{CategorySavingsRate, "<10%", BucketSavingsRate, 0},
		{CategoryInvestingExperience, "more than 10 years", BucketInvestmentExperience, 10},
		{CategoryInvestingExperience, "5-10 years", BucketInvestmentExperience, 7},
		{CategoryInvestingExperience, "1-5 years", BucketInvestmentExperience, 5},
		{CategoryInvestingExperience, "less than 1 year", BucketInvestmentExperience, 0},
		{CategoryFixedAssetAllocation, "<20%", BucketFixedAssetAllocation, 10},
		{CategoryFixedAssetAllocation, "20-50%", BucketFixedAssetAllocation, 5},
		{CategoryFixedAssetAllocation, ">50%", BucketFixedAssetAllocation, 0},
		{CategoryDependents, "Yes", BucketHasDependents, -10},
		{CategoryDependents, "No", BucketHasDependents, 10},
		{CategoryMajorGoals, "No", BucketMajorFinancialGoals, 0},
		{CategoryMajorGoals, "Yes", BucketMajorFinancialGoals, -5},
		{CategoryCheckingFrequency, "Every day", BucketPortfolioCheckingFreq, -10},
		{CategoryCheckingFrequency, "Every week", BucketPortfolioCheckingFreq, -5},
		{CategoryCheckingFrequency, "Every month", BucketPortfolioCheckingFreq, 0},
		{CategoryCheckingFrequency, "Once a year", BucketPortfolioCheckingFreq, 5},
		{CategoryDipAction, "down 10%", BucketMarketDipAction, -10},
		{CategoryDipAction, "down 20%", BucketMarketDipAction, -5},
		{CategoryDipAction, "down 30%", BucketMarketDipAction, 0},
		{CategoryDipAction, "I would not sell", BucketMarketDipAction, 10},
		{CategoryStrategy, "capital preservation", BucketInvestmentStrategy, 0},
		{CategoryStrategy, "moderate growth", BucketInvestmentStrategy, 5},
		{CategoryStrategy, "aggressive growth", BucketInvestmentStrategy, 10},
		{CategoryCrashReaction, "Sell everything", BucketPortfolioCrashReaction, -10},
		{CategoryCrashReaction, "Sell some", BucketPortfolioCrashReaction, -5},
		{CategoryCrashReaction, "Hold and wait", BucketPortfolioCrashReaction, 5},
		{CategoryCrashReaction, "Buy more", BucketPortfolioCrashReaction, 10},
		{CategoryInvestmentHorizon, "Less than 1 year", BucketInvestmentHorizon, 0},
		{CategoryInvestmentHorizon, "1-3 years", BucketInvestmentHorizon, 3},
		{CategoryInvestmentHorizon, "3-5 years", BucketInvestmentHorizon, 5},
		{CategoryInvestmentHorizon, "More than 5 years", BucketInvestmentHorizon, 10},
		{CategoryEmergencyFund, "Less than 3 months", BucketLiquidityRatio, 0},
		{CategoryEmergencyFund, "3-6 months", BucketLiquidityRatio, 5},
		{CategoryEmergencyFund, "More than 6 months", BucketLiquidityRatio, 10},
		{CategoryEMIPercentage, "Less than 20%", BucketDebtToIncomeRatio, 10},
		{CategoryEMIPercentage, "20-40%", BucketDebtToIncomeRatio, 5},
		{CategoryEMIPercentage, "More than 40%", BucketDebtToIncomeRatio, 0},
	}

	s := NewScorer(Options{})
	for _, tc := range cases {
		t.Run(string(tc.category)+"/"+tc.answer, func(t *testing.T) {
			got, err := s.Score(tc.category, tc.answer)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tc.bucket, got[0].Bucket)
			assert.Equal(t, tc.want, got[0].Value)
			assert.True(t, got[0].Recognized)
		})
	}
}

func TestScore_EveryKnownAnswerIsRecognized(t *testing.T) {
	s := NewScorer(Options{})
	for _, c := range Categories() {
		for _, answer := range KnownAnswers(c) {
			got, err := s.Score(c, answer)
			require.NoError(t, err)
			require.NotEmpty(t, got, "category %s", c)
			assert.True(t, got[0].Recognized, "category %s answer %q", c, answer)
		}
	}
}

func TestScore_UnknownAnswerIsNeutral(t *testing.T) {
	s := NewScorer(Options{})
	for _, answer := range []string{"", "yes", " Yes", "Yes ", "maybe"} {
		got, err := s.Score(CategoryHomeownership, answer)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, BucketOwnsHouse, got[0].Bucket)
		assert.Zero(t, got[0].Value)
		assert.False(t, got[0].Recognized)
	}
}

func TestScore_UnknownCategoryContributesNothing(t *testing.T) {
	s := NewScorer(Options{})
	got, err := s.Score(Category("favourite_colour"), "blue")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestScore_InvestingAmount(t *testing.T) {
	s := NewScorer(Options{})

	got, err := s.Score(CategoryInvestingAmount, "5000")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, BucketInvestingPotential, got[0].Bucket)
	assert.Equal(t, int64(5000), got[0].Value)

	got, err = s.Score(CategoryInvestingAmount, " 250 ")
	require.NoError(t, err)
	assert.Equal(t, int64(250), got[0].Value)

	for _, bad := range []string{"abc", "", "10,000", "12.5"} {
		_, err := s.Score(CategoryInvestingAmount, bad)
		require.Error(t, err, "answer %q", bad)
		assert.True(t, errors.Is(err, ErrMalformedNumericAnswer))
		var pe *ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, bad, pe.Answer)
		assert.Equal(t, CategoryInvestingAmount, pe.Category)
	}
}

func TestScore_InvestingAmountBounds(t *testing.T) {
	s := NewScorer(Options{})

	got, err := s.Score(CategoryInvestingAmount, "9007199254740992")
	require.NoError(t, err)
	assert.Equal(t, MaxInvestingAmount, got[0].Value)
	m := ComputeMetrics(Buckets{BucketInvestingPotential: got[0].Value})
	assert.Equal(t, got[0].Value, int64(m.InvestingPotential), "stored without rounding")

	for _, bad := range []string{"9007199254740993", "-9007199254740993", "99999999999999999999"} {
		_, err := s.Score(CategoryInvestingAmount, bad)
		require.Error(t, err, "answer %q", bad)
		assert.True(t, errors.Is(err, ErrMalformedNumericAnswer))
	}

	_, err = s.Score(CategoryInvestingAmount, "9007199254740993")
	assert.True(t, errors.Is(err, ErrAmountOutOfRange))
	assert.Contains(t, err.Error(), "exceeds")
}

func TestScore_LegacyDependents(t *testing.T) {
	s := NewScorer(Options{LegacyDependents: true})

	got, err := s.Score(CategoryDependents, "Yes")
	require.NoError(t, err)
	assert.Empty(t, got, "dependents answer is ignored in legacy mode")

	got, err = s.Score(CategoryInvestmentHorizon, "More than 5 years")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, BucketInvestmentHorizon, got[0].Bucket)
	assert.Equal(t, int64(10), got[0].Value)
	assert.Equal(t, BucketHasDependents, got[1].Bucket)
	assert.Zero(t, got[1].Value)
}

func TestResolve(t *testing.T) {
	c, ok := Resolve("", TextSavingsRate)
	assert.True(t, ok)
	assert.Equal(t, CategorySavingsRate, c)

	c, ok = Resolve(string(CategoryStrategy), "any text")
	assert.True(t, ok)
	assert.Equal(t, CategoryStrategy, c)

	_, ok = Resolve("", "what is your savings rate?")
	assert.False(t, ok, "text match is case sensitive and exact")

	_, ok = Resolve("", TextSavingsRate+" ")
	assert.False(t, ok)

	_, ok = Resolve("unknown", TextSavingsRate)
	assert.False(t, ok, "a declared category wins over the text")
}
