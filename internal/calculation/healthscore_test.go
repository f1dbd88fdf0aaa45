package calculation

import (
	"testing"

	"github.com/advisorhq/planengine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func strongFacts() *domain.ClientFinancialFacts {
	return &domain.ClientFinancialFacts{
		AnnualIncome: decimal.NewFromInt(2400000),
		MonthlyExpenses: map[string]decimal.Decimal{
			"living": decimal.NewFromInt(100000),
		},
		Assets: domain.Assets{
			Cash:       decimal.NewFromInt(1000000),
			RealEstate: decimal.NewFromInt(5000000),
			Equity: map[string]decimal.Decimal{
				"stocks": decimal.NewFromInt(2000000),
			},
			FixedIncome: map[string]decimal.Decimal{
				"ppf": decimal.NewFromInt(1000000),
			},
			Other: map[string]decimal.Decimal{
				"gold": decimal.NewFromInt(500000),
			},
		},
	}
}

func TestHealthScore_PerfectScore(t *testing.T) {
	engine := NewCalculationEngine()

	score := engine.HealthScore(strongFacts())

	assert.Equal(t, 30, score.SavingsRatePoints, "50% savings rate takes the top tier")
	assert.Equal(t, 25, score.NetWorthPoints, "net worth above 50L takes the top tier")
	assert.Equal(t, 20, score.DiversificationPoints, "five categories cap at 20")
	assert.Equal(t, 25, score.DebtManagementPoints, "debt-free clients take the top tier")
	assert.Equal(t, 100, score.Total)
}

func TestHealthScore_EmptyFacts(t *testing.T) {
	engine := NewCalculationEngine()

	score := engine.HealthScore(&domain.ClientFinancialFacts{})

	assert.Equal(t, 10, score.SavingsRatePoints, "zero rate falls to the floor")
	assert.Equal(t, 5, score.NetWorthPoints, "zero net worth still meets the >=0 tier")
	assert.Equal(t, 0, score.DiversificationPoints)
	assert.Equal(t, 25, score.DebtManagementPoints, "no debt is the best debt position")
	assert.Equal(t, 40, score.Total)
}

func TestHealthScore_SavingsRateTiers(t *testing.T) {
	engine := NewCalculationEngine()

	cases := []struct {
		rate   decimal.Decimal
		points int
	}{
		{decimal.NewFromInt(25), 30},
		{decimal.NewFromInt(20), 30},
		{decimal.NewFromInt(17), 25},
		{decimal.NewFromInt(12), 20},
		{decimal.NewFromInt(7), 15},
		{decimal.NewFromInt(3), 10},
		{decimal.NewFromInt(-10), 10},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.points, engine.savingsRatePoints(tc.rate),
			"rate %s", tc.rate)
	}
}

func TestHealthScore_NetWorthTiers(t *testing.T) {
	engine := NewCalculationEngine()

	cases := []struct {
		netWorth decimal.Decimal
		points   int
	}{
		{decimal.NewFromInt(6000000), 25},
		{decimal.NewFromInt(3000000), 20},
		{decimal.NewFromInt(1500000), 15},
		{decimal.NewFromInt(700000), 10},
		{decimal.NewFromInt(100), 5},
		{decimal.NewFromInt(-200000), 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.points, engine.netWorthPoints(tc.netWorth),
			"net worth %s", tc.netWorth)
	}
}

func TestHealthScore_DebtTiers(t *testing.T) {
	engine := NewCalculationEngine()
	annualIncome := decimal.NewFromInt(1000000)

	cases := []struct {
		liabilities decimal.Decimal
		points      int
	}{
		{decimal.Zero, 25},
		{decimal.NewFromInt(150000), 20},
		{decimal.NewFromInt(350000), 15},
		{decimal.NewFromInt(550000), 10},
		{decimal.NewFromInt(900000), 5},
	}
	for _, tc := range cases {
		facts := &domain.ClientFinancialFacts{AnnualIncome: annualIncome}
		assert.Equal(t, tc.points, engine.debtPoints(tc.liabilities, facts),
			"liabilities %s", tc.liabilities)
	}
}

func TestHealthScore_DebtWithoutIncome(t *testing.T) {
	engine := NewCalculationEngine()

	points := engine.debtPoints(decimal.NewFromInt(100000), &domain.ClientFinancialFacts{})

	assert.Equal(t, 5, points, "debt with no income to service it takes the floor")
}

func TestHealthScore_Bounds(t *testing.T) {
	engine := NewCalculationEngine()

	inputs := []*domain.ClientFinancialFacts{
		nil,
		{},
		strongFacts(),
		{
			Liabilities: domain.Liabilities{
				Loans: decimal.NewFromInt(100000000),
			},
		},
	}
	for i, facts := range inputs {
		score := engine.HealthScore(facts)
		assert.GreaterOrEqual(t, score.Total, 0, "case %d", i)
		assert.LessOrEqual(t, score.Total, 100, "case %d", i)
	}
}
