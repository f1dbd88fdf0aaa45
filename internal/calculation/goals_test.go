package calculation

import (
	"testing"

	"github.com/advisorhq/planengine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCurrentYear = 2026

func TestGoalFeasibility_PastTargetYear(t *testing.T) {
	engine := NewCalculationEngine()

	for _, targetYear := range []int{testCurrentYear, testCurrentYear - 1, testCurrentYear - 10} {
		goal := domain.Goal{
			GoalName:     "house",
			TargetAmount: decimal.NewFromInt(5000000),
			TargetYear:   targetYear,
		}

		result := engine.GoalFeasibility(goal, decimal.NewFromInt(100000), testCurrentYear)

		assert.False(t, result.Feasible, "target year %d must be infeasible", targetYear)
		assert.Equal(t, ReasonPastTargetYear, result.Reason)
		assert.True(t, result.RequiredMonthlySIP.IsZero(),
			"the annuity formula must not run for a non-positive horizon")
	}
}

func TestGoalFeasibility_AnnuityExample(t *testing.T) {
	engine := NewCalculationEngine()
	capacity := decimal.NewFromInt(20000)
	goal := domain.Goal{
		GoalName:     "education",
		TargetAmount: decimal.NewFromInt(2500000),
		TargetYear:   testCurrentYear + 10,
	}

	result := engine.GoalFeasibility(goal, capacity, testCurrentYear)

	require.Equal(t, 10, result.YearsToGoal)
	// 2500000 * 0.01 / (1.01^120 - 1) is roughly 10868/month.
	assert.True(t, result.RequiredMonthlySIP.GreaterThan(decimal.NewFromInt(10000)))
	assert.True(t, result.RequiredMonthlySIP.LessThan(decimal.NewFromInt(11500)))
	// The verdict and the reported SIP must agree exactly.
	assert.Equal(t, result.RequiredMonthlySIP.LessThanOrEqual(capacity), result.Feasible)
	assert.True(t, result.Feasible)
	assert.Empty(t, result.Reason)
}

func TestGoalFeasibility_VerdictMatchesReportedSIP(t *testing.T) {
	engine := NewCalculationEngine()

	for _, amount := range []int64{100000, 1000000, 2500000, 10000000, 50000000} {
		goal := domain.Goal{
			GoalName:     "goal",
			TargetAmount: decimal.NewFromInt(amount),
			TargetYear:   testCurrentYear + 5,
		}
		capacity := decimal.NewFromInt(20000)

		result := engine.GoalFeasibility(goal, capacity, testCurrentYear)

		assert.Equal(t, result.RequiredMonthlySIP.LessThanOrEqual(capacity), result.Feasible,
			"no off-by-rounding mismatch for amount %d", amount)
	}
}

func TestGoalFeasibility_Infeasible(t *testing.T) {
	engine := NewCalculationEngine()
	goal := domain.Goal{
		GoalName:     "villa",
		TargetAmount: decimal.NewFromInt(100000000),
		TargetYear:   testCurrentYear + 3,
	}

	result := engine.GoalFeasibility(goal, decimal.NewFromInt(20000), testCurrentYear)

	assert.False(t, result.Feasible)
	assert.True(t, result.FeasibilityPercentage.GreaterThan(decimal.Zero))
	assert.True(t, result.FeasibilityPercentage.LessThan(decimal.NewFromInt(100)),
		"capacity covers only part of the required SIP, got %s", result.FeasibilityPercentage)
}

func TestGoalFeasibility_ZeroReturn(t *testing.T) {
	assumptions := DefaultAssumptions()
	assumptions.ExpectedAnnualReturn = decimal.Zero
	engine := NewCalculationEngineWithConfig(assumptions, DefaultScoreConfig())

	goal := domain.Goal{
		GoalName:     "car",
		TargetAmount: decimal.NewFromInt(1200000),
		TargetYear:   testCurrentYear + 10,
	}

	result := engine.GoalFeasibility(goal, decimal.NewFromInt(20000), testCurrentYear)

	assert.True(t, result.RequiredMonthlySIP.Equal(decimal.NewFromInt(10000)),
		"zero return degenerates to 1200000/120 months, got %s", result.RequiredMonthlySIP)
	assert.True(t, result.Feasible)
}
