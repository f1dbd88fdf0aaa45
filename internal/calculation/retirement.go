package calculation

import (
	"github.com/advisorhq/planengine/internal/domain"
	"github.com/shopspring/decimal"
)

// RetirementProjection projects future monthly expenses under inflation and
// sizes the required retirement corpus. Expenses at retirement are assumed
// at the configured income-replacement ratio of current monthly income; the
// corpus funds them at the safe withdrawal rate in perpetuity.
//
// When retirement age is not beyond the current age the projection
// degenerates cleanly: zero compounding years, corpus equal to 25x the
// annualized current expense level at a 4% withdrawal rate.
func (ce *CalculationEngine) RetirementProjection(currentAge, retirementAge int, monthlyIncome decimal.Decimal) domain.RetirementProjection {
	years := retirementAge - currentAge
	if years < 0 {
		years = 0
	}

	expensesAtRetirement := monthlyIncome.Mul(ce.Assumptions.IncomeReplacementRatio)

	growth := decimalOne.Add(ce.Assumptions.InflationRate).Pow(decimal.NewFromInt(int64(years)))
	futureMonthlyExpenses := expensesAtRetirement.Mul(growth)

	requiredCorpus := decimalZero
	if ce.Assumptions.SafeWithdrawalRate.GreaterThan(decimalZero) {
		requiredCorpus = futureMonthlyExpenses.Mul(decimalTwelve).Div(ce.Assumptions.SafeWithdrawalRate)
	}

	return domain.RetirementProjection{
		YearsToRetirement:     years,
		FutureMonthlyExpenses: futureMonthlyExpenses.Round(0),
		RequiredCorpus:        requiredCorpus.Round(0),
	}
}
