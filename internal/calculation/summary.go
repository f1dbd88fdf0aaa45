package calculation

import (
	"github.com/advisorhq/planengine/internal/domain"
)

// FinancialSummary derives monthly income, expenses, savings, and savings
// rate from raw client facts. Absent values count as zero; the calculator
// never fails. Monetary outputs are rounded to the nearest whole currency
// unit, the savings rate to two decimal places.
func (ce *CalculationEngine) FinancialSummary(facts *domain.ClientFinancialFacts) domain.FinancialSummary {
	if facts == nil {
		return domain.FinancialSummary{
			MonthlyIncome:        decimalZero,
			TotalMonthlyExpenses: decimalZero,
			MonthlySavings:       decimalZero,
			SavingsRate:          decimalZero,
		}
	}

	monthlyIncome := facts.AnnualIncome.Div(decimalTwelve).
		Add(facts.AdditionalIncome.Div(decimalTwelve))

	// Each expense category key contributes exactly once, whatever it is
	// named. Unknown categories are included, never double-counted.
	totalExpenses := decimalZero
	for _, amount := range facts.MonthlyExpenses {
		totalExpenses = totalExpenses.Add(amount)
	}

	monthlySavings := monthlyIncome.Sub(totalExpenses)

	// A zero income does not fault the rate; it is defined as 0.
	savingsRate := decimalZero
	if monthlyIncome.GreaterThan(decimalZero) {
		savingsRate = monthlySavings.Div(monthlyIncome).Mul(decimalHundred).Round(2)
	}

	return domain.FinancialSummary{
		MonthlyIncome:        monthlyIncome.Round(0),
		TotalMonthlyExpenses: totalExpenses.Round(0),
		MonthlySavings:       monthlySavings.Round(0),
		SavingsRate:          savingsRate,
	}
}
