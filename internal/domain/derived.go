package domain

import "github.com/shopspring/decimal"

// FinancialSummary is derived on demand from ClientFinancialFacts and has no
// independent lifecycle. Monthly savings may be negative; that is a valid
// deficit-spending state, not an error.
type FinancialSummary struct {
	MonthlyIncome        decimal.Decimal `json:"monthlyIncome"`
	TotalMonthlyExpenses decimal.Decimal `json:"totalMonthlyExpenses"`
	MonthlySavings       decimal.Decimal `json:"monthlySavings"`
	SavingsRate          decimal.Decimal `json:"savingsRate"`
}

// NetWorthSummary is derived on demand. Net worth may be negative.
type NetWorthSummary struct {
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	NetWorth         decimal.Decimal `json:"netWorth"`
}

// RetirementProjection is the output of the retirement corpus projector.
type RetirementProjection struct {
	YearsToRetirement     int             `json:"yearsToRetirement"`
	FutureMonthlyExpenses decimal.Decimal `json:"futureMonthlyExpenses"`
	RequiredCorpus        decimal.Decimal `json:"requiredCorpus"`
}

// GoalFeasibility is the output of the goal feasibility analyzer for a
// single goal.
type GoalFeasibility struct {
	Feasible              bool            `json:"feasible"`
	RequiredMonthlySIP    decimal.Decimal `json:"requiredMonthlySIP"`
	AvailableCapacity     decimal.Decimal `json:"availableCapacity"`
	FeasibilityPercentage decimal.Decimal `json:"feasibilityPercentage"`
	YearsToGoal           int             `json:"yearsToGoal"`
	Reason                string          `json:"reason,omitempty"`
}

// HealthScore is the composed financial health score with its component
// breakdown. Total is always within [0, 100].
type HealthScore struct {
	Total                 int `json:"total"`
	SavingsRatePoints     int `json:"savingsRatePoints"`
	NetWorthPoints        int `json:"netWorthPoints"`
	DiversificationPoints int `json:"diversificationPoints"`
	DebtManagementPoints  int `json:"debtManagementPoints"`
}
