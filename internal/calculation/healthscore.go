package calculation

import (
	"github.com/advisorhq/planengine/internal/domain"
	"github.com/shopspring/decimal"
)

// HealthScore composes the savings-rate, net-worth, investment-diversity,
// and debt-management components into a single bounded score. The result is
// always within [0, 100]; bad input degrades component scores, it never
// faults.
func (ce *CalculationEngine) HealthScore(facts *domain.ClientFinancialFacts) domain.HealthScore {
	summary := ce.FinancialSummary(facts)
	netWorth := ce.NetWorth(facts)

	score := domain.HealthScore{
		SavingsRatePoints:     ce.savingsRatePoints(summary.SavingsRate),
		NetWorthPoints:        ce.netWorthPoints(netWorth.NetWorth),
		DiversificationPoints: ce.diversityPoints(facts),
		DebtManagementPoints:  ce.debtPoints(netWorth.TotalLiabilities, facts),
	}

	total := score.SavingsRatePoints + score.NetWorthPoints +
		score.DiversificationPoints + score.DebtManagementPoints
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}
	score.Total = total

	return score
}

// savingsRatePoints awards the first tier the rate meets, top-down.
func (ce *CalculationEngine) savingsRatePoints(savingsRate decimal.Decimal) int {
	for _, tier := range ce.ScoreConfig.SavingsRateTiers {
		if savingsRate.GreaterThanOrEqual(tier.Threshold) {
			return tier.Points
		}
	}
	return ce.ScoreConfig.SavingsRateFloor
}

// netWorthPoints awards the first tier the net worth meets; negative net
// worth falls through every tier and scores zero.
func (ce *CalculationEngine) netWorthPoints(netWorth decimal.Decimal) int {
	for _, tier := range ce.ScoreConfig.NetWorthTiers {
		if netWorth.GreaterThanOrEqual(tier.Threshold) {
			return tier.Points
		}
	}
	return 0
}

// diversityPoints awards points per distinct non-zero investment category.
func (ce *CalculationEngine) diversityPoints(facts *domain.ClientFinancialFacts) int {
	if facts == nil {
		return 0
	}

	anyPositive := func(m map[string]decimal.Decimal) bool {
		for _, v := range m {
			if v.GreaterThan(decimalZero) {
				return true
			}
		}
		return false
	}

	categories := 0
	if facts.Assets.Cash.GreaterThan(decimalZero) {
		categories++
	}
	if facts.Assets.RealEstate.GreaterThan(decimalZero) {
		categories++
	}
	if anyPositive(facts.Assets.Equity) {
		categories++
	}
	if anyPositive(facts.Assets.FixedIncome) {
		categories++
	}
	if anyPositive(facts.Assets.Other) {
		categories++
	}

	points := categories * ce.ScoreConfig.DiversityPointsPerCategory
	if points > ce.ScoreConfig.DiversityMaxPoints {
		points = ce.ScoreConfig.DiversityMaxPoints
	}
	return points
}

// debtPoints awards the first tier the debt-to-annual-income percentage fits
// under. A debt-free client always takes the top tier; debt with no income
// to service it takes the floor.
func (ce *CalculationEngine) debtPoints(totalLiabilities decimal.Decimal, facts *domain.ClientFinancialFacts) int {
	tiers := ce.ScoreConfig.DebtRatioTiers
	if len(tiers) == 0 {
		return 0
	}

	if totalLiabilities.LessThanOrEqual(decimalZero) {
		return tiers[0].Points
	}

	annualIncome := decimalZero
	if facts != nil {
		annualIncome = facts.TotalIncome()
	}
	if annualIncome.LessThanOrEqual(decimalZero) {
		return ce.ScoreConfig.DebtRatioFloor
	}

	ratio := totalLiabilities.Div(annualIncome).Mul(decimalHundred)
	for _, tier := range tiers {
		if ratio.LessThanOrEqual(tier.Threshold) {
			return tier.Points
		}
	}
	return ce.ScoreConfig.DebtRatioFloor
}
