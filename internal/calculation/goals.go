package calculation

import (
	"github.com/advisorhq/planengine/internal/domain"
	"github.com/shopspring/decimal"
)

// ReasonPastTargetYear explains an infeasible goal whose target year offers
// no investment horizon.
const ReasonPastTargetYear = "target year is in the past or current year"

// GoalFeasibility computes the monthly contribution required to reach a goal
// by its target year and judges it against the client's monthly investment
// capacity. The required SIP inverts the ordinary-annuity future value at
// the configured expected annual return.
//
// Goals whose target year is not in the future are reported infeasible via
// an explicit branch; the annuity formula is never evaluated with a
// non-positive horizon.
func (ce *CalculationEngine) GoalFeasibility(goal domain.Goal, monthlyCapacity decimal.Decimal, currentYear int) domain.GoalFeasibility {
	yearsToGoal := goal.TargetYear - currentYear
	if yearsToGoal <= 0 {
		return domain.GoalFeasibility{
			Feasible:              false,
			RequiredMonthlySIP:    decimalZero,
			AvailableCapacity:     monthlyCapacity,
			FeasibilityPercentage: decimalZero,
			YearsToGoal:           yearsToGoal,
			Reason:                ReasonPastTargetYear,
		}
	}

	monthlyRate := ce.Assumptions.ExpectedAnnualReturn.Div(decimalTwelve)
	months := int64(yearsToGoal) * 12

	// FV = SIP * ((1+r)^n - 1) / r, inverted for SIP.
	requiredSIP := decimalZero
	if monthlyRate.GreaterThan(decimalZero) {
		factor := decimalOne.Add(monthlyRate).Pow(decimal.NewFromInt(months)).Sub(decimalOne)
		if factor.GreaterThan(decimalZero) {
			requiredSIP = goal.TargetAmount.Mul(monthlyRate).Div(factor)
		}
	} else if months > 0 {
		// Zero return degenerates to straight-line accumulation.
		requiredSIP = goal.TargetAmount.Div(decimal.NewFromInt(months))
	}

	// The reported SIP and the feasibility verdict must agree, so the
	// verdict is taken on the rounded figure.
	requiredSIP = requiredSIP.Round(0)
	feasible := requiredSIP.LessThanOrEqual(monthlyCapacity)

	feasibilityPct := decimalZero
	if requiredSIP.GreaterThan(decimalZero) {
		feasibilityPct = monthlyCapacity.Div(requiredSIP).Mul(decimalHundred).Round(2)
	}

	return domain.GoalFeasibility{
		Feasible:              feasible,
		RequiredMonthlySIP:    requiredSIP,
		AvailableCapacity:     monthlyCapacity.Round(0),
		FeasibilityPercentage: feasibilityPct,
		YearsToGoal:           yearsToGoal,
	}
}
