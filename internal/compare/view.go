package compare

import (
	"fmt"

	"github.com/advisorhq/planengine/internal/domain"
)

// RecommendationLabel renders the AI recommendation pick for display.
// both_suitable and neither_suitable are their own categories and are never
// coerced into a plan label.
func RecommendationLabel(c *domain.Comparison, pick domain.SuggestedPlan) string {
	switch pick {
	case domain.SuggestPlanA:
		return planLabel("Plan A", c.PlanA)
	case domain.SuggestPlanB:
		return planLabel("Plan B", c.PlanB)
	case domain.SuggestBothSuitable:
		return "Both plans suitable"
	case domain.SuggestNeitherSuitable:
		return "Neither plan suitable"
	default:
		return string(pick)
	}
}

// WinnerLabel renders the advisor decision for display under the same
// no-coercion rule as RecommendationLabel.
func WinnerLabel(c *domain.Comparison, pick domain.WinnerPlan) string {
	switch pick {
	case domain.WinnerPlanA:
		return planLabel("Plan A", c.PlanA)
	case domain.WinnerPlanB:
		return planLabel("Plan B", c.PlanB)
	case domain.WinnerBoth:
		return "Both plans"
	case domain.WinnerNeither:
		return "Neither plan"
	default:
		return string(pick)
	}
}

func planLabel(side string, plan domain.PlanSnapshot) string {
	return fmt.Sprintf("%s (%s v%d)", side, plan.PlanID, plan.Version)
}
