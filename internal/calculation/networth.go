package calculation

import (
	"github.com/advisorhq/planengine/internal/domain"
)

// NetWorth sums the nested asset and liability categories into totals and
// net worth. Every leaf value is counted exactly once; missing nested
// structures are treated as all-zero. Outputs are rounded to the nearest
// whole currency unit.
func (ce *CalculationEngine) NetWorth(facts *domain.ClientFinancialFacts) domain.NetWorthSummary {
	if facts == nil {
		return domain.NetWorthSummary{
			TotalAssets:      decimalZero,
			TotalLiabilities: decimalZero,
			NetWorth:         decimalZero,
		}
	}

	totalAssets := facts.Assets.Total().Round(0)
	totalLiabilities := facts.Liabilities.Total().Round(0)

	return domain.NetWorthSummary{
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		NetWorth:         totalAssets.Sub(totalLiabilities),
	}
}
