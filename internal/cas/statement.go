// Package cas consumes the output of the external account-statement parser.
// Only the shape of the payload is validated here; parser correctness is the
// parser's problem. Missing numeric fields default to zero.
package cas

import (
	"github.com/advisorhq/planengine/internal/domain"
	"github.com/shopspring/decimal"
)

// AssetAllocation is the parser's equity/debt split, in percent.
type AssetAllocation struct {
	EquityPercentage decimal.Decimal `json:"equity_percentage"`
	DebtPercentage   decimal.Decimal `json:"debt_percentage"`
}

// Summary is the statement-level rollup.
type Summary struct {
	TotalValue      decimal.Decimal `json:"total_value"`
	AssetAllocation AssetAllocation `json:"asset_allocation"`
}

// DematAccount is one demat holding account on the statement.
type DematAccount struct {
	DPName string          `json:"dp_name"`
	BOID   string          `json:"bo_id"`
	Value  decimal.Decimal `json:"value"`
}

// MutualFund is one mutual fund folio on the statement.
type MutualFund struct {
	AMC          string          `json:"amc"`
	FolioNumber  string          `json:"folio_number"`
	SchemeName   string          `json:"scheme_name"`
	CurrentValue decimal.Decimal `json:"current_value"`
}

// Statement is the parsed account statement as delivered by the external
// parser.
type Statement struct {
	Summary       Summary        `json:"summary"`
	DematAccounts []DematAccount `json:"demat_accounts"`
	MutualFunds   []MutualFund   `json:"mutual_funds"`
}

// TotalValue returns the statement total, falling back to summing the
// individual holdings when the rollup is absent.
func (st *Statement) TotalValue() decimal.Decimal {
	if st.Summary.TotalValue.GreaterThan(decimal.Zero) {
		return st.Summary.TotalValue
	}
	total := decimal.Zero
	for _, acc := range st.DematAccounts {
		total = total.Add(acc.Value)
	}
	for _, mf := range st.MutualFunds {
		total = total.Add(mf.CurrentValue)
	}
	return total
}

// SeedAssets applies the statement's holdings into the client's asset
// structure, splitting by the reported allocation. Without an allocation the
// whole value seeds the equity mutual fund bucket. Existing entries under
// the seeded keys are replaced, never accumulated, so re-importing a
// statement stays idempotent.
func SeedAssets(facts *domain.ClientFinancialFacts, st *Statement) {
	if facts == nil || st == nil {
		return
	}

	total := st.TotalValue()
	if total.LessThanOrEqual(decimal.Zero) {
		return
	}

	hundred := decimal.NewFromInt(100)
	equityPct := st.Summary.AssetAllocation.EquityPercentage
	debtPct := st.Summary.AssetAllocation.DebtPercentage
	if equityPct.IsZero() && debtPct.IsZero() {
		equityPct = hundred
	}

	equityValue := total.Mul(equityPct).Div(hundred).Round(0)
	debtValue := total.Mul(debtPct).Div(hundred).Round(0)

	if facts.Assets.Equity == nil {
		facts.Assets.Equity = map[string]decimal.Decimal{}
	}
	if facts.Assets.FixedIncome == nil {
		facts.Assets.FixedIncome = map[string]decimal.Decimal{}
	}

	facts.Assets.Equity["mutualFunds"] = equityValue
	if debtValue.GreaterThan(decimal.Zero) {
		facts.Assets.FixedIncome["debtMutualFunds"] = debtValue
	}
}
