package calculation

import "github.com/shopspring/decimal"

// Assumptions are the market and planning parameters every projection runs
// on. Rates are fractions, not percentages: 0.06 means 6% per year.
type Assumptions struct {
	InflationRate          decimal.Decimal `yaml:"inflation_rate"`
	ExpectedAnnualReturn   decimal.Decimal `yaml:"expected_annual_return"`
	IncomeReplacementRatio decimal.Decimal `yaml:"income_replacement_ratio"`
	SafeWithdrawalRate     decimal.Decimal `yaml:"safe_withdrawal_rate"`
}

// DefaultAssumptions returns the standard planning parameters: 6% inflation,
// 12% expected equity return, 70% income replacement in retirement, and the
// 4% safe withdrawal rule.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		InflationRate:          decimal.NewFromFloat(0.06),
		ExpectedAnnualReturn:   decimal.NewFromFloat(0.12),
		IncomeReplacementRatio: decimal.NewFromFloat(0.70),
		SafeWithdrawalRate:     decimal.NewFromFloat(0.04),
	}
}

// ScoreTier pairs a threshold with the points awarded when the measured
// value meets it.
type ScoreTier struct {
	Threshold decimal.Decimal `yaml:"threshold"`
	Points    int             `yaml:"points"`
}

// ScoreConfig holds the health-score component tiers. SavingsRateTiers and
// NetWorthTiers are matched top-down with >=, so they must be listed in
// descending threshold order; DebtRatioTiers are matched with <= and must be
// ascending.
type ScoreConfig struct {
	SavingsRateTiers           []ScoreTier `yaml:"savings_rate_tiers"`
	SavingsRateFloor           int         `yaml:"savings_rate_floor"`
	NetWorthTiers              []ScoreTier `yaml:"net_worth_tiers"`
	DebtRatioTiers             []ScoreTier `yaml:"debt_ratio_tiers"`
	DebtRatioFloor             int         `yaml:"debt_ratio_floor"`
	DiversityPointsPerCategory int         `yaml:"diversity_points_per_category"`
	DiversityMaxPoints         int         `yaml:"diversity_max_points"`
}

// DefaultScoreConfig returns the standard scoring tiers. Component maxima are
// 30 (savings rate), 25 (net worth), 20 (diversification) and 25 (debt
// management), totalling 100.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		SavingsRateTiers: []ScoreTier{
			{Threshold: decimal.NewFromInt(20), Points: 30},
			{Threshold: decimal.NewFromInt(15), Points: 25},
			{Threshold: decimal.NewFromInt(10), Points: 20},
			{Threshold: decimal.NewFromInt(5), Points: 15},
		},
		SavingsRateFloor: 10,
		NetWorthTiers: []ScoreTier{
			{Threshold: decimal.NewFromInt(5000000), Points: 25},
			{Threshold: decimal.NewFromInt(2000000), Points: 20},
			{Threshold: decimal.NewFromInt(1000000), Points: 15},
			{Threshold: decimal.NewFromInt(500000), Points: 10},
			{Threshold: decimal.Zero, Points: 5},
		},
		DebtRatioTiers: []ScoreTier{
			{Threshold: decimal.Zero, Points: 25},
			{Threshold: decimal.NewFromInt(20), Points: 20},
			{Threshold: decimal.NewFromInt(40), Points: 15},
			{Threshold: decimal.NewFromInt(60), Points: 10},
		},
		DebtRatioFloor:             5,
		DiversityPointsPerCategory: 4,
		DiversityMaxPoints:         20,
	}
}
