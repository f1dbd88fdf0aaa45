package calculation

import (
	"time"

	"github.com/advisorhq/planengine/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	decimalZero    = decimal.Zero
	decimalOne     = decimal.NewFromInt(1)
	decimalTwelve  = decimal.NewFromInt(12)
	decimalHundred = decimal.NewFromInt(100)
)

// Logger is the minimal logging surface the engine needs. The engine itself
// never prints; observability is the wrapping layer's concern.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards all log output.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// CalculationEngine bundles the pure calculators behind one facade. All
// methods are deterministic and side-effect free; a single engine is safe
// for concurrent use from any number of goroutines.
type CalculationEngine struct {
	Assumptions Assumptions
	ScoreConfig ScoreConfig
	Logger      Logger
}

// NewCalculationEngine creates an engine with default assumptions and score
// tiers.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Assumptions: DefaultAssumptions(),
		ScoreConfig: DefaultScoreConfig(),
		Logger:      NopLogger{},
	}
}

// NewCalculationEngineWithConfig creates an engine with explicit assumptions
// and score configuration.
func NewCalculationEngineWithConfig(assumptions Assumptions, scoreCfg ScoreConfig) *CalculationEngine {
	return &CalculationEngine{
		Assumptions: assumptions,
		ScoreConfig: scoreCfg,
		Logger:      NopLogger{},
	}
}

// SetLogger installs a custom logger; nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(logger Logger) {
	if logger == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = logger
}

// SnapshotMetrics derives the key metrics embedded in a plan snapshot from a
// client's current facts. EMIRatio is the debt-to-annual-income percentage.
func (ce *CalculationEngine) SnapshotMetrics(facts *domain.ClientFinancialFacts) domain.KeyMetrics {
	summary := ce.FinancialSummary(facts)
	netWorth := ce.NetWorth(facts)

	emiRatio := decimalZero
	annualIncome := facts.TotalIncome()
	if annualIncome.GreaterThan(decimalZero) {
		emiRatio = netWorth.TotalLiabilities.Div(annualIncome).Mul(decimalHundred).Round(2)
	}

	return domain.KeyMetrics{
		NetWorth:       netWorth.NetWorth,
		EMIRatio:       emiRatio,
		SavingsRate:    summary.SavingsRate,
		MonthlySurplus: summary.MonthlySavings,
	}
}

// BuildSnapshot captures an immutable plan snapshot from current facts.
func (ce *CalculationEngine) BuildSnapshot(facts *domain.ClientFinancialFacts, planID, comparisonType string, version int, summary string, at time.Time) domain.PlanSnapshot {
	return domain.PlanSnapshot{
		PlanID:         planID,
		ClientID:       facts.ClientID,
		ComparisonType: comparisonType,
		Version:        version,
		CreatedAt:      at,
		KeyMetrics:     ce.SnapshotMetrics(facts),
		Summary:        summary,
	}
}
