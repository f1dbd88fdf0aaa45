package config

import (
	"fmt"
	"os"

	"github.com/advisorhq/planengine/internal/calculation"
	"github.com/advisorhq/planengine/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Profile is the YAML client-profile document: a full facts snapshot plus
// the client's goals and planning inputs.
type Profile struct {
	Client                    domain.ClientFinancialFacts `yaml:"client"`
	Goals                     []domain.Goal               `yaml:"goals"`
	RetirementAge             int                         `yaml:"retirement_age"`
	MonthlyInvestmentCapacity decimal.Decimal             `yaml:"monthly_investment_capacity"`
}

// AssumptionsFile overrides the engine defaults. Zero-valued fields keep
// their defaults.
type AssumptionsFile struct {
	Assumptions calculation.Assumptions  `yaml:"assumptions"`
	Score       *calculation.ScoreConfig `yaml:"score,omitempty"`
}

// InputParser handles parsing of profile and assumptions files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadProfile loads a client profile from a YAML file and validates it.
func (ip *InputParser) LoadProfile(filename string) (*Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateProfile(&profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}

	return &profile, nil
}

// LoadAssumptions loads assumptions overrides from a YAML file, merged over
// the engine defaults.
func (ip *InputParser) LoadAssumptions(filename string) (calculation.Assumptions, calculation.ScoreConfig, error) {
	assumptions := calculation.DefaultAssumptions()
	scoreCfg := calculation.DefaultScoreConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return assumptions, scoreCfg, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var file AssumptionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return assumptions, scoreCfg, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if !file.Assumptions.InflationRate.IsZero() {
		assumptions.InflationRate = file.Assumptions.InflationRate
	}
	if !file.Assumptions.ExpectedAnnualReturn.IsZero() {
		assumptions.ExpectedAnnualReturn = file.Assumptions.ExpectedAnnualReturn
	}
	if !file.Assumptions.IncomeReplacementRatio.IsZero() {
		assumptions.IncomeReplacementRatio = file.Assumptions.IncomeReplacementRatio
	}
	if !file.Assumptions.SafeWithdrawalRate.IsZero() {
		assumptions.SafeWithdrawalRate = file.Assumptions.SafeWithdrawalRate
	}
	if file.Score != nil {
		scoreCfg = *file.Score
	}

	if err := ip.validateAssumptions(&assumptions); err != nil {
		return assumptions, scoreCfg, fmt.Errorf("assumptions validation failed: %w", err)
	}

	return assumptions, scoreCfg, nil
}

// ValidateProfile validates the loaded profile. Absent monetary values are
// fine (they read as zero); negative ones are rejected at this boundary so
// the calculators never see them.
func (ip *InputParser) ValidateProfile(profile *Profile) error {
	if profile.Client.ClientID == "" {
		return fmt.Errorf("client id is required")
	}
	if err := ip.validateFacts(&profile.Client); err != nil {
		return fmt.Errorf("client facts validation failed: %w", err)
	}
	for i, goal := range profile.Goals {
		if err := ip.validateGoal(&goal); err != nil {
			return fmt.Errorf("goal %d (%s) validation failed: %w", i, goal.GoalName, err)
		}
	}
	if profile.RetirementAge < 0 || profile.RetirementAge > 100 {
		return fmt.Errorf("retirement age must be between 0 and 100")
	}
	if profile.MonthlyInvestmentCapacity.LessThan(decimal.Zero) {
		return fmt.Errorf("monthly investment capacity cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateFacts(facts *domain.ClientFinancialFacts) error {
	if facts.AnnualIncome.LessThan(decimal.Zero) {
		return fmt.Errorf("annual income cannot be negative")
	}
	if facts.AdditionalIncome.LessThan(decimal.Zero) {
		return fmt.Errorf("additional income cannot be negative")
	}
	for category, amount := range facts.MonthlyExpenses {
		if amount.LessThan(decimal.Zero) {
			return fmt.Errorf("expense category %s cannot be negative", category)
		}
	}
	if facts.Assets.Cash.LessThan(decimal.Zero) {
		return fmt.Errorf("cash cannot be negative")
	}
	if facts.Assets.RealEstate.LessThan(decimal.Zero) {
		return fmt.Errorf("real estate cannot be negative")
	}
	for name, v := range facts.Assets.Equity {
		if v.LessThan(decimal.Zero) {
			return fmt.Errorf("equity holding %s cannot be negative", name)
		}
	}
	for name, v := range facts.Assets.FixedIncome {
		if v.LessThan(decimal.Zero) {
			return fmt.Errorf("fixed income holding %s cannot be negative", name)
		}
	}
	for name, v := range facts.Assets.Other {
		if v.LessThan(decimal.Zero) {
			return fmt.Errorf("other holding %s cannot be negative", name)
		}
	}
	if facts.Liabilities.Loans.LessThan(decimal.Zero) {
		return fmt.Errorf("loans cannot be negative")
	}
	if facts.Liabilities.CreditCards.LessThan(decimal.Zero) {
		return fmt.Errorf("credit card debt cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateGoal(goal *domain.Goal) error {
	if goal.GoalName == "" {
		return fmt.Errorf("goal name is required")
	}
	if goal.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("target amount must be positive")
	}
	if goal.TargetYear < 1900 || goal.TargetYear > 2200 {
		return fmt.Errorf("target year %d is out of range", goal.TargetYear)
	}
	if goal.Priority != "" && !goal.Priority.Valid() {
		return fmt.Errorf("priority must be low, medium, high or critical")
	}
	return nil
}

func (ip *InputParser) validateAssumptions(assumptions *calculation.Assumptions) error {
	if assumptions.InflationRate.LessThan(decimal.NewFromFloat(-0.10)) {
		return fmt.Errorf("inflation rate cannot be less than -10%% (extreme deflation)")
	}
	if assumptions.ExpectedAnnualReturn.LessThan(decimal.NewFromFloat(-1.0)) {
		return fmt.Errorf("expected annual return cannot be less than -100%%")
	}
	if assumptions.IncomeReplacementRatio.LessThanOrEqual(decimal.Zero) || assumptions.IncomeReplacementRatio.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("income replacement ratio must be between 0 and 1")
	}
	if assumptions.SafeWithdrawalRate.LessThanOrEqual(decimal.Zero) || assumptions.SafeWithdrawalRate.GreaterThan(decimal.NewFromFloat(0.2)) {
		return fmt.Errorf("safe withdrawal rate must be between 0 and 20%%")
	}
	return nil
}
