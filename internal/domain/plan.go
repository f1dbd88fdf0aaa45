package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComparisonState tracks where a comparison record sits in its lifecycle.
// Transitions are strictly CREATED -> ANALYZED -> DECIDED; no state is ever
// skipped and DECIDED is terminal.
type ComparisonState string

const (
	StateCreated  ComparisonState = "created"
	StateAnalyzed ComparisonState = "analyzed"
	StateDecided  ComparisonState = "decided"
)

// KeyMetrics captures the headline financial-health numbers of a plan at
// snapshot time.
type KeyMetrics struct {
	NetWorth       decimal.Decimal `yaml:"net_worth" json:"netWorth"`
	EMIRatio       decimal.Decimal `yaml:"emi_ratio" json:"emiRatio"`
	SavingsRate    decimal.Decimal `yaml:"savings_rate" json:"savingsRate"`
	MonthlySurplus decimal.Decimal `yaml:"monthly_surplus" json:"monthlySurplus"`
}

// PlanSnapshot is an immutable, versioned capture of one plan's metrics.
// Versions are monotonic per plan; a snapshot is never mutated after
// creation.
type PlanSnapshot struct {
	PlanID         string     `yaml:"plan_id" json:"planId"`
	ClientID       string     `yaml:"client_id" json:"clientId"`
	ComparisonType string     `yaml:"comparison_type" json:"comparisonType"`
	Version        int        `yaml:"version" json:"version"`
	CreatedAt      time.Time  `yaml:"created_at" json:"createdAt"`
	KeyMetrics     KeyMetrics `yaml:"key_metrics" json:"keyMetrics"`
	Summary        string     `yaml:"summary" json:"summary"`
}

// SuggestedPlan is the AI recommendation's pick. The two non-plan values are
// their own category and must never be rendered as "Plan A" or "Plan B".
type SuggestedPlan string

const (
	SuggestPlanA           SuggestedPlan = "planA"
	SuggestPlanB           SuggestedPlan = "planB"
	SuggestBothSuitable    SuggestedPlan = "both_suitable"
	SuggestNeitherSuitable SuggestedPlan = "neither_suitable"
)

// Valid reports whether the value is one of the allowed recommendation picks.
func (s SuggestedPlan) Valid() bool {
	switch s {
	case SuggestPlanA, SuggestPlanB, SuggestBothSuitable, SuggestNeitherSuitable:
		return true
	}
	return false
}

// Recommendation is the AI analysis verdict.
type Recommendation struct {
	SuggestedPlan   SuggestedPlan   `json:"suggestedPlan"`
	ConfidenceScore decimal.Decimal `json:"confidenceScore"`
	Reasoning       string          `json:"reasoning"`
}

// RiskComparison scores both plans on a 0..1 risk scale.
type RiskComparison struct {
	PlanARiskScore decimal.Decimal `json:"planARiskScore"`
	PlanBRiskScore decimal.Decimal `json:"planBRiskScore"`
	RiskFactors    []string        `json:"riskFactors"`
}

// AIAnalysis is the structured payload produced by the external analysis
// collaborator. The engine validates its shape at the boundary, never the
// narrative text.
type AIAnalysis struct {
	ExecutiveSummary             string         `json:"executiveSummary"`
	Recommendation               Recommendation `json:"recommendation"`
	KeyDifferences               []string       `json:"keyDifferences"`
	PlanAStrengths               []string       `json:"planAStrengths"`
	PlanAWeaknesses              []string       `json:"planAWeaknesses"`
	PlanBStrengths               []string       `json:"planBStrengths"`
	PlanBWeaknesses              []string       `json:"planBWeaknesses"`
	RiskComparison               RiskComparison `json:"riskComparison"`
	ImplementationConsiderations []string       `json:"implementationConsiderations"`
	AnalysisTimestamp            time.Time      `json:"analysisTimestamp"`
}

// WinnerPlan is the advisor's final pick.
type WinnerPlan string

const (
	WinnerPlanA   WinnerPlan = "planA"
	WinnerPlanB   WinnerPlan = "planB"
	WinnerBoth    WinnerPlan = "both"
	WinnerNeither WinnerPlan = "neither"
)

// Valid reports whether the value is one of the allowed decision picks.
func (w WinnerPlan) Valid() bool {
	switch w {
	case WinnerPlanA, WinnerPlanB, WinnerBoth, WinnerNeither:
		return true
	}
	return false
}

// SelectedWinner records the advisor decision. It is either entirely absent
// or fully populated; a partial decision is never persisted.
type SelectedWinner struct {
	Plan       WinnerPlan `json:"plan"`
	Reason     string     `json:"reason"`
	SelectedAt time.Time  `json:"selectedAt"`
}

// Comparison is the lifecycle entity tracking two plan versions under
// evaluation, their eventual AI analysis, and the advisor decision. Retained
// indefinitely as a historical record.
type Comparison struct {
	ID             string          `json:"id"`
	ClientID       string          `json:"clientId"`
	ComparisonType string          `json:"comparisonType"`
	PlanA          PlanSnapshot    `json:"planA"`
	PlanB          PlanSnapshot    `json:"planB"`
	State          ComparisonState `json:"state"`
	AIAnalysis     *AIAnalysis     `json:"aiAnalysis,omitempty"`
	SelectedWinner *SelectedWinner `json:"selectedWinner,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// Analyzed reports whether the analysis payload has been attached.
func (c *Comparison) Analyzed() bool {
	return c.AIAnalysis != nil
}

// Decided reports whether the comparison reached its terminal state.
func (c *Comparison) Decided() bool {
	return c.SelectedWinner != nil
}

// Clone returns a deep copy so callers can hand records out without exposing
// shared mutable state.
func (c *Comparison) Clone() *Comparison {
	cp := *c
	if c.AIAnalysis != nil {
		a := *c.AIAnalysis
		a.KeyDifferences = append([]string(nil), c.AIAnalysis.KeyDifferences...)
		a.PlanAStrengths = append([]string(nil), c.AIAnalysis.PlanAStrengths...)
		a.PlanAWeaknesses = append([]string(nil), c.AIAnalysis.PlanAWeaknesses...)
		a.PlanBStrengths = append([]string(nil), c.AIAnalysis.PlanBStrengths...)
		a.PlanBWeaknesses = append([]string(nil), c.AIAnalysis.PlanBWeaknesses...)
		a.RiskComparison.RiskFactors = append([]string(nil), c.AIAnalysis.RiskComparison.RiskFactors...)
		a.ImplementationConsiderations = append([]string(nil), c.AIAnalysis.ImplementationConsiderations...)
		cp.AIAnalysis = &a
	}
	if c.SelectedWinner != nil {
		w := *c.SelectedWinner
		cp.SelectedWinner = &w
	}
	return &cp
}
