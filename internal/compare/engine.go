package compare

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/advisorhq/planengine/internal/calculation"
	"github.com/advisorhq/planengine/internal/domain"
	"github.com/shopspring/decimal"
)

// DecisionEngine governs the comparison record lifecycle: creation, the
// write-once acceptance of the external AI analysis, and the advisor's final
// decision. The engine validates; the store serializes.
type DecisionEngine struct {
	Store  Store
	Logger calculation.Logger
	now    func() time.Time
}

// NewDecisionEngine creates an engine over the given store.
func NewDecisionEngine(store Store) *DecisionEngine {
	return &DecisionEngine{
		Store:  store,
		Logger: calculation.NopLogger{},
		now:    time.Now,
	}
}

// SetLogger installs a custom logger; nil restores the no-op logger.
func (de *DecisionEngine) SetLogger(logger calculation.Logger) {
	if logger == nil {
		de.Logger = calculation.NopLogger{}
		return
	}
	de.Logger = logger
}

// SetClock overrides the time source. Intended for tests.
func (de *DecisionEngine) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	de.now = now
}

// CreateComparison resolves both plan ids and persists a new comparison in
// the CREATED state. The two ids must resolve to distinct plan versions of
// the same comparison type belonging to the same client.
func (de *DecisionEngine) CreateComparison(ctx context.Context, planAID, planBID string) (*domain.Comparison, error) {
	if planAID == planBID {
		return nil, &InvalidComparisonError{Reason: "planA and planB must be distinct plan versions"}
	}

	planA, err := de.resolvePlan(ctx, planAID)
	if err != nil {
		return nil, err
	}
	planB, err := de.resolvePlan(ctx, planBID)
	if err != nil {
		return nil, err
	}

	if planA.ComparisonType != planB.ComparisonType {
		return nil, &InvalidComparisonError{Reason: fmt.Sprintf(
			"comparison type mismatch: %s vs %s", planA.ComparisonType, planB.ComparisonType)}
	}
	if planA.ClientID != planB.ClientID {
		return nil, &InvalidComparisonError{Reason: "plans belong to different clients"}
	}

	c := &domain.Comparison{
		ID:             newID(),
		ClientID:       planA.ClientID,
		ComparisonType: planA.ComparisonType,
		PlanA:          *planA,
		PlanB:          *planB,
		State:          domain.StateCreated,
		CreatedAt:      de.now().UTC(),
	}

	if err := de.Store.CreateComparison(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to persist comparison: %w", err)
	}

	de.Logger.Infof("created comparison %s (%s: %s v%d vs %s v%d)",
		c.ID, c.ComparisonType, planA.PlanID, planA.Version, planB.PlanID, planB.Version)
	return c, nil
}

// AttachAnalysis validates the externally produced analysis payload and
// attaches it, transitioning CREATED -> ANALYZED. Analysis is write-once;
// re-attachment fails with AlreadyAnalyzedError.
func (de *DecisionEngine) AttachAnalysis(ctx context.Context, id string, analysis *domain.AIAnalysis) (*domain.Comparison, error) {
	if err := ValidateAnalysis(analysis); err != nil {
		return nil, err
	}

	payload := *analysis
	if payload.AnalysisTimestamp.IsZero() {
		payload.AnalysisTimestamp = de.now().UTC()
	}

	if err := de.Store.AttachAnalysis(ctx, id, &payload); err != nil {
		return nil, err
	}

	de.Logger.Infof("attached analysis to comparison %s (suggested: %s)",
		id, payload.Recommendation.SuggestedPlan)
	return de.Store.GetComparison(ctx, id)
}

// RecordDecision records the advisor's final pick and transitions the record
// to its terminal DECIDED state. The decision is immutable; re-deciding
// requires a new comparison.
func (de *DecisionEngine) RecordDecision(ctx context.Context, id string, plan domain.WinnerPlan, reason string) (*domain.Comparison, error) {
	if !plan.Valid() {
		return nil, &InvalidComparisonError{Reason: fmt.Sprintf(
			"selected winner must be planA, planB, both or neither, got %q", plan)}
	}
	if strings.TrimSpace(reason) == "" {
		return nil, &InvalidReasonError{}
	}

	winner := &domain.SelectedWinner{
		Plan:       plan,
		Reason:     reason,
		SelectedAt: de.now().UTC(),
	}

	if err := de.Store.RecordDecision(ctx, id, winner); err != nil {
		return nil, err
	}

	de.Logger.Infof("comparison %s decided: %s", id, plan)
	return de.Store.GetComparison(ctx, id)
}

// ListHistory returns every comparison for the client, newest first. All
// states are included; callers distinguish by inspecting the record.
func (de *DecisionEngine) ListHistory(ctx context.Context, clientID string) ([]domain.Comparison, error) {
	return de.Store.ListByClient(ctx, clientID)
}

func (de *DecisionEngine) resolvePlan(ctx context.Context, planID string) (*domain.PlanSnapshot, error) {
	plan, err := de.Store.GetPlan(ctx, planID)
	if err != nil {
		return nil, &InvalidComparisonError{Reason: "plan " + planID + " not found"}
	}
	return plan, nil
}

// ValidateAnalysis checks the analysis payload shape: recommendation pick in
// the allowed enum, confidence and risk scores within [0, 1]. Narrative
// correctness is never validated here.
func ValidateAnalysis(analysis *domain.AIAnalysis) error {
	if analysis == nil {
		return &InvalidAnalysisError{Reason: "payload is required"}
	}
	if !analysis.Recommendation.SuggestedPlan.Valid() {
		return &InvalidAnalysisError{Reason: fmt.Sprintf(
			"suggestedPlan must be planA, planB, both_suitable or neither_suitable, got %q",
			analysis.Recommendation.SuggestedPlan)}
	}
	if !unitInterval(analysis.Recommendation.ConfidenceScore) {
		return &InvalidAnalysisError{Reason: "confidenceScore must be within [0, 1]"}
	}
	if !unitInterval(analysis.RiskComparison.PlanARiskScore) {
		return &InvalidAnalysisError{Reason: "planARiskScore must be within [0, 1]"}
	}
	if !unitInterval(analysis.RiskComparison.PlanBRiskScore) {
		return &InvalidAnalysisError{Reason: "planBRiskScore must be within [0, 1]"}
	}
	return nil
}

func unitInterval(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(decimal.Zero) && d.LessThanOrEqual(decimal.NewFromInt(1))
}

// newID produces a random 16-byte hex identifier.
func newID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(err)
	}
	return hex.EncodeToString(buf)
}
