package compare_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/advisorhq/planengine/internal/compare"
	"github.com/advisorhq/planengine/internal/domain"
	"github.com/advisorhq/planengine/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) (*compare.DecisionEngine, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	engine := compare.NewDecisionEngine(store)
	seedPlans(t, store)
	return engine, store
}

func seedPlans(t *testing.T, store *storage.MemoryStore) {
	t.Helper()
	ctx := context.Background()
	plans := []domain.PlanSnapshot{
		{
			PlanID:         "plan-a",
			ClientID:       "client-1",
			ComparisonType: "cash_flow",
			Version:        1,
			CreatedAt:      time.Now().Add(-2 * time.Hour),
			KeyMetrics:     domain.KeyMetrics{NetWorth: decimal.NewFromInt(2000000)},
		},
		{
			PlanID:         "plan-b",
			ClientID:       "client-1",
			ComparisonType: "cash_flow",
			Version:        2,
			CreatedAt:      time.Now().Add(-1 * time.Hour),
			KeyMetrics:     domain.KeyMetrics{NetWorth: decimal.NewFromInt(2400000)},
		},
		{
			PlanID:         "plan-c",
			ClientID:       "client-1",
			ComparisonType: "retirement",
			Version:        1,
			CreatedAt:      time.Now(),
		},
		{
			PlanID:         "plan-d",
			ClientID:       "client-2",
			ComparisonType: "cash_flow",
			Version:        1,
			CreatedAt:      time.Now(),
		},
	}
	for _, plan := range plans {
		require.NoError(t, store.SavePlan(ctx, plan))
	}
}

func validAnalysis() *domain.AIAnalysis {
	return &domain.AIAnalysis{
		ExecutiveSummary: "Plan B carries a lighter debt load.",
		Recommendation: domain.Recommendation{
			SuggestedPlan:   domain.SuggestPlanB,
			ConfidenceScore: decimal.NewFromFloat(0.82),
			Reasoning:       "Higher surplus after EMI.",
		},
		KeyDifferences: []string{"EMI burden", "surplus"},
		RiskComparison: domain.RiskComparison{
			PlanARiskScore: decimal.NewFromFloat(0.4),
			PlanBRiskScore: decimal.NewFromFloat(0.3),
		},
	}
}

func TestCreateComparison(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	c, err := engine.CreateComparison(ctx, "plan-a", "plan-b")

	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, domain.StateCreated, c.State)
	assert.Equal(t, "client-1", c.ClientID)
	assert.Equal(t, "cash_flow", c.ComparisonType)
	assert.Nil(t, c.AIAnalysis)
	assert.Nil(t, c.SelectedWinner)
}

func TestCreateComparison_Invalid(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		planA string
		planB string
	}{
		{"identical ids", "plan-a", "plan-a"},
		{"type mismatch", "plan-a", "plan-c"},
		{"different clients", "plan-a", "plan-d"},
		{"missing plan", "plan-a", "plan-x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.CreateComparison(ctx, tc.planA, tc.planB)
			var invalid *compare.InvalidComparisonError
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestAttachAnalysis_Validation(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()
	c, err := engine.CreateComparison(ctx, "plan-a", "plan-b")
	require.NoError(t, err)

	cases := []struct {
		name   string
		mutate func(*domain.AIAnalysis)
	}{
		{"bad suggested plan", func(a *domain.AIAnalysis) { a.Recommendation.SuggestedPlan = "planC" }},
		{"confidence above 1", func(a *domain.AIAnalysis) { a.Recommendation.ConfidenceScore = decimal.NewFromFloat(1.2) }},
		{"confidence below 0", func(a *domain.AIAnalysis) { a.Recommendation.ConfidenceScore = decimal.NewFromFloat(-0.1) }},
		{"risk score out of range", func(a *domain.AIAnalysis) { a.RiskComparison.PlanARiskScore = decimal.NewFromInt(3) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := validAnalysis()
			tc.mutate(payload)
			_, err := engine.AttachAnalysis(ctx, c.ID, payload)
			var invalid *compare.InvalidAnalysisError
			assert.ErrorAs(t, err, &invalid)
		})
	}

	_, err = engine.AttachAnalysis(ctx, c.ID, nil)
	var invalid *compare.InvalidAnalysisError
	assert.ErrorAs(t, err, &invalid)
}

func TestAttachAnalysis_WriteOnce(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()
	c, err := engine.CreateComparison(ctx, "plan-a", "plan-b")
	require.NoError(t, err)

	analyzed, err := engine.AttachAnalysis(ctx, c.ID, validAnalysis())
	require.NoError(t, err)
	assert.Equal(t, domain.StateAnalyzed, analyzed.State)
	assert.False(t, analyzed.AIAnalysis.AnalysisTimestamp.IsZero())

	_, err = engine.AttachAnalysis(ctx, c.ID, validAnalysis())
	var already *compare.AlreadyAnalyzedError
	assert.ErrorAs(t, err, &already)
}

func TestRecordDecision_RequiresAnalysis(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()
	c, err := engine.CreateComparison(ctx, "plan-a", "plan-b")
	require.NoError(t, err)

	_, err = engine.RecordDecision(ctx, c.ID, domain.WinnerPlanB, "lower risk")

	var notAnalyzed *compare.NotAnalyzedError
	assert.ErrorAs(t, err, &notAnalyzed, "a decision must never precede analysis")
}

func TestRecordDecision_Validation(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()
	c, err := engine.CreateComparison(ctx, "plan-a", "plan-b")
	require.NoError(t, err)
	_, err = engine.AttachAnalysis(ctx, c.ID, validAnalysis())
	require.NoError(t, err)

	_, err = engine.RecordDecision(ctx, c.ID, "planZ", "reason")
	var invalid *compare.InvalidComparisonError
	assert.ErrorAs(t, err, &invalid)

	for _, reason := range []string{"", "   ", "\t\n"} {
		_, err = engine.RecordDecision(ctx, c.ID, domain.WinnerPlanB, reason)
		var invalidReason *compare.InvalidReasonError
		assert.ErrorAs(t, err, &invalidReason, "reason %q", reason)
	}
}

func TestComparisonLifecycle_EndToEnd(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	c, err := engine.CreateComparison(ctx, "plan-a", "plan-b")
	require.NoError(t, err)

	_, err = engine.AttachAnalysis(ctx, c.ID, validAnalysis())
	require.NoError(t, err)

	decided, err := engine.RecordDecision(ctx, c.ID, domain.WinnerPlanB, "Lower EMI burden")
	require.NoError(t, err)

	assert.Equal(t, domain.StateDecided, decided.State)
	assert.Equal(t, domain.WinnerPlanB, decided.SelectedWinner.Plan)
	assert.Equal(t, "Lower EMI burden", decided.SelectedWinner.Reason)
	assert.False(t, decided.SelectedWinner.SelectedAt.IsZero())
	assert.True(t, decided.AIAnalysis.Recommendation.ConfidenceScore.Equal(decimal.NewFromFloat(0.82)))

	// The decision is terminal and immutable.
	_, err = engine.RecordDecision(ctx, c.ID, domain.WinnerPlanA, "changed my mind")
	var alreadyDecided *compare.AlreadyDecidedError
	assert.ErrorAs(t, err, &alreadyDecided)
}

func TestListHistory(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()
	engine.SetClock(func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) })

	first, err := engine.CreateComparison(ctx, "plan-a", "plan-b")
	require.NoError(t, err)

	engine.SetClock(func() time.Time { return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) })
	second, err := engine.CreateComparison(ctx, "plan-a", "plan-b")
	require.NoError(t, err)
	_, err = engine.AttachAnalysis(ctx, second.ID, validAnalysis())
	require.NoError(t, err)

	history, err := engine.ListHistory(ctx, "client-1")
	require.NoError(t, err)

	require.Len(t, history, 2, "all states are included")
	assert.Equal(t, second.ID, history[0].ID, "newest first")
	assert.Equal(t, first.ID, history[1].ID)

	empty, err := engine.ListHistory(ctx, "client-x")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAttachAnalysis_ConcurrentSingleWinner(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()
	c, err := engine.CreateComparison(ctx, "plan-a", "plan-b")
	require.NoError(t, err)

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.AttachAnalysis(ctx, c.ID, validAnalysis())
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		var already *compare.AlreadyAnalyzedError
		assert.ErrorAs(t, err, &already)
	}
	assert.Equal(t, 1, successes, "exactly one attach may win")
}

func TestRecordDecision_ConcurrentSingleWinner(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()
	c, err := engine.CreateComparison(ctx, "plan-a", "plan-b")
	require.NoError(t, err)
	_, err = engine.AttachAnalysis(ctx, c.ID, validAnalysis())
	require.NoError(t, err)

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.RecordDecision(ctx, c.ID, domain.WinnerPlanA, "race entry")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		var alreadyDecided *compare.AlreadyDecidedError
		assert.ErrorAs(t, err, &alreadyDecided)
	}
	assert.Equal(t, 1, successes, "exactly one decision may win")
}
