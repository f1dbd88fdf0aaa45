package compare

import (
	"context"

	"github.com/advisorhq/planengine/internal/domain"
)

// Store persists plan snapshots and comparison records. Implementations must
// serialize state transitions per comparison id: with concurrent callers,
// exactly one AttachAnalysis and exactly one RecordDecision may succeed for
// a given record, all others observing the corresponding state error. The
// record's State field is the optimistic-concurrency token.
type Store interface {
	// SavePlan persists an immutable plan snapshot.
	SavePlan(ctx context.Context, plan domain.PlanSnapshot) error

	// GetPlan resolves a plan snapshot by id, ErrNotFound when absent.
	GetPlan(ctx context.Context, planID string) (*domain.PlanSnapshot, error)

	// CreateComparison inserts a new record in the CREATED state.
	CreateComparison(ctx context.Context, c *domain.Comparison) error

	// GetComparison fetches a record by id, ErrNotFound when absent.
	GetComparison(ctx context.Context, id string) (*domain.Comparison, error)

	// AttachAnalysis transitions CREATED -> ANALYZED, guarded by the state
	// token. Fails with AlreadyAnalyzedError once the record left CREATED.
	AttachAnalysis(ctx context.Context, id string, analysis *domain.AIAnalysis) error

	// RecordDecision transitions ANALYZED -> DECIDED, guarded by the state
	// token. Fails with NotAnalyzedError on a CREATED record and
	// AlreadyDecidedError on a DECIDED one.
	RecordDecision(ctx context.Context, id string, winner *domain.SelectedWinner) error

	// ListByClient returns every comparison for the client's plans,
	// newest createdAt first, regardless of state.
	ListByClient(ctx context.Context, clientID string) ([]domain.Comparison, error)
}
