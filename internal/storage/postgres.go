package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/advisorhq/planengine/internal/compare"
	"github.com/advisorhq/planengine/internal/domain"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// PostgresStore is the durable compare.Store. State transitions use the
// record's state column as an optimistic-concurrency token: updates carry
// `WHERE state = <expected>` so concurrent writers cannot both succeed.
//
// Expected schema:
//
//	CREATE TABLE plan_snapshots (
//	    plan_id         TEXT PRIMARY KEY,
//	    client_id       TEXT NOT NULL,
//	    comparison_type TEXT NOT NULL,
//	    version         INTEGER NOT NULL,
//	    created_at      TIMESTAMPTZ NOT NULL,
//	    key_metrics     JSONB NOT NULL,
//	    summary         TEXT NOT NULL DEFAULT ''
//	);
//
//	CREATE TABLE comparisons (
//	    id              TEXT PRIMARY KEY,
//	    client_id       TEXT NOT NULL,
//	    comparison_type TEXT NOT NULL,
//	    plan_a          JSONB NOT NULL,
//	    plan_b          JSONB NOT NULL,
//	    state           TEXT NOT NULL,
//	    ai_analysis     JSONB,
//	    selected_winner JSONB,
//	    created_at      TIMESTAMPTZ NOT NULL
//	);
type PostgresStore struct {
	db  *sql.DB
	log *logrus.Logger
}

// NewPostgresStore initializes a store over an open database handle.
func NewPostgresStore(db *sql.DB, log *logrus.Logger) *PostgresStore {
	if log == nil {
		log = logrus.New()
	}
	return &PostgresStore{db: db, log: log}
}

// Open connects to Postgres and verifies the connection.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// SavePlan inserts a plan snapshot. Snapshots are immutable, so a duplicate
// plan id is a caller error surfaced by the primary-key constraint.
func (s *PostgresStore) SavePlan(ctx context.Context, plan domain.PlanSnapshot) error {
	metrics, err := json.Marshal(plan.KeyMetrics)
	if err != nil {
		return fmt.Errorf("failed to encode key metrics: %w", err)
	}
	query := `
		INSERT INTO plan_snapshots (plan_id, client_id, comparison_type, version, created_at, key_metrics, summary)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := s.db.ExecContext(ctx, query,
		plan.PlanID, plan.ClientID, plan.ComparisonType, plan.Version, plan.CreatedAt, metrics, plan.Summary); err != nil {
		return fmt.Errorf("failed to save plan snapshot: %w", err)
	}
	return nil
}

// GetPlan resolves a plan snapshot by id.
func (s *PostgresStore) GetPlan(ctx context.Context, planID string) (*domain.PlanSnapshot, error) {
	plan := domain.PlanSnapshot{}
	var metrics []byte
	query := `
		SELECT plan_id, client_id, comparison_type, version, created_at, key_metrics, summary
		FROM plan_snapshots
		WHERE plan_id = $1`
	err := s.db.QueryRowContext(ctx, query, planID).
		Scan(&plan.PlanID, &plan.ClientID, &plan.ComparisonType, &plan.Version, &plan.CreatedAt, &metrics, &plan.Summary)
	if err == sql.ErrNoRows {
		return nil, compare.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load plan snapshot: %w", err)
	}
	if err := json.Unmarshal(metrics, &plan.KeyMetrics); err != nil {
		return nil, fmt.Errorf("failed to decode key metrics: %w", err)
	}
	return &plan, nil
}

// CreateComparison inserts a new record in the CREATED state.
func (s *PostgresStore) CreateComparison(ctx context.Context, c *domain.Comparison) error {
	planA, err := json.Marshal(c.PlanA)
	if err != nil {
		return fmt.Errorf("failed to encode plan A: %w", err)
	}
	planB, err := json.Marshal(c.PlanB)
	if err != nil {
		return fmt.Errorf("failed to encode plan B: %w", err)
	}
	query := `
		INSERT INTO comparisons (id, client_id, comparison_type, plan_a, plan_b, state, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := s.db.ExecContext(ctx, query,
		c.ID, c.ClientID, c.ComparisonType, planA, planB, string(c.State), c.CreatedAt); err != nil {
		return fmt.Errorf("failed to create comparison: %w", err)
	}
	s.log.WithField("comparison_id", c.ID).Debug("comparison created")
	return nil
}

// GetComparison fetches a record by id.
func (s *PostgresStore) GetComparison(ctx context.Context, id string) (*domain.Comparison, error) {
	query := `
		SELECT id, client_id, comparison_type, plan_a, plan_b, state, ai_analysis, selected_winner, created_at
		FROM comparisons
		WHERE id = $1`
	row := s.db.QueryRowContext(ctx, query, id)
	c, err := scanComparison(row)
	if err == sql.ErrNoRows {
		return nil, compare.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load comparison: %w", err)
	}
	return c, nil
}

// AttachAnalysis performs the CREATED -> ANALYZED transition. The state
// predicate makes the update a compare-and-swap; a lost race is reported as
// the corresponding lifecycle error, never as silent success.
func (s *PostgresStore) AttachAnalysis(ctx context.Context, id string, analysis *domain.AIAnalysis) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	query := `
		UPDATE comparisons
		SET ai_analysis = $2, state = $3
		WHERE id = $1 AND state = $4`
	res, err := s.db.ExecContext(ctx, query, id, payload, string(domain.StateAnalyzed), string(domain.StateCreated))
	if err != nil {
		return fmt.Errorf("failed to attach analysis: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to attach analysis: %w", err)
	}
	if affected == 0 {
		// Distinguish a missing record from a lost race.
		if _, err := s.currentState(ctx, id); err != nil {
			return err
		}
		return &compare.AlreadyAnalyzedError{ID: id}
	}
	return nil
}

// RecordDecision performs the ANALYZED -> DECIDED transition under the same
// state-token guard.
func (s *PostgresStore) RecordDecision(ctx context.Context, id string, winner *domain.SelectedWinner) error {
	payload, err := json.Marshal(winner)
	if err != nil {
		return fmt.Errorf("failed to encode decision: %w", err)
	}
	query := `
		UPDATE comparisons
		SET selected_winner = $2, state = $3
		WHERE id = $1 AND state = $4`
	res, err := s.db.ExecContext(ctx, query, id, payload, string(domain.StateDecided), string(domain.StateAnalyzed))
	if err != nil {
		return fmt.Errorf("failed to record decision: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to record decision: %w", err)
	}
	if affected == 0 {
		state, err := s.currentState(ctx, id)
		if err != nil {
			return err
		}
		if state == domain.StateCreated {
			return &compare.NotAnalyzedError{ID: id}
		}
		return &compare.AlreadyDecidedError{ID: id}
	}
	return nil
}

// ListByClient returns the client's comparisons, newest first.
func (s *PostgresStore) ListByClient(ctx context.Context, clientID string) ([]domain.Comparison, error) {
	query := `
		SELECT id, client_id, comparison_type, plan_a, plan_b, state, ai_analysis, selected_winner, created_at
		FROM comparisons
		WHERE client_id = $1
		ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comparisons: %w", err)
	}
	defer rows.Close()

	var out []domain.Comparison
	for rows.Next() {
		c, err := scanComparison(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comparison: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list comparisons: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) currentState(ctx context.Context, id string) (domain.ComparisonState, error) {
	var state string
	err := s.db.QueryRowContext(ctx, `SELECT state FROM comparisons WHERE id = $1`, id).Scan(&state)
	if err == sql.ErrNoRows {
		return "", compare.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read comparison state: %w", err)
	}
	return domain.ComparisonState(state), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComparison(row rowScanner) (*domain.Comparison, error) {
	var (
		c            domain.Comparison
		state        string
		planA, planB []byte
		analysis     sql.NullString
		winner       sql.NullString
	)
	if err := row.Scan(&c.ID, &c.ClientID, &c.ComparisonType, &planA, &planB, &state, &analysis, &winner, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.State = domain.ComparisonState(state)
	if err := json.Unmarshal(planA, &c.PlanA); err != nil {
		return nil, fmt.Errorf("failed to decode plan A: %w", err)
	}
	if err := json.Unmarshal(planB, &c.PlanB); err != nil {
		return nil, fmt.Errorf("failed to decode plan B: %w", err)
	}
	if analysis.Valid {
		a := domain.AIAnalysis{}
		if err := json.Unmarshal([]byte(analysis.String), &a); err != nil {
			return nil, fmt.Errorf("failed to decode analysis: %w", err)
		}
		c.AIAnalysis = &a
	}
	if winner.Valid {
		w := domain.SelectedWinner{}
		if err := json.Unmarshal([]byte(winner.String), &w); err != nil {
			return nil, fmt.Errorf("failed to decode decision: %w", err)
		}
		c.SelectedWinner = &w
	}
	return &c, nil
}
