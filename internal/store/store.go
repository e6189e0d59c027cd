package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// Run statuses persisted on workflow_runs. A run is created pending and
// flipped to complete in the single finalize update.
const (
	RunStatusPending  = "pending"
	RunStatusComplete = "complete"
)

// WorkflowRun is the persisted record of one workflow invocation. Prompt and
// action are write-once; the three response fields are set together at
// finalization.
type WorkflowRun struct {
	ID          string    `json:"id"`
	Prompt      string    `json:"prompt"`
	Action      string    `json:"action"`
	AIResponse  string    `json:"ai_response"`
	APIResponse string    `json:"api_response"`
	FinalResult string    `json:"final_result"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type Store struct {
	DB *sql.DB
}

// NewWithDSN opens a postgres connection and verifies it.
func NewWithDSN(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{DB: db}, nil
}

// CreateWorkflowRun inserts a pending run with empty response fields and
// returns its identifier.
func (s *Store) CreateWorkflowRun(ctx context.Context, prompt, action string) (string, error) {
	id := uuid.NewString()
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO workflow_runs (id, prompt, action, status) VALUES ($1,$2,$3,$4)`,
		id, prompt, action, RunStatusPending)
	if err != nil {
		return "", err
	}
	return id, nil
}

// FinalizeWorkflowRun sets the three response fields and marks the run
// complete in one update. Prompt, action and created_at are never touched.
func (s *Store) FinalizeWorkflowRun(ctx context.Context, runID, aiResponse, apiResponse, finalResult string) error {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE workflow_runs SET ai_response=$2, api_response=$3, final_result=$4, status=$5 WHERE id=$1`,
		runID, aiResponse, apiResponse, finalResult, RunStatusComplete)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("workflow run %s not found", runID)
	}
	return nil
}

// RecentWorkflowRuns returns up to limit runs ordered by created_at
// descending.
func (s *Store) RecentWorkflowRuns(ctx context.Context, limit int) ([]WorkflowRun, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, prompt, action, ai_response, api_response, final_result, status, created_at
FROM workflow_runs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []WorkflowRun
	for rows.Next() {
		var r WorkflowRun
		if err := rows.Scan(&r.ID, &r.Prompt, &r.Action, &r.AIResponse, &r.APIResponse, &r.FinalResult, &r.Status, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
