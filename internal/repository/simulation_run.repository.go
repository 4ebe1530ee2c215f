package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"pricesim/internal/domain"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/simulation_run.go -package=mock_repository pricesim/internal/repository SimulationRunRepository

// SimulationRunRepository persists completed forecast runs so reports can
// be fetched and explained later.
type SimulationRunRepository interface {
	Add(ctx context.Context, run domain.SimulationRun) error
	Get(ctx context.Context, runID uuid.UUID) (*domain.SimulationRun, error)
	List(ctx context.Context, symbol string) ([]domain.SimulationRun, error)
}

type SimulationRunRepositoryHandler struct {
	Db *sql.DB
}

func NewSimulationRunRepository(db *sql.DB) SimulationRunRepository {
	return SimulationRunRepositoryHandler{
		Db: db,
	}
}

func (h SimulationRunRepositoryHandler) Add(ctx context.Context, run domain.SimulationRun) error {
	summary, err := json.Marshal(run.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary for run %s: %w", run.RunID, err)
	}

	_, err = h.Db.ExecContext(
		ctx,
		`insert into simulation_run (run_id, symbol, days, iterations, summary, created_at)
		 values ($1, $2, $3, $4, $5, $6)`,
		run.RunID,
		run.Symbol,
		run.Days,
		run.Iterations,
		summary,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add simulation run %s: %w", run.RunID, err)
	}

	return nil
}

func (h SimulationRunRepositoryHandler) Get(ctx context.Context, runID uuid.UUID) (*domain.SimulationRun, error) {
	row := h.Db.QueryRowContext(
		ctx,
		`select run_id, symbol, days, iterations, summary, created_at
		 from simulation_run where run_id = $1`,
		runID,
	)

	run, err := scanSimulationRun(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get simulation run %s: %w", runID, err)
	}

	return run, nil
}

func (h SimulationRunRepositoryHandler) List(ctx context.Context, symbol string) ([]domain.SimulationRun, error) {
	rows, err := h.Db.QueryContext(
		ctx,
		`select run_id, symbol, days, iterations, summary, created_at
		 from simulation_run where symbol = $1 order by created_at desc`,
		symbol,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list simulation runs for %s: %w", symbol, err)
	}
	defer rows.Close()

	runs := []domain.SimulationRun{}
	for rows.Next() {
		run, err := scanSimulationRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan simulation run for %s: %w", symbol, err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list simulation runs for %s: %w", symbol, err)
	}

	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSimulationRun(row rowScanner) (*domain.SimulationRun, error) {
	var (
		run       domain.SimulationRun
		summary   []byte
		createdAt time.Time
	)
	if err := row.Scan(&run.RunID, &run.Symbol, &run.Days, &run.Iterations, &summary, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(summary, &run.Summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored summary: %w", err)
	}
	run.CreatedAt = createdAt.UTC()

	return &run, nil
}
