package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ndolgov/stepline/internal/domain"
)

// StepRepo — репозиторий для работы с шагами workflow.
type StepRepo struct {
	pool *pgxpool.Pool
}

// NewStepRepo создаёт новый StepRepo.
func NewStepRepo(pool *pgxpool.Pool) *StepRepo {
	return &StepRepo{pool: pool}
}

// Create создаёт новый шаг.
func (r *StepRepo) Create(ctx context.Context, step *domain.Step) error {
	query := `
		INSERT INTO steps (id, workflow_id, slug, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		step.ID,
		step.WorkflowID,
		step.Slug,
		step.Description,
		step.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("insert step: %w", err)
	}
	return nil
}

// GetBySlug возвращает шаг workflow по его slug.
func (r *StepRepo) GetBySlug(ctx context.Context, workflowID uuid.UUID, slug string) (*domain.Step, error) {
	query := `
		SELECT id, workflow_id, slug, description, created_at
		FROM steps
		WHERE workflow_id = $1 AND slug = $2
	`
	var step domain.Step
	err := r.pool.QueryRow(ctx, query, workflowID, slug).Scan(
		&step.ID,
		&step.WorkflowID,
		&step.Slug,
		&step.Description,
		&step.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get step by slug: %w", err)
	}
	return &step, nil
}

// ListByWorkflow возвращает все шаги workflow в порядке создания.
//
// Порядок стабилен (created_at, slug как tie-break), и именно он
// определяет детерминированный результат топологической сортировки.
func (r *StepRepo) ListByWorkflow(ctx context.Context, workflowID uuid.UUID) ([]domain.Step, error) {
	query := `
		SELECT id, workflow_id, slug, description, created_at
		FROM steps
		WHERE workflow_id = $1
		ORDER BY created_at, slug
	`
	rows, err := r.pool.Query(ctx, query, workflowID)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	defer rows.Close()

	var steps []domain.Step
	for rows.Next() {
		var step domain.Step
		if err := rows.Scan(
			&step.ID,
			&step.WorkflowID,
			&step.Slug,
			&step.Description,
			&step.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		steps = append(steps, step)
	}
	return steps, rows.Err()
}
