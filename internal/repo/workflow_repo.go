package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ndolgov/stepline/internal/domain"
)

// WorkflowRepo — репозиторий для работы с workflows.
type WorkflowRepo struct {
	pool *pgxpool.Pool
}

// NewWorkflowRepo создаёт новый WorkflowRepo.
func NewWorkflowRepo(pool *pgxpool.Pool) *WorkflowRepo {
	return &WorkflowRepo{pool: pool}
}

// Create создаёт новый workflow.
func (r *WorkflowRepo) Create(ctx context.Context, wf *domain.Workflow) error {
	query := `
		INSERT INTO workflows (id, slug, name, validation_status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		wf.ID,
		wf.Slug,
		wf.Name,
		wf.ValidationStatus,
		wf.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("insert workflow: %w", err)
	}
	return nil
}

// GetByID возвращает workflow по внутреннему ID.
func (r *WorkflowRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workflow, error) {
	return r.getOne(ctx, `
		SELECT id, slug, name, validation_status, validated_at, created_at
		FROM workflows
		WHERE id = $1
	`, id)
}

// GetBySlug возвращает workflow по внешнему идентификатору.
func (r *WorkflowRepo) GetBySlug(ctx context.Context, slug string) (*domain.Workflow, error) {
	return r.getOne(ctx, `
		SELECT id, slug, name, validation_status, validated_at, created_at
		FROM workflows
		WHERE slug = $1
	`, slug)
}

func (r *WorkflowRepo) getOne(ctx context.Context, query string, arg any) (*domain.Workflow, error) {
	var wf domain.Workflow
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&wf.ID,
		&wf.Slug,
		&wf.Name,
		&wf.ValidationStatus,
		&wf.ValidatedAt,
		&wf.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get workflow: %w", err)
	}
	return &wf, nil
}

// List возвращает все workflows, новые первыми.
func (r *WorkflowRepo) List(ctx context.Context) ([]domain.Workflow, error) {
	query := `
		SELECT id, slug, name, validation_status, validated_at, created_at
		FROM workflows
		ORDER BY created_at DESC, slug
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}
	defer rows.Close()

	var workflows []domain.Workflow
	for rows.Next() {
		var wf domain.Workflow
		if err := rows.Scan(
			&wf.ID,
			&wf.Slug,
			&wf.Name,
			&wf.ValidationStatus,
			&wf.ValidatedAt,
			&wf.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan workflow: %w", err)
		}
		workflows = append(workflows, wf)
	}
	return workflows, rows.Err()
}

// Delete удаляет workflow (каскадно удалит steps и dependencies).
func (r *WorkflowRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM workflows WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete workflow: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetValidation записывает результат валидации графа workflow.
func (r *WorkflowRepo) SetValidation(ctx context.Context, id uuid.UUID, status domain.ValidationStatus, at time.Time) error {
	query := `
		UPDATE workflows
		SET validation_status = $2, validated_at = $3
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query, id, status, at)
	if err != nil {
		return fmt.Errorf("set validation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
