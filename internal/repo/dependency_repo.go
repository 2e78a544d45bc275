package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ndolgov/stepline/internal/domain"
)

// DependencyRepo — репозиторий для работы с рёбрами зависимостей.
type DependencyRepo struct {
	pool *pgxpool.Pool
}

// NewDependencyRepo создаёт новый DependencyRepo.
func NewDependencyRepo(pool *pgxpool.Pool) *DependencyRepo {
	return &DependencyRepo{pool: pool}
}

// Create создаёт ребро prerequisite → step.
// Дубликат ребра — ErrAlreadyExists (уникальность по паре шагов).
func (r *DependencyRepo) Create(ctx context.Context, dep *domain.Dependency) error {
	query := `
		INSERT INTO dependencies (id, workflow_id, step_id, prerequisite_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		dep.ID,
		dep.WorkflowID,
		dep.StepID,
		dep.PrerequisiteID,
		dep.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("insert dependency: %w", err)
	}
	return nil
}

// ListByWorkflow возвращает все рёбра workflow, разрешённые в slug'и,
// в порядке создания. Одним запросом: движку граф передаётся полностью
// материализованным, без точечных обращений к БД во время сортировки.
func (r *DependencyRepo) ListByWorkflow(ctx context.Context, workflowID uuid.UUID) ([]domain.DependencyEdge, error) {
	query := `
		SELECT s.slug, p.slug
		FROM dependencies d
		JOIN steps s ON s.id = d.step_id
		JOIN steps p ON p.id = d.prerequisite_id
		WHERE d.workflow_id = $1
		ORDER BY d.created_at, d.id
	`
	rows, err := r.pool.Query(ctx, query, workflowID)
	if err != nil {
		return nil, fmt.Errorf("list dependencies: %w", err)
	}
	defer rows.Close()

	var edges []domain.DependencyEdge
	for rows.Next() {
		var e domain.DependencyEdge
		if err := rows.Scan(&e.StepSlug, &e.PrerequisiteSlug); err != nil {
			return nil, fmt.Errorf("scan dependency: %w", err)
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// ListForStep возвращает slug'и предпосылок одного шага в порядке создания.
func (r *DependencyRepo) ListForStep(ctx context.Context, stepID uuid.UUID) ([]string, error) {
	query := `
		SELECT p.slug
		FROM dependencies d
		JOIN steps p ON p.id = d.prerequisite_id
		WHERE d.step_id = $1
		ORDER BY d.created_at, d.id
	`
	rows, err := r.pool.Query(ctx, query, stepID)
	if err != nil {
		return nil, fmt.Errorf("list prerequisites: %w", err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("scan prerequisite: %w", err)
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}
