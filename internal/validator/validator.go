package validator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ndolgov/stepline/internal/domain"
	"github.com/ndolgov/stepline/internal/engine"
	"github.com/ndolgov/stepline/internal/mq"
	"github.com/ndolgov/stepline/internal/repo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики валидатора.
var (
	sweepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stepline_validator_sweeps_total",
		Help: "Total validation sweeps",
	})

	validatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stepline_validator_workflows_total",
		Help: "Validated workflows by result",
	}, []string{"result"})
)

// Validator проверяет графы workflows и записывает результат в БД.
type Validator struct {
	workflowRepo *repo.WorkflowRepo
	stepRepo     *repo.StepRepo
	depRepo      *repo.DependencyRepo
	logger       *slog.Logger
}

// Config — конфигурация Validator.
type Config struct {
	WorkflowRepo *repo.WorkflowRepo
	StepRepo     *repo.StepRepo
	DepRepo      *repo.DependencyRepo
	Logger       *slog.Logger
}

// New создаёт новый Validator.
func New(cfg Config) *Validator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Validator{
		workflowRepo: cfg.WorkflowRepo,
		stepRepo:     cfg.StepRepo,
		depRepo:      cfg.DepRepo,
		logger:       logger,
	}
}

// Sweep выполняет один проход: валидирует все workflows.
// Ошибка одного workflow не блокирует обработку остальных.
func (v *Validator) Sweep(ctx context.Context) error {
	sweepsTotal.Inc()

	workflows, err := v.workflowRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list workflows: %w", err)
	}

	var checked, cyclic int
	for i := range workflows {
		wf := &workflows[i]

		status, err := v.ValidateWorkflow(ctx, wf.ID)
		if err != nil {
			v.logger.Error("failed to validate workflow",
				"workflow", wf.Slug,
				"error", err,
			)
			continue
		}

		checked++
		if status == domain.ValidationCyclic {
			cyclic++
		}
	}

	v.logger.Info("validation sweep completed",
		"workflows", len(workflows),
		"checked", checked,
		"cyclic", cyclic,
	)

	return nil
}

// ValidateWorkflow валидирует один workflow: материализует его шаги
// и рёбра, прогоняет топологическую сортировку и сохраняет результат.
func (v *Validator) ValidateWorkflow(ctx context.Context, workflowID uuid.UUID) (domain.ValidationStatus, error) {
	steps, err := v.stepRepo.ListByWorkflow(ctx, workflowID)
	if err != nil {
		return "", fmt.Errorf("list steps: %w", err)
	}

	deps, err := v.depRepo.ListByWorkflow(ctx, workflowID)
	if err != nil {
		return "", fmt.Errorf("list dependencies: %w", err)
	}

	slugs := make([]string, len(steps))
	for i, s := range steps {
		slugs[i] = s.Slug
	}

	edges := make([]engine.Edge, len(deps))
	for i, d := range deps {
		edges[i] = engine.Edge{
			Prerequisite: d.PrerequisiteSlug,
			Dependent:    d.StepSlug,
		}
	}

	status := domain.ValidationValid
	if _, err := engine.ComputeOrder(slugs, edges); err != nil {
		if !errors.Is(err, engine.ErrCycleDetected) {
			// Ребро на несуществующий шаг и подобное — баг целостности
			// данных, а не цикл. Не перезаписываем статус.
			return "", fmt.Errorf("compute order: %w", err)
		}
		status = domain.ValidationCyclic
	}

	if err := v.workflowRepo.SetValidation(ctx, workflowID, status, time.Now()); err != nil {
		// Workflow могли удалить между выборкой и записью.
		if errors.Is(err, repo.ErrNotFound) {
			return status, nil
		}
		return "", fmt.Errorf("set validation: %w", err)
	}

	validatedTotal.WithLabelValues(string(status)).Inc()

	if status == domain.ValidationCyclic {
		v.logger.Warn("workflow has cyclic dependencies", "workflow_id", workflowID)
	}

	return status, nil
}

// HandleChanged — обработчик события workflow.changed из очереди.
func (v *Validator) HandleChanged(ctx context.Context, msg *mq.Message) error {
	payload, err := mq.ParsePayload[mq.WorkflowChangedPayload](msg)
	if err != nil {
		return fmt.Errorf("parse payload: %w", err)
	}

	if payload.Reason == mq.ReasonDeleted {
		return nil
	}

	status, err := v.ValidateWorkflow(ctx, payload.WorkflowID)
	if err != nil {
		return fmt.Errorf("validate workflow %s: %w", payload.Slug, err)
	}

	v.logger.Debug("revalidated workflow on change",
		"workflow", payload.Slug,
		"reason", payload.Reason,
		"status", status,
	)

	return nil
}
