package api

import (
	"errors"
	"net/http"

	"github.com/ndolgov/stepline/internal/engine"
)

// GetExecutionOrder возвращает порядок выполнения шагов workflow.
// GET /api/v1/workflows/{slug}/execution-order
//
// Шаги и рёбра полностью материализуются из БД до запуска алгоритма;
// движок не делает обращений к хранилищу. Цикл — 422 CYCLE_DETECTED.
// Ошибки консистентности графа (ребро на несуществующий шаг) означают
// баг выше по течению и отдаются как 500, а не маскируются.
func (h *Handler) GetExecutionOrder(w http.ResponseWriter, r *http.Request) {
	wf, err := h.workflowRepo.GetBySlug(r.Context(), r.PathValue("slug"))
	if HandleRepoError(w, h.logger, err, "workflow not found") {
		return
	}

	steps, err := h.stepRepo.ListByWorkflow(r.Context(), wf.ID)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	deps, err := h.depRepo.ListByWorkflow(r.Context(), wf.ID)
	if HandleRepoError(w, h.logger, err, "") {
		return
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

	order, err := engine.ComputeOrder(slugs, edges)
	if errors.Is(err, engine.ErrCycleDetected) {
		orderComputedTotal.WithLabelValues("cycle").Inc()
		h.logger.Warn("cycle detected", "workflow", wf.Slug, "error", err)
		CycleDetected(w, "cycle detected")
		return
	}
	if err != nil {
		InternalError(w, h.logger, err)
		return
	}

	orderComputedTotal.WithLabelValues("ok").Inc()

	Success(w, ExecutionOrderResponse{Order: order})
}
