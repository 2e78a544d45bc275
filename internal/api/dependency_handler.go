package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/ndolgov/stepline/internal/domain"
	"github.com/ndolgov/stepline/internal/mq"
)

// AddDependency добавляет ребро "prerequisite раньше step".
// POST /api/v1/workflows/{slug}/dependencies
//
// Петля (step == prerequisite) отклоняется здесь, до движка и до БД.
// Оба шага должны существовать в workflow — иначе 404.
func (h *Handler) AddDependency(w http.ResponseWriter, r *http.Request) {
	wf, err := h.workflowRepo.GetBySlug(r.Context(), r.PathValue("slug"))
	if HandleRepoError(w, h.logger, err, "workflow not found") {
		return
	}

	var req CreateDependencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if req.Step == "" || req.Prerequisite == "" {
		BadRequest(w, "step and prerequisite are required")
		return
	}
	if req.Step == req.Prerequisite {
		BadRequest(w, "a step cannot depend on itself")
		return
	}

	step, err := h.stepRepo.GetBySlug(r.Context(), wf.ID, req.Step)
	if HandleRepoError(w, h.logger, err, "step not found: "+req.Step) {
		return
	}

	prereq, err := h.stepRepo.GetBySlug(r.Context(), wf.ID, req.Prerequisite)
	if HandleRepoError(w, h.logger, err, "step not found: "+req.Prerequisite) {
		return
	}

	dep := &domain.Dependency{
		ID:             uuid.New(),
		WorkflowID:     wf.ID,
		StepID:         step.ID,
		PrerequisiteID: prereq.ID,
		CreatedAt:      time.Now(),
	}

	if err := h.depRepo.Create(r.Context(), dep); err != nil {
		HandleRepoError(w, h.logger, err, "")
		return
	}

	h.notifyChanged(r.Context(), wf, mq.ReasonDependencyAdded)

	Created(w, DependencyResponse{
		Step:         step.Slug,
		Prerequisite: prereq.Slug,
	})
}
