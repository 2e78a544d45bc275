package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/ndolgov/stepline/internal/domain"
	"github.com/ndolgov/stepline/internal/mq"
)

// ListSteps возвращает шаги workflow в порядке создания.
// GET /api/v1/workflows/{slug}/steps
func (h *Handler) ListSteps(w http.ResponseWriter, r *http.Request) {
	wf, err := h.workflowRepo.GetBySlug(r.Context(), r.PathValue("slug"))
	if HandleRepoError(w, h.logger, err, "workflow not found") {
		return
	}

	steps, err := h.stepRepo.ListByWorkflow(r.Context(), wf.ID)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]StepResponse, len(steps))
	for i, s := range steps {
		result[i] = StepFromDomain(s)
	}

	List(w, result, len(result))
}

// AddStep добавляет шаг в workflow.
// POST /api/v1/workflows/{slug}/steps
func (h *Handler) AddStep(w http.ResponseWriter, r *http.Request) {
	wf, err := h.workflowRepo.GetBySlug(r.Context(), r.PathValue("slug"))
	if HandleRepoError(w, h.logger, err, "workflow not found") {
		return
	}

	var req CreateStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if req.Slug == "" {
		BadRequest(w, "slug is required")
		return
	}

	step := &domain.Step{
		ID:          uuid.New(),
		WorkflowID:  wf.ID,
		Slug:        req.Slug,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := h.stepRepo.Create(r.Context(), step); err != nil {
		HandleRepoError(w, h.logger, err, "")
		return
	}

	h.notifyChanged(r.Context(), wf, mq.ReasonStepAdded)

	Created(w, StepFromDomain(*step))
}
