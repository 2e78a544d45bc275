package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/ndolgov/stepline/internal/domain"
	"github.com/ndolgov/stepline/internal/mq"
)

// ListWorkflows возвращает список всех workflows.
// GET /api/v1/workflows
func (h *Handler) ListWorkflows(w http.ResponseWriter, r *http.Request) {
	workflows, err := h.workflowRepo.List(r.Context())
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]WorkflowResponse, len(workflows))
	for i, wf := range workflows {
		result[i] = WorkflowFromDomain(wf)
	}

	List(w, result, len(result))
}

// CreateWorkflow создаёт новый workflow.
// POST /api/v1/workflows
func (h *Handler) CreateWorkflow(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if req.Slug == "" {
		BadRequest(w, "slug is required")
		return
	}
	if req.Name == "" {
		BadRequest(w, "name is required")
		return
	}

	wf := &domain.Workflow{
		ID:               uuid.New(),
		Slug:             req.Slug,
		Name:             req.Name,
		ValidationStatus: domain.ValidationUnknown,
		CreatedAt:        time.Now(),
	}

	if err := h.workflowRepo.Create(r.Context(), wf); err != nil {
		HandleRepoError(w, h.logger, err, "")
		return
	}

	h.notifyChanged(r.Context(), wf, mq.ReasonCreated)

	Created(w, WorkflowFromDomain(*wf))
}

// GetWorkflow возвращает workflow по slug.
// GET /api/v1/workflows/{slug}
func (h *Handler) GetWorkflow(w http.ResponseWriter, r *http.Request) {
	wf, err := h.workflowRepo.GetBySlug(r.Context(), r.PathValue("slug"))
	if HandleRepoError(w, h.logger, err, "workflow not found") {
		return
	}

	Success(w, WorkflowFromDomain(*wf))
}

// DeleteWorkflow удаляет workflow вместе с шагами и зависимостями.
// DELETE /api/v1/workflows/{slug}
func (h *Handler) DeleteWorkflow(w http.ResponseWriter, r *http.Request) {
	wf, err := h.workflowRepo.GetBySlug(r.Context(), r.PathValue("slug"))
	if HandleRepoError(w, h.logger, err, "workflow not found") {
		return
	}

	if err := h.workflowRepo.Delete(r.Context(), wf.ID); err != nil {
		HandleRepoError(w, h.logger, err, "workflow not found")
		return
	}

	h.notifyChanged(r.Context(), wf, mq.ReasonDeleted)

	NoContent(w)
}

// GetWorkflowDetails возвращает workflow со всеми шагами
// и их предпосылками.
// GET /api/v1/workflows/{slug}/details
func (h *Handler) GetWorkflowDetails(w http.ResponseWriter, r *http.Request) {
	wf, err := h.workflowRepo.GetBySlug(r.Context(), r.PathValue("slug"))
	if HandleRepoError(w, h.logger, err, "workflow not found") {
		return
	}

	steps, err := h.stepRepo.ListByWorkflow(r.Context(), wf.ID)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	// Предпосылки всех шагов одним запросом, затем группировка в памяти.
	edges, err := h.depRepo.ListByWorkflow(r.Context(), wf.ID)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	prereqs := make(map[string][]string, len(steps))
	for _, e := range edges {
		prereqs[e.StepSlug] = append(prereqs[e.StepSlug], e.PrerequisiteSlug)
	}

	details := WorkflowDetailsResponse{
		Slug:  wf.Slug,
		Name:  wf.Name,
		Steps: make([]StepDetail, len(steps)),
	}
	for i, s := range steps {
		p := prereqs[s.Slug]
		if p == nil {
			p = []string{}
		}
		details.Steps[i] = StepDetail{
			Slug:          s.Slug,
			Description:   s.Description,
			Prerequisites: p,
		}
	}

	Success(w, details)
}

// notifyChanged публикует событие об изменении workflow.
// Ошибка публикации не фатальна: валидатор доберётся до workflow
// в периодическом проходе.
func (h *Handler) notifyChanged(ctx context.Context, wf *domain.Workflow, reason mq.ChangeReason) {
	if h.publisher == nil {
		return
	}

	if err := h.publisher.PublishWorkflowChanged(ctx, wf.ID, wf.Slug, reason); err != nil {
		h.logger.Warn("failed to publish workflow.changed",
			"workflow", wf.Slug,
			"reason", reason,
			"error", err,
		)
	}
}
