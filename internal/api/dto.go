package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/ndolgov/stepline/internal/domain"
)

// Workflow DTOs

// CreateWorkflowRequest — запрос на создание workflow.
type CreateWorkflowRequest struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// WorkflowResponse — ответ с workflow.
type WorkflowResponse struct {
	ID               uuid.UUID  `json:"id"`
	Slug             string     `json:"slug"`
	Name             string     `json:"name"`
	ValidationStatus string     `json:"validation_status"`
	ValidatedAt      *time.Time `json:"validated_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// WorkflowFromDomain конвертирует domain.Workflow в WorkflowResponse.
func WorkflowFromDomain(wf domain.Workflow) WorkflowResponse {
	return WorkflowResponse{
		ID:               wf.ID,
		Slug:             wf.Slug,
		Name:             wf.Name,
		ValidationStatus: string(wf.ValidationStatus),
		ValidatedAt:      wf.ValidatedAt,
		CreatedAt:        wf.CreatedAt,
	}
}

// Step DTOs

// CreateStepRequest — запрос на добавление шага.
type CreateStepRequest struct {
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// StepResponse — ответ с шагом.
type StepResponse struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// StepFromDomain конвертирует domain.Step в StepResponse.
func StepFromDomain(s domain.Step) StepResponse {
	return StepResponse{
		ID:          s.ID,
		Slug:        s.Slug,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
	}
}

// Dependency DTOs

// CreateDependencyRequest — запрос на добавление зависимости:
// step не может выполниться раньше prerequisite.
type CreateDependencyRequest struct {
	Step         string `json:"step"`
	Prerequisite string `json:"prerequisite"`
}

// DependencyResponse — ответ с созданным ребром.
type DependencyResponse struct {
	Step         string `json:"step"`
	Prerequisite string `json:"prerequisite"`
}

// Details DTOs

// StepDetail — шаг со списком предпосылок.
type StepDetail struct {
	Slug          string   `json:"slug"`
	Description   string   `json:"description"`
	Prerequisites []string `json:"prerequisites"`
}

// WorkflowDetailsResponse — workflow со всеми шагами и их предпосылками.
type WorkflowDetailsResponse struct {
	Slug  string       `json:"slug"`
	Name  string       `json:"name"`
	Steps []StepDetail `json:"steps"`
}

// ExecutionOrderResponse — вычисленный порядок выполнения.
type ExecutionOrderResponse struct {
	Order []string `json:"order"`
}
