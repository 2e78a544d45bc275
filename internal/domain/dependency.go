package domain

import (
	"time"

	"github.com/google/uuid"
)

// Dependency — направленное ребро "prerequisite должен выполниться
// раньше step" между двумя шагами одного workflow.
//
// Петли (step == prerequisite) отклоняются до записи в БД.
type Dependency struct {
	// ID — внутренний идентификатор ребра.
	ID uuid.UUID `json:"id"`

	// WorkflowID — workflow, которому принадлежат оба шага.
	WorkflowID uuid.UUID `json:"workflow_id"`

	// StepID — зависимый шаг.
	StepID uuid.UUID `json:"step_id"`

	// PrerequisiteID — шаг-предпосылка.
	PrerequisiteID uuid.UUID `json:"prerequisite_id"`

	// CreatedAt — время создания ребра.
	CreatedAt time.Time `json:"created_at"`
}

// DependencyEdge — ребро, разрешённое в slug'и шагов.
// В таком виде зависимости отдаются наружу и передаются движку.
type DependencyEdge struct {
	// StepSlug — slug зависимого шага.
	StepSlug string `json:"step"`

	// PrerequisiteSlug — slug шага-предпосылки.
	PrerequisiteSlug string `json:"prerequisite"`
}
