package domain

import (
	"time"

	"github.com/google/uuid"
)

// Step — единица работы внутри workflow.
//
// Slug уникален в пределах своего workflow. Система не интерпретирует
// содержимое slug — это непрозрачный токен.
type Step struct {
	// ID — внутренний идентификатор шага (первичный ключ).
	ID uuid.UUID `json:"id"`

	// WorkflowID — ссылка на родительский workflow.
	WorkflowID uuid.UUID `json:"workflow_id"`

	// Slug — внешний строковый идентификатор шага.
	Slug string `json:"slug"`

	// Description — описание назначения шага.
	Description string `json:"description"`

	// CreatedAt — время создания шага. Порядок создания шагов
	// определяет детерминированный tie-break при сортировке.
	CreatedAt time.Time `json:"created_at"`
}
