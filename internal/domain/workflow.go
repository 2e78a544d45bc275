package domain

import (
	"time"

	"github.com/google/uuid"
)

// Workflow — именованный набор шагов с отношениями-предпосылками.
//
// Workflow не выполняется самой системой: Stepline только хранит
// шаги и их зависимости и вычисляет порядок выполнения.
type Workflow struct {
	// ID — внутренний идентификатор workflow (первичный ключ).
	ID uuid.UUID `json:"id"`

	// Slug — внешний строковый идентификатор, уникальный глобально.
	// Используется во всех публичных путях API.
	Slug string `json:"slug"`

	// Name — человекочитаемое имя workflow.
	Name string `json:"name"`

	// ValidationStatus — результат последней фоновой валидации графа.
	ValidationStatus ValidationStatus `json:"validation_status"`

	// ValidatedAt — время последней валидации. Nil, если workflow
	// ещё ни разу не проверялся.
	ValidatedAt *time.Time `json:"validated_at,omitempty"`

	// CreatedAt — время создания workflow.
	CreatedAt time.Time `json:"created_at"`
}

// ValidationStatus — статус валидации графа зависимостей workflow.
type ValidationStatus string

const (
	// ValidationUnknown — workflow ещё не проверялся валидатором.
	ValidationUnknown ValidationStatus = "UNKNOWN"

	// ValidationValid — граф ацикличен, порядок выполнения существует.
	ValidationValid ValidationStatus = "VALID"

	// ValidationCyclic — в графе обнаружен цикл.
	ValidationCyclic ValidationStatus = "CYCLIC"
)
