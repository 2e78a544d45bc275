package engine

import (
	"errors"
	"strings"
)

// Ошибки построения графа.
var (
	// ErrEmptyStepID — шаг с пустым идентификатором.
	ErrEmptyStepID = errors.New("step has empty id")

	// ErrDuplicateStep — несколько шагов с одинаковым идентификатором.
	ErrDuplicateStep = errors.New("duplicate step id")

	// ErrUnknownStep — ребро ссылается на шаг вне набора.
	// Это баг вызывающей стороны: persistence-слой обязан проверить
	// существование шагов до вставки ребра. Ребро не игнорируется —
	// молчаливый пропуск мог бы скрыть цикл или исказить порядок.
	ErrUnknownStep = errors.New("edge references unknown step")

	// ErrSelfDependency — шаг зависит от самого себя.
	ErrSelfDependency = errors.New("step depends on itself")

	// ErrCycleDetected — граф содержит цикл, порядок выполнения невозможен.
	ErrCycleDetected = errors.New("cycle detected")
)

// GraphError — ошибка построения графа с контекстом шага.
type GraphError struct {
	StepID  string // шаг, на котором обнаружена проблема
	Message string // описание
	Err     error  // базовая ошибка
}

// Error реализует интерфейс error.
func (e *GraphError) Error() string {
	if e.StepID != "" {
		return "step " + e.StepID + ": " + e.Message
	}
	return e.Message
}

// Unwrap возвращает базовую ошибку.
func (e *GraphError) Unwrap() error {
	return e.Err
}

// CycleError — обнаружен цикл. Remaining содержит шаги, не вошедшие
// в порядок (они образуют один или несколько циклов), в порядке
// их появления во входном наборе.
type CycleError struct {
	Remaining []string
}

// Error реализует интерфейс error.
func (e *CycleError) Error() string {
	return "cycle detected among steps: " + strings.Join(e.Remaining, ", ")
}

// Unwrap сводит CycleError к сентинелу ErrCycleDetected.
func (e *CycleError) Unwrap() error {
	return ErrCycleDetected
}
