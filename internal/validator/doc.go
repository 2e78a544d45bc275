// Package validator — фоновая проверка графов workflows.
//
// Валидатор периодически (по cron-расписанию) проходит по всем
// workflows, вычисляет порядок выполнения каждого и записывает
// результат (VALID / CYCLIC) в БД. Дополнительно он подписан на
// события workflow.changed и перепроверяет затронутый workflow
// сразу, не дожидаясь очередного прохода.
//
// Сам движок никогда не кэширует граф между вызовами; статус в БД —
// это снапшот на момент проверки, а не источник истины для
// эндпоинта execution-order.
package validator
