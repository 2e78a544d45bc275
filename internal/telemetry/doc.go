// Package telemetry содержит инфраструктуру наблюдаемости:
// настройку структурированного логирования (log/slog) и helpers
// для передачи логгера через context.
package telemetry
