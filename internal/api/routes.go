package api

import (
	"net/http"
)

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Middleware chain
	chain := Chain(
		Recovery(h.logger),
		Logging(h.logger),
		Metrics(),
	)

	// Workflows
	mux.Handle("GET /api/v1/workflows", chain(http.HandlerFunc(h.ListWorkflows)))
	mux.Handle("POST /api/v1/workflows", chain(http.HandlerFunc(h.CreateWorkflow)))
	mux.Handle("GET /api/v1/workflows/{slug}", chain(http.HandlerFunc(h.GetWorkflow)))
	mux.Handle("DELETE /api/v1/workflows/{slug}", chain(http.HandlerFunc(h.DeleteWorkflow)))

	// Steps
	mux.Handle("GET /api/v1/workflows/{slug}/steps", chain(http.HandlerFunc(h.ListSteps)))
	mux.Handle("POST /api/v1/workflows/{slug}/steps", chain(http.HandlerFunc(h.AddStep)))

	// Dependencies
	mux.Handle("POST /api/v1/workflows/{slug}/dependencies", chain(http.HandlerFunc(h.AddDependency)))

	// Read-only: детали и порядок выполнения
	mux.Handle("GET /api/v1/workflows/{slug}/details", chain(http.HandlerFunc(h.GetWorkflowDetails)))
	mux.Handle("GET /api/v1/workflows/{slug}/execution-order", chain(http.HandlerFunc(h.GetExecutionOrder)))
}
