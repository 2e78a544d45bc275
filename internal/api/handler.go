package api

import (
	"log/slog"

	"github.com/ndolgov/stepline/internal/mq"
	"github.com/ndolgov/stepline/internal/repo"
)

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	workflowRepo *repo.WorkflowRepo
	stepRepo     *repo.StepRepo
	depRepo      *repo.DependencyRepo
	publisher    *mq.Publisher // nil, если обмен событиями выключен
	logger       *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	WorkflowRepo *repo.WorkflowRepo
	StepRepo     *repo.StepRepo
	DepRepo      *repo.DependencyRepo
	Publisher    *mq.Publisher
	Logger       *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		workflowRepo: cfg.WorkflowRepo,
		stepRepo:     cfg.StepRepo,
		depRepo:      cfg.DepRepo,
		publisher:    cfg.Publisher,
		logger:       cfg.Logger,
	}
}
