package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hansol-kim/building-ledger/internal/common"
	"github.com/hansol-kim/building-ledger/internal/export"
	"github.com/hansol-kim/building-ledger/internal/pipeline"
	"github.com/hansol-kim/building-ledger/internal/repository"
)

// Controller manages the API routes and handlers.
type Controller struct {
	Echo      *echo.Echo
	Group     *echo.Group
	Repo      repository.BuildingRepository
	Processor *pipeline.Processor
	Exporter  *export.Service
	logger    *slog.Logger
}

// New wires the controller onto e under /api.
func New(e *echo.Echo, repo repository.BuildingRepository, proc *pipeline.Processor, exporter *export.Service, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		Echo:      e,
		Group:     e.Group("/api"),
		Repo:      repo,
		Processor: proc,
		Exporter:  exporter,
		logger:    logger,
	}
	e.Use(middleware.Recover())
	c.initRoutes()
	return c
}

func (c *Controller) initRoutes() {
	c.Group.GET("/healthz", c.HealthCheck)

	c.Group.GET("/buildings", c.ListBuildings)
	c.Group.POST("/buildings", c.CreateBuilding)
	c.Group.GET("/buildings/export", c.ExportBuildings)
	c.Group.GET("/buildings/:id", c.GetBuilding)
	c.Group.PUT("/buildings/:id", c.UpdateBuilding)
	c.Group.DELETE("/buildings/:id", c.DeleteBuilding)

	c.Group.PUT("/buildings/:id/analysis-score", c.UpsertAnalysisScore)
	c.Group.POST("/buildings/:id/leases", c.AddLease)
	c.Group.DELETE("/leases/:id", c.DeleteLease)

	c.Group.POST("/parse", c.ParseBrochure)
}

// envelope is the uniform response body for every endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(ctx echo.Context, code int, data any) error {
	return ctx.JSON(code, envelope{Success: true, Data: data})
}

// HandleError logs err and writes the failure envelope. A wrapped
// common.ErrNotFound downgrades the status to 404.
func (c *Controller) HandleError(ctx echo.Context, err error, message string, code int) error {
	if errors.Is(err, common.ErrNotFound) {
		code = http.StatusNotFound
	}
	c.logger.Error("api.request.failed",
		"method", ctx.Request().Method,
		"path", ctx.Request().URL.Path,
		"status", code,
		"message", message,
		"error", err,
	)
	return ctx.JSON(code, envelope{Success: false, Error: message})
}

func (c *Controller) HealthCheck(ctx echo.Context) error {
	return respond(ctx, http.StatusOK, map[string]string{"status": "ok"})
}
