package server

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/promptflow/promptflow/internal/store"
	"github.com/promptflow/promptflow/internal/workflow"
)

const historyLimit = 10

var workflowTracer = otel.Tracer("promptflow/internal/server/workflow")

// WorkflowRunner executes one end-to-end workflow invocation.
type WorkflowRunner interface {
	RunWorkflow(ctx context.Context, prompt, action, location string) (workflow.Result, error)
}

// RunLister queries persisted runs by recency.
type RunLister interface {
	RecentWorkflowRuns(ctx context.Context, limit int) ([]store.WorkflowRun, error)
}

// WorkflowHandler exposes the workflow trigger and history endpoints.
type WorkflowHandler struct {
	runner WorkflowRunner
	runs   RunLister
	logger *log.Logger
}

func NewWorkflowHandler(runner WorkflowRunner, runs RunLister) *WorkflowHandler {
	return &WorkflowHandler{
		runner: runner,
		runs:   runs,
		logger: log.New(log.Writer(), "[WORKFLOW] ", log.LstdFlags),
	}
}

func (h *WorkflowHandler) Register(g *echo.Group) {
	g.POST("/workflow", h.trigger)
	g.GET("/history", h.history)
}

type workflowRequest struct {
	Prompt   string `json:"prompt"`
	Action   string `json:"action"`
	Location string `json:"location"`
}

type historyResponse struct {
	Total int                 `json:"total"`
	Runs  []store.WorkflowRun `json:"runs"`
}

func (h *WorkflowHandler) trigger(c echo.Context) error {
	var req workflowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	// Parsed kind only: raw client input must not mint metric label values.
	actionLabel := workflow.ParseAction(req.Action).String()

	ctx, span := workflowTracer.Start(c.Request().Context(), "workflow.run")
	span.SetAttributes(attribute.String("workflow.action", actionLabel))
	defer span.End()

	res, err := h.runner.RunWorkflow(ctx, req.Prompt, req.Action, req.Location)
	if err != nil {
		if errors.Is(err, workflow.ErrValidation) {
			workflowRunsTotal.WithLabelValues(actionLabel, "invalid").Inc()
			return echo.NewHTTPError(http.StatusBadRequest, workflow.ErrValidation.Error())
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		workflowRunsTotal.WithLabelValues(actionLabel, "error").Inc()
		return err
	}

	workflowRunsTotal.WithLabelValues(actionLabel, "ok").Inc()
	return c.JSON(http.StatusOK, res)
}

func (h *WorkflowHandler) history(c echo.Context) error {
	runs, err := h.runs.RecentWorkflowRuns(c.Request().Context(), historyLimit)
	if err != nil {
		return err
	}
	if runs == nil {
		runs = []store.WorkflowRun{}
	}
	return c.JSON(http.StatusOK, historyResponse{Total: len(runs), Runs: runs})
}
