package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var workflowRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "promptflow_workflow_runs_total",
	Help: "Workflow invocations by action and outcome.",
}, []string{"action", "outcome"})
