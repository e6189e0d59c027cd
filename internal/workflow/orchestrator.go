package workflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// ErrValidation is returned before any record is created when required
// request fields are missing.
var ErrValidation = errors.New("prompt and action are required")

// RunStore is the durable collection of workflow runs the orchestrator owns
// the lifecycle of.
type RunStore interface {
	CreateWorkflowRun(ctx context.Context, prompt, action string) (string, error)
	FinalizeWorkflowRun(ctx context.Context, runID, aiResponse, apiResponse, finalResult string) error
}

// Generator produces a short text completion from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Dispatcher fetches external data for an action. Implementations degrade
// every provider failure into the returned string; dispatch never aborts the
// pipeline.
type Dispatcher interface {
	Fetch(ctx context.Context, action Action, location string) string
}

// Result is the composed payload returned to the caller and persisted onto
// the run record.
type Result struct {
	AIResponse  string `json:"ai_response"`
	APIResponse string `json:"api_response"`
	FinalResult string `json:"final_result"`
}

// Orchestrator sequences one workflow invocation: persist a pending run, call
// the generator and the provider dispatcher with isolated failure handling,
// compose, and finalize the run in a single update.
type Orchestrator struct {
	store       RunStore
	gen         Generator
	dispatch    Dispatcher
	callTimeout time.Duration
	logger      *log.Logger
}

func NewOrchestrator(store RunStore, gen Generator, dispatch Dispatcher, callTimeout time.Duration, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.New(log.Writer(), "[WORKFLOW] ", log.LstdFlags)
	}
	if callTimeout <= 0 {
		callTimeout = 10 * time.Second
	}
	return &Orchestrator{
		store:       store,
		gen:         gen,
		dispatch:    dispatch,
		callTimeout: callTimeout,
		logger:      logger,
	}
}

// RunWorkflow executes the full pipeline for one request. Generator and
// provider failures are captured into the response strings; validation,
// create and finalize failures propagate to the caller.
func (o *Orchestrator) RunWorkflow(ctx context.Context, prompt, action, location string) (Result, error) {
	if strings.TrimSpace(prompt) == "" || strings.TrimSpace(action) == "" {
		return Result{}, ErrValidation
	}

	// Pending record first, so the run stays traceable even if every
	// upstream call fails.
	runID, err := o.store.CreateWorkflowRun(ctx, prompt, action)
	if err != nil {
		return Result{}, fmt.Errorf("create workflow run: %w", err)
	}

	act := ParseAction(action)

	aiResponse, err := o.generate(ctx, prompt)
	if err != nil {
		o.logger.Printf("run %s: generation failed: %v", runID, err)
		aiResponse = "AI error: " + err.Error()
	}

	fetchCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
	apiResponse := o.dispatch.Fetch(fetchCtx, act, location)
	cancel()

	aiTrim := strings.TrimSpace(aiResponse)
	apiTrim := strings.TrimSpace(apiResponse)
	finalResult := Compose(aiTrim, apiTrim, act)

	if err := o.store.FinalizeWorkflowRun(ctx, runID, aiTrim, apiTrim, finalResult); err != nil {
		// The pending record exists and stays diagnosable.
		return Result{}, fmt.Errorf("finalize workflow run %s: %w", runID, err)
	}

	return Result{AIResponse: aiTrim, APIResponse: apiTrim, FinalResult: finalResult}, nil
}

func (o *Orchestrator) generate(ctx context.Context, prompt string) (string, error) {
	genCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
	defer cancel()
	return o.gen.Generate(genCtx, prompt)
}
