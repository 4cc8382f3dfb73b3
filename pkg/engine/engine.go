// Package engine executes graph documents: it validates the graph, seeds
// the run with trigger and entry nodes, walks connections forward and
// produces a run report covering every reachable node.
//
// Execution is at-most-once per node per run. A node becomes eligible once
// every input port with an incoming connection has received a value; nodes
// downstream of an output port that never fired are reported as skipped.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/toolweave/toolweave/pkg/eventbus"
	"github.com/toolweave/toolweave/pkg/events"
	"github.com/toolweave/toolweave/pkg/models"
	"github.com/toolweave/toolweave/pkg/otelhelper"
	"github.com/toolweave/toolweave/pkg/protocol"
	"github.com/toolweave/toolweave/pkg/registry"
	"github.com/toolweave/toolweave/pkg/template"
	"github.com/toolweave/toolweave/pkg/validation"
)

// Engine runs graph documents against the registered tools.
type Engine struct {
	registry *registry.Registry
	eventBus eventbus.EventPublisher
	logger   *slog.Logger
	tracer   trace.Tracer
}

// Option configures an Engine.
type Option func(*Engine)

// WithEventBus makes the engine publish run lifecycle events. Publishing is
// fire-and-forget: a slow or failing bus never delays a run.
func WithEventBus(bus eventbus.EventPublisher) Option {
	return func(e *Engine) {
		e.eventBus = bus
	}
}

// WithTracer attaches a tracer for run and node spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = tracer
	}
}

// New creates an engine backed by the given tool registry.
func New(reg *registry.Registry, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		registry: reg,
		logger:   logger,
		tracer:   noop.NewTracerProvider().Tracer("engine"),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// run carries the mutable state of one execution.
type run struct {
	doc    *models.GraphDocument
	report *models.RunReport

	// deposits holds, per node, the values delivered to its input ports.
	deposits map[string]map[string]map[string]any

	executed map[string]bool
	enqueued map[string]bool
	queue    []string

	started time.Time
}

// Run executes the document and returns the report. The report is non-nil
// whenever the run was admitted; admission failures (validation errors, no
// entry point) return a nil report.
func (e *Engine) Run(ctx context.Context, doc *models.GraphDocument) (*models.RunReport, error) {
	result := validation.Validate(doc, e.registry.Catalog())
	if result.HasErrors() {
		return nil, fmt.Errorf("%w: %s", models.ErrValidation, result.Errors[0].Message)
	}

	start := e.startSet(doc)
	if len(start) == 0 {
		return nil, models.ErrNoEntryPoint
	}

	runID := uuid.NewString()

	ctx, span := otelhelper.StartSpan(ctx, e.tracer, "engine.run",
		attribute.String(otelhelper.RunIDKey, runID),
		attribute.String(otelhelper.GraphNameKey, doc.Metadata.Name),
	)
	defer span.End()

	r := &run{
		doc: doc,
		report: &models.RunReport{
			RunID:     runID,
			GraphName: doc.Metadata.Name,
			Status:    models.RunStatusRunning,
			StartedAt: time.Now().UTC(),
		},
		deposits: make(map[string]map[string]map[string]any),
		executed: make(map[string]bool),
		enqueued: make(map[string]bool),
		started:  time.Now(),
	}

	e.logger.Info("run started", "run_id", runID, "graph", doc.Metadata.Name, "nodes", len(doc.Nodes))
	e.publish(ctx, runID, events.RunStarted{
		BaseEvent: e.baseEvent(events.RunStartedEvent, r),
		NodeCount: len(doc.Nodes),
	})

	for _, nodeID := range start {
		r.enqueued[nodeID] = true
		r.queue = append(r.queue, nodeID)
	}

	var runErr error

loop:
	for len(r.queue) > 0 {
		if ctx.Err() != nil {
			r.report.Status = models.RunStatusCancelled
			runErr = ctx.Err()

			break loop
		}

		nodeID := r.queue[0]
		r.queue = r.queue[1:]

		node := doc.NodeByID(nodeID)
		if node == nil || r.executed[nodeID] {
			continue
		}

		step, outputs := e.executeNode(ctx, r, node)
		r.executed[nodeID] = true
		r.report.Steps = append(r.report.Steps, *step)

		if step.Status == models.StepStatusFailure {
			if ctx.Err() != nil {
				r.report.Status = models.RunStatusCancelled
				runErr = ctx.Err()

				break loop
			}

			policy := policyFromConfig(node.Config)
			if policy.ErrorHandling != ErrorHandlingContinue {
				r.report.Status = models.RunStatusFailed
				runErr = models.NewToolExecutionError(node.ID, node.ToolID, errors.New(step.Error))

				break loop
			}

			// Continue mode: the failed node produced nothing, so its
			// downstream nodes simply never become eligible. The failure
			// still fails the overall run once the walk finishes.
			if runErr == nil {
				runErr = models.NewToolExecutionError(node.ID, node.ToolID, errors.New(step.Error))
			}

			continue
		}

		e.route(r, node, outputs)
	}

	if ctx.Err() != nil && r.report.Status == models.RunStatusRunning {
		r.report.Status = models.RunStatusCancelled
		runErr = ctx.Err()
	}

	e.markSkipped(r, start)

	if r.report.Status == models.RunStatusRunning {
		if runErr != nil {
			r.report.Status = models.RunStatusFailed
		} else {
			r.report.Status = models.RunStatusCompleted
		}
	}

	r.report.FinishedAt = time.Now().UTC()

	errText := ""
	if runErr != nil {
		errText = runErr.Error()
		otelhelper.SetError(span, runErr)
	}

	e.logger.Info("run finished",
		"run_id", runID,
		"status", r.report.Status,
		"executed", r.report.ExecutedCount(),
		"duration", time.Since(r.started),
	)
	e.publish(ctx, runID, events.RunFinished{
		BaseEvent: e.baseEvent(events.RunFinishedEvent, r),
		Status:    r.report.Status,
		Error:     errText,
		Duration:  time.Since(r.started),
	})

	return r.report, runErr
}

// startSet returns trigger-category nodes plus nodes with no incoming
// connections, in document order and without duplicates.
func (e *Engine) startSet(doc *models.GraphDocument) []string {
	cat := e.registry.Catalog()

	hasIncoming := make(map[string]bool, len(doc.Nodes))
	for _, conn := range doc.Connections {
		hasIncoming[conn.TargetNodeID] = true
	}

	var start []string

	seen := make(map[string]bool, len(doc.Nodes))

	for _, node := range doc.Nodes {
		if cat.IsTrigger(node.ToolID) || !hasIncoming[node.ID] {
			if !seen[node.ID] {
				seen[node.ID] = true
				start = append(start, node.ID)
			}
		}
	}

	return start
}

// executeNode runs one node under its policy and returns the step record
// plus the outputs it fired (nil on failure).
func (e *Engine) executeNode(ctx context.Context, r *run, node *models.Node) (*models.StepResult, protocol.Outputs) {
	nodeCtx, span := otelhelper.StartSpan(ctx, e.tracer, "engine.execute_node",
		attribute.String(otelhelper.NodeIDKey, node.ID),
		attribute.String(otelhelper.ToolIDKey, node.ToolID),
	)
	defer span.End()

	e.publish(nodeCtx, r.report.RunID, events.NodeStarted{
		BaseEvent: e.baseEvent(events.NodeStartedEvent, r),
		NodeID:    node.ID,
		ToolID:    node.ToolID,
	})

	policy := policyFromConfig(node.Config)
	inputs := r.deposits[node.ID]
	started := time.Now()

	outputs, err := e.attempt(nodeCtx, node, policy, inputs)

	step := &models.StepResult{
		NodeID:     node.ID,
		ToolID:     node.ToolID,
		DurationMs: time.Since(started).Milliseconds(),
	}

	firedPorts := make([]string, 0, len(outputs))

	if err != nil {
		step.Status = models.StepStatusFailure
		step.Error = err.Error()

		otelhelper.SetError(span, err)
		e.logger.Warn("node failed", "run_id", r.report.RunID, "node_id", node.ID, "tool_id", node.ToolID, "error", err)
	} else {
		step.Status = models.StepStatusSuccess
		step.OutputValues = outputs

		for port := range outputs {
			firedPorts = append(firedPorts, port)
		}
	}

	e.publish(nodeCtx, r.report.RunID, events.NodeFinished{
		BaseEvent:  e.baseEvent(events.NodeFinishedEvent, r),
		NodeID:     node.ID,
		ToolID:     node.ToolID,
		Status:     step.Status,
		FiredPorts: firedPorts,
		Error:      step.Error,
		DurationMs: step.DurationMs,
	})

	if err != nil {
		return step, nil
	}

	return step, outputs
}

// attempt executes the node up to the policy's attempt budget, with a fixed
// delay between attempts. Parent cancellation aborts immediately; a per-node
// timeout only fails the attempt.
func (e *Engine) attempt(ctx context.Context, node *models.Node, policy nodePolicy, inputs protocol.Inputs) (protocol.Outputs, error) {
	config, err := template.RenderConfig(node.Config, inputs)
	if err != nil {
		return nil, fmt.Errorf("rendering config for node %s: %w", node.ID, err)
	}

	executor, err := e.registry.CreateExecutor(ctx, node.ToolID)
	if err != nil {
		return nil, err
	}

	var lastErr error

	for i := range policy.attempts() {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}

			e.logger.Debug("retrying node", "node_id", node.ID, "attempt", i+1)
		}

		attemptCtx, cancel := context.WithTimeout(ctx, policy.Timeout)
		outputs, err := executor.Execute(attemptCtx, config, inputs)

		cancel()

		if err == nil {
			return outputs, nil
		}

		lastErr = err

		// The parent being cancelled ends the run; only attempt-level
		// timeouts are retryable.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

// route delivers fired outputs to downstream input ports and enqueues every
// target whose connected inputs are now all satisfied.
func (e *Engine) route(r *run, node *models.Node, outputs protocol.Outputs) {
	for _, conn := range r.doc.Connections {
		if conn.SourceNodeID != node.ID {
			continue
		}

		record, fired := outputs[conn.SourcePort]
		if !fired {
			continue
		}

		if r.deposits[conn.TargetNodeID] == nil {
			r.deposits[conn.TargetNodeID] = make(map[string]map[string]any)
		}

		r.deposits[conn.TargetNodeID][conn.TargetPort] = record

		if !r.executed[conn.TargetNodeID] && !r.enqueued[conn.TargetNodeID] && e.ready(r, conn.TargetNodeID) {
			r.enqueued[conn.TargetNodeID] = true
			r.queue = append(r.queue, conn.TargetNodeID)
		}
	}
}

// ready reports whether every input port of the node that has an incoming
// connection has received a value.
func (e *Engine) ready(r *run, nodeID string) bool {
	for _, conn := range r.doc.Connections {
		if conn.TargetNodeID != nodeID {
			continue
		}

		if _, ok := r.deposits[nodeID][conn.TargetPort]; !ok {
			return false
		}
	}

	return true
}

// markSkipped appends skipped step records for every node reachable from the
// start set that did not execute: failed-branch downstream, never-fired
// branches and joins starved by them.
func (e *Engine) markSkipped(r *run, start []string) {
	adjacency := make(map[string][]string, len(r.doc.Nodes))
	for _, conn := range r.doc.Connections {
		adjacency[conn.SourceNodeID] = append(adjacency[conn.SourceNodeID], conn.TargetNodeID)
	}

	reachable := make(map[string]bool, len(r.doc.Nodes))
	frontier := append([]string(nil), start...)

	for len(frontier) > 0 {
		nodeID := frontier[0]
		frontier = frontier[1:]

		if reachable[nodeID] {
			continue
		}

		reachable[nodeID] = true
		frontier = append(frontier, adjacency[nodeID]...)
	}

	for _, node := range r.doc.Nodes {
		if !reachable[node.ID] || r.executed[node.ID] {
			continue
		}

		r.report.Steps = append(r.report.Steps, models.StepResult{
			NodeID: node.ID,
			ToolID: node.ToolID,
			Status: models.StepStatusSkipped,
		})
	}
}

func (e *Engine) baseEvent(eventType events.EventType, r *run) events.BaseEvent {
	base := events.NewBaseEvent(eventType, r.report.RunID)
	base.GraphName = r.report.GraphName

	return base
}

// publish sends an event without blocking the run.
func (e *Engine) publish(ctx context.Context, key string, event eventbus.Event) {
	if e.eventBus == nil {
		return
	}

	go func() {
		if err := e.eventBus.Publish(context.WithoutCancel(ctx), key, event); err != nil {
			e.logger.Warn("failed to publish event", "event_type", event.GetType(), "error", err)
		}
	}()
}
