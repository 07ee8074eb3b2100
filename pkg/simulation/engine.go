package simulation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/flowhr/flowhr/pkg/models"
	"github.com/flowhr/flowhr/pkg/otelhelper"
)

// DefaultApprovalProbability is the chance an Approval node is approved
// during a simulated run.
const DefaultApprovalProbability = 0.7

// ApprovalDecider decides the outcome of an Approval node. The default is
// stochastic; tests and the CLI inject deterministic ones.
type ApprovalDecider func(data models.ApprovalData) bool

// RandomDecider approves with the given probability using the shared
// random source.
func RandomDecider(probability float64) ApprovalDecider {
	return func(models.ApprovalData) bool {
		return rand.Float64() < probability
	}
}

// SeededDecider approves with the given probability from a seeded source,
// making runs reproducible.
func SeededDecider(probability float64, seed uint64) ApprovalDecider {
	rng := rand.New(rand.NewPCG(seed, seed))

	return func(models.ApprovalData) bool {
		return rng.Float64() < probability
	}
}

// Engine executes a workflow graph in resolved order, producing a trace.
// Steps run strictly sequentially; downstream consumers rely on step
// indices matching traversal order. A run has no mid-flight cancellation:
// once started it completes to its natural end.
type Engine struct {
	logger    *slog.Logger
	tracer    trace.Tracer
	decider   ApprovalDecider
	now       func() time.Time
	stepDelay time.Duration
}

// NewEngine creates a simulation engine with the stochastic default
// approval decider.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{
		logger:  logger,
		tracer:  otel.Tracer("flowhr/simulation"),
		decider: RandomDecider(DefaultApprovalProbability),
		now:     time.Now,
	}
}

// SetApprovalDecider replaces the approval decider.
func (e *Engine) SetApprovalDecider(decider ApprovalDecider) {
	e.decider = decider
}

// SetClock replaces the time source.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// SetStepDelay sets a per-step pause, mimicking the latency of a real
// execution backend.
func (e *Engine) SetStepDelay(delay time.Duration) {
	e.stepDelay = delay
}

// Run simulates one execution of the graph and returns the trace. It
// never fails the caller: every problem is reported inside the result.
func (e *Engine) Run(ctx context.Context, nodes []models.Node, edges []models.Edge) *models.SimulationResult {
	startTime := e.now()

	result := &models.SimulationResult{
		WorkflowID: fmt.Sprintf("sim_%d", startTime.UnixMilli()),
		Steps:      []models.SimulationStep{},
		Errors:     []string{},
		StartTime:  startTime,
	}

	ctx, span := e.tracer.Start(ctx, "simulation.run",
		trace.WithAttributes(attribute.String(otelhelper.SimulationIDKey, result.WorkflowID)))
	defer span.End()

	logger := e.logger.With("module", "simulation")

	startNode := findStartNode(nodes)
	if startNode == nil {
		logger.WarnContext(ctx, "Simulation aborted: no start node")

		result.Errors = append(result.Errors, "No start node found in workflow")

		e.finalize(result)
		result.TotalDuration = 0

		return result
	}

	order := ResolveOrder(edges, startNode.ID)
	if len(order) == 0 {
		result.Errors = append(result.Errors, "Could not determine execution order - workflow may have cycles")
	}

	span.SetAttributes(attribute.Int("simulation.order_length", len(order)))

	lastTimestamp := startTime

	for _, nodeID := range order {
		node := findNode(nodes, nodeID)
		if node == nil {
			// The resolver only emits ids found in the edge set; an id
			// without a node is tolerated rather than failing the run.
			continue
		}

		if e.stepDelay > 0 {
			time.Sleep(e.stepDelay)
		}

		timestamp := e.now()
		if timestamp.Before(lastTimestamp) {
			timestamp = lastTimestamp
		}

		lastTimestamp = timestamp

		_, stepSpan := e.tracer.Start(ctx, "simulation.step",
			trace.WithAttributes(
				attribute.String(otelhelper.NodeIDKey, node.ID),
				attribute.String(otelhelper.NodeKindKey, string(node.Kind)),
			))

		step := e.simulateNode(*node, timestamp)
		result.Steps = append(result.Steps, step)

		if step.Status == models.StepStatusFailed {
			otelhelper.SetError(stepSpan, errors.New(step.Details))
		}

		stepSpan.SetAttributes(attribute.String("step.status", string(step.Status)))
		stepSpan.End()

		logger.DebugContext(ctx, "Simulated node",
			"node_id", node.ID, "kind", node.Kind, "status", step.Status)
	}

	return e.finalize(result)
}

// finalize stamps the end time, duration and aggregate status.
func (e *Engine) finalize(result *models.SimulationResult) *models.SimulationResult {
	result.EndTime = e.now()

	result.TotalDuration = result.EndTime.Sub(result.StartTime).Milliseconds()
	if result.TotalDuration < 0 {
		result.TotalDuration = 0
	}

	if len(result.Errors) > 0 {
		result.Status = models.SimulationStatusError
	} else {
		result.Status = models.SimulationStatusSuccess
	}

	return result
}

// simulateNode performs the mock execution of a single node. It is a pure
// function of the node data except for the Approval outcome, which comes
// from the injected decider.
func (e *Engine) simulateNode(node models.Node, timestamp time.Time) models.SimulationStep {
	step := models.SimulationStep{
		NodeID:    node.ID,
		NodeKind:  node.Kind,
		Status:    models.StepStatusCompleted,
		Timestamp: timestamp,
	}

	switch data := node.Data.(type) {
	case models.StartData:
		step.NodeTitle = titleOrDefault(data.Title, "Start")
		step.Details = "Workflow started"
		step.Output = map[string]any{"metadata": data.Metadata}
	case models.TaskData:
		step.NodeTitle = titleOrDefault(data.Title, "Task")
		step.Details = fmt.Sprintf("Task assigned to %s", valueOrDefault(data.Assignee, "unassigned"))
		step.Output = map[string]any{
			"assignee": data.Assignee,
			"dueDate":  data.DueDate,
		}
	case models.ApprovalData:
		role := valueOrDefault(data.ApproverRole, "unknown")
		approved := e.decider(data)

		step.NodeTitle = titleOrDefault(data.Title, "Approval")
		if approved {
			step.Details = fmt.Sprintf("Approved by %s", role)
		} else {
			step.Details = fmt.Sprintf("Rejected by %s", role)
		}

		step.Output = map[string]any{"approved": approved, "approverRole": data.ApproverRole}
	case models.AutomatedStepData:
		action := valueOrDefault(data.Action, "unknown_action")

		step.NodeTitle = titleOrDefault(data.Title, "Automated Step")
		step.Details = fmt.Sprintf("Executed automation: %s", action)
		step.Output = map[string]any{
			"action":     action,
			"parameters": data.ActionParameters,
		}
	case models.EndData:
		step.NodeTitle = "End"
		step.Details = valueOrDefault(data.EndMessage, "Workflow completed")
		step.Output = map[string]any{"showSummary": data.ShowSummary}
	default:
		step.NodeTitle = "Unknown"
		step.Status = models.StepStatusFailed
		step.Details = fmt.Sprintf("Unknown node type: %s", node.Kind)
	}

	return step
}

func findStartNode(nodes []models.Node) *models.Node {
	return findByKind(nodes, models.KindStart)
}

func findByKind(nodes []models.Node, kind models.NodeKind) *models.Node {
	for i := range nodes {
		if nodes[i].Kind == kind {
			return &nodes[i]
		}
	}

	return nil
}

func findNode(nodes []models.Node, id string) *models.Node {
	for i := range nodes {
		if nodes[i].ID == id {
			return &nodes[i]
		}
	}

	return nil
}

func titleOrDefault(title, fallback string) string {
	if title == "" {
		return fallback
	}

	return title
}

func valueOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
