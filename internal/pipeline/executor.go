package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"

	"tabular/internal/engine"
	"tabular/internal/logging"
	"tabular/internal/table"
	"tabular/internal/telemetry"
)

// State tracks where a run is in its lifecycle.
type State int

const (
	StateValidating State = iota
	StateLoading
	StateRunning
	StateFinalizing
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateLoading:
		return "loading"
	case StateRunning:
		return "running"
	case StateFinalizing:
		return "finalizing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Executor runs one pipeline at a time: validate, load into the selected
// backend, apply the steps in declared order, materialize, and report
// metrics. It holds no cross-run table state; reuse is sequential.
type Executor struct {
	registry *Registry
	caps     engine.Caps
	metrics  *Collector
	state    State
	log      *slog.Logger
}

func NewExecutor(reg *Registry, caps engine.Caps) *Executor {
	return &Executor{
		registry: reg,
		caps:     caps,
		metrics:  NewCollector(),
		log:      logging.Component("executor"),
	}
}

// Result is a completed run: the fully materialized table plus the metrics
// accumulated while producing it.
type Result struct {
	RunID   string
	Table   *table.MemTable
	Metrics Summary
}

func (e *Executor) State() State { return e.state }

// Progress reports completed and total steps of the current run.
func (e *Executor) Progress() (done, total int) { return e.metrics.Progress() }

func (e *Executor) Metrics() Summary { return e.metrics.Summary() }

// Run executes a raw pipeline document end to end. Any failure aborts the
// whole run; no partial table is ever returned.
func (e *Executor) Run(ctx context.Context, raw string) (*Result, error) {
	runID := uuid.NewString()
	log := e.log.With("run_id", runID)
	start := time.Now()
	e.metrics.Reset()

	fail := func(err error) error {
		e.state = StateFailed
		telemetry.RecordRun("failed", time.Since(start).Seconds())
		log.Error("pipeline failed", "error", err)
		return err
	}

	e.state = StateValidating
	doc, err := Parse(raw)
	if err != nil {
		return nil, fail(err)
	}
	desc, err := Validate(doc)
	if err != nil {
		return nil, fail(err)
	}
	if err := e.validateSteps(desc); err != nil {
		return nil, fail(err)
	}
	info, err := os.Stat(desc.InputPath)
	if err != nil {
		return nil, fail(&ValidationError{Reason: fmt.Sprintf("input path does not exist: %s", desc.InputPath)})
	}

	startMB := e.metrics.SnapshotMemory("start")

	e.state = StateLoading
	kind := engine.Select(info.Size(), e.caps)
	log.Info("engine selected", "engine", kind.String(), "input_bytes", info.Size())
	h, err := engine.Load(desc.InputPath, kind, e.caps)
	if err != nil {
		return nil, fail(err)
	}

	e.state = StateRunning
	total := len(desc.Steps)
	e.metrics.BeginSteps(total)
	for i, step := range desc.Steps {
		stepStart := time.Now()
		f, err := e.registry.Resolve(step.Name)
		if err != nil {
			return nil, fail(&StepError{Step: step.Name, Index: i + 1, Total: total, Err: err})
		}
		h, err = Apply(f(), h, step.Params)
		if err != nil {
			return nil, fail(&StepError{Step: step.Name, Index: i + 1, Total: total, Err: err})
		}
		d := time.Since(stepStart)
		e.metrics.RecordTransformationTime(step.Name, d)
		e.metrics.StepDone()
		telemetry.RecordStep(step.Name, d.Seconds())
		log.Debug("step complete", "step", i+1, "total", total, "name", step.Name, "elapsed", d)
	}

	e.state = StateFinalizing
	var final *table.MemTable
	if h.Kind() == table.Partitioned {
		mt, stats, err := h.Part().Materialize(ctx, e.caps.Workers)
		if err != nil {
			var re *table.ReadError
			if errors.As(err, &re) {
				err = fmt.Errorf("failed to read input file with partitioned engine: %w", err)
			}
			return nil, fail(err)
		}
		e.metrics.AddBatchMetrics(stats...)
		final = mt
		runtime.GC()
	} else {
		final = h.Mem()
	}

	endMB := e.metrics.SnapshotMemory("end")
	e.metrics.SetMemoryUsage(endMB - startMB)
	e.metrics.SetRowsProcessed(final.RowCount())
	e.metrics.SetProcessingTime(time.Since(start))

	e.state = StateDone
	telemetry.RecordRun("ok", time.Since(start).Seconds())
	telemetry.AddRowsProcessed(final.RowCount())
	log.Info("pipeline complete",
		"engine", kind.String(),
		"rows", final.RowCount(),
		"steps", total,
		"memory_mb", endMB-startMB,
		"elapsed", time.Since(start))
	return &Result{RunID: runID, Table: final, Metrics: e.metrics.Summary()}, nil
}

// validateSteps runs per-transformation parameter validation before any data
// is loaded. Unknown names are skipped here; they surface as step failures
// at execution time.
func (e *Executor) validateSteps(desc Description) error {
	for _, step := range desc.Steps {
		f, err := e.registry.Resolve(step.Name)
		if err != nil {
			continue
		}
		if err := f().Validate(step.Params); err != nil {
			return fmt.Errorf("transformation %q: %w", step.Name, err)
		}
	}
	return nil
}
