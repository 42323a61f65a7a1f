package pipeline

import (
	"runtime"
	"time"

	"tabular/internal/table"
)

// Summary is the read-only view of one run's metrics.
type Summary struct {
	MemoryUsageMB       float64               `json:"memory_usage_mb"`
	ProcessingTimeS     float64               `json:"processing_time_s"`
	RowsProcessed       int                   `json:"rows_processed"`
	TransformationTimes map[string]float64    `json:"transformation_times"`
	BatchMetrics        []table.PartitionStat `json:"batch_metrics"`
	MemorySnapshots     map[string]float64    `json:"memory_snapshots"`
}

// Collector accumulates metrics and progress for one pipeline run. Not safe
// for concurrent use; each run owns its collector.
type Collector struct {
	memoryUsageMB       float64
	processingTimeS     float64
	rowsProcessed       int
	transformationTimes map[string]float64
	batchMetrics        []table.PartitionStat
	memorySnapshots     map[string]float64

	stepsDone  int
	totalSteps int
}

func NewCollector() *Collector {
	c := &Collector{}
	c.Reset()
	return c
}

// Reset clears all accumulated state so the collector can serve another
// independent run.
func (c *Collector) Reset() {
	c.memoryUsageMB = 0
	c.processingTimeS = 0
	c.rowsProcessed = 0
	c.transformationTimes = map[string]float64{}
	c.batchMetrics = nil
	c.memorySnapshots = map[string]float64{}
	c.stepsDone = 0
	c.totalSteps = 0
}

// MemoryMB reports the process's currently allocated heap in MB.
func MemoryMB() float64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return float64(ms.Alloc) / (1 << 20)
}

// SnapshotMemory records current memory usage under a stage name and
// returns it.
func (c *Collector) SnapshotMemory(stage string) float64 {
	mb := MemoryMB()
	c.memorySnapshots[stage] = mb
	return mb
}

// RecordTransformationTime keys a step's duration by its name; a later
// write for a repeated name overwrites the earlier one.
func (c *Collector) RecordTransformationTime(name string, d time.Duration) {
	c.transformationTimes[name] = d.Seconds()
}

func (c *Collector) AddBatchMetrics(stats ...table.PartitionStat) {
	c.batchMetrics = append(c.batchMetrics, stats...)
}

func (c *Collector) BeginSteps(total int) {
	c.totalSteps = total
	c.stepsDone = 0
}

// StepDone advances the progress counter.
func (c *Collector) StepDone() { c.stepsDone++ }

// Progress reports completed and total steps for the current run.
func (c *Collector) Progress() (done, total int) { return c.stepsDone, c.totalSteps }

func (c *Collector) SetRowsProcessed(n int)            { c.rowsProcessed = n }
func (c *Collector) SetProcessingTime(d time.Duration) { c.processingTimeS = d.Seconds() }
func (c *Collector) SetMemoryUsage(deltaMB float64)    { c.memoryUsageMB = deltaMB }

// Summary returns a deep copy of the accumulated state.
func (c *Collector) Summary() Summary {
	tt := make(map[string]float64, len(c.transformationTimes))
	for k, v := range c.transformationTimes {
		tt[k] = v
	}
	ms := make(map[string]float64, len(c.memorySnapshots))
	for k, v := range c.memorySnapshots {
		ms[k] = v
	}
	return Summary{
		MemoryUsageMB:       c.memoryUsageMB,
		ProcessingTimeS:     c.processingTimeS,
		RowsProcessed:       c.rowsProcessed,
		TransformationTimes: tt,
		BatchMetrics:        append([]table.PartitionStat(nil), c.batchMetrics...),
		MemorySnapshots:     ms,
	}
}
