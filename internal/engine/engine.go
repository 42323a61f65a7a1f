// Package engine picks the execution backend for a pipeline run and loads
// the input into it.
package engine

import (
	"fmt"
	"runtime"

	"tabular/internal/table"
)

const gib = 1 << 30

// LargeFileThreshold is the input size above which the partitioned backend
// is preferred.
const LargeFileThreshold = 2 * gib

// Caps describes the partitioned backend's availability and shape, resolved
// once at startup.
type Caps struct {
	Partitioned bool
	ChunkRows   int
	Workers     int
}

// NewCaps fills in defaults: 100k-row chunks, one worker per CPU.
func NewCaps(partitioned bool, chunkRows, workers int) Caps {
	if chunkRows < 1 {
		chunkRows = 100_000
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return Caps{Partitioned: partitioned, ChunkRows: chunkRows, Workers: workers}
}

// Select returns the backend for an input of the given byte size. Files over
// the threshold use the partitioned backend when it is available; otherwise
// the in-memory backend handles them regardless of size.
func Select(size int64, caps Caps) table.Kind {
	if size > LargeFileThreshold && caps.Partitioned {
		return table.Partitioned
	}
	return table.InMemory
}

// Load reads the input file into the chosen backend.
func Load(path string, kind table.Kind, caps Caps) (table.Handle, error) {
	switch kind {
	case table.Partitioned:
		pt, err := table.OpenPartitioned(path, caps.ChunkRows)
		if err != nil {
			return table.Handle{}, fmt.Errorf("failed to read input file with partitioned engine: %w", err)
		}
		return table.FromPart(pt), nil
	default:
		mt, err := table.LoadCSV(path)
		if err != nil {
			return table.Handle{}, fmt.Errorf("failed to read input file with in-memory engine: %w", err)
		}
		return table.FromMem(mt), nil
	}
}
