package table

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ChunkFunc rewrites one materialized partition. Queued operations must be
// row-local: they may not look across partition boundaries.
type ChunkFunc func(*MemTable) (*MemTable, error)

// PartTable is the lazy backend: only the header is read at open time, and
// operations are queued until Materialize. The column set is tracked eagerly
// through queued renames so column checks stay accurate mid-pipeline.
type PartTable struct {
	path      string
	fileCols  []string
	cols      []string
	index     map[string]int
	chunkRows int
	ops       []ChunkFunc
}

// PartitionStat describes one materialized partition.
type PartitionStat struct {
	Partition int     `json:"partition"`
	RowsIn    int     `json:"rows_in"`
	RowsOut   int     `json:"rows_out"`
	ElapsedS  float64 `json:"elapsed_s"`
}

// ReadError marks a materialization failure caused by reading or decoding
// the underlying file, as opposed to a queued operation failing on a chunk.
type ReadError struct{ Err error }

func (e *ReadError) Error() string { return e.Err.Error() }
func (e *ReadError) Unwrap() error { return e.Err }

// OpenPartitioned reads only the CSV header and returns a lazy table over
// the file, split into chunks of chunkRows rows.
func OpenPartitioned(path string, chunkRows int) (*PartTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no columns to parse from empty input")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkColumns(header); err != nil {
		return nil, err
	}
	if chunkRows < 1 {
		return nil, fmt.Errorf("chunk size %d must be positive", chunkRows)
	}
	cols := append([]string(nil), header...)
	return &PartTable{
		path:      path,
		fileCols:  cols,
		cols:      cols,
		index:     indexColumns(cols),
		chunkRows: chunkRows,
	}, nil
}

func (t *PartTable) Columns() []string { return append([]string(nil), t.cols...) }

func (t *PartTable) Missing(names []string) []string {
	var missing []string
	for _, n := range names {
		if _, ok := t.index[n]; !ok {
			missing = append(missing, n)
		}
	}
	return missing
}

// WithOp returns a new lazy table with op appended. A non-nil cols slice
// becomes the tracked column set (for operations that reshape the schema).
func (t *PartTable) WithOp(op ChunkFunc, cols []string) (*PartTable, error) {
	nt := &PartTable{
		path:      t.path,
		fileCols:  t.fileCols,
		cols:      t.cols,
		index:     t.index,
		chunkRows: t.chunkRows,
		ops:       append(append([]ChunkFunc(nil), t.ops...), op),
	}
	if cols != nil {
		if err := checkColumns(cols); err != nil {
			return nil, err
		}
		nt.cols = append([]string(nil), cols...)
		nt.index = indexColumns(nt.cols)
	}
	return nt, nil
}

// Materialize streams the file once, applying the queued operations to each
// chunk on a bounded worker group, and concatenates the results in file
// order. This is the single blocking point of a partitioned pipeline.
func (t *PartTable) Materialize(ctx context.Context, workers int) (*MemTable, []PartitionStat, error) {
	if workers < 1 {
		workers = 1
	}
	f, err := os.Open(t.path)
	if err != nil {
		return nil, nil, &ReadError{Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, &ReadError{Err: errors.New("no columns to parse from empty input")}
		}
		return nil, nil, &ReadError{Err: fmt.Errorf("read header: %w", err)}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var (
		mu      sync.Mutex
		results = make(map[int]*MemTable)
		stats   []PartitionStat
	)

	var readErr error
	for n := 0; ; n++ {
		chunk, err := readChunk(r, t.chunkRows)
		if err != nil && !errors.Is(err, io.EOF) {
			readErr = &ReadError{Err: fmt.Errorf("read rows: %w", err)}
			break
		}
		if len(chunk) > 0 {
			idx := n
			rows := chunk
			g.Go(func() error {
				start := time.Now()
				mt, err := fromRecords(t.fileCols, rows)
				if err != nil {
					return &ReadError{Err: fmt.Errorf("partition %d: %w", idx, err)}
				}
				in := mt.RowCount()
				for _, op := range t.ops {
					if mt, err = op(mt); err != nil {
						return fmt.Errorf("partition %d: %w", idx, err)
					}
				}
				mu.Lock()
				results[idx] = mt
				stats = append(stats, PartitionStat{
					Partition: idx,
					RowsIn:    in,
					RowsOut:   mt.RowCount(),
					ElapsedS:  time.Since(start).Seconds(),
				})
				mu.Unlock()
				return nil
			})
		}
		if errors.Is(err, io.EOF) || gctx.Err() != nil {
			break
		}
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if readErr != nil {
		return nil, nil, readErr
	}

	out, err := NewMemTable(t.cols, nil)
	if err != nil {
		return nil, nil, err
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Partition < stats[j].Partition })
	for i := 0; i < len(results); i++ {
		part, ok := results[i]
		if !ok {
			return nil, nil, fmt.Errorf("partition %d missing after materialize", i)
		}
		out.append(part)
	}
	return out, stats, nil
}

// readChunk reads up to n records; io.EOF is returned alongside whatever was
// read when the file ends.
func readChunk(r *csv.Reader, n int) ([][]string, error) {
	var recs [][]string
	for len(recs) < n {
		rec, err := r.Read()
		if err != nil {
			return recs, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
