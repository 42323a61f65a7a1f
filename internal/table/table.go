// Package table holds the tabular values a pipeline operates on: an eager
// in-memory backend, a lazy partitioned backend, and the tagged handle that
// carries one of the two through the pipeline. Cells are string, float64 or
// nil; nil is the missing marker.
package table

// Kind tags the backend carried by a Handle.
type Kind int

const (
	InMemory Kind = iota
	Partitioned
)

func (k Kind) String() string {
	switch k {
	case InMemory:
		return "in-memory"
	case Partitioned:
		return "partitioned"
	default:
		return "unknown"
	}
}

// Handle is the tagged variant flowing through the executor. Exactly one of
// the two backends is set, according to Kind.
type Handle struct {
	kind Kind
	mem  *MemTable
	part *PartTable
}

func FromMem(t *MemTable) Handle   { return Handle{kind: InMemory, mem: t} }
func FromPart(t *PartTable) Handle { return Handle{kind: Partitioned, part: t} }

func (h Handle) Kind() Kind       { return h.kind }
func (h Handle) Mem() *MemTable   { return h.mem }
func (h Handle) Part() *PartTable { return h.part }

func (h Handle) Columns() []string {
	if h.kind == Partitioned {
		return h.part.Columns()
	}
	return h.mem.Columns()
}

// RowCount reports the number of rows and whether it is known without
// materializing. Partitioned handles do not know their row count.
func (h Handle) RowCount() (int, bool) {
	if h.kind == Partitioned {
		return 0, false
	}
	return h.mem.RowCount(), true
}
