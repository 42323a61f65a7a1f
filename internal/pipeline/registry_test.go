package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"tabular/internal/table"
)

// fakeTransform records calls; partitioned support is opt-in via fakePart.
type fakeTransform struct {
	name        string
	validateErr error
	applied     *int
}

func (f *fakeTransform) Name() string { return f.name }

func (f *fakeTransform) Validate(map[string]any) error { return f.validateErr }

func (f *fakeTransform) ApplyInMemory(t *table.MemTable, _ map[string]any) (*table.MemTable, error) {
	if f.applied != nil {
		*f.applied++
	}
	return t, nil
}

type fakePart struct {
	fakeTransform
}

func (f *fakePart) ApplyPartitioned(t *table.PartTable, _ map[string]any) (*table.PartTable, error) {
	return t, nil
}

func TestRegistry_RegisterAndResolve(t *testing.T) {
	r := NewRegistry()
	r.Register(func() Transformation { return &fakeTransform{name: "noop"} })
	f, err := r.Resolve("noop")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if f().Name() != "noop" {
		t.Fatalf("factory builds wrong transformation: %s", f().Name())
	}
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Resolve("ghost")
	if err == nil || !strings.Contains(err.Error(), `transformation "ghost" not found in registry`) {
		t.Fatalf("want not-found error, got %v", err)
	}
}

func TestRegistry_ReRegisterOverwrites(t *testing.T) {
	r := NewRegistry()
	r.Register(func() Transformation { return &fakeTransform{name: "dup"} })
	marker := 0
	r.Register(func() Transformation { return &fakeTransform{name: "dup", applied: &marker} })
	f, err := r.Resolve("dup")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, err := Apply(f(), memHandle(t), nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if marker != 1 {
		t.Fatal("later registration must win")
	}
}

func TestRegistry_NamesSorted(t *testing.T) {
	r := NewRegistry()
	for _, n := range []string{"zeta", "alpha", "mid"} {
		name := n
		r.Register(func() Transformation { return &fakeTransform{name: name} })
	}
	if got := r.Names(); !reflect.DeepEqual(got, []string{"alpha", "mid", "zeta"}) {
		t.Fatalf("want sorted names, got %v", got)
	}
}

func TestRegistry_ListIsSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Register(func() Transformation { return &fakeTransform{name: "keep"} })
	snapshot := r.List()
	delete(snapshot, "keep")
	if _, err := r.Resolve("keep"); err != nil {
		t.Fatalf("mutating the snapshot must not touch the registry: %v", err)
	}
	if got := r.List(); len(got) != 1 {
		t.Fatalf("want 1 registered factory, got %d", len(got))
	}
}

func TestApply_ValidatesBeforeRouting(t *testing.T) {
	bad := errors.New("bad params")
	count := 0
	tr := &fakeTransform{name: "x", validateErr: bad, applied: &count}
	if _, err := Apply(tr, memHandle(t), nil); !errors.Is(err, bad) {
		t.Fatalf("want validation error, got %v", err)
	}
	if count != 0 {
		t.Fatal("apply must not run after failed validation")
	}
}

func TestApply_PartitionedNeedsCapability(t *testing.T) {
	tr := &fakeTransform{name: "mem-only"}
	_, err := Apply(tr, partHandle(t), nil)
	var ee *EngineError
	if !errors.As(err, &ee) {
		t.Fatalf("want EngineError, got %v", err)
	}
	if !strings.Contains(err.Error(), "no partitioned backend implementation") {
		t.Fatalf("wrong message: %v", err)
	}

	if _, err := Apply(&fakePart{fakeTransform{name: "both"}}, partHandle(t), nil); err != nil {
		t.Fatalf("capable transformation must route: %v", err)
	}
}

func memHandle(t *testing.T) table.Handle {
	t.Helper()
	mt, err := table.NewMemTable([]string{"a"}, nil)
	if err != nil {
		t.Fatalf("NewMemTable: %v", err)
	}
	return table.FromMem(mt)
}

func partHandle(t *testing.T) table.Handle {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.csv")
	if err := os.WriteFile(path, []byte("a\n1\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	pt, err := table.OpenPartitioned(path, 1)
	if err != nil {
		t.Fatalf("OpenPartitioned: %v", err)
	}
	return table.FromPart(pt)
}
