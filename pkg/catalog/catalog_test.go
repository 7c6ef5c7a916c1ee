package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/moojink/RDBMS/internal/logger"
	"github.com/moojink/RDBMS/pkg/storage"
)

func newTestCatalog(t *testing.T) (*Catalog, string) {
	t.Helper()
	dir := t.TempDir()
	return New(storage.NewFileStore(dir), logger.NewNop()), dir
}

func TestCatalogPutGetDrop(t *testing.T) {
	c, _ := newTestCatalog(t)

	t1 := mustTable(t, "", []string{"x int"}, []string{"1"})
	c.Put("t1", t1)
	if t1.Name() != "t1" {
		t.Errorf("Put did not name the table: %q", t1.Name())
	}

	got, err := c.Get("t1")
	if err != nil || got != t1 {
		t.Fatalf("Get(t1) = %v, %v", got, err)
	}

	// last write wins
	t2 := mustTable(t, "", []string{"y string"})
	c.Put("t1", t2)
	if got, _ := c.Get("t1"); got != t2 {
		t.Error("Put did not replace the existing table")
	}

	c.Put("a", mustTable(t, "", []string{"x int"}))
	if !reflect.DeepEqual(c.Names(), []string{"a", "t1"}) {
		t.Errorf("Names() = %v", c.Names())
	}

	if err := c.Drop("t1"); err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if _, err := c.Get("t1"); !errors.Is(err, ErrNoSuchTable) {
		t.Errorf("Get after Drop error = %v", err)
	}
	if err := c.Drop("t1"); !errors.Is(err, ErrNoSuchTable) {
		t.Errorf("second Drop error = %v", err)
	}
}

func TestCatalogStoreLoadRoundTrip(t *testing.T) {
	c, dir := newTestCatalog(t)

	orig := mustTable(t, "", []string{"id int", "name string", "score float"},
		[]string{"1", "'ann'", "3.5"},
		[]string{"2", "NOVALUE", "NaN"},
		[]string{"-3", "'a b'", "-.25"},
	)
	c.Put("people", orig)
	want := orig.String()

	if err := c.Store("people"); err != nil {
		t.Fatalf("Store: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "people.tbl"))
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != want {
		t.Errorf("file = %q, want %q", raw, want)
	}

	if err := c.Drop("people"); err != nil {
		t.Fatal(err)
	}
	loaded, err := c.Load("people")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.String() != want {
		t.Errorf("round trip = %q, want %q", loaded.String(), want)
	}
	if got, _ := c.Get("people"); got != loaded {
		t.Error("Load did not register the table")
	}
}

func TestCatalogLoadErrors(t *testing.T) {
	c, dir := newTestCatalog(t)

	if _, err := c.Load("missing"); !errors.Is(err, storage.ErrTableFileNotFound) {
		t.Errorf("Load(missing) error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "bad.tbl"), []byte("x int\n1\n'a'\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Load("bad"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Load(bad) error = %v", err)
	}
	if c.Has("bad") {
		t.Error("failed load registered a table")
	}

	if err := os.WriteFile(filepath.Join(dir, "gaps.tbl"), []byte("x int\n\n1\n\n\n2.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Load("gaps"); err == nil || !strings.Contains(err.Error(), "line 6") {
		t.Errorf("Load(gaps) error = %v, want file line 6", err)
	}

	if err := c.Store("nope"); !errors.Is(err, ErrNoSuchTable) {
		t.Errorf("Store(nope) error = %v", err)
	}
}

func TestCatalogLoadReplaces(t *testing.T) {
	c, dir := newTestCatalog(t)
	c.Put("t", mustTable(t, "", []string{"old int"}))
	if err := os.WriteFile(filepath.Join(dir, "t.tbl"), []byte("new string\n'v'\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Load("t"); err != nil {
		t.Fatal(err)
	}
	got, _ := c.Get("t")
	if got.String() != "new string\n'v'\n" {
		t.Errorf("loaded table = %q", got.String())
	}
}
