package catalog

import (
	"errors"
	"testing"
)

func TestJoinSharedKey(t *testing.T) {
	t1 := mustTable(t, "T1", []string{"x int", "y int"},
		[]string{"1", "7"},
		[]string{"7", "7"},
		[]string{"1", "9"},
	)
	t2 := mustTable(t, "T2", []string{"x int", "z int"},
		[]string{"1", "7"},
		[]string{"7", "7"},
		[]string{"1", "9"},
		[]string{"1", "11"},
	)

	got, err := Join(t1, t2)
	if err != nil {
		t.Fatalf("Join error: %v", err)
	}
	want := "x int,y int,z int\n" +
		"1,7,7\n" +
		"1,7,9\n" +
		"1,7,11\n" +
		"7,7,7\n" +
		"1,9,7\n" +
		"1,9,9\n" +
		"1,9,11\n"
	if got.String() != want {
		t.Errorf("Join =\n%s\nwant\n%s", got, want)
	}
	// inputs untouched
	if t1.NumRows() != 3 || t2.NumRows() != 4 || t1.NumColumns() != 2 {
		t.Error("join mutated its inputs")
	}
}

func TestJoinCartesian(t *testing.T) {
	a := mustTable(t, "A", []string{"a int"}, []string{"1"}, []string{"2"})
	b := mustTable(t, "B", []string{"b string"}, []string{"'x'"}, []string{"'y'"}, []string{"'z'"})

	got, err := Join(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if got.NumRows() != a.NumRows()*b.NumRows() {
		t.Fatalf("rows = %d, want %d", got.NumRows(), a.NumRows()*b.NumRows())
	}
	want := "a int,b string\n1,'x'\n1,'y'\n1,'z'\n2,'x'\n2,'y'\n2,'z'\n"
	if got.String() != want {
		t.Errorf("Join =\n%s\nwant\n%s", got, want)
	}

	rev, err := Join(b, a)
	if err != nil {
		t.Fatal(err)
	}
	if rev.NumRows() != got.NumRows() {
		t.Errorf("cartesian row count not symmetric: %d vs %d", rev.NumRows(), got.NumRows())
	}
}

func TestJoinMultiColumnKey(t *testing.T) {
	a := mustTable(t, "A", []string{"k1 int", "v string", "k2 int"},
		[]string{"1", "'a'", "1"},
		[]string{"1", "'b'", "2"},
	)
	b := mustTable(t, "B", []string{"k2 int", "w float", "k1 int"},
		[]string{"2", "0.5", "1"},
		[]string{"1", "1.5", "2"},
	)
	got, err := Join(a, b)
	if err != nil {
		t.Fatal(err)
	}
	want := "k1 int,k2 int,v string,w float\n1,2,'b',0.5\n"
	if got.String() != want {
		t.Errorf("Join =\n%s\nwant\n%s", got, want)
	}
}

func TestJoinTypeConflict(t *testing.T) {
	a := mustTable(t, "A", []string{"x int"})
	b := mustTable(t, "B", []string{"x float"})
	if _, err := Join(a, b); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestJoinAll(t *testing.T) {
	if _, err := JoinAll(); !errors.Is(err, ErrNoTables) {
		t.Errorf("JoinAll() error = %v", err)
	}

	a := mustTable(t, "A", []string{"x int"}, []string{"1"}, []string{"2"})
	one, err := JoinAll(a)
	if err != nil {
		t.Fatal(err)
	}
	if one != a {
		t.Error("JoinAll with one table should be identity")
	}

	b := mustTable(t, "B", []string{"x int", "y int"}, []string{"1", "10"}, []string{"2", "20"})
	c := mustTable(t, "C", []string{"z string"}, []string{"'p'"})
	got, err := JoinAll(a, b, c)
	if err != nil {
		t.Fatal(err)
	}
	want := "x int,y int,z string\n1,10,'p'\n2,20,'p'\n"
	if got.String() != want {
		t.Errorf("JoinAll =\n%s\nwant\n%s", got, want)
	}
}
