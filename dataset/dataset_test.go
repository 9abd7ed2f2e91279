package dataset

import "testing"

func TestFlatAppendAndVector(t *testing.T) {
	f := NewFlat(2)
	first, err := f.Append([][]float32{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatal(err)
	}
	if first != 0 {
		t.Fatalf("first id = %d, want 0", first)
	}

	second, err := f.Append([][]float32{{5, 6}})
	if err != nil {
		t.Fatal(err)
	}
	if second != 2 {
		t.Fatalf("second id = %d, want 2", second)
	}

	row, ok := f.Vector(1)
	if !ok || row[0] != 3 || row[1] != 4 {
		t.Fatalf("Vector(1) = %v, ok=%v", row, ok)
	}

	if _, ok := f.Vector(99); ok {
		t.Fatal("Vector(99) should report ok=false")
	}

	if f.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", f.Len())
	}
}

func TestFlatAppendDimensionMismatch(t *testing.T) {
	f := NewFlat(3)
	if _, err := f.Append([][]float32{{1, 2}}); err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestNewFlatWithData(t *testing.T) {
	f, err := NewFlatWithData(2, [][]float32{{0, 0}, {1, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if f.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", f.Len())
	}
}
