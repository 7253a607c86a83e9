package encoding

import "testing"

func TestCells_RoundTrip(t *testing.T) {
	in := make([]int32, 0, 200)
	in = append(in, 1, 1, 1, 2, 2, 3)
	for i := 0; i < 50; i++ {
		in = append(in, 0x20FF)
	}
	in = append(in, 9, 10, 10, 10)

	enc := EncodeCells(in)
	out, err := DecodeCells(enc)
	if err != nil {
		t.Fatalf("DecodeCells: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("len mismatch: got %d want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("mismatch at %d: got %d want %d", i, out[i], in[i])
		}
	}
}

func TestCells_Empty(t *testing.T) {
	out, err := DecodeCells(EncodeCells(nil))
	if err != nil {
		t.Fatalf("DecodeCells: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty grid, got %d cells", len(out))
	}
}

func TestCells_RejectsGarbage(t *testing.T) {
	if _, err := DecodeCells("not base64!!"); err == nil {
		t.Fatal("expected error for invalid base64")
	}
}
