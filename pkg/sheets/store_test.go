package sheets

import (
	"context"
	"errors"
	"testing"
)

func TestColumnLetter(t *testing.T) {
	t.Parallel()

	cases := map[int]string{1: "A", 8: "H", 26: "Z", 27: "AA", 52: "AZ", 703: "AAA"}
	for in, want := range cases {
		if got := ColumnLetter(in); got != want {
			t.Errorf("ColumnLetter(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestA1Range(t *testing.T) {
	t.Parallel()

	if got := A1Range("MODS", 5, 1, 5, 8); got != "'MODS'!A5:H5" {
		t.Fatalf("unexpected range %q", got)
	}
	if got := QualifiedRange("Bob's", "A:A"); got != "'Bob''s'!A:A" {
		t.Fatalf("unexpected quoting %q", got)
	}
}

func TestFirstBlank(t *testing.T) {
	t.Parallel()

	if got := FirstBlank([]string{"Nombre", "A", " ", "B"}); got != 3 {
		t.Fatalf("expected gap at row 3, got %d", got)
	}
	if got := FirstBlank([]string{"Nombre", "A"}); got != 3 {
		t.Fatalf("expected append at row 3, got %d", got)
	}
}

func TestValidateRange(t *testing.T) {
	t.Parallel()

	if err := ValidateRange(4, 4, [][]string{{"a"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateRange(4, 5, [][]string{{"a"}}); err == nil {
		t.Fatalf("expected row count mismatch")
	}
	if err := ValidateRange(0, 0, [][]string{{"a"}}); err == nil {
		t.Fatalf("expected invalid start row")
	}
}

func TestUnavailableWrapsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("GOOGLE_CREDENTIALS not set")
	store := Unavailable(cause)
	_, err := store.ReadAll(context.Background())
	if !errors.Is(err, ErrNotConfigured) || !errors.Is(err, cause) {
		t.Fatalf("expected wrapped errors, got %v", err)
	}
	if err := store.WriteCell(context.Background(), 2, 1, "x"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
