package initializer

import (
	"testing"

	"github.com/go-ccfe/cinit/internal/ctype"
	"github.com/go-ccfe/cinit/internal/sym"
)

func TestBitFieldPackingAndTrailingPad(t *testing.T) {
	// struct { int a : 3; int b : 5; } v = {1, 2}: both fields share one
	// 4-byte storage unit; the unused 24 trailing bits of that unit must
	// come back as an explicit zero-fill rather than being left
	// unaccounted for.
	st := structType("flags", []ctype.Member{
		{Name: "a", Type: ctype.IntT, IsBitField: true, FieldOffset: 0, FieldWidth: 3},
		{Name: "b", Type: ctype.IntT, IsBitField: true, FieldOffset: 3, FieldWidth: 5},
	}, 4)

	block, _ := lower(t, "{1, 2}", st, sym.LinkNone, nil)

	if len(block.Code) != 3 {
		t.Fatalf("expected 3 statements (a, b, trailing pad), got %d: %#v", len(block.Code), block.Code)
	}
	for _, st := range block.Code {
		if st.Target.Offset != 0 {
			t.Fatalf("expected every statement to target the single 4-byte storage unit at offset 0, got %#v", st)
		}
	}

	a, b, pad := block.Code[0], block.Code[1], block.Code[2]
	if a.Target.FieldOffset != 0 || a.Target.FieldWidth != 3 || a.Expr.Imm != 1 {
		t.Fatalf("field a: unexpected %#v", a)
	}
	if b.Target.FieldOffset != 3 || b.Target.FieldWidth != 5 || b.Expr.Imm != 2 {
		t.Fatalf("field b: unexpected %#v", b)
	}
	if pad.Target.FieldOffset != 8 || pad.Target.FieldWidth != 24 || pad.Expr.Imm != 0 {
		t.Fatalf("trailing pad: expected bits [8,32) zeroed, got %#v", pad)
	}
}
