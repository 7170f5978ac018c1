package initializer

import (
	"testing"

	"github.com/go-ccfe/cinit/internal/ctype"
	"github.com/go-ccfe/cinit/internal/sym"
)

func TestStructOutOfOrderDesignators(t *testing.T) {
	// struct { int x; int y; int tag; } v = {.tag = 65, .x = 1}; y is
	// never designated and must come back zero-filled.
	st := structType("point", []ctype.Member{
		{Name: "x", Type: ctype.IntT, Offset: 0},
		{Name: "y", Type: ctype.IntT, Offset: 4},
		{Name: "tag", Type: ctype.IntT, Offset: 8},
	}, 4)

	block, _ := lower(t, "{.tag = 65, .x = 1}", st, sym.LinkNone, nil)

	if findAssign(t, block, 0).Expr.Imm != 1 {
		t.Fatalf("x: expected 1")
	}
	if findAssign(t, block, 4).Expr.Imm != 0 {
		t.Fatalf("y: expected zero-fill since it was never designated")
	}
	if findAssign(t, block, 8).Expr.Imm != 65 {
		t.Fatalf("tag: expected 65")
	}
}

func TestStructWithoutDesignatorsFillsInOrder(t *testing.T) {
	st := structType("point", []ctype.Member{
		{Name: "x", Type: ctype.IntT, Offset: 0},
		{Name: "y", Type: ctype.IntT, Offset: 4},
	}, 4)

	block, _ := lower(t, "{1, 2}", st, sym.LinkNone, nil)
	if findAssign(t, block, 0).Expr.Imm != 1 {
		t.Fatalf("x: expected 1")
	}
	if findAssign(t, block, 4).Expr.Imm != 2 {
		t.Fatalf("y: expected 2")
	}
}

func TestAnonymousUnionSiblingIsSkipped(t *testing.T) {
	// struct { int tag; union { int i; char c; } /* anonymous */; int
	// trailer; } -- after the union's first member is initialized
	// positionally, the walk must not also visit its anonymous-union
	// sibling sharing the same (offset, fieldOffset).
	outer := structType("withAnonUnion", []ctype.Member{
		{Name: "tag", Type: ctype.IntT, Offset: 0},
		{Name: "i", Type: ctype.IntT, Offset: 4},
		{Name: "c", Type: ctype.CharT, Offset: 4},
		{Name: "trailer", Type: ctype.IntT, Offset: 8},
	}, 4)

	block, _ := lower(t, "{1, 2, 3}", outer, sym.LinkNone, nil)

	var atOffset4 int
	for _, st := range block.Code {
		if st.Target.Offset == 4 {
			atOffset4++
		}
	}
	if atOffset4 != 1 {
		t.Fatalf("expected exactly one assignment at the shared offset 4, got %d in %#v", atOffset4, block.Code)
	}
	if findAssign(t, block, 8).Expr.Imm != 3 {
		t.Fatalf("trailer: expected the third literal (3) once the anonymous sibling was skipped, got %#v", findAssign(t, block, 8))
	}
}
