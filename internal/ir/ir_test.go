package ir

import (
	"testing"

	"github.com/go-ccfe/cinit/internal/ctype"
)

type testSymbol string

func (s testSymbol) SymbolName() string { return string(s) }

func TestEvalAssignDirectWhenCompatible(t *testing.T) {
	c := NewContext()
	block := NewBlock()
	target := Var{Symbol: testSymbol("v"), Kind: Direct, Type: ctype.IntT}
	expr := &Expr{Kind: Immediate, Type: ctype.IntT, Imm: 42}

	c.EvalAssign(block, target, expr)

	if len(block.Code) != 1 {
		t.Fatalf("expected exactly one statement, got %d", len(block.Code))
	}
	if block.Code[0].Op != Assign || block.Code[0].Expr.Imm != 42 {
		t.Fatalf("unexpected statement %#v", block.Code[0])
	}
}

func TestEvalAssignInsertsCastWhenIncompatible(t *testing.T) {
	c := NewContext()
	block := NewBlock()
	target := Var{Symbol: testSymbol("v"), Kind: Direct, Type: ctype.CharT}
	expr := &Expr{Kind: Immediate, Type: ctype.IntT, Imm: 65}

	c.EvalAssign(block, target, expr)

	if len(block.Code) != 2 {
		t.Fatalf("expected a cast statement plus the final assign, got %d", len(block.Code))
	}
	if block.Code[0].Op != Cast {
		t.Fatalf("expected the first statement to be a Cast, got %#v", block.Code[0])
	}
	last := block.Code[1]
	if last.Op != Assign || last.Expr.Kind != DirectRef || last.Expr.Ref != block.Code[0].CastTo {
		t.Fatalf("expected the final assign to read back the cast's temporary, got %#v", last)
	}
}

func TestEvalAssignSkipsCastForBitField(t *testing.T) {
	c := NewContext()
	block := NewBlock()
	target := Var{Symbol: testSymbol("v"), Kind: Direct, Type: ctype.CharT, FieldWidth: 3}
	expr := &Expr{Kind: Immediate, Type: ctype.IntT, Imm: 5}

	c.EvalAssign(block, target, expr)

	if len(block.Code) != 1 {
		t.Fatalf("expected no cast for a bit-field target, got %d statements", len(block.Code))
	}
}

func TestCreateVarProducesDistinctNames(t *testing.T) {
	c := NewContext()
	a := c.CreateVar(ctype.IntT)
	b := c.CreateVar(ctype.IntT)
	if a.Symbol.SymbolName() == b.Symbol.SymbolName() {
		t.Fatalf("expected distinct temporary names, got %q twice", a.Symbol.SymbolName())
	}
}

func TestBlockEmptyAndConcat(t *testing.T) {
	a := NewBlock()
	a.Append(Stmt{Op: Assign})
	b := NewBlock()
	b.Append(Stmt{Op: Assign})
	b.Append(Stmt{Op: Assign})

	a.Concat(b)
	if len(a.Code) != 3 {
		t.Fatalf("expected 3 statements after concat, got %d", len(a.Code))
	}

	a.Empty()
	if len(a.Code) != 0 {
		t.Fatalf("expected Empty to clear the code slice, got %d", len(a.Code))
	}
}

func TestIsIdentityAndIsZero(t *testing.T) {
	imm0 := &Expr{Kind: Immediate, Imm: 0}
	imm1 := &Expr{Kind: Immediate, Imm: 1}
	call := &Expr{Kind: Call, Call: &CallExpr{Callee: "f"}}
	addr := &Expr{Kind: Address}

	if !imm0.IsIdentity() || !imm1.IsIdentity() || !addr.IsIdentity() {
		t.Fatalf("expected immediates and addresses to be identity expressions")
	}
	if call.IsIdentity() {
		t.Fatalf("expected a call to not be an identity expression")
	}
	if !imm0.IsZero() || imm1.IsZero() {
		t.Fatalf("unexpected IsZero results")
	}
}
