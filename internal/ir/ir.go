// Package ir is the minimal intermediate representation the
// initializer package lowers into: assignment targets, expressions,
// statements and the scratch blocks that buffer them. Adapted from the
// teacher's ir/ir.go value taxonomy (IrValue's Temporary/Global/Const
// kinds survive here as ExprKind's Immediate/DirectRef/Address/Call) but
// reshaped around spec.md ?3's object-reference quadruple
// (Symbol, Offset, Type, FieldOffset, FieldWidth) and
// _examples/original_source's struct var / struct block model, which
// spec.md paraphrases directly.
package ir

import (
	"strconv"

	"github.com/go-ccfe/cinit/internal/ctype"
)

// VarKind distinguishes how a Var locates storage. This module only
// ever produces Direct targets (spec.md ?3: "Targets are always
// direct"); Indirect exists so a host front end's own expression
// results (addresses, derefs) can still be represented in Expr.Address.
type VarKind int

const (
	Direct VarKind = iota
	Indirect
)

// Symbol is the minimal symbol-table view the IR needs: just enough to
// name a root object. The initializer package depends on sym.Symbol
// directly; this local alias keeps the ir package free of a sym import
// cycle while still naming the same concept in diagnostics.
type Symbol interface {
	SymbolName() string
}

// Var is spec.md ?3's object-reference quadruple, with Kind added so a
// Var can also represent an rvalue intermediate (e.g. the address of a
// symbol) inside Expr without a separate type.
type Var struct {
	Symbol      Symbol
	Kind        VarKind
	Offset      int64
	Type        *ctype.Type
	FieldOffset int64 // bit offset within Type; 0 for whole-unit targets
	FieldWidth  int64 // bit width within Type; 0 for whole-unit targets
}

// IsBitField reports whether v targets a sub-unit bit window rather than
// the whole of Type.
func (v Var) IsBitField() bool { return v.FieldWidth != 0 }

// ExprKind is the expression shape the expression-parser collaborator
// (internal/expr) produces, per spec.md ?3.
type ExprKind int

const (
	Immediate ExprKind = iota // a constant value
	DirectRef                 // a direct lvalue reference
	Address                   // &symbol
	Call                      // a function call
)

// Expr is the external expression-parser collaborator's result: a type
// plus one of the four shapes spec.md ?3 enumerates.
type Expr struct {
	Kind  ExprKind
	Type  *ctype.Type
	Imm   int64    // valid when Kind == Immediate
	Ref   Var      // valid when Kind == DirectRef or Address
	Call  *CallExpr // valid when Kind == Call
}

type CallExpr struct {
	Callee string
	Args   []*Expr
}

// IsIdentity mirrors the original's is_identity(expr): true for
// immediates, direct lvalue references, and symbol addresses -- the
// three expression shapes that need no further evaluation -- false only
// for calls.
func (e *Expr) IsIdentity() bool {
	return e.Kind == Immediate || e.Kind == DirectRef || e.Kind == Address
}

func (e *Expr) IsZero() bool {
	return e.Kind == Immediate && e.Imm == 0
}

// StmtOp enumerates the handful of IR operations the evaluator needs to
// emit while lowering initializers: a plain assignment, and the cast
// that EvalAssign may splice in front of it when target and source
// types differ (spec.md ?9 "Pending-value flag" note; original lines
// 487-502 pop exactly one trailing IR_ASSIGN off of block.Code).
type StmtOp int

const (
	Assign StmtOp = iota
	Cast
)

type Stmt struct {
	Op     StmtOp
	Target Var
	Expr   *Expr
	// CastTo is set when Op == Cast: a temporary created to
	// hold Expr converted to CastTo before the following Assign reads it.
	CastTo Var
}

// Block is the teacher's/original's "struct block": an ordered
// statement buffer plus the one-bit initializer-pending slot spec.md ?3
// calls the "initializer-pending flag". The pending Expr is modeled as
// block state, exactly as the original threads block->has_init_value
// and block->expr through the recursive walker, rather than as a
// separate return value.
type Block struct {
	Code []Stmt

	HasInitValue bool
	PendingExpr  *Expr

	// Label and HasInitValue mark the block as "in use" for the block
	// pool's release-time assertions (spec.md ?4.5).
	Label string
}

func NewBlock() *Block {
	return &Block{}
}

func (b *Block) Append(st Stmt) {
	b.Code = append(b.Code, st)
}

// Concat appends other's code onto b, the "array_concat" collaborator
// used by the entry coordinator and by initialize_union.
func (b *Block) Concat(other *Block) {
	b.Code = append(b.Code, other.Code...)
}

// Empty clears b's code in place without discarding the Block value,
// the "array_empty" collaborator initialize_union needs to reuse its
// scratch block across designator iterations.
func (b *Block) Empty() {
	b.Code = b.Code[:0]
}

// Context is the IR evaluator's environment: enough state to manufacture
// fresh temporaries with distinct names, the "create_var" collaborator.
type Context struct {
	tempSeq int
}

func NewContext() *Context { return &Context{} }

// CreateVar is create_var: a fresh temporary of the given type, never a
// bit-field, never shared with any named object.
func (c *Context) CreateVar(t *ctype.Type) Var {
	c.tempSeq++
	return Var{
		Symbol: tempSymbol(c.tempSeq),
		Kind:   Direct,
		Type:   t,
	}
}

type tempSymbol int

func (t tempSymbol) SymbolName() string {
	return "%t" + strconv.Itoa(int(t))
}

// EvalAssign is the eval_assign collaborator: it emits an assignment
// statement onto block.Code (inserting a Cast statement first when
// target.Type and expr.Type differ) and returns the possibly-adjusted
// target, exactly matching spec.md ?6's contract.
func (c *Context) EvalAssign(block *Block, target Var, expr *Expr) Var {
	if expr.Type != nil && target.Type != nil && !target.Type.IsCompatibleUnqualified(expr.Type) && !target.IsBitField() {
		tmp := c.CreateVar(target.Type)
		block.Append(Stmt{Op: Cast, Target: tmp, Expr: expr, CastTo: tmp})
		expr = &Expr{Kind: DirectRef, Type: target.Type, Ref: tmp}
	}
	block.Append(Stmt{Op: Assign, Target: target, Expr: expr})
	return target
}
