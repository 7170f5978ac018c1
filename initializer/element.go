package initializer

import (
	"github.com/go-ccfe/cinit/internal/expr"
	"github.com/go-ccfe/cinit/internal/ir"
	"github.com/go-ccfe/cinit/internal/sym"
	"github.com/go-ccfe/cinit/internal/token"
)

// isLoadtimeConstant implements is_loadtime_constant (original lines
// 61-77). A DIRECT reference is load-time-constant only when it names an
// array or function AND its symbol has non-LINK_NONE linkage -- the
// original expresses this as a fallthrough from case DIRECT into case
// ADDRESS; SPEC_FULL ?6 item 3 calls out that fallthrough explicitly so
// it is not lost in translation. This function preserves it as a single
// linkage check reached by both paths.
func isLoadtimeConstant(e *ir.Expr) bool {
	if !e.IsIdentity() {
		return false
	}
	switch e.Kind {
	case ir.Immediate:
		return true
	case ir.DirectRef:
		t := e.Ref.Type
		if t == nil || (!t.IsArray() && !t.IsFunction()) {
			return false
		}
		fallthrough
	case ir.Address:
		s := expr.Unwrap(e.Ref.Symbol)
		return s != nil && s.Linkage != sym.LinkNone
	default:
		return false
	}
}

// readInitializerElement is read_initializer_element: parse exactly one
// assignment-expression into block.PendingExpr, enforcing the
// load-time-constant rule for static-storage targets and spilling call
// results into a fresh temporary so later reordering cannot observe an
// inverted side-effect order (spec.md ?4.2).
//
// SPEC_FULL ?6 item 2: for static storage the original checks three
// conditions, not just "is the parsed expression loadtime-constant
// shaped" -- the returned block must be the SAME block passed in (no
// control-flow branch was introduced by the expression), the code array
// must not have grown (no side-effecting statement was emitted), and the
// expression itself must be identity + loadtime-constant. This module's
// toy expression grammar (internal/expr) never branches or emits
// statements, so the first two checks are structurally always true here.
// Only the code-growth check is evaluated explicitly (via codeLenBefore);
// AssignmentExpression returns no block, so there is no same-block
// comparison to make.
func readInitializerElement(c *ctx, block *ir.Block, target ir.Var) {
	if block.HasInitValue {
		panic("initializer: readInitializerElement called with pending value")
	}
	codeLenBefore := len(block.Code)
	e := c.exprParser.AssignmentExpression(c.cur)
	if e.Type != nil && e.Type.IsVoid() {
		errVoidInitializer(c.cur)
		return
	}

	s := symbolOf(target)
	if s != nil && s.HasStaticStorage() {
		introducedCode := len(block.Code) != codeLenBefore
		if introducedCode || !e.IsIdentity() || !isLoadtimeConstant(e) {
			errNonLoadtimeConstant(c.cur)
			return
		}
	} else if e.Kind == ir.Call {
		tmp := c.ir.CreateVar(e.Type)
		c.ir.EvalAssign(block, tmp, e)
		e = &ir.Expr{Kind: ir.DirectRef, Type: e.Type, Ref: tmp}
	}

	block.HasInitValue = true
	block.PendingExpr = e
}

func symbolOf(v ir.Var) *sym.Symbol {
	return expr.Unwrap(v.Symbol)
}

// peekStartsNestedForm reports whether the next token can only begin a
// designator or brace-list, i.e. is NOT the start of a bare expression
// -- the lookahead initialize_struct_or_union/initialize_array use to
// decide whether to attempt read_initializer_element at all (original
// lines 320-324, 434-438).
func peekStartsNestedForm(cur *token.Cursor) bool {
	switch {
	case cur.Is("."), cur.Is("{"), cur.Is("["):
		return true
	default:
		return false
	}
}
