package initializer

import (
	"github.com/go-ccfe/cinit/internal/ctype"
	"github.com/go-ccfe/cinit/internal/ir"
	"github.com/go-ccfe/cinit/internal/sym"
)

// accessMember narrows target down to one member at the given base
// offset, the original's access_member (lines 148-158).
func accessMember(target ir.Var, member *ctype.Member, offset int64) ir.Var {
	target.Type = member.Type
	target.FieldOffset = member.FieldOffset
	target.FieldWidth = member.FieldWidth
	target.Offset = offset + member.Offset
	return target
}

func getNamedMember(c *ctx, t *ctype.Type, name string) (*ctype.Member, int) {
	m, i := t.FindMember(name)
	if m == nil {
		kind := "struct"
		if t.IsUnion() {
			kind = "union"
		}
		errUnknownMember(c.cur, kind, name)
	}
	return m, i
}

// assignInitializerElement is assign_initializer_element (original lines
// 487-502). It calls EvalAssign against block so any cast statement
// EvalAssign inserts lands in the caller's normal block, then pops just
// the trailing Assign statement out of block.Code into values -- SPEC_FULL
// ?6 item 5: the cast is NOT moved with it, only the plain assignment is
// reordered with the rest of the aggregate.
func assignInitializerElement(c *ctx, block, values *ir.Block, target ir.Var) {
	if !block.HasInitValue {
		panic("initializer: assignInitializerElement without a pending value")
	}
	c.ir.EvalAssign(block, target, block.PendingExpr)
	last := len(block.Code) - 1
	st := block.Code[last]
	if st.Op != ir.Assign {
		panic("initializer: expected trailing Assign statement")
	}
	block.Code = block.Code[:last]
	values.Append(st)
	block.HasInitValue = false
	block.PendingExpr = nil
}

// initializeMember is spec.md ?4.2's initialize_member: used for a
// nested sub-object during aggregate traversal. It differs from
// initializeObject only in that scalar leaves may be wrapped in a
// single pair of braces.
func initializeMember(c *ctx, block, values *ir.Block, target ir.Var) {
	switch {
	case target.Type.IsStructOrUnion():
		if !block.HasInitValue && c.cur.Is("{") {
			c.cur.Next()
			initializeStructOrUnion(c, block, values, target, stateCurrent)
			c.cur.TryConsume(",")
			c.cur.Consume("}")
		} else {
			initializeStructOrUnion(c, block, values, target, stateDesignator)
		}
	case target.Type.IsArray():
		if target.Type.Size() == 0 {
			errFlexibleArrayInit(c.cur)
			return
		}
		if !block.HasInitValue && c.cur.Is("{") {
			c.cur.Next()
			initializeArray(c, block, values, target, stateCurrent)
			c.cur.TryConsume(",")
			c.cur.Consume("}")
		} else {
			initializeArray(c, block, values, target, stateDesignator)
		}
	default:
		if !block.HasInitValue {
			if c.cur.Is("{") {
				c.cur.Next()
				readInitializerElement(c, block, target)
				c.cur.Consume("}")
			} else {
				readInitializerElement(c, block, target)
			}
		}
		assignInitializerElement(c, block, values, target)
	}
}

// initializeObject is the top-of-object entry point, spec.md ?4.2's
// initialize_object.
func initializeObject(c *ctx, block, values *ir.Block, target ir.Var) {
	switch {
	case c.cur.Is("{"):
		c.cur.Next()
		switch {
		case target.Type.IsStructOrUnion():
			initializeStructOrUnion(c, block, values, target, stateCurrent)
		case target.Type.IsArray():
			initializeArray(c, block, values, target, stateCurrent)
		default:
			initializeObject(c, block, values, target)
		}
		c.cur.TryConsume(",")
		c.cur.Consume("}")
	case target.Type.IsArray():
		initializeArray(c, block, values, target, stateMember)
	default:
		readInitializerElement(c, block, target)
		assignInitializerElement(c, block, values, target)
	}
}

// initializeStructOrUnion is spec.md ?4.2's initialize_struct_or_union:
// it first tries to read a whole-aggregate sibling-value assignment,
// falling back to the member-by-member struct/union walkers.
func initializeStructOrUnion(c *ctx, block, values *ir.Block, target ir.Var, state objectState) {
	if !block.HasInitValue && !peekStartsNestedForm(c.cur) {
		readInitializerElement(c, block, target)
	}

	if block.HasInitValue && target.Type.IsCompatibleUnqualified(block.PendingExpr.Type) {
		c.ir.EvalAssign(values, target, block.PendingExpr)
		block.HasInitValue = false
		block.PendingExpr = nil
		return
	}

	if target.Type.IsUnion() {
		initializeUnion(c, block, values, target, state)
	} else {
		initializeStruct(c, block, values, target, state)
	}
}

// initializeStruct is spec.md ?4.2's initialize_struct: walks members in
// declaration order, honoring '.'-designators, and skips anonymous-union
// siblings that share (offset, fieldOffset) with the member just
// initialized (SPEC_FULL ?8(b)).
func initializeStruct(c *ctx, block, values *ir.Block, target ir.Var, state objectState) {
	t := target.Type
	filled := target.Offset
	m := t.NumMembers()
	i := 0
	var prev *ctype.Member

	for {
		if !block.HasInitValue && c.cur.Is(".") {
			c.cur.Next()
			nameTok := c.cur.ConsumeIdent()
			member, idx := getNamedMember(c, t, nameTok.Text)
			target = accessMember(target, member, filled)
			c.cur.TryConsume("=")
			initializeMember(c, block, values, target)
			prev = member
			i = idx + 1
		} else {
			var member *ctype.Member
			for {
				member = t.MemberAt(i)
				i++
				if prev == nil || prev.Offset != member.Offset || prev.FieldOffset != member.FieldOffset {
					break
				}
			}
			prev = member
			target = accessMember(target, member, filled)
			initializeMember(c, block, values, target)
			if i >= m {
				break
			}
		}

		if !nextElement(c.cur, state) {
			break
		}
	}
}

// initializeUnion is spec.md ?4.2's initialize_union: exactly one member
// is assigned -- member 0 by default, or the last designated member --
// while still letting any sub-aggregate of that member fill its own
// zeroed remainder. Each iteration runs in its own scratch block so an
// earlier designator's writes are fully discarded (SPEC_FULL ?6 item 1:
// the scratch block is emptied between iterations, not released and
// reacquired).
func initializeUnion(c *ctx, block, values *ir.Block, target ir.Var, state objectState) {
	t := target.Type
	filled := target.Offset
	init := c.pool.acquire()
	done := false

	for {
		if c.cur.Is(".") {
			c.cur.Next()
			nameTok := c.cur.ConsumeIdent()
			member, _ := getNamedMember(c, t, nameTok.Text)
			target = accessMember(target, member, filled)
			c.cur.TryConsume("=")
		} else if !done {
			member := t.MemberAt(0)
			target = accessMember(target, member, filled)
		} else {
			break
		}
		init.Empty()
		initializeMember(c, block, init, target)
		done = true

		if !nextElement(c.cur, state) {
			break
		}
	}

	values.Concat(init)
	c.pool.release(init)
}

// initializeArray is spec.md ?4.2's initialize_array: special-cases
// whole-array string-literal assignment, then otherwise iterates
// elements with '[' designators, tracking the high-water mark c so a
// flexible array gets sized to one past the highest index written
// (SPEC_FULL ?8(a)).
func initializeArray(c *ctx, block, values *ir.Block, target ir.Var, state objectState) {
	t := target.Type
	elem := t.ElemType()
	width := elem.Size()
	initial := target.Offset
	count := t.ArrayLen() // -1 if incomplete

	if !block.HasInitValue && !peekStartsNestedForm(c.cur) {
		readInitializerElement(c, block, target)
	}

	if block.HasInitValue && elem.IsChar() && isStringLiteralRef(block.PendingExpr) {
		// A string literal assigns the whole array in one statement
		// rather than going through EvalAssign's generic
		// compatibility/cast machinery: target and literal are both
		// arrays but may legitimately differ in length (original's
		// doc comment: `char foo[5] = "Hi"` emits `foo = "Hi"` as one
		// statement, with the trailing bytes picked up by the normal
		// padding pass below because the statement's own width is the
		// literal's length, not the target's declared length). A
		// literal longer than a complete target array is truncated to
		// the target's length -- the discarded tail is simply not
		// copied, matching a plain memcpy-style narrowing.
		literalLen := block.PendingExpr.Ref.Type.ArrayLen()
		copyLen := literalLen
		if count >= 0 && copyLen > count {
			copyLen = count
		}
		strTarget := target
		strTarget.Type = ctype.NewArrayType(elem, copyLen)
		values.Append(ir.Stmt{Op: ir.Assign, Target: strTarget, Expr: block.PendingExpr})
		block.HasInitValue = false
		block.PendingExpr = nil
		if !t.IsComplete() {
			t.SetArrayLength(literalLen)
		}
		return
	}

	var i, high int64
	elemTarget := target
	elemTarget.Type = elem
	for {
		if c.cur.Is("[") {
			c.cur.Next()
			idx := c.exprParser.ConstantExpression(c.cur)
			c.cur.Consume("]")
			if idx < 0 {
				errNonIntegerArrayIndex(c.cur)
			}
			if count >= 0 && idx >= count {
				errArrayDesignatorOutOfBounds(c.cur, idx, count, width)
			}
			i = idx
			c.cur.TryConsume("=")
		}
		elemTarget.Offset = initial + i*width
		initializeMember(c, block, values, elemTarget)
		i++
		if i > high {
			high = i
		}

		cont, isDesignator := hasNextArrayElement(c.cur, state)
		if !cont {
			break
		}
		if !isDesignator && count >= 0 && high >= count {
			break
		}
		c.cur.Consume(",")
	}

	if !t.IsComplete() {
		t.SetArrayLength(high)
	}
}

func isStringLiteralRef(e *ir.Expr) bool {
	if e == nil || e.Kind != ir.DirectRef || e.Ref.Type == nil || !e.Ref.Type.IsArray() {
		return false
	}
	s := symbolOf(e.Ref)
	return s != nil && s.Linkage == sym.LinkLiteral
}
