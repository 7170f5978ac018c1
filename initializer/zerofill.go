package initializer

import (
	"modernc.org/mathutil"

	"github.com/go-ccfe/cinit/internal/ctype"
	"github.com/go-ccfe/cinit/internal/ir"
)

// zeroScalarTypes is the widest-to-narrowest ladder zeroInitializeBytes
// walks, matching the original's char/short/int/long synthetic types
// (basic_type__char .. basic_type__long, lines 661-672).
var zeroScalarTypes = []*ctype.Type{ctype.LongT, ctype.IntT, ctype.ShortT, ctype.CharT}

var zeroExpr = &ir.Expr{Kind: ir.Immediate, Type: ctype.IntT, Imm: 0}

// zeroInitialize writes 0 into the whole of target (spec.md ?4.3). For
// structs/unions it casts the target to an array of long (size % 8 == 0)
// or char, then recurses through the array branch; for arrays it
// recurses per element; for scalars, pointers, and bit-fields it emits
// one zero assignment directly.
func zeroInitialize(c *ctx, block *ir.Block, target ir.Var) {
	if block.HasInitValue {
		panic("initializer: zeroInitialize called with pending value")
	}
	size := target.Type.Size()

	switch {
	case target.Type.IsStructOrUnion():
		if size == 0 {
			errUnsupportedZeroInit(c.cur.Diag(), c.cur.Pos(), "incomplete struct/union")
			return
		}
		var elem *ctype.Type
		var n int64
		if size%8 == 0 {
			elem, n = ctype.LongT, size/8
		} else {
			elem, n = ctype.CharT, size
		}
		zeroInitializeArray(c, block, target, ctype.NewArrayType(elem, n))
	case target.Type.IsArray():
		zeroInitializeArray(c, block, target, target.Type)
	case target.Type.IsFunction():
		errUnsupportedZeroInit(c.cur.Diag(), c.cur.Pos(), "function")
	default:
		zt := zeroExpr
		if target.IsBitField() {
			zt = &ir.Expr{Kind: ir.Immediate, Type: target.Type, Imm: 0}
		}
		c.ir.EvalAssign(block, target, zt)
	}
}

func zeroInitializeArray(c *ctx, block *ir.Block, target ir.Var, arrType *ctype.Type) {
	base := target.Offset
	elem := arrType.ElemType()
	n := arrType.ArrayLen()
	elemTarget := target
	elemTarget.Type = elem
	elemTarget.FieldOffset = 0
	elemTarget.FieldWidth = 0
	for i := int64(0); i < n; i++ {
		elemTarget.Offset = base + i*elem.Size()
		zeroInitialize(c, block, elemTarget)
	}
}

// zeroInitializeBytes greedily emits 8/4/2/1-byte zero writes, choosing
// on each step the largest width in zeroScalarTypes that fits within
// the remaining range (see widestDividingWidth; a 6-byte run becomes a
// 4-byte write followed by a 2-byte write). The width is not capped at
// the size of the element or member being padded.
func zeroInitializeBytes(c *ctx, block *ir.Block, target ir.Var, n int64) {
	const maxPaddingRun = 1 << 30 // defensive guard, not a spec limit
	if n > maxPaddingRun {
		errPaddingRunTooLarge(c.cur.Diag(), c.cur.Pos(), n)
		return
	}
	target.FieldOffset = 0
	target.FieldWidth = 0
	remaining := n
	for remaining > 0 {
		width := widestDividingWidth(remaining)
		target.Type = scalarTypeForWidth(width)
		zeroInitialize(c, block, target)
		target.Offset += width
		remaining -= width
	}
}

// widestDividingWidth picks the widest width in {8,4,2,1} that is <=
// remaining; using mathutil.Min to clamp against the remaining range
// mirrors the original's `size = bytes % 8; if (!size) size = 8;`
// normalization, generalized to the full ladder instead of a single
// modulo step.
func widestDividingWidth(remaining int64) int64 {
	for _, t := range zeroScalarTypes {
		w := t.Size()
		if int64(mathutil.Min(int(remaining), int(w))) == w {
			return w
		}
	}
	return 1
}

func scalarTypeForWidth(w int64) *ctype.Type {
	switch w {
	case 8:
		return ctype.LongT
	case 4:
		return ctype.IntT
	case 2:
		return ctype.ShortT
	default:
		return ctype.CharT
	}
}
