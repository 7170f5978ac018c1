package initializer

import (
	"modernc.org/mathutil"

	"github.com/go-ccfe/cinit/internal/ir"
)

// sortAndTrim stable-sorts values.Code by offset using insertion sort --
// N is the member/element count of one object, small enough that
// insertion sort is the right tool, exactly as spec.md ?9 notes and as
// the original's sort_and_trim does (lines 791-818). Within equal
// offsets it drops the earlier of two entries sharing (offset,
// fieldOffset): designator semantics say the later write wins.
func sortAndTrim(values *ir.Block) {
	code := values.Code
	for i := 1; i < len(code); i++ {
		j := i - 1
		for j >= 0 && code[j].Target.Offset > code[j+1].Target.Offset {
			code[j], code[j+1] = code[j+1], code[j]
			if j == 0 {
				break
			}
			j--
		}
		if code[j].Target.Offset == code[j+1].Target.Offset &&
			code[j].Target.FieldOffset == code[j+1].Target.FieldOffset {
			if code[j].Target.FieldWidth != code[j+1].Target.FieldWidth {
				panic("initializer: conflicting bit-field widths at equal offset")
			}
			code = append(code[:j], code[j+1:]...)
			i--
		}
	}
	values.Code = code
}

// postprocessObjectInitialization is spec.md ?4.4 end to end: sort and
// dedup, then walk the sorted list interpolating zero padding between
// gaps (and across bit-field unit boundaries), finally padding the tail
// up to totalSize. Returns a fresh block containing the clean, in-order,
// fully padded assignment list; the input values block is released back
// to the pool.
func postprocessObjectInitialization(c *ctx, values *ir.Block, rootType ir.Var) *ir.Block {
	sortAndTrim(values)
	out := c.pool.acquire()
	totalSize := rootType.Type.Size()

	cursor := ir.Var{Symbol: rootType.Symbol, Kind: rootType.Kind, Offset: 0}
	bitfieldUnitSize := int64(0)

	for i, st := range values.Code {
		field := st.Target
		if i == 0 {
			cursor.Type = field.Type
		}

		initializePadding(c, out, cursor, field, &bitfieldUnitSize)
		out.Append(st)

		cursor.Type = field.Type
		cursor.Offset = field.Offset
		if field.FieldWidth != 0 {
			bitfieldUnitSize = int64(mathutil.Max(int(bitfieldUnitSize), int(field.Type.Size())))
			cursor.FieldOffset = field.FieldOffset + field.FieldWidth
			cursor.FieldWidth = 0
			if cursor.FieldOffset == bitfieldUnitSize*8 {
				cursor.FieldOffset = 0
				cursor.Offset += bitfieldUnitSize
			}
		} else {
			cursor.FieldOffset = 0
			cursor.FieldWidth = 0
			cursor.Offset += field.Type.Size()
			bitfieldUnitSize = 0
		}
	}

	initializeTrailingPadding(c, out, cursor, totalSize, bitfieldUnitSize)
	c.pool.release(values)
	debugValidate(out)
	return out
}

// initializePadding is spec.md ?4.4's "Padding interpolation" paragraph:
// close any open bit-field unit, zero-fill the byte gap up to
// field.Offset, or (same unit, not yet at field.FieldOffset) zero-fill
// the remaining bits of this unit before field's own bits begin.
// Mirrors the original's initialize_padding (lines 688-713).
func initializePadding(c *ctx, block *ir.Block, cursor, field ir.Var, bitfieldUnitSize *int64) {
	if cursor.Offset < field.Offset {
		if cursor.FieldOffset != 0 {
			bits := cursor.Type.Size() * 8
			cursor.FieldWidth = bits - cursor.FieldOffset
			zeroInitialize(c, block, cursor)
			cursor.Offset += cursor.Type.Size()
			cursor.FieldOffset = 0
			cursor.FieldWidth = 0
		}
		padding := field.Offset - cursor.Offset
		if padding > 0 {
			zeroInitializeBytes(c, block, cursor, padding)
		}
	} else if cursor.FieldOffset < field.FieldOffset {
		cursor.FieldWidth = field.FieldOffset - cursor.FieldOffset
		zeroInitialize(c, block, cursor)
	}
}

// initializeTrailingPadding is spec.md ?4.4's "Trailing padding":
// close any still-open bit-field unit (choosing char/short/int/long by
// the tracked bitfieldUnitSize, per SPEC_FULL ?6 item 4, not by
// re-deriving it from cursor.Type), then zero-fill up to size. Mirrors
// the original's initialize_trailing_padding (lines 721-760).
func initializeTrailingPadding(c *ctx, block *ir.Block, cursor ir.Var, size, bitfieldUnitSize int64) {
	if cursor.FieldOffset != 0 {
		switch bitfieldUnitSize {
		case 1:
			cursor.Type = scalarTypeForWidth(1)
			cursor.FieldWidth = 8 - cursor.FieldOffset
		case 2:
			cursor.Type = scalarTypeForWidth(2)
			cursor.FieldWidth = 16 - cursor.FieldOffset
		case 4:
			cursor.Type = scalarTypeForWidth(4)
			cursor.FieldWidth = 32 - cursor.FieldOffset
		default:
			cursor.Type = scalarTypeForWidth(8)
			cursor.FieldWidth = 64 - cursor.FieldOffset
		}
		zeroInitialize(c, block, cursor)
		cursor.Offset += cursor.Type.Size()
		cursor.FieldOffset = 0
		cursor.FieldWidth = 0
	}

	if size > cursor.Offset {
		zeroInitializeBytes(c, block, cursor, size-cursor.Offset)
	}
}
