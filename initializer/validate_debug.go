//go:build debug

package initializer

import "github.com/go-ccfe/cinit/internal/ir"

// debugValidate is the original's validate_initializer_block
// (lines 762-785), compiled only under the debug build tag the way the
// original compiles it out under NDEBUG. It checks the post-invariant
// spec.md ?4.4 states: consecutive entries' offsets differ by exactly
// size_of(prev.Type) when they don't share a bit-field unit; when they
// do, prev.FieldOffset+prev.FieldWidth == curr.FieldOffset and their
// offsets are equal.
func debugValidate(block *ir.Block) {
	var target ir.Var
	for _, st := range block.Code {
		if st.Op != ir.Assign {
			continue
		}
		field := st.Target
		if target.Offset > field.Offset {
			panic("initializer: offsets went backwards")
		}
		if target.Offset < field.Offset {
			if field.Offset-target.Offset != target.Type.Size() {
				panic("initializer: gap between consecutive assignments")
			}
		} else {
			if target.FieldOffset+target.FieldWidth != field.FieldOffset {
				panic("initializer: bit-field run is not contiguous")
			}
		}
		target = field
	}
}
