//go:build !debug

package initializer

import "github.com/go-ccfe/cinit/internal/ir"

// debugValidate is a no-op outside debug builds, matching the
// original's #ifndef NDEBUG gating of validate_initializer_block.
func debugValidate(*ir.Block) {}
