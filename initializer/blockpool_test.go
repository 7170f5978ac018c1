package initializer

import (
	"testing"

	"github.com/go-ccfe/cinit/internal/ir"
)

func TestPoolReusesReleasedBlocks(t *testing.T) {
	p := newPool()
	b1 := p.acquire()
	b1.Append(ir.Stmt{Op: ir.Assign})
	p.release(b1)

	b2 := p.acquire()
	if b2 != b1 {
		t.Fatalf("expected acquire to return the released block, got a different one")
	}
	if len(b2.Code) != 0 {
		t.Fatalf("expected release to empty the block's code, got %d statements", len(b2.Code))
	}
}

func TestPoolRejectsReleaseOfPendingBlock(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected release of a block with HasInitValue set to panic")
		}
	}()
	p := newPool()
	b := p.acquire()
	b.HasInitValue = true
	p.release(b)
}

func TestPoolRejectsReleaseOfLabeledBlock(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected release of a labeled block to panic")
		}
	}()
	p := newPool()
	b := p.acquire()
	b.Label = "start"
	p.release(b)
}

func TestPoolFinalizeDropsFreeList(t *testing.T) {
	p := newPool()
	p.release(p.acquire())
	p.finalize()
	if len(p.free) != 0 {
		t.Fatalf("expected finalize to clear the free list, got %d entries", len(p.free))
	}
}
