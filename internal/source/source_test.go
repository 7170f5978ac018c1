package source

import "testing"

func TestCollectingDiagnosticsRecordsAndAborts(t *testing.T) {
	diag := &CollectingDiagnostics{}
	file := &File{Name: "t.c", Contents: []byte("int x;")}
	pos := Pos{File: file, Line: 1, Col: 5}

	aborted := false
	func() {
		defer Recover(&aborted)
		diag.Fatalf(pos, "bad thing: %d", 42)
	}()

	if !aborted {
		t.Fatalf("expected Fatalf to abort via panic")
	}
	if len(diag.Fatals) != 1 {
		t.Fatalf("expected exactly one recorded fatal, got %d", len(diag.Fatals))
	}
	if diag.Fatals[0] != "t.c:1:5: bad thing: 42" {
		t.Fatalf("unexpected message: %q", diag.Fatals[0])
	}
}

func TestCollectingDiagnosticsWarnDoesNotAbort(t *testing.T) {
	diag := &CollectingDiagnostics{}
	diag.Warnf(Pos{}, "heads up")
	if len(diag.Warns) != 1 {
		t.Fatalf("expected the warning to be recorded, got %d", len(diag.Warns))
	}
}

func TestRecoverPropagatesOtherPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a non-fatalAbort panic to propagate")
		}
	}()
	aborted := false
	defer Recover(&aborted)
	panic("boom")
}
