package replay

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeSurface 记录回放过程，不真的睡眠
type fakeSurface struct {
	openErr  error
	showErr  error
	opened   bool
	closed   bool
	shown    []Turn
	waits    []time.Duration
	closeErr error
}

func (f *fakeSurface) Open(ctx context.Context) error {
	f.opened = true
	return f.openErr
}

func (f *fakeSurface) ShowTurn(turn Turn) error {
	f.shown = append(f.shown, turn)
	return f.showErr
}

func (f *fakeSurface) Wait(d time.Duration) {
	f.waits = append(f.waits, d)
}

func (f *fakeSurface) Close() error {
	f.closed = true
	return f.closeErr
}

func noPrompt(string) error { return nil }

func TestReplayerShowsTurnsInOrderWithPacing(t *testing.T) {
	turns := []Turn{
		{Speaker: "SARAH", Text: "Hi."},
		{Speaker: "AVA", Text: string(make([]byte, 100))},
	}

	surface := &fakeSurface{}
	r := NewReplayer(surface, noPrompt)
	if err := r.Run(context.Background(), turns); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(surface.shown) != 2 {
		t.Fatalf("shown %d turns, want 2", len(surface.shown))
	}
	if surface.shown[0].Speaker != "SARAH" || surface.shown[1].Speaker != "AVA" {
		t.Errorf("turns out of order: %+v", surface.shown)
	}
	if surface.waits[0] != 3*time.Second {
		t.Errorf("short turn wait = %v, want 3s", surface.waits[0])
	}
	if surface.waits[1] != 6*time.Second {
		t.Errorf("long turn wait = %v, want 6s", surface.waits[1])
	}
	if !surface.closed {
		t.Error("surface not closed after successful run")
	}
}

func TestReplayerClosesSurfaceOnShowError(t *testing.T) {
	surface := &fakeSurface{showErr: errors.New("connection lost")}
	r := NewReplayer(surface, noPrompt)

	err := r.Run(context.Background(), []Turn{{Speaker: "AVA", Text: "hi"}})
	if err == nil {
		t.Fatal("expected error from failing surface")
	}
	if !surface.closed {
		t.Error("surface must be closed on error")
	}
}

func TestReplayerOpenErrorSurfaced(t *testing.T) {
	surface := &fakeSurface{openErr: errors.New("port busy")}
	r := NewReplayer(surface, noPrompt)

	err := r.Run(context.Background(), []Turn{{Speaker: "AVA", Text: "hi"}})
	if err == nil || !surface.closed {
		t.Fatalf("open error not surfaced or surface not closed: err=%v closed=%v", err, surface.closed)
	}
}

func TestReplayerCloseErrorDoesNotMaskOriginal(t *testing.T) {
	showErr := errors.New("connection lost")
	surface := &fakeSurface{showErr: showErr, closeErr: errors.New("close failed")}
	r := NewReplayer(surface, noPrompt)

	err := r.Run(context.Background(), []Turn{{Speaker: "AVA", Text: "hi"}})
	if !errors.Is(err, showErr) {
		t.Fatalf("original error masked by close error: %v", err)
	}
}

func TestReplayerRejectsEmptyTurnList(t *testing.T) {
	surface := &fakeSurface{}
	r := NewReplayer(surface, noPrompt)
	if err := r.Run(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty turn list")
	}
	if surface.opened {
		t.Error("surface opened for empty replay")
	}
}
