package player

import (
	"context"
	"sync"
	"testing"

	"voxdemo/model"
)

// fakeSink 收集落库调用
type fakeSink struct {
	mu       sync.Mutex
	sessions []*model.DemoSession
	views    []int
	saveErr  error
}

func (f *fakeSink) SaveSession(ctx context.Context, session *model.DemoSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.sessions = append(f.sessions, session)
	return nil
}

func (f *fakeSink) CountSlideView(ctx context.Context, slideID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.views = append(f.views, slideID)
	return nil
}

func TestSessionCompletionParameterizedOnDeckLength(t *testing.T) {
	cases := []struct {
		deckLength int
		lastSlide  int
		want       float64
	}{
		{8, 3, 0.5},
		{8, 7, 1.0},
		{5, 0, 0.2},
		{10, -1, 0}, // 没看任何幻灯片
		{4, 1, 0.5},
	}

	for _, tc := range cases {
		tr := NewSessionTracker(tc.deckLength, nil)
		if tc.lastSlide >= 0 {
			tr.TrackSlideView(tc.lastSlide)
		}
		if got := tr.Completion(); got != tc.want {
			t.Errorf("deck %d, last slide %d: completion = %v, want %v",
				tc.deckLength, tc.lastSlide, got, tc.want)
		}
	}
}

func TestSessionFlushesExactlyOnce(t *testing.T) {
	sink := &fakeSink{}
	tr := NewSessionTracker(3, sink)

	tr.TrackSlideView(0)
	tr.TrackSlideView(1)
	tr.TrackPause()

	ctx := context.Background()
	if err := tr.End(ctx); err != nil {
		t.Fatalf("End: %v", err)
	}
	// 重复 End 不应再落库
	_ = tr.End(ctx)
	_ = tr.End(ctx)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.sessions) != 1 {
		t.Fatalf("session saved %d times, want 1", len(sink.sessions))
	}

	s := sink.sessions[0]
	if s.LastSlideIndex != 1 {
		t.Errorf("LastSlideIndex = %d, want 1", s.LastSlideIndex)
	}
	if s.PauseCount != 1 {
		t.Errorf("PauseCount = %d, want 1", s.PauseCount)
	}
	if s.DeckLength != 3 {
		t.Errorf("DeckLength = %d, want 3", s.DeckLength)
	}
	if s.EndedAt == nil {
		t.Error("EndedAt not set")
	}
}

func TestSessionTracksViewsMonotonically(t *testing.T) {
	tr := NewSessionTracker(5, nil)
	tr.TrackSlideView(3)
	tr.TrackSlideView(1) // 回看不应降低进度

	if got := tr.Completion(); got != 0.8 {
		t.Fatalf("completion = %v, want 0.8", got)
	}
}

func TestSessionViewCountersForwarded(t *testing.T) {
	sink := &fakeSink{}
	tr := NewSessionTracker(3, sink)

	tr.TrackSlideView(0)
	tr.TrackSlideView(1)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	// 计数器用 1 起的幻灯片 id
	if len(sink.views) != 2 || sink.views[0] != 1 || sink.views[1] != 2 {
		t.Fatalf("views = %v, want [1 2]", sink.views)
	}
}
