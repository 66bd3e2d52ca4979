package player

import (
	"context"
	"sync"
	"time"

	"voxdemo/logger"
	"voxdemo/model"

	"github.com/google/uuid"
)

// SessionSink persists the final session record and per-slide view counts.
// The server wires a gorm repository plus Redis counters; tests use a fake.
type SessionSink interface {
	SaveSession(ctx context.Context, session *model.DemoSession) error
	CountSlideView(ctx context.Context, slideID int) error
}

// SessionTracker 记录一次演示会话的观看轨迹。
//
// 会话作用域对象：演示开始时构造，显式传给需要它的调用点，结束时 End()
// 恰好落库一次。完成率按实际 deck 长度计算，不使用固定除数。
type SessionTracker struct {
	id         string
	deckLength int
	sink       SessionSink
	startedAt  time.Time

	mu        sync.Mutex
	lastSlide int
	pauses    int
	completed bool

	endOnce sync.Once
}

// NewSessionTracker creates a tracker for a session over a deck of the
// given length.
func NewSessionTracker(deckLength int, sink SessionSink) *SessionTracker {
	return &SessionTracker{
		id:         uuid.NewString(),
		deckLength: deckLength,
		sink:       sink,
		startedAt:  time.Now(),
		lastSlide:  -1,
	}
}

// ID returns the session id.
func (t *SessionTracker) ID() string {
	return t.id
}

// TrackSlideView records that the viewer reached the given slide index.
func (t *SessionTracker) TrackSlideView(index int) {
	t.mu.Lock()
	if index > t.lastSlide {
		t.lastSlide = index
	}
	t.mu.Unlock()

	if t.sink != nil {
		// Counters are advisory; a failed bump must not disturb playback.
		if err := t.sink.CountSlideView(context.Background(), index+1); err != nil {
			logger.Debug("slide view counter failed", logger.ErrorField(err))
		}
	}
}

// TrackPause records a pause action.
func (t *SessionTracker) TrackPause() {
	t.mu.Lock()
	t.pauses++
	t.mu.Unlock()
}

// TrackCompleted marks the session as having played through to the end.
func (t *SessionTracker) TrackCompleted() {
	t.mu.Lock()
	t.completed = true
	t.mu.Unlock()
}

// Completion returns the fraction of the deck the viewer reached, in [0,1].
func (t *SessionTracker) Completion() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completionLocked()
}

func (t *SessionTracker) completionLocked() float64 {
	if t.deckLength <= 0 || t.lastSlide < 0 {
		return 0
	}
	c := float64(t.lastSlide+1) / float64(t.deckLength)
	if c > 1 {
		c = 1
	}
	return c
}

// End flushes the final session state exactly once. Subsequent calls are
// no-ops and return the first outcome's error.
func (t *SessionTracker) End(ctx context.Context) error {
	var err error
	t.endOnce.Do(func() {
		t.mu.Lock()
		now := time.Now()
		session := &model.DemoSession{
			ID:             t.id,
			DeckLength:     t.deckLength,
			LastSlideIndex: t.lastSlide,
			Completion:     t.completionLocked(),
			Completed:      t.completed,
			PauseCount:     t.pauses,
			StartedAt:      t.startedAt,
			EndedAt:        &now,
		}
		t.mu.Unlock()

		if t.sink == nil {
			return
		}
		if err = t.sink.SaveSession(ctx, session); err != nil {
			logger.Error("failed to persist demo session",
				logger.String("session", t.id),
				logger.ErrorField(err))
		}
	})
	return err
}
