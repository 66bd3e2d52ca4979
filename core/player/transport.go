package player

import (
	"sync"
	"time"
)

// Transport is the narrow playback primitive the engine drives: one
// narration track with play/pause/position and a completion callback.
// A real implementation wraps the browser's audio element (driven over
// WebSocket) or a media pipeline; tests substitute a fake.
type Transport interface {
	Play() error
	Pause()
	Resume()
	Stop()
	SetMuted(muted bool)
	Position() time.Duration
	Duration() time.Duration
	// OnEnded registers the completion callback. It must fire at most once,
	// only on natural end of the track, never on Stop.
	OnEnded(fn func())
}

// TimerTransport 静默兜底音轨：按固定时长走表，没有任何音频输出。
// 当某张幻灯片的旁白资源缺失或加载失败时，引擎用它保住自动翻页契约。
type TimerTransport struct {
	mu       sync.Mutex
	duration time.Duration
	elapsed  time.Duration // accumulated before the current run
	started  time.Time
	running  bool
	stopped  bool
	timer    *time.Timer
	onEnded  func()
}

// NewTimerTransport creates a silent transport that "plays" for the given
// duration and then fires the ended callback.
func NewTimerTransport(duration time.Duration) *TimerTransport {
	if duration <= 0 {
		duration = time.Second
	}
	return &TimerTransport{duration: duration}
}

// Play starts the countdown.
func (t *TimerTransport) Play() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running || t.stopped {
		return nil
	}
	t.startLocked()
	return nil
}

// Pause freezes the countdown, keeping consumed time.
func (t *TimerTransport) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.elapsed += time.Since(t.started)
	t.running = false
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Resume continues the countdown from where Pause left it.
func (t *TimerTransport) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running || t.stopped {
		return
	}
	t.startLocked()
}

// Stop cancels the countdown permanently. The ended callback will not fire.
func (t *TimerTransport) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	t.running = false
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// SetMuted is a no-op: the fallback track is silent by construction.
func (t *TimerTransport) SetMuted(bool) {}

// Position returns consumed time, capped at the declared duration.
func (t *TimerTransport) Position() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	pos := t.elapsed
	if t.running {
		pos += time.Since(t.started)
	}
	if pos > t.duration {
		pos = t.duration
	}
	return pos
}

// Duration returns the declared duration.
func (t *TimerTransport) Duration() time.Duration {
	return t.duration
}

// OnEnded registers the completion callback.
func (t *TimerTransport) OnEnded(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onEnded = fn
}

func (t *TimerTransport) startLocked() {
	remaining := t.duration - t.elapsed
	if remaining < 0 {
		remaining = 0
	}
	t.started = time.Now()
	t.running = true
	t.timer = time.AfterFunc(remaining, t.fire)
}

func (t *TimerTransport) fire() {
	t.mu.Lock()
	if t.stopped || !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	t.elapsed = t.duration
	fn := t.onEnded
	t.mu.Unlock()

	if fn != nil {
		fn()
	}
}
