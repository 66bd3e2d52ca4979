package player

import (
	"sync"
	"time"

	"voxdemo/core/deck"
	"voxdemo/logger"
	"voxdemo/model"
)

// Phase 播放会话所处阶段
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhasePlaying Phase = "playing"
	PhasePaused  Phase = "paused"
	PhaseEnded   Phase = "ended"
)

// TransportFactory builds the transport for one slide's narration asset.
// Returning an error marks the asset as unavailable; the engine then runs
// the slide on a silent timer of its declared duration instead of failing
// the session.
type TransportFactory func(slide model.Slide) (Transport, error)

// Observer receives a state snapshot after every externally visible
// transition, including progress-poll updates while playing. It must not
// call back into the engine.
type Observer func(state model.PlaybackState)

// Engine drives one slide-synchronized demo playback session.
//
// 状态机：Idle → Playing ⇄ Paused，最后一张旁白自然结束后进入 Ended 终态。
// 任意时刻至多有一条活动音轨；手动翻页先停旧音轨再起新音轨。
type Engine struct {
	deck     *deck.Deck
	factory  TransportFactory
	fallback func(slide model.Slide) Transport
	observer Observer
	tracker  *SessionTracker
	interval time.Duration

	mu        sync.Mutex
	phase     Phase
	index     int
	progress  float64
	muted     bool
	transport Transport
	gen       int // transport generation, guards stale ended callbacks
	pollStop  chan struct{}
	closed    bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver registers the state observer.
func WithObserver(fn Observer) Option {
	return func(e *Engine) { e.observer = fn }
}

// WithTracker attaches a session tracker to the engine lifecycle.
func WithTracker(t *SessionTracker) Option {
	return func(e *Engine) { e.tracker = t }
}

// WithPollInterval overrides the progress poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// WithFallback overrides how the silent fallback transport is built.
func WithFallback(fn func(slide model.Slide) Transport) Option {
	return func(e *Engine) { e.fallback = fn }
}

// NewEngine creates an engine for the given deck. The factory supplies one
// transport per slide; it is invoked lazily as slides become active.
func NewEngine(d *deck.Deck, factory TransportFactory, opts ...Option) *Engine {
	e := &Engine{
		deck:     d,
		factory:  factory,
		interval: 100 * time.Millisecond,
		phase:    PhaseIdle,
	}
	e.fallback = func(slide model.Slide) Transport {
		return NewTimerTransport(time.Duration(slide.Duration) * time.Second)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start begins the demo from slide 0. It is only valid from Idle or Ended;
// restarting resets index and progress.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.closed || e.phase == PhasePlaying || e.phase == PhasePaused {
		e.mu.Unlock()
		return
	}
	e.phase = PhasePlaying
	e.index = 0
	e.progress = 0
	e.startSlideLocked()
	e.startPollLocked()
	state := e.stateLocked()
	e.mu.Unlock()

	if e.tracker != nil {
		e.tracker.TrackSlideView(0)
	}
	e.notify(state)
}

// TogglePlayPause pauses a playing session or resumes a paused one.
// Index and progress are untouched.
func (e *Engine) TogglePlayPause() {
	e.mu.Lock()
	switch e.phase {
	case PhasePlaying:
		e.phase = PhasePaused
		if e.transport != nil {
			e.transport.Pause()
		}
		e.stopPollLocked()
	case PhasePaused:
		e.phase = PhasePlaying
		if e.transport != nil {
			e.transport.Resume()
		} else {
			// Transport was released by a paused-state navigation;
			// start the current slide's narration fresh.
			e.startSlideLocked()
		}
		e.startPollLocked()
	default:
		e.mu.Unlock()
		return
	}
	paused := e.phase == PhasePaused
	state := e.stateLocked()
	e.mu.Unlock()

	if paused && e.tracker != nil {
		e.tracker.TrackPause()
	}
	e.notify(state)
}

// Next advances to the following slide. No-op on the last slide.
func (e *Engine) Next() {
	e.jump(1)
}

// Prev returns to the previous slide. No-op on the first slide.
func (e *Engine) Prev() {
	e.jump(-1)
}

// ToggleMute flips the mute flag on the active transport. Orthogonal to the
// playback state: position, index and phase are unaffected.
func (e *Engine) ToggleMute() {
	e.mu.Lock()
	e.muted = !e.muted
	if e.transport != nil {
		e.transport.SetMuted(e.muted)
	}
	state := e.stateLocked()
	e.mu.Unlock()

	e.notify(state)
}

// State returns a snapshot of the current playback state.
func (e *Engine) State() model.PlaybackState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Close tears the session down: poll stopped, transport stopped, no
// background work continues afterwards. Idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.gen++
	e.stopPollLocked()
	if e.transport != nil {
		e.transport.Stop()
		e.transport = nil
	}
	e.phase = PhaseIdle
	e.mu.Unlock()
}

// jump moves the active slide by delta, valid while Playing or Paused.
func (e *Engine) jump(delta int) {
	e.mu.Lock()
	if e.phase != PhasePlaying && e.phase != PhasePaused {
		e.mu.Unlock()
		return
	}
	target := e.index + delta
	if target < 0 || target >= e.deck.Len() {
		e.mu.Unlock()
		return
	}

	// 先停掉旧音轨，保证任意时刻至多一条活动音轨
	e.gen++
	if e.transport != nil {
		e.transport.Stop()
		e.transport = nil
	}

	e.index = target
	e.progress = 0
	if e.phase == PhasePlaying {
		e.startSlideLocked()
	}
	state := e.stateLocked()
	e.mu.Unlock()

	if e.tracker != nil {
		e.tracker.TrackSlideView(target)
	}
	e.notify(state)
}

// startSlideLocked starts narration for the current slide. Caller holds the
// lock and has already stopped any previous transport.
func (e *Engine) startSlideLocked() {
	slide, ok := e.deck.SlideAt(e.index)
	if !ok {
		// Can't happen with a non-empty deck; treat as end of session.
		e.phase = PhaseEnded
		return
	}

	e.gen++
	gen := e.gen

	transport, err := e.factory(slide)
	if err != nil || transport == nil {
		logger.Warn("narration unavailable, running slide on declared duration",
			logger.Int("slide", slide.ID),
			logger.ErrorField(err))
		transport = e.fallback(slide)
	}

	transport.OnEnded(func() {
		e.handleEnded(gen)
	})
	transport.SetMuted(e.muted)
	e.transport = transport

	if err := transport.Play(); err != nil {
		logger.Warn("narration failed to play, falling back to timer",
			logger.Int("slide", slide.ID),
			logger.ErrorField(err))
		transport.Stop()
		fb := e.fallback(slide)
		fb.OnEnded(func() {
			e.handleEnded(gen)
		})
		e.transport = fb
		// TimerTransport.Play never fails
		_ = fb.Play()
	}
}

// handleEnded processes a natural end-of-narration event. This is the only
// automatic slide transition.
func (e *Engine) handleEnded(gen int) {
	e.mu.Lock()
	if e.closed || gen != e.gen || e.phase != PhasePlaying {
		e.mu.Unlock()
		return
	}

	var viewed = -1
	if e.index < e.deck.Len()-1 {
		e.index++
		e.progress = 0
		e.transport = nil
		e.startSlideLocked()
		viewed = e.index
	} else {
		// 最后一张播完，进入终态
		e.phase = PhaseEnded
		e.progress = 1
		e.transport = nil
		e.stopPollLocked()
	}
	ended := e.phase == PhaseEnded
	state := e.stateLocked()
	e.mu.Unlock()

	if e.tracker != nil {
		if viewed >= 0 {
			e.tracker.TrackSlideView(viewed)
		}
		if ended {
			e.tracker.TrackCompleted()
		}
	}
	e.notify(state)
}

// startPollLocked launches the progress poll goroutine if not running.
func (e *Engine) startPollLocked() {
	if e.pollStop != nil {
		return
	}
	stop := make(chan struct{})
	e.pollStop = stop
	go e.pollLoop(stop)
}

// stopPollLocked stops the progress poll goroutine.
func (e *Engine) stopPollLocked() {
	if e.pollStop != nil {
		close(e.pollStop)
		e.pollStop = nil
	}
}

// pollLoop recomputes progressFraction from the live transport position at
// a fixed interval while the session plays.
func (e *Engine) pollLoop(stop chan struct{}) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.mu.Lock()
			if e.phase != PhasePlaying || e.transport == nil {
				e.mu.Unlock()
				continue
			}
			total := e.transport.Duration()
			if total > 0 {
				p := float64(e.transport.Position()) / float64(total)
				if p > 1 {
					p = 1
				}
				e.progress = p
			}
			state := e.stateLocked()
			e.mu.Unlock()
			e.notify(state)
		}
	}
}

func (e *Engine) stateLocked() model.PlaybackState {
	return model.PlaybackState{
		CurrentSlide: e.index,
		IsPlaying:    e.phase == PhasePlaying,
		Progress:     e.progress,
		IsMuted:      e.muted,
		Ended:        e.phase == PhaseEnded,
	}
}

func (e *Engine) notify(state model.PlaybackState) {
	if e.observer != nil {
		e.observer(state)
	}
}
