package replay

import (
	"context"
	"fmt"
	"time"

	"voxdemo/logger"
)

// PresentationSurface is the visible surface the conversation is replayed
// on. The concrete implementation is a browser tab fed over WebSocket; the
// pacing logic only sees this interface.
type PresentationSurface interface {
	Open(ctx context.Context) error
	ShowTurn(turn Turn) error
	Wait(d time.Duration)
	Close() error
}

// OperatorPrompt blocks until the human operator confirms. The replay is a
// manual-capture workflow: a person starts and stops the screen recorder
// around the replay itself.
type OperatorPrompt func(message string) error

// Replayer 逐轮回放一段对话转写，供人工录屏
type Replayer struct {
	surface PresentationSurface
	prompt  OperatorPrompt
}

// NewReplayer creates a replayer over the given surface.
func NewReplayer(surface PresentationSurface, prompt OperatorPrompt) *Replayer {
	return &Replayer{surface: surface, prompt: prompt}
}

// Run replays the turns in order, pacing each one by TurnDelay. Setup
// errors are returned to the caller; the surface is always closed, and a
// close failure never masks the error that triggered teardown.
func (r *Replayer) Run(ctx context.Context, turns []Turn) (err error) {
	if len(turns) == 0 {
		return fmt.Errorf("no turns to replay")
	}

	if err = r.surface.Open(ctx); err != nil {
		return fmt.Errorf("failed to open presentation surface: %w", err)
	}
	defer func() {
		if closeErr := r.surface.Close(); closeErr != nil {
			logger.Warn("failed to close presentation surface", logger.ErrorField(closeErr))
			if err == nil {
				err = closeErr
			}
		}
	}()

	if r.prompt != nil {
		if err = r.prompt("推荐此时开始录屏，按回车开始回放"); err != nil {
			return err
		}
	}

	for i, turn := range turns {
		if err = ctx.Err(); err != nil {
			return err
		}
		if err = r.surface.ShowTurn(turn); err != nil {
			return fmt.Errorf("failed to show turn %d: %w", i+1, err)
		}
		logger.Info("turn shown",
			logger.Int("turn", i+1),
			logger.String("speaker", turn.Speaker))
		r.surface.Wait(TurnDelay(turn.Text))
	}

	if r.prompt != nil {
		if err = r.prompt("回放结束，停止录屏后按回车退出"); err != nil {
			return err
		}
	}
	return nil
}
