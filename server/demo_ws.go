package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"voxdemo/core/deck"
	"voxdemo/core/player"
	"voxdemo/logger"
	"voxdemo/model"
	"voxdemo/repository"

	"github.com/gorilla/websocket"
)

// DemoWSHandler 实时演示会话处理器。
//
// 浏览器负责实际的音频播放；服务端引擎按声明时长为每张幻灯片走表，
// 在每次状态变化时把 PlaybackState 推给页面，页面据此翻页和重绘。
type DemoWSHandler struct {
	deck     *deck.Deck
	sessions repository.SessionRepository
	upgrader websocket.Upgrader
}

// NewDemoWSHandler 创建演示会话处理器
func NewDemoWSHandler(d *deck.Deck, sessions repository.SessionRepository) *DemoWSHandler {
	return &DemoWSHandler{
		deck:     d,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ControlMessage 页面发来的播放控制
type ControlMessage struct {
	Action string `json:"action"` // start, toggle, next, prev, mute
}

// StateFrame 推送给页面的状态帧
type StateFrame struct {
	Type      string              `json:"type"`
	SessionID string              `json:"sessionId"`
	State     model.PlaybackState `json:"state"`
	Timestamp int64               `json:"timestamp"`
}

// HandleDemoWS 处理一个演示会话的完整生命周期
func (h *DemoWSHandler) HandleDemoWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", logger.ErrorField(err))
		return
	}
	defer conn.Close()

	tracker := player.NewSessionTracker(h.deck.Len(), h.sessions)

	var writeMu sync.Mutex
	observer := func(state model.PlaybackState) {
		writeMu.Lock()
		defer writeMu.Unlock()
		frame := StateFrame{
			Type:      "state",
			SessionID: tracker.ID(),
			State:     state,
			Timestamp: time.Now().UnixMilli(),
		}
		if err := conn.WriteJSON(frame); err != nil {
			logger.Debug("state push failed", logger.ErrorField(err))
		}
	}

	// 服务端以声明时长为节拍；真实旁白由页面播放
	factory := func(slide model.Slide) (player.Transport, error) {
		return player.NewTimerTransport(time.Duration(slide.Duration) * time.Second), nil
	}

	engine := player.NewEngine(h.deck, factory,
		player.WithObserver(observer),
		player.WithTracker(tracker),
	)
	defer func() {
		engine.Close()
		// 连接断开即会话结束，归档恰好一次
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracker.End(ctx); err != nil {
			logger.Error("session flush failed",
				logger.String("session", tracker.ID()),
				logger.ErrorField(err))
		}
	}()

	logger.Info("demo session started", logger.String("session", tracker.ID()))

	for {
		var msg ControlMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("demo session read error", logger.ErrorField(err))
			}
			return
		}

		switch msg.Action {
		case "start":
			engine.Start()
		case "toggle":
			engine.TogglePlayPause()
		case "next":
			engine.Next()
		case "prev":
			engine.Prev()
		case "mute":
			engine.ToggleMute()
		default:
			logger.Debug("unknown control action", logger.String("action", msg.Action))
		}
	}
}
