package server

import (
	"encoding/json"
	"net/http"
	"time"

	"voxdemo/cache"
	"voxdemo/core/deck"
	"voxdemo/logger"
	"voxdemo/model"
	"voxdemo/repository"

	"github.com/google/uuid"
)

// SessionHandler 归档浏览器端自行驱动的演示会话。
// 页面在本地播放旁白并跟踪进度，结束时把观看摘要上报到这里。
type SessionHandler struct {
	deck     *deck.Deck
	sessions repository.SessionRepository
}

// NewSessionHandler 创建会话处理器
func NewSessionHandler(d *deck.Deck, sessions repository.SessionRepository) *SessionHandler {
	return &SessionHandler{deck: d, sessions: sessions}
}

// EndSessionRequest 会话结束摘要
type EndSessionRequest struct {
	SessionID      string `json:"sessionId"`
	LastSlideIndex int    `json:"lastSlideIndex"`
	PauseCount     int    `json:"pauseCount"`
	Completed      bool   `json:"completed"`
	StartedAtMilli int64  `json:"startedAt"`
}

// EndSessionHandler 落库一次会话摘要
func (h *SessionHandler) EndSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req EndSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}
	if req.LastSlideIndex >= h.deck.Len() {
		req.LastSlideIndex = h.deck.Len() - 1
	}

	// 完成率按实际 deck 长度折算
	completion := 0.0
	if req.LastSlideIndex >= 0 && h.deck.Len() > 0 {
		completion = float64(req.LastSlideIndex+1) / float64(h.deck.Len())
	}

	now := time.Now()
	startedAt := now
	if req.StartedAtMilli > 0 {
		startedAt = time.UnixMilli(req.StartedAtMilli)
	}

	session := &model.DemoSession{
		ID:             req.SessionID,
		DeckLength:     h.deck.Len(),
		LastSlideIndex: req.LastSlideIndex,
		Completion:     completion,
		Completed:      req.Completed,
		PauseCount:     req.PauseCount,
		StartedAt:      startedAt,
		EndedAt:        &now,
	}
	if err := h.sessions.SaveSession(r.Context(), session); err != nil {
		logger.Error("会话归档失败",
			logger.String("session", req.SessionID),
			logger.ErrorField(err))
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	// 缓存失败不影响归档结果
	if err := cache.PushRecentSession(r.Context(), cache.SessionSummary{
		SessionID:      session.ID,
		DeckLength:     session.DeckLength,
		LastSlideIndex: session.LastSlideIndex,
		Completion:     session.Completion,
		Completed:      session.Completed,
		PauseCount:     session.PauseCount,
		EndedAt:        now.UnixMilli(),
	}); err != nil {
		logger.Warn("最近会话缓存写入失败", logger.ErrorField(err))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"sessionId":  session.ID,
		"completion": session.Completion,
	})
}

// RecentSessionsHandler 最近会话列表，供后台仪表盘
// 优先走Redis缓存，缓存未命中时回落到数据库
func (h *SessionHandler) RecentSessionsHandler(w http.ResponseWriter, r *http.Request) {
	if cached, err := cache.RecentSessions(r.Context(), 20); err == nil && len(cached) > 0 {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"sessions": cached, "source": "cache"})
		return
	}

	sessions, err := h.sessions.ListRecent(r.Context(), 20)
	if err != nil {
		logger.Error("查询最近会话失败", logger.ErrorField(err))
		http.Error(w, "Failed to list sessions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"sessions": sessions})
}
