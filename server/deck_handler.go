package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"voxdemo/core/deck"

	"github.com/gorilla/mux"
)

// DeckHandler 演示幻灯片 HTTP 处理器
type DeckHandler struct {
	deck *deck.Deck
}

// NewDeckHandler 创建幻灯片处理器
func NewDeckHandler(d *deck.Deck) *DeckHandler {
	return &DeckHandler{deck: d}
}

// DeckResponse 完整的演示剧本
type DeckResponse struct {
	Slides        interface{} `json:"slides"`
	TotalDuration int         `json:"totalDuration"`
}

// GetDeckHandler 返回完整的幻灯片序列
func (h *DeckHandler) GetDeckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&DeckResponse{
		Slides:        h.deck.Slides(),
		TotalDuration: h.deck.TotalDuration(),
	})
}

// TimestampsResponse 翻页时间表
type TimestampsResponse struct {
	Timestamps    []int `json:"timestamps"`
	TotalDuration int   `json:"totalDuration"`
}

// GetTimestampsHandler 返回按声明时长推算的翻页时间表
func (h *DeckHandler) GetTimestampsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&TimestampsResponse{
		Timestamps:    h.deck.TransitionTimestamps(),
		TotalDuration: h.deck.TotalDuration(),
	})
}

// GetSlideHandler 按 id 返回单张幻灯片，未找到返回 404
func (h *DeckHandler) GetSlideHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "Invalid slide id", http.StatusBadRequest)
		return
	}

	slide, ok := h.deck.SlideByID(id)
	if !ok {
		http.Error(w, "Slide not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(slide)
}
