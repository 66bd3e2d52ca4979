package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"voxdemo/config"
	"voxdemo/logger"
	"voxdemo/model"
	"voxdemo/repository"

	"github.com/gorilla/mux"
)

// RecordingHandler 录制产物 HTTP 处理器
type RecordingHandler struct {
	repo repository.RecordingRepository
	cfg  *config.Config
}

// NewRecordingHandler 创建录制处理器
func NewRecordingHandler(repo repository.RecordingRepository, cfg *config.Config) *RecordingHandler {
	return &RecordingHandler{repo: repo, cfg: cfg}
}

// ListRecordingsResponse 录制列表
type ListRecordingsResponse struct {
	Recordings []*model.Recording `json:"recordings"`
}

// ListRecordingsHandler 按创建时间倒序返回录制产物列表
func (h *RecordingHandler) ListRecordingsHandler(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	recordings, err := h.repo.ListByCreatedDesc(r.Context(), limit, offset)
	if err != nil {
		logger.Error("列出录制产物失败", logger.ErrorField(err))
		http.Error(w, "Failed to list recordings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&ListRecordingsResponse{Recordings: recordings})
}

// ServeRecordingHandler 按文件名提供录制视频。默认内联播放，
// ?download=1 时强制下载（切换 Content-Disposition）。
func (h *RecordingHandler) ServeRecordingHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	filename := vars["filename"]

	// 防止路径穿越
	if filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		http.Error(w, "Invalid filename", http.StatusBadRequest)
		return
	}

	recording, err := h.repo.GetByFilename(r.Context(), filename)
	if err != nil {
		logger.Error("查询录制产物失败",
			logger.String("filename", filename),
			logger.ErrorField(err))
		http.Error(w, "Failed to look up recording", http.StatusInternalServerError)
		return
	}
	if recording == nil {
		http.Error(w, "Recording not found", http.StatusNotFound)
		return
	}

	path := filepath.Join(h.cfg.RecordingsDir, filename)
	if _, err := os.Stat(path); err != nil {
		logger.Warn("录制文件缺失",
			logger.String("filename", filename),
			logger.ErrorField(err))
		http.Error(w, "Recording file missing", http.StatusNotFound)
		return
	}

	disposition := "inline"
	if isDownload(r.URL.Query().Get("download")) {
		disposition = "attachment"
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, filename))
	w.Header().Set("Content-Type", recordingContentType(filename))

	http.ServeFile(w, r, path)
}

// isDownload 解析下载开关参数
func isDownload(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// recordingContentType 根据扩展名推断视频类型
func recordingContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".mkv":
		return "video/x-matroska"
	case ".mov":
		return "video/quicktime"
	default:
		return "application/octet-stream"
	}
}
