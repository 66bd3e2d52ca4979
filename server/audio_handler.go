package server

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"voxdemo/config"
	"voxdemo/logger"
	"voxdemo/storage"
)

// AudioHandler 旁白资源处理器：优先从 MinIO 提供 slide-{id}.mp3，
// 对象存储不可用时回退到本地目录
type AudioHandler struct {
	cfg *config.Config
}

// NewAudioHandler 创建旁白资源处理器
func NewAudioHandler(cfg *config.Config) *AudioHandler {
	return &AudioHandler{cfg: cfg}
}

// ServeHTTP 实现 http.Handler 接口
func (h *AudioHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	filename := strings.TrimPrefix(r.URL.Path, "/audio/")
	if filename == "" || filename != filepath.Base(filename) {
		http.Error(w, "Invalid audio path", http.StatusBadRequest)
		return
	}

	if client := storage.GetMinioClient(); client != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		objectPath := "audio/" + filename
		if _, err := storage.StatObject(ctx, objectPath); err == nil {
			object, err := storage.OpenObject(ctx, objectPath)
			if err == nil {
				defer object.Close()
				w.Header().Set("Content-Type", "audio/mpeg")
				w.Header().Set("Cache-Control", "public, max-age=86400")
				if _, err := io.Copy(w, object); err != nil {
					logger.Error("Error serving audio from MinIO", logger.ErrorField(err))
				}
				return
			}
		}
	}

	// 本地回退
	path := filepath.Join(h.cfg.AudioDir, filename)
	if _, err := os.Stat(path); err != nil {
		// 缺失的旁白不是错误：播放端会按声明时长走表
		http.Error(w, "Narration asset not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, path)
}
