package server

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"voxdemo/logger"
	"voxdemo/model"
	"voxdemo/repository"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
)

// RecordingWatcher 监听录制目录，把外部录屏工具落盘的新视频
// 自动登记为录制产物
type RecordingWatcher struct {
	dir  string
	repo repository.RecordingRepository
}

// NewRecordingWatcher 创建录制目录监听器
func NewRecordingWatcher(dir string, repo repository.RecordingRepository) *RecordingWatcher {
	return &RecordingWatcher{dir: dir, repo: repo}
}

// Run watches the recordings directory until the context is cancelled.
// Best effort: watcher failures are logged, never fatal to the server.
func (w *RecordingWatcher) Run(ctx context.Context) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Error("无法创建录制目录监听器", logger.ErrorField(err))
		return
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		logger.Error("无法监听录制目录",
			logger.String("dir", w.dir),
			logger.ErrorField(err))
		return
	}
	logger.Info("recording watcher started", logger.String("dir", w.dir))

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isVideoFile(event.Name) {
				continue
			}
			// 录屏工具可能还在写入，等文件大小稳定后再登记
			go w.registerWhenStable(ctx, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("recording watcher error", logger.ErrorField(err))
		}
	}
}

// registerWhenStable 等待文件大小在两次采样间不再变化，然后登记
func (w *RecordingWatcher) registerWhenStable(ctx context.Context, path string) {
	var lastSize int64 = -1
	for i := 0; i < 60; i++ {
		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}

		info, err := os.Stat(path)
		if err != nil {
			// 文件可能被移走或删除
			return
		}
		if info.Size() > 0 && info.Size() == lastSize {
			w.register(ctx, path, info.Size())
			return
		}
		lastSize = info.Size()
	}
	logger.Warn("recording file never stabilized", logger.String("path", path))
}

func (w *RecordingWatcher) register(ctx context.Context, path string, size int64) {
	filename := filepath.Base(path)

	exists, err := w.repo.ExistsByFilename(ctx, filename)
	if err != nil {
		logger.Error("检查录制记录失败",
			logger.String("filename", filename),
			logger.ErrorField(err))
		return
	}
	if exists {
		return
	}

	recording := &model.Recording{
		ID:        uuid.NewString(),
		Filename:  filename,
		SizeBytes: size,
		CreatedAt: time.Now(),
	}
	if err := w.repo.Create(ctx, recording); err != nil {
		logger.Error("登记录制产物失败",
			logger.String("filename", filename),
			logger.ErrorField(err))
		return
	}
	logger.Info("recording registered",
		logger.String("filename", filename),
		logger.Int64("bytes", size))
}

// isVideoFile 判断是否为支持的视频扩展名
func isVideoFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".webm", ".mkv", ".mov":
		return true
	}
	return false
}
