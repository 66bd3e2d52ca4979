package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"voxdemo/config"
	"voxdemo/core/narrate"
)

func TestAudioHandlerServesGeneratedAsset(t *testing.T) {
	dir := t.TempDir()
	// 生成端写 slide-4.mp3，播放端按同一文件名直接取到
	if err := os.WriteFile(filepath.Join(dir, narrate.AssetFilename(4)), []byte("mp3-bytes"), 0644); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	h := NewAudioHandler(&config.Config{AudioDir: dir})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audio/slide-4.mp3", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "audio/mpeg" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Body.String() != "mp3-bytes" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestAudioHandlerMissingAssetIs404(t *testing.T) {
	h := NewAudioHandler(&config.Config{AudioDir: t.TempDir()})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audio/slide-99.mp3", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAudioHandlerRejectsTraversal(t *testing.T) {
	h := NewAudioHandler(&config.Config{AudioDir: t.TempDir()})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/audio/foo%2f..%2fsecret.mp3", nil)
	h.ServeHTTP(rec, req)
	if rec.Code == http.StatusOK {
		t.Fatal("traversal path should not be served")
	}
}
