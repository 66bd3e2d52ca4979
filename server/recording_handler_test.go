package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"voxdemo/config"
	"voxdemo/model"

	"github.com/gorilla/mux"
)

// fakeRecordingRepo 内存实现
type fakeRecordingRepo struct {
	recordings []*model.Recording
}

func (f *fakeRecordingRepo) Create(ctx context.Context, r *model.Recording) error {
	f.recordings = append(f.recordings, r)
	return nil
}

func (f *fakeRecordingRepo) GetByFilename(ctx context.Context, filename string) (*model.Recording, error) {
	for _, r := range f.recordings {
		if r.Filename == filename {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRecordingRepo) ExistsByFilename(ctx context.Context, filename string) (bool, error) {
	r, _ := f.GetByFilename(ctx, filename)
	return r != nil, nil
}

func (f *fakeRecordingRepo) ListByCreatedDesc(ctx context.Context, limit, offset int) ([]*model.Recording, error) {
	out := make([]*model.Recording, len(f.recordings))
	copy(out, f.recordings)
	// 测试数据本身按倒序放入
	return out, nil
}

func (f *fakeRecordingRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func newTestRecordingHandler(t *testing.T) (*RecordingHandler, *fakeRecordingRepo, string) {
	t.Helper()
	dir := t.TempDir()
	repo := &fakeRecordingRepo{}
	cfg := &config.Config{RecordingsDir: dir}
	return NewRecordingHandler(repo, cfg), repo, dir
}

func recordingRouter(h *RecordingHandler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/recordings", h.ListRecordingsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/recordings/{filename}", h.ServeRecordingHandler).Methods(http.MethodGet)
	return router
}

func TestListRecordings(t *testing.T) {
	h, repo, _ := newTestRecordingHandler(t)
	repo.recordings = []*model.Recording{
		{ID: "b", Filename: "demo-2.mp4", CreatedAt: time.Now()},
		{ID: "a", Filename: "demo-1.mp4", CreatedAt: time.Now().Add(-time.Hour)},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/recordings", nil)
	rec := httptest.NewRecorder()
	recordingRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp ListRecordingsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Recordings) != 2 {
		t.Fatalf("got %d recordings, want 2", len(resp.Recordings))
	}
	if resp.Recordings[0].Filename != "demo-2.mp4" {
		t.Errorf("newest first expected, got %s", resp.Recordings[0].Filename)
	}
}

func TestServeRecordingInlineAndDownload(t *testing.T) {
	h, repo, dir := newTestRecordingHandler(t)
	if err := os.WriteFile(filepath.Join(dir, "demo.mp4"), []byte("video-bytes"), 0644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	repo.recordings = []*model.Recording{{ID: "x", Filename: "demo.mp4", CreatedAt: time.Now()}}
	router := recordingRouter(h)

	// 默认内联播放
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recordings/demo.mp4", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("inline status = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "inline") {
		t.Errorf("Content-Disposition = %q, want inline", cd)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "video/mp4" {
		t.Errorf("Content-Type = %q", ct)
	}

	// download=1 强制下载
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recordings/demo.mp4?download=1", nil))
	if cd := rec.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment") {
		t.Errorf("Content-Disposition = %q, want attachment", cd)
	}
}

func TestServeRecordingUnknownFilename(t *testing.T) {
	h, _, _ := newTestRecordingHandler(t)

	rec := httptest.NewRecorder()
	recordingRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recordings/missing.mp4", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestServeRecordingRegisteredButFileMissing(t *testing.T) {
	h, repo, _ := newTestRecordingHandler(t)
	repo.recordings = []*model.Recording{{ID: "x", Filename: "gone.mp4", CreatedAt: time.Now()}}

	rec := httptest.NewRecorder()
	recordingRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recordings/gone.mp4", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestRecordingContentTypes(t *testing.T) {
	cases := map[string]string{
		"a.mp4":  "video/mp4",
		"a.webm": "video/webm",
		"a.MKV":  "video/x-matroska",
		"a.bin":  "application/octet-stream",
	}
	for name, want := range cases {
		if got := recordingContentType(name); got != want {
			t.Errorf("recordingContentType(%q) = %q, want %q", name, got, want)
		}
	}
}
