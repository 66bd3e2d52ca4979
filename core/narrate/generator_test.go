package narrate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"voxdemo/core/deck"
	"voxdemo/model"
)

// fakeSynth 按文本回放预设结果
type fakeSynth struct {
	calls   []string
	failOn  map[int]bool // 第 n 次调用失败（1 起）
	nextErr error
}

func (f *fakeSynth) Synthesize(ctx context.Context, text string) ([]byte, error) {
	f.calls = append(f.calls, text)
	if f.failOn[len(f.calls)] {
		return nil, errors.New("synthesis backend unavailable")
	}
	return []byte("MP3:" + text), nil
}

func TestNarrationText(t *testing.T) {
	slide := model.Slide{
		Title:    "The Problem",
		Subtitle: "2:47 AM",
		Content:  []string{"Water heater burst", "", "Called Bob's HVAC"},
	}

	want := "The Problem. 2:47 AM. Water heater burst. Called Bob's HVAC"
	if got := NarrationText(slide); got != want {
		t.Fatalf("NarrationText = %q, want %q", got, want)
	}
}

func TestNarrationTextOmitsEmptySubtitle(t *testing.T) {
	slide := model.Slide{
		Title:   "Intro",
		Content: []string{"Line one"},
	}
	if got := NarrationText(slide); got != "Intro. Line one" {
		t.Fatalf("NarrationText = %q", got)
	}
}

func TestGeneratorWritesAssetsInDeckOrder(t *testing.T) {
	d := deck.New([]model.Slide{
		{ID: 1, Title: "One", Content: []string{"a"}, Duration: 5},
		{ID: 2, Title: "Two", Content: []string{"b"}, Duration: 5},
		{ID: 3, Title: "Three", Content: []string{"c"}, Duration: 5},
	})

	dir := t.TempDir()
	synth := &fakeSynth{}
	g := NewGenerator(d, synth, dir)

	report, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Succeeded() != 3 || report.Failed() != 0 {
		t.Fatalf("report: %d ok, %d failed", report.Succeeded(), report.Failed())
	}

	// 严格按 deck 顺序合成
	if len(synth.calls) != 3 || synth.calls[0] != "One. a" || synth.calls[2] != "Three. c" {
		t.Errorf("synthesis calls out of order: %v", synth.calls)
	}

	// 文件名契约：slide-{id}.mp3，可被播放端直接找到
	for id := 1; id <= 3; id++ {
		path := filepath.Join(dir, fmt.Sprintf("slide-%d.mp3", id))
		if _, err := os.Stat(path); err != nil {
			t.Errorf("asset for slide %d missing at %s: %v", id, path, err)
		}
	}
}

func TestGeneratorContinuesOnPartialFailure(t *testing.T) {
	d := deck.New([]model.Slide{
		{ID: 1, Title: "One", Content: []string{"a"}, Duration: 5},
		{ID: 2, Title: "Two", Content: []string{"b"}, Duration: 5},
		{ID: 3, Title: "Three", Content: []string{"c"}, Duration: 5},
	})

	dir := t.TempDir()
	synth := &fakeSynth{failOn: map[int]bool{2: true}}
	g := NewGenerator(d, synth, dir)

	report, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.Succeeded() != 2 {
		t.Errorf("succeeded = %d, want 2", report.Succeeded())
	}
	if report.Failed() != 1 {
		t.Errorf("failed = %d, want 1", report.Failed())
	}
	if report.Results[1].Err == nil {
		t.Error("slide 2 result should carry the synthesis error")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("output dir has %d files, want exactly 2", len(entries))
	}
	if _, err := os.Stat(filepath.Join(dir, "slide-2.mp3")); !os.IsNotExist(err) {
		t.Error("failed slide should not leave an asset behind")
	}
}

func TestGeneratorOverwritesExistingAssets(t *testing.T) {
	d := deck.New([]model.Slide{
		{ID: 1, Title: "One", Content: []string{"a"}, Duration: 5},
	})

	dir := t.TempDir()
	stale := filepath.Join(dir, "slide-1.mp3")
	if err := os.WriteFile(stale, []byte("stale"), 0644); err != nil {
		t.Fatalf("seed stale asset: %v", err)
	}

	g := NewGenerator(d, &fakeSynth{}, dir)
	if _, err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	content, err := os.ReadFile(stale)
	if err != nil {
		t.Fatalf("read asset: %v", err)
	}
	if string(content) != "MP3:One. a" {
		t.Fatalf("asset not overwritten: %q", content)
	}
}

func TestGeneratorCreatesOutputDir(t *testing.T) {
	d := deck.New([]model.Slide{
		{ID: 1, Title: "One", Content: []string{"a"}, Duration: 5},
	})

	dir := filepath.Join(t.TempDir(), "nested", "audio")
	g := NewGenerator(d, &fakeSynth{}, dir)
	if _, err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "slide-1.mp3")); err != nil {
		t.Fatalf("asset missing in created dir: %v", err)
	}
}

func TestAssetFilename(t *testing.T) {
	if got := AssetFilename(4); got != "slide-4.mp3" {
		t.Fatalf("AssetFilename(4) = %q", got)
	}
}
