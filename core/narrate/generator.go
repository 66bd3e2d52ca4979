package narrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"voxdemo/core/deck"
	"voxdemo/core/tts"
	"voxdemo/logger"
	"voxdemo/model"
)

// AssetFilename returns the canonical narration asset name for a slide.
// This naming contract is shared bit-exact with the interactive player.
func AssetFilename(slideID int) string {
	return fmt.Sprintf("slide-%d.mp3", slideID)
}

// NarrationText builds the spoken string for one slide: title, subtitle and
// non-empty content lines joined by ". ". Empty content entries are visual
// pacing markers and are excluded from speech.
func NarrationText(slide model.Slide) string {
	parts := make([]string, 0, len(slide.Content)+2)
	if strings.TrimSpace(slide.Title) != "" {
		parts = append(parts, strings.TrimSpace(slide.Title))
	}
	if strings.TrimSpace(slide.Subtitle) != "" {
		parts = append(parts, strings.TrimSpace(slide.Subtitle))
	}
	for _, line := range slide.Content {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts = append(parts, strings.TrimSpace(line))
	}
	return strings.Join(parts, ". ")
}

// SlideResult 单张幻灯片的生成结果
type SlideResult struct {
	SlideID int
	Path    string
	Size    int64
	Err     error
}

// Report 一次批量生成的汇总
type Report struct {
	Results []SlideResult
}

// Succeeded returns the number of slides that produced an asset.
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of slides whose synthesis failed.
func (r *Report) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Uploader optionally mirrors each generated asset to object storage.
type Uploader func(ctx context.Context, objectPath string, data []byte, contentType string) error

// Generator 批量旁白生成器：按 deck 顺序逐张合成，一次一个请求
type Generator struct {
	deck     *deck.Deck
	synth    tts.Synthesizer
	outDir   string
	uploader Uploader
}

// NewGenerator creates a generator writing assets into outDir.
func NewGenerator(d *deck.Deck, synth tts.Synthesizer, outDir string) *Generator {
	return &Generator{deck: d, synth: synth, outDir: outDir}
}

// SetUploader enables mirroring assets to object storage after each write.
func (g *Generator) SetUploader(fn Uploader) {
	g.uploader = fn
}

// Run synthesizes narration for every slide in deck order. A slide whose
// synthesis fails is recorded and skipped; the batch always continues, since
// the interactive player covers missing assets with its declared-duration
// fallback. Re-running overwrites existing assets for the same slide ids.
//
// The output directory is created if absent; failure to create it is a
// precondition error and aborts the whole batch.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	if err := os.MkdirAll(g.outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", g.outDir, err)
	}

	report := &Report{}
	for _, slide := range g.deck.Slides() {
		result := g.generateSlide(ctx, slide)
		report.Results = append(report.Results, result)

		if result.Err != nil {
			logger.Error("slide narration failed",
				logger.Int("slide", slide.ID),
				logger.ErrorField(result.Err))
			continue
		}
		logger.Info("slide narration generated",
			logger.Int("slide", slide.ID),
			logger.String("path", result.Path),
			logger.Int64("bytes", result.Size))
	}
	return report, nil
}

func (g *Generator) generateSlide(ctx context.Context, slide model.Slide) SlideResult {
	result := SlideResult{SlideID: slide.ID}

	text := NarrationText(slide)
	if text == "" {
		result.Err = fmt.Errorf("slide %d has no speakable text", slide.ID)
		return result
	}

	audio, err := g.synth.Synthesize(ctx, text)
	if err != nil {
		result.Err = fmt.Errorf("synthesis failed for slide %d: %w", slide.ID, err)
		return result
	}

	finalPath := filepath.Join(g.outDir, AssetFilename(slide.ID))

	// 先写临时文件再原子改名，避免读到半截文件
	tmp, err := os.CreateTemp(g.outDir, fmt.Sprintf("slide-%d-*.tmp", slide.ID))
	if err != nil {
		result.Err = fmt.Errorf("failed to create temp file for slide %d: %w", slide.ID, err)
		return result
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(audio); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		result.Err = fmt.Errorf("failed to write audio for slide %d: %w", slide.ID, err)
		return result
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		result.Err = fmt.Errorf("failed to close temp file for slide %d: %w", slide.ID, err)
		return result
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		result.Err = fmt.Errorf("failed to move asset into place for slide %d: %w", slide.ID, err)
		return result
	}

	result.Path = finalPath
	result.Size = int64(len(audio))

	if g.uploader != nil {
		objectPath := "audio/" + AssetFilename(slide.ID)
		if err := g.uploader(ctx, objectPath, audio, "audio/mpeg"); err != nil {
			// 本地文件已就位，上传失败只记日志
			logger.Warn("asset upload failed",
				logger.Int("slide", slide.ID),
				logger.String("object", objectPath),
				logger.ErrorField(err))
		}
	}

	return result
}
