package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"voxdemo/config"
)

// Synthesizer turns narration text into audio bytes. The batch generator
// depends on this interface only, so tests run against a fake.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Client OpenAI 兼容的语音合成客户端
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	voice      string
	speed      float64
	httpClient *http.Client
}

// NewClient creates a synthesis client from configuration. The API key is
// a hard precondition: batch narration must fail loudly without it rather
// than forge silent assets.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.TTSAPIKey == "" {
		return nil, fmt.Errorf("TTS_API_KEY is not set")
	}
	return &Client{
		baseURL: cfg.TTSBaseURL,
		apiKey:  cfg.TTSAPIKey,
		model:   cfg.TTSModel,
		voice:   cfg.TTSVoice,
		speed:   cfg.TTSSpeed,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}, nil
}

// SetTimeout 设置请求超时时间
func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

// Synthesize calls the speech endpoint once and returns the MP3 bytes.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	payload := map[string]interface{}{
		"model":           c.model,
		"input":           text,
		"voice":           c.voice,
		"speed":           c.speed,
		"response_format": "mp3",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode synthesis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/speech", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("synthesis API returned %s: %s", resp.Status, string(detail))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read synthesis response: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("synthesis API returned empty audio")
	}
	return audio, nil
}
