package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"voxdemo/db"

	"github.com/go-redis/redis/v8"
)

// SessionSummary 表示最近会话缓存中的一个条目
type SessionSummary struct {
	SessionID      string  `json:"sessionId"`
	DeckLength     int     `json:"deckLength"`
	LastSlideIndex int     `json:"lastSlideIndex"`
	Completion     float64 `json:"completion"`
	Completed      bool    `json:"completed"`
	PauseCount     int     `json:"pauseCount"`
	EndedAt        int64   `json:"endedAt"` // 结束时间戳（毫秒）
}

const (
	recentSessionsKey = "demo:recent_sessions"
	recentSessionsMax = 50
)

// PushRecentSession 将会话摘要写入最近会话缓存
// 使用有序集合存储，分数为会话结束时间戳
func PushRecentSession(ctx context.Context, summary SessionSummary) error {
	if db.RedisClient == nil {
		return fmt.Errorf("Redis client not initialized")
	}

	itemJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal session summary: %w", err)
	}

	err = db.RedisClient.ZAdd(ctx, recentSessionsKey, &redis.Z{
		Score:  float64(summary.EndedAt),
		Member: itemJSON,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to push session summary: %w", err)
	}

	// 只保留最近的若干条，旧条目按分数从低位裁掉
	err = db.RedisClient.ZRemRangeByRank(ctx, recentSessionsKey, 0, int64(-(recentSessionsMax + 1))).Err()
	if err != nil {
		return fmt.Errorf("failed to trim recent sessions: %w", err)
	}

	// 设置过期时间，缓存只服务近期的仪表盘查询
	err = db.RedisClient.Expire(ctx, recentSessionsKey, 24*time.Hour).Err()
	if err != nil {
		return fmt.Errorf("failed to set recent sessions expiration: %w", err)
	}

	return nil
}

// RecentSessions 按结束时间倒序读取最近会话摘要
func RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	if db.RedisClient == nil {
		return nil, fmt.Errorf("Redis client not initialized")
	}
	if limit <= 0 || limit > recentSessionsMax {
		limit = recentSessionsMax
	}

	members, err := db.RedisClient.ZRevRange(ctx, recentSessionsKey, 0, int64(limit-1)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read recent sessions: %w", err)
	}

	summaries := make([]SessionSummary, 0, len(members))
	for _, member := range members {
		var s SessionSummary
		if err := json.Unmarshal([]byte(member), &s); err != nil {
			// 跳过无法解析的脏数据
			continue
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}
