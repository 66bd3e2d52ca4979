package model

import "time"

// DemoSession 一次交互式演示会话的归档记录，由会话追踪器在结束时落库
type DemoSession struct {
	ID             string     `json:"id" gorm:"primaryKey;size:36"`
	DeckLength     int        `json:"deckLength" gorm:"not null"`
	LastSlideIndex int        `json:"lastSlideIndex"` // 观看到的最后一张幻灯片
	Completion     float64    `json:"completion"`     // (lastSlideIndex+1)/deckLength
	Completed      bool       `json:"completed"`      // 是否自然播放到终态
	PauseCount     int        `json:"pauseCount"`
	StartedAt      time.Time  `json:"startedAt" gorm:"index"`
	EndedAt        *time.Time `json:"endedAt,omitempty"`
}

// TableName 指定表名
func (DemoSession) TableName() string {
	return "demo_sessions"
}
