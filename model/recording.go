package model

import "time"

// Recording 录制产物元数据，对应一段已捕获的演示视频
type Recording struct {
	ID              string    `json:"recordingId" gorm:"primaryKey;size:36"`
	Filename        string    `json:"filename" gorm:"size:255;uniqueIndex;not null"`
	DurationSeconds float64   `json:"durationSeconds"`
	SourceSessionID string    `json:"sourceSessionId" gorm:"size:64;index"` // 演示会话或房间ID，可为空
	SizeBytes       int64     `json:"sizeBytes"`
	CreatedAt       time.Time `json:"createdAt" gorm:"index"`
}

// TableName 指定表名
func (Recording) TableName() string {
	return "recordings"
}
