package repository

import (
	"context"

	"voxdemo/db"
	"voxdemo/model"

	"gorm.io/gorm"
)

// SessionRepository 演示会话归档接口，同时实现会话追踪器的落库端
type SessionRepository interface {
	SaveSession(ctx context.Context, session *model.DemoSession) error
	CountSlideView(ctx context.Context, slideID int) error
	ListRecent(ctx context.Context, limit int) ([]*model.DemoSession, error)
}

// gormSessionRepository GORM + Redis 实现：会话记录进 MySQL，
// 幻灯片观看计数进 Redis
type gormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository 创建演示会话仓库
func NewGormSessionRepository(gdb *gorm.DB) SessionRepository {
	return &gormSessionRepository{db: gdb}
}

// SaveSession 归档一次演示会话
func (r *gormSessionRepository) SaveSession(ctx context.Context, session *model.DemoSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// CountSlideView 累计幻灯片观看计数
func (r *gormSessionRepository) CountSlideView(ctx context.Context, slideID int) error {
	return db.IncrSlideView(ctx, slideID)
}

// ListRecent 最近的演示会话
func (r *gormSessionRepository) ListRecent(ctx context.Context, limit int) ([]*model.DemoSession, error) {
	if limit <= 0 {
		limit = 20
	}
	var sessions []*model.DemoSession
	err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}
