package repository

import (
	"context"
	"errors"

	"voxdemo/model"

	"gorm.io/gorm"
)

// RecordingRepository 录制产物元数据访问接口
type RecordingRepository interface {
	Create(ctx context.Context, recording *model.Recording) error
	GetByFilename(ctx context.Context, filename string) (*model.Recording, error)
	ExistsByFilename(ctx context.Context, filename string) (bool, error)
	ListByCreatedDesc(ctx context.Context, limit, offset int) ([]*model.Recording, error)
	Delete(ctx context.Context, id string) error
}

// gormRecordingRepository GORM 实现
type gormRecordingRepository struct {
	db *gorm.DB
}

// NewGormRecordingRepository 创建 GORM 录制仓库
func NewGormRecordingRepository(db *gorm.DB) RecordingRepository {
	return &gormRecordingRepository{db: db}
}

// Create 登记一条录制产物
func (r *gormRecordingRepository) Create(ctx context.Context, recording *model.Recording) error {
	return r.db.WithContext(ctx).Create(recording).Error
}

// GetByFilename 按文件名查找，未找到返回 nil
func (r *gormRecordingRepository) GetByFilename(ctx context.Context, filename string) (*model.Recording, error) {
	var recording model.Recording
	err := r.db.WithContext(ctx).
		Where("filename = ?", filename).
		First(&recording).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recording, nil
}

// ExistsByFilename 检查文件名是否已登记
func (r *gormRecordingRepository) ExistsByFilename(ctx context.Context, filename string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Recording{}).
		Where("filename = ?", filename).
		Count(&count).Error
	return count > 0, err
}

// ListByCreatedDesc 按创建时间倒序列出录制产物
func (r *gormRecordingRepository) ListByCreatedDesc(ctx context.Context, limit, offset int) ([]*model.Recording, error) {
	if limit <= 0 {
		limit = 50
	}
	var recordings []*model.Recording
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&recordings).Error
	return recordings, err
}

// Delete 删除一条录制记录
func (r *gormRecordingRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Recording{}, "id = ?", id).Error
}
