package repository

import (
	"context"

	"github.com/chuyu5762/guestbook-backend/internal/model"
	"gorm.io/gorm"
)

// EntryRepository 留言存储接口
type EntryRepository interface {
	Create(ctx context.Context, entry *model.Entry) error
	// List 按创建时间倒序返回留言，id 作为稳定的次级排序键
	// approvedOnly 为 true 时只返回已审核通过的留言
	List(ctx context.Context, approvedOnly bool, limit int) ([]*model.Entry, error)
	// SetApproved 设置审核状态，id 不存在时为空操作
	SetApproved(ctx context.Context, id uint, approved bool) error
	// Delete 删除留言，id 不存在时为空操作
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, approvedOnly bool) (int64, error)
}

type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository 创建留言存储
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) Create(ctx context.Context, entry *model.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *entryRepository) List(ctx context.Context, approvedOnly bool, limit int) ([]*model.Entry, error) {
	var entries []*model.Entry
	query := r.db.WithContext(ctx).Model(&model.Entry{})
	if approvedOnly {
		query = query.Where("approved = ?", true)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Order("created_at DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *entryRepository) SetApproved(ctx context.Context, id uint, approved bool) error {
	// 无条件更新，RowsAffected 为 0（id 不存在）不视为错误
	return r.db.WithContext(ctx).
		Model(&model.Entry{}).
		Where("id = ?", id).
		Update("approved", approved).Error
}

func (r *entryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Entry{}).Error
}

func (r *entryRepository) Count(ctx context.Context, approvedOnly bool) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Entry{})
	if approvedOnly {
		query = query.Where("approved = ?", true)
	}
	err := query.Count(&count).Error
	return count, err
}
