package handler

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/chuyu5762/guestbook-backend/internal/model"
)

// memEntryRepo 内存版留言存储，供处理器测试走完整服务管线
type memEntryRepo struct {
	entries    map[uint]*model.Entry
	nextID     uint
	failCreate bool
	failList   bool
}

func newMemEntryRepo() *memEntryRepo {
	return &memEntryRepo{
		entries: make(map[uint]*model.Entry),
		nextID:  1,
	}
}

func (m *memEntryRepo) Create(ctx context.Context, entry *model.Entry) error {
	if m.failCreate {
		return errors.New("存储故障")
	}
	entry.ID = m.nextID
	m.nextID++
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	stored := *entry
	m.entries[entry.ID] = &stored
	return nil
}

func (m *memEntryRepo) List(ctx context.Context, approvedOnly bool, limit int) ([]*model.Entry, error) {
	if m.failList {
		return nil, errors.New("存储故障")
	}
	var result []*model.Entry
	for _, entry := range m.entries {
		if approvedOnly && !entry.Approved {
			continue
		}
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *memEntryRepo) SetApproved(ctx context.Context, id uint, approved bool) error {
	if entry, ok := m.entries[id]; ok {
		entry.Approved = approved
	}
	return nil
}

func (m *memEntryRepo) Delete(ctx context.Context, id uint) error {
	delete(m.entries, id)
	return nil
}

func (m *memEntryRepo) Count(ctx context.Context, approvedOnly bool) (int64, error) {
	var count int64
	for _, entry := range m.entries {
		if approvedOnly && !entry.Approved {
			continue
		}
		count++
	}
	return count, nil
}
