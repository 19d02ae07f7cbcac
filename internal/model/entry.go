// Package model 定义数据模型
package model

import (
	"time"
)

// Entry 留言条目
// IPAddress 仅供管理视图使用，序列化时始终排除
type Entry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	Website   string    `gorm:"type:varchar(500)" json:"website"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Approved  bool      `gorm:"default:false;index" json:"approved"`
	IPAddress string    `gorm:"type:varchar(45)" json:"-"`
}

// TableName 指定表名
func (Entry) TableName() string {
	return "entries"
}

// PublicEntry 公开投影
// 不包含 approved 与 ip_address 字段
type PublicEntry struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Website   string `json:"website,omitempty"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

// CreatedAtFormat 公开投影的时间格式
const CreatedAtFormat = "2006-01-02 15:04:05"

// Public 转换为公开投影
func (e *Entry) Public() PublicEntry {
	return PublicEntry{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Website:   e.Website,
		Message:   e.Message,
		CreatedAt: e.CreatedAt.Format(CreatedAtFormat),
	}
}
