package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户模型（邮箱登录）
type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Email        string         `json:"email" gorm:"uniqueIndex;size:100;not null"`
	Password     string         `json:"-" gorm:"size:255;not null"`
	FullName     string         `json:"full_name" gorm:"size:100"`
	LastFamilyID *uint          `json:"last_family_id" gorm:"index"` // 最近选择的家庭，登录后恢复上下文
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}
