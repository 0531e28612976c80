package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	// RoleMember 普通成员
	RoleMember = "member"
	// RoleAdmin 家庭管理员：可增删成员、删除家庭
	RoleAdmin = "admin"
)

// Family 家庭（共享记账空间）
type Family struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:100;not null"`
	CreatedBy uint           `json:"created_by" gorm:"index;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Family) TableName() string {
	return "families"
}

// FamilyMember 家庭成员关系，一个用户可属于多个家庭
type FamilyMember struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	FamilyID  uint           `json:"family_id" gorm:"uniqueIndex:idx_family_user;not null"`
	UserID    uint           `json:"user_id" gorm:"uniqueIndex:idx_family_user;index;not null"`
	Role      string         `json:"role" gorm:"size:20;default:member;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	Family    Family         `json:"-" gorm:"foreignKey:FamilyID"`
	User      User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (FamilyMember) TableName() string {
	return "family_members"
}

// IsAdmin 是否为家庭管理员
func (m *FamilyMember) IsAdmin() bool {
	return m.Role == RoleAdmin
}
