package models

import (
	"time"

	"gorm.io/gorm"
)

// Income 收入记录模型，不关联类别
type Income struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	FamilyID  uint           `json:"family_id" gorm:"index;not null"`
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	Source    string         `json:"source" gorm:"size:100;not null"`
	Amount    float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	Date      time.Time      `json:"date" gorm:"index;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
	User      User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Income) TableName() string {
	return "incomes"
}
