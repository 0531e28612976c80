package models

import (
	"time"

	"gorm.io/gorm"
)

// Budget 预算模型。一个家庭同一时刻预期只有一条"当前"预算，
// 区间重叠时的取舍由 service.CurrentBudget 统一裁决。
type Budget struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	FamilyID  uint           `json:"family_id" gorm:"index;not null"`
	Amount    float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	StartDate time.Time      `json:"start_date" gorm:"index;not null"`
	EndDate   time.Time      `json:"end_date" gorm:"index;not null"`
	CreatedBy uint           `json:"created_by" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Budget) TableName() string {
	return "budgets"
}

// Contains 判断时间点是否落在预算区间内（含两端）
func (b *Budget) Contains(t time.Time) bool {
	return !t.Before(b.StartDate) && !t.After(b.EndDate)
}
