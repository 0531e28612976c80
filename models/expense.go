package models

import (
	"time"

	"gorm.io/gorm"
)

// Expense 消费记录模型。类别、支付方式允许为空或已删除，
// 聚合层负责回退展示，不视为错误。
type Expense struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	FamilyID        uint           `json:"family_id" gorm:"index;not null"`
	UserID          uint           `json:"user_id" gorm:"index;not null"`
	CategoryID      *uint          `json:"category_id" gorm:"index"`
	PaymentMethodID *uint          `json:"payment_method_id" gorm:"index"`
	Title           string         `json:"title" gorm:"size:100;not null"`
	Amount          float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	Description     string         `json:"description" gorm:"size:255"`
	TransactionDate time.Time      `json:"transaction_date" gorm:"index;not null"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
	Category        *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	PaymentMethod   *PaymentMethod `json:"payment_method,omitempty" gorm:"foreignKey:PaymentMethodID"`
	User            User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}
