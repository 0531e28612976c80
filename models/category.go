package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	// CategoryTypeExpense 支出类别
	CategoryTypeExpense = "expense"
	// CategoryTypeIncome 收入类别
	CategoryTypeIncome = "income"
)

// Category 交易类别（按家庭维护）。删除类别不会级联删除消费记录，
// 展示侧统一回退为 Uncategorized。
type Category struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	FamilyID  uint           `json:"family_id" gorm:"index;not null"`
	Name      string         `json:"name" gorm:"size:50;not null"`
	Icon      string         `json:"icon" gorm:"size:10;default:📦"`
	Type      string         `json:"type" gorm:"size:10;default:expense;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Category) TableName() string {
	return "categories"
}

// DefaultCategories 新建家庭时初始化的默认类别
func DefaultCategories(familyID uint) []Category {
	return []Category{
		{FamilyID: familyID, Name: "Food & Dining", Icon: "🍔", Type: CategoryTypeExpense},
		{FamilyID: familyID, Name: "Transportation", Icon: "🚗", Type: CategoryTypeExpense},
		{FamilyID: familyID, Name: "Shopping", Icon: "🛍️", Type: CategoryTypeExpense},
		{FamilyID: familyID, Name: "Entertainment", Icon: "🎬", Type: CategoryTypeExpense},
		{FamilyID: familyID, Name: "Bills & Utilities", Icon: "💡", Type: CategoryTypeExpense},
		{FamilyID: familyID, Name: "Healthcare", Icon: "🏥", Type: CategoryTypeExpense},
		{FamilyID: familyID, Name: "Salary", Icon: "💼", Type: CategoryTypeIncome},
		{FamilyID: familyID, Name: "Freelance", Icon: "💻", Type: CategoryTypeIncome},
		{FamilyID: familyID, Name: "Investments", Icon: "📈", Type: CategoryTypeIncome},
	}
}
