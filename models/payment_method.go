package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	// PaymentTypeCash 现金
	PaymentTypeCash = "cash"
	// PaymentTypeCreditCard 信用卡
	PaymentTypeCreditCard = "credit_card"
	// PaymentTypeBank 银行账户
	PaymentTypeBank = "bank"
	// PaymentTypeOther 其他
	PaymentTypeOther = "other"
)

// PaymentMethod 支付方式（按家庭维护）
type PaymentMethod struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	FamilyID  uint           `json:"family_id" gorm:"index;not null"`
	Name      string         `json:"name" gorm:"size:50;not null"`
	Type      string         `json:"type" gorm:"size:20;default:other"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// ValidPaymentType 校验支付方式类型
func ValidPaymentType(t string) bool {
	switch t {
	case PaymentTypeCash, PaymentTypeCreditCard, PaymentTypeBank, PaymentTypeOther:
		return true
	}
	return false
}

// DefaultPaymentMethods 新建家庭时初始化的默认支付方式
func DefaultPaymentMethods(familyID uint) []PaymentMethod {
	return []PaymentMethod{
		{FamilyID: familyID, Name: "Cash", Type: PaymentTypeCash},
		{FamilyID: familyID, Name: "Credit Card", Type: PaymentTypeCreditCard},
		{FamilyID: familyID, Name: "Bank Account", Type: PaymentTypeBank},
	}
}
