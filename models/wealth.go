package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

const (
	// AssetTypeMutualFund 基金
	AssetTypeMutualFund = "mutual_fund"
	// AssetTypeStock 股票
	AssetTypeStock = "stock"
	// AssetTypeEPF 公积金 EPF
	AssetTypeEPF = "epf"
	// AssetTypeNPS 养老金 NPS
	AssetTypeNPS = "nps"
	// AssetTypeBank 银行存款（只有余额，无投入金额）
	AssetTypeBank = "bank"
	// AssetTypeFD 定期存款，带到期日
	AssetTypeFD = "fd"
)

// AssetTypes 所有资产类型
var AssetTypes = []string{
	AssetTypeMutualFund,
	AssetTypeStock,
	AssetTypeEPF,
	AssetTypeNPS,
	AssetTypeBank,
	AssetTypeFD,
}

// WealthAsset 财富资产模型。资产归属单个用户，不绑定某个家庭；
// 通过 WealthSharing 共享给任意用户，可见性在查询时按当前家庭裁决。
type WealthAsset struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	UserID         uint            `json:"user_id" gorm:"index;not null"`
	AssetType      string          `json:"asset_type" gorm:"size:20;index;not null"`
	AssetName      string          `json:"asset_name" gorm:"size:100;not null"`
	InvestedAmount *float64        `json:"invested_amount" gorm:"type:decimal(12,2)"`
	CurrentAmount  float64         `json:"current_amount" gorm:"type:decimal(12,2);not null"`
	MaturityAmount *float64        `json:"maturity_amount" gorm:"type:decimal(12,2)"`
	MaturityDate   *time.Time      `json:"maturity_date"`
	Notes          string          `json:"notes" gorm:"size:255"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `json:"-" gorm:"index"`
	Sharing        []WealthSharing `json:"sharing,omitempty" gorm:"foreignKey:AssetID"`
	Owner          User            `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (WealthAsset) TableName() string {
	return "wealth_assets"
}

// Validate 按资产类型校验必填字段
func (a *WealthAsset) Validate() error {
	valid := false
	for _, t := range AssetTypes {
		if a.AssetType == t {
			valid = true
			break
		}
	}
	if !valid {
		return errors.New("无效的资产类型")
	}
	if a.AssetName == "" {
		return errors.New("资产名称不能为空")
	}
	if a.CurrentAmount < 0 {
		return errors.New("当前金额不能为负数")
	}
	// 银行存款只记余额，其余类型必须有投入金额
	if a.AssetType != AssetTypeBank {
		if a.InvestedAmount == nil || *a.InvestedAmount < 0 {
			return errors.New("投入金额必填且不能为负数")
		}
	}
	if a.AssetType == AssetTypeFD {
		if a.MaturityAmount == nil {
			return errors.New("定期存款必须填写到期金额")
		}
		if a.MaturityDate == nil {
			return errors.New("定期存款必须填写到期日期")
		}
	}
	return nil
}

// WealthSharing 资产共享关系：资产与被共享用户的多对多关联。
// 没有共享记录的资产仅所有者可见。
type WealthSharing struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	AssetID          uint           `json:"asset_id" gorm:"uniqueIndex:idx_asset_shared;not null"`
	SharedWithUserID uint           `json:"shared_with_user_id" gorm:"uniqueIndex:idx_asset_shared;index;not null"`
	CreatedAt        time.Time      `json:"created_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (WealthSharing) TableName() string {
	return "wealth_sharing"
}
