package service

import (
	"math"
	"sort"
	"time"

	"github.com/bagy391/budget-tracker/models"
)

// VisibleAsset 经可见性裁决后的资产，带归属标记供视图筛选
type VisibleAsset struct {
	models.WealthAsset
	IsOwner bool `json:"is_owner"`
}

// ResolveWealthVisibility 计算请求者在当前家庭上下文中能看到的资产集合：
//  1. 自有资产全部可见；
//  2. 共享给请求者的资产，仅当资产所有者仍是当前家庭成员时可见
//     （切换家庭会改变可见的共享集合，共享授权本身与家庭无关）。
//
// familyMemberIDs 是当前家庭的成员 user_id 列表（可包含请求者本人，内部会剔除）。
func ResolveWealthVisibility(requesterID uint, familyMemberIDs []uint, assets []models.WealthAsset) []VisibleAsset {
	members := make(map[uint]bool, len(familyMemberIDs))
	for _, id := range familyMemberIDs {
		if id != requesterID {
			members[id] = true
		}
	}

	var visible []VisibleAsset
	for _, a := range assets {
		if a.UserID == requesterID {
			visible = append(visible, VisibleAsset{WealthAsset: a, IsOwner: true})
			continue
		}
		sharedWithMe := false
		for _, s := range a.Sharing {
			if s.SharedWithUserID == requesterID {
				sharedWithMe = true
				break
			}
		}
		// 所有者已不在当前家庭的共享资产两个视图都不展示
		if sharedWithMe && members[a.UserID] {
			visible = append(visible, VisibleAsset{WealthAsset: a, IsOwner: false})
		}
	}
	return visible
}

// MyWealth "我的财富"视图：仅自有资产
func MyWealth(assets []VisibleAsset) []VisibleAsset {
	var out []VisibleAsset
	for _, a := range assets {
		if a.IsOwner {
			out = append(out, a)
		}
	}
	return out
}

// FamilyWealth "家庭财富"视图：自有资产 ∪ 可见的共享资产
func FamilyWealth(assets []VisibleAsset) []VisibleAsset {
	return assets
}

// TypeSummary 按资产类型的汇总分片
type TypeSummary struct {
	Type    string  `json:"type"`
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"` // 占总额百分比
}

// WealthSummary 财富聚合结果
type WealthSummary struct {
	Total    float64       `json:"total"`    // Σ 当前金额
	Invested float64       `json:"invested"` // Σ 投入金额（银行类计 0）
	Gains    float64       `json:"gains"`    // 带符号，可为负
	ROI      float64       `json:"roi"`      // 投入为 0 时恒为 0
	ByType   []TypeSummary `json:"by_type"`  // 按类型降序
}

// AggregateWealth 对一个视图的资产集合做总量聚合
func AggregateWealth(assets []VisibleAsset) WealthSummary {
	var sum WealthSummary
	byType := make(map[string]*TypeSummary)
	var order []string

	for _, a := range assets {
		sum.Total += a.CurrentAmount
		if a.InvestedAmount != nil {
			sum.Invested += *a.InvestedAmount
		}
		t, ok := byType[a.AssetType]
		if !ok {
			t = &TypeSummary{Type: a.AssetType}
			byType[a.AssetType] = t
			order = append(order, a.AssetType)
		}
		t.Total += a.CurrentAmount
		t.Count++
	}

	sum.Gains = sum.Total - sum.Invested
	if sum.Invested > 0 {
		sum.ROI = sum.Gains / sum.Invested * 100
	}

	for _, key := range order {
		t := byType[key]
		if sum.Total > 0 {
			t.Percent = t.Total / sum.Total * 100
		}
		sum.ByType = append(sum.ByType, *t)
	}
	sort.SliceStable(sum.ByType, func(i, j int) bool {
		return sum.ByType[i].Total > sum.ByType[j].Total
	})
	return sum
}

// AssetROI 单个资产的收益率（列表展示用）。
// 无投入金额（银行类）或投入为 0 时返回 0。
func AssetROI(invested *float64, current float64) float64 {
	if invested == nil || *invested <= 0 {
		return 0
	}
	return (current - *invested) / *invested * 100
}

// DaysUntilMaturity 距到期日的天数，向上取整；已过期为负
func DaysUntilMaturity(maturity, now time.Time) int {
	return int(math.Ceil(maturity.Sub(now).Hours() / 24))
}

// 定期存款到期状态分档
const (
	MaturityMatured  = "matured"
	MaturityCritical = "critical"
	MaturityWarning  = "warning"
	MaturityInfo     = "info"
	MaturityNormal   = "normal"
)

// MaturityStatus 按剩余天数分档：≤0 matured，≤3 critical，≤7 warning，≤30 info
func MaturityStatus(days int) string {
	switch {
	case days <= 0:
		return MaturityMatured
	case days <= 3:
		return MaturityCritical
	case days <= 7:
		return MaturityWarning
	case days <= 30:
		return MaturityInfo
	default:
		return MaturityNormal
	}
}
