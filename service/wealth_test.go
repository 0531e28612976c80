package service

import (
	"testing"
	"time"

	"github.com/bagy391/budget-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func sharedWith(userIDs ...uint) []models.WealthSharing {
	var s []models.WealthSharing
	for _, id := range userIDs {
		s = append(s, models.WealthSharing{SharedWithUserID: id})
	}
	return s
}

func TestResolveWealthVisibility(t *testing.T) {
	requester := uint(1)
	// 当前家庭成员：1（本人）、2；用户 3 不在家庭里
	memberIDs := []uint{1, 2}

	assets := []models.WealthAsset{
		{ID: 10, UserID: 1, AssetType: models.AssetTypeStock, CurrentAmount: 100},                            // 自有
		{ID: 11, UserID: 2, AssetType: models.AssetTypeStock, CurrentAmount: 200, Sharing: sharedWith(1)},    // 共享且同家庭
		{ID: 12, UserID: 3, AssetType: models.AssetTypeStock, CurrentAmount: 300, Sharing: sharedWith(1)},    // 共享但所有者不在当前家庭
		{ID: 13, UserID: 2, AssetType: models.AssetTypeStock, CurrentAmount: 400, Sharing: sharedWith(5, 6)}, // 没共享给我
	}

	visible := ResolveWealthVisibility(requester, memberIDs, assets)
	require.Len(t, visible, 2)
	assert.Equal(t, uint(10), visible[0].ID)
	assert.True(t, visible[0].IsOwner)
	assert.Equal(t, uint(11), visible[1].ID)
	assert.False(t, visible[1].IsOwner)

	// 资产 12 在两个视图中都不出现
	for _, a := range MyWealth(visible) {
		assert.NotEqual(t, uint(12), a.ID)
	}
	for _, a := range FamilyWealth(visible) {
		assert.NotEqual(t, uint(12), a.ID)
	}

	// 切到含用户 3 的家庭后资产 12 重新可见
	visible2 := ResolveWealthVisibility(requester, []uint{1, 3}, assets)
	ids := make(map[uint]bool)
	for _, a := range visible2 {
		ids[a.ID] = true
	}
	assert.True(t, ids[12])
	assert.False(t, ids[11]) // 用户 2 不在这个家庭
}

func TestWealthViews(t *testing.T) {
	visible := []VisibleAsset{
		{WealthAsset: models.WealthAsset{ID: 1, CurrentAmount: 100}, IsOwner: true},
		{WealthAsset: models.WealthAsset{ID: 2, CurrentAmount: 200}, IsOwner: false},
	}

	my := MyWealth(visible)
	require.Len(t, my, 1)
	assert.Equal(t, uint(1), my[0].ID)

	// 家庭视图包含自有资产（自己的资产也计入家庭总量）
	family := FamilyWealth(visible)
	assert.Len(t, family, 2)
}

func TestAggregateWealth(t *testing.T) {
	assets := []VisibleAsset{
		{WealthAsset: models.WealthAsset{AssetType: models.AssetTypeStock, InvestedAmount: f64(1000), CurrentAmount: 1500}},
		{WealthAsset: models.WealthAsset{AssetType: models.AssetTypeMutualFund, InvestedAmount: f64(2000), CurrentAmount: 1800}},
		{WealthAsset: models.WealthAsset{AssetType: models.AssetTypeBank, CurrentAmount: 5000}}, // 银行类无投入金额
	}

	sum := AggregateWealth(assets)
	assert.Equal(t, 8300.0, sum.Total)
	assert.Equal(t, 3000.0, sum.Invested)
	assert.InDelta(t, 5300.0, sum.Gains, 1e-9)
	assert.InDelta(t, 5300.0/3000.0*100, sum.ROI, 1e-9)

	// 类型分组按总额降序
	require.Len(t, sum.ByType, 3)
	assert.Equal(t, models.AssetTypeBank, sum.ByType[0].Type)
	assert.InDelta(t, 5000.0/8300.0*100, sum.ByType[0].Percent, 1e-9)
	assert.Equal(t, models.AssetTypeMutualFund, sum.ByType[1].Type)
	assert.Equal(t, models.AssetTypeStock, sum.ByType[2].Type)
}

func TestAggregateWealth_ROIZeroWhenNoInvestment(t *testing.T) {
	// 投入为 0 时 ROI 恒为 0，gains 仍有符号
	assets := []VisibleAsset{
		{WealthAsset: models.WealthAsset{AssetType: models.AssetTypeBank, CurrentAmount: 5000}},
	}
	sum := AggregateWealth(assets)
	assert.Equal(t, 5000.0, sum.Total)
	assert.Equal(t, 0.0, sum.Invested)
	assert.Equal(t, 5000.0, sum.Gains)
	assert.Equal(t, 0.0, sum.ROI)

	// 浮亏时 gains 为负
	losing := []VisibleAsset{
		{WealthAsset: models.WealthAsset{AssetType: models.AssetTypeStock, InvestedAmount: f64(1000), CurrentAmount: 800}},
	}
	sum = AggregateWealth(losing)
	assert.Equal(t, -200.0, sum.Gains)
	assert.InDelta(t, -20.0, sum.ROI, 1e-9)
}

func TestAggregateWealth_Empty(t *testing.T) {
	sum := AggregateWealth(nil)
	assert.Equal(t, 0.0, sum.Total)
	assert.Equal(t, 0.0, sum.ROI)
	assert.Empty(t, sum.ByType)
}

func TestAssetROI(t *testing.T) {
	assert.InDelta(t, 50.0, AssetROI(f64(1000), 1500), 1e-9)
	assert.InDelta(t, -20.0, AssetROI(f64(1000), 800), 1e-9)
	// 银行类（无投入金额）不展示收益率
	assert.Equal(t, 0.0, AssetROI(nil, 5000))
	assert.Equal(t, 0.0, AssetROI(f64(0), 5000))
}

func TestDaysUntilMaturity(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)

	// 两天后的零点：不足 48 小时，向上取整为 2
	in2 := date(2024, 6, 17)
	assert.Equal(t, 2, DaysUntilMaturity(in2, now))

	// 当天零点已过：0 或负
	today := date(2024, 6, 15)
	assert.LessOrEqual(t, DaysUntilMaturity(today, now), 0)
}

func TestMaturityStatus(t *testing.T) {
	assert.Equal(t, MaturityMatured, MaturityStatus(0))
	assert.Equal(t, MaturityMatured, MaturityStatus(-5))
	assert.Equal(t, MaturityCritical, MaturityStatus(2))
	assert.Equal(t, MaturityCritical, MaturityStatus(3))
	assert.Equal(t, MaturityWarning, MaturityStatus(7))
	assert.Equal(t, MaturityInfo, MaturityStatus(30))
	assert.Equal(t, MaturityNormal, MaturityStatus(31))
}

func TestMaturityScenario(t *testing.T) {
	// 今天+2天 → critical；今天 → matured
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, MaturityCritical, MaturityStatus(DaysUntilMaturity(date(2024, 6, 17), now)))
	assert.Equal(t, MaturityMatured, MaturityStatus(DaysUntilMaturity(date(2024, 6, 15), now)))
}
