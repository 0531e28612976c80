package api

import (
	"strconv"
	"time"

	"github.com/bagy391/budget-tracker/database"
	"github.com/bagy391/budget-tracker/middleware"
	"github.com/bagy391/budget-tracker/models"
	"github.com/bagy391/budget-tracker/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// WealthHandler 财富资产处理器
type WealthHandler struct{}

// NewWealthHandler 创建财富资产处理器
func NewWealthHandler() *WealthHandler {
	return &WealthHandler{}
}

// WealthAssetRequest 创建/更新资产请求。sharing_user_ids 为完整的
// 被共享用户列表，保存时整体替换旧的共享关系。
type WealthAssetRequest struct {
	AssetType      string   `json:"asset_type" binding:"required" example:"mutual_fund"`
	AssetName      string   `json:"asset_name" binding:"required,max=100" example:"Nifty 50 Index Fund"`
	InvestedAmount *float64 `json:"invested_amount" example:"100000"`
	CurrentAmount  float64  `json:"current_amount" example:"125000"`
	MaturityAmount *float64 `json:"maturity_amount" example:"150000"`
	MaturityDate   *string  `json:"maturity_date" example:"2025-03-31"`
	Notes          string   `json:"notes" binding:"max=255" example:"SIP 每月 1 万"`
	SharingUserIDs []uint   `json:"sharing_user_ids"`
}

// AssetView 资产列表项：附带收益率和定期存款到期信息
type AssetView struct {
	service.VisibleAsset
	ROI            *float64 `json:"roi"`                        // 银行类为 null
	DaysToMaturity *int     `json:"days_to_maturity,omitempty"` // 仅定期存款
	MaturityStatus string   `json:"maturity_status,omitempty"`  // 仅定期存款
}

// WealthSummaryResponse 我的/家庭两个视图的聚合
type WealthSummaryResponse struct {
	My     service.WealthSummary `json:"my"`
	Family service.WealthSummary `json:"family"`
}

// toRequestModel 将请求转换为资产模型
func (req *WealthAssetRequest) toRequestModel(userID uint) (*models.WealthAsset, error) {
	asset := &models.WealthAsset{
		UserID:         userID,
		AssetType:      req.AssetType,
		AssetName:      req.AssetName,
		InvestedAmount: req.InvestedAmount,
		CurrentAmount:  req.CurrentAmount,
		MaturityAmount: req.MaturityAmount,
		Notes:          req.Notes,
	}
	if req.MaturityDate != nil && *req.MaturityDate != "" {
		t, err := time.ParseInLocation("2006-01-02", *req.MaturityDate, time.Local)
		if err != nil {
			return nil, err
		}
		asset.MaturityDate = &t
	}
	return asset, nil
}

// replaceSharing 整体替换资产的共享关系
func replaceSharing(tx *gorm.DB, assetID uint, userIDs []uint) error {
	if err := tx.Where("asset_id = ?", assetID).
		Unscoped().Delete(&models.WealthSharing{}).Error; err != nil {
		return err
	}
	seen := make(map[uint]bool, len(userIDs))
	for _, uid := range userIDs {
		if uid == 0 || seen[uid] {
			continue
		}
		seen[uid] = true
		if err := tx.Create(&models.WealthSharing{
			AssetID:          assetID,
			SharedWithUserID: uid,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}

// assetView 组装列表项：收益率、定期存款到期信息
func assetView(a service.VisibleAsset, now time.Time) AssetView {
	view := AssetView{VisibleAsset: a}
	if a.AssetType != models.AssetTypeBank {
		roi := service.AssetROI(a.InvestedAmount, a.CurrentAmount)
		view.ROI = &roi
	}
	if a.AssetType == models.AssetTypeFD && a.MaturityDate != nil {
		days := service.DaysUntilMaturity(*a.MaturityDate, now)
		view.DaysToMaturity = &days
		view.MaturityStatus = service.MaturityStatus(days)
	}
	return view
}

// visibleAssets 加载请求者在指定家庭上下文中可见的资产集合
func visibleAssets(c *gin.Context) ([]service.VisibleAsset, bool) {
	userID := middleware.GetCurrentUserID(c)

	familyID, err := strconv.ParseUint(c.Query("family_id"), 10, 32)
	if err != nil || familyID == 0 {
		BadRequest(c, "无效的家庭ID")
		return nil, false
	}
	if _, ok := requireFamilyMember(c, uint(familyID)); !ok {
		return nil, false
	}

	var members []models.FamilyMember
	if err := database.DB.
		Where("family_id = ?", uint(familyID)).
		Find(&members).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "获取家庭成员失败"))
		return nil, false
	}
	memberIDs := make([]uint, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.UserID)
	}

	// 候选集：自有资产 + 共享给我的资产，可见性由 service 统一裁决
	var assets []models.WealthAsset
	if err := database.DB.
		Preload("Sharing").
		Where("user_id = ? OR id IN (?)", userID,
			database.DB.Model(&models.WealthSharing{}).
				Select("asset_id").
				Where("shared_with_user_id = ?", userID)).
		Order("id ASC").
		Find(&assets).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "获取资产失败"))
		return nil, false
	}

	return service.ResolveWealthVisibility(userID, memberIDs, assets), true
}

// List 获取可见资产列表
// @Summary 获取可见资产列表
// @Description 返回自有资产及共享给我的资产（所有者须仍在指定家庭），附带收益率和定存到期状态
// @Tags 财富
// @Produce json
// @Security BearerAuth
// @Param family_id query int true "当前家庭ID"
// @Success 200 {object} Response{data=[]AssetView} "获取成功"
// @Failure 403 {object} Response "不是该家庭成员"
// @Router /api/v1/wealth [get]
func (h *WealthHandler) List(c *gin.Context) {
	visible, ok := visibleAssets(c)
	if !ok {
		return
	}

	now := time.Now()
	views := make([]AssetView, 0, len(visible))
	for _, a := range visible {
		views = append(views, assetView(a, now))
	}

	Success(c, views)
}

// Summary 获取财富聚合
// @Summary 获取财富聚合
// @Description 返回"我的财富"与"家庭财富"两个视图的总额、投入、收益、ROI 及按类型分布
// @Tags 财富
// @Produce json
// @Security BearerAuth
// @Param family_id query int true "当前家庭ID"
// @Success 200 {object} Response{data=WealthSummaryResponse} "获取成功"
// @Failure 403 {object} Response "不是该家庭成员"
// @Router /api/v1/wealth/summary [get]
func (h *WealthHandler) Summary(c *gin.Context) {
	visible, ok := visibleAssets(c)
	if !ok {
		return
	}

	Success(c, WealthSummaryResponse{
		My:     service.AggregateWealth(service.MyWealth(visible)),
		Family: service.AggregateWealth(service.FamilyWealth(visible)),
	})
}

// Create 创建资产
// @Summary 创建资产
// @Description 创建自有资产，sharing_user_ids 指定共享给哪些用户
// @Tags 财富
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body WealthAssetRequest true "资产信息"
// @Success 200 {object} Response{data=models.WealthAsset} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/wealth [post]
func (h *WealthHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req WealthAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	asset, err := req.toRequestModel(userID)
	if err != nil {
		BadRequest(c, "时间格式错误，应为: 2006-01-02")
		return
	}
	if err := asset.Validate(); err != nil {
		BadRequest(c, err.Error())
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(asset).Error; err != nil {
			return err
		}
		return replaceSharing(tx, asset.ID, req.SharingUserIDs)
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "创建资产失败"))
		return
	}

	database.DB.Preload("Sharing").First(asset, asset.ID)
	SuccessWithMessage(c, "创建成功", asset)
}

// Update 更新资产
// @Summary 更新资产
// @Description 仅所有者可更新；sharing_user_ids 整体替换旧的共享关系
// @Tags 财富
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "资产ID"
// @Param request body WealthAssetRequest true "资产信息"
// @Success 200 {object} Response{data=models.WealthAsset} "更新成功"
// @Failure 404 {object} Response "资产不存在"
// @Router /api/v1/wealth/{id} [put]
func (h *WealthHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	aid, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的资产ID")
		return
	}

	var asset models.WealthAsset
	if err := database.DB.
		Where("id = ? AND user_id = ?", uint(aid), userID).
		First(&asset).Error; err != nil {
		NotFound(c, "资产不存在")
		return
	}

	var req WealthAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	updated, err := req.toRequestModel(userID)
	if err != nil {
		BadRequest(c, "时间格式错误，应为: 2006-01-02")
		return
	}
	if err := updated.Validate(); err != nil {
		BadRequest(c, err.Error())
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"asset_type":      updated.AssetType,
			"asset_name":      updated.AssetName,
			"invested_amount": updated.InvestedAmount,
			"current_amount":  updated.CurrentAmount,
			"maturity_amount": updated.MaturityAmount,
			"maturity_date":   updated.MaturityDate,
			"notes":           updated.Notes,
		}
		if err := tx.Model(&asset).Updates(updates).Error; err != nil {
			return err
		}
		return replaceSharing(tx, asset.ID, req.SharingUserIDs)
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "更新资产失败"))
		return
	}

	database.DB.Preload("Sharing").First(&asset, asset.ID)
	SuccessWithMessage(c, "更新成功", asset)
}

// Delete 删除资产
// @Summary 删除资产
// @Description 仅所有者可删除，共享关系一并删除
// @Tags 财富
// @Produce json
// @Security BearerAuth
// @Param id path int true "资产ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "资产不存在"
// @Router /api/v1/wealth/{id} [delete]
func (h *WealthHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	aid, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的资产ID")
		return
	}

	var asset models.WealthAsset
	if err := database.DB.
		Where("id = ? AND user_id = ?", uint(aid), userID).
		First(&asset).Error; err != nil {
		NotFound(c, "资产不存在")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("asset_id = ?", asset.ID).
			Delete(&models.WealthSharing{}).Error; err != nil {
			return err
		}
		return tx.Delete(&asset).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "删除资产失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
