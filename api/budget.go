package api

import (
	"time"

	"github.com/bagy391/budget-tracker/database"
	"github.com/bagy391/budget-tracker/middleware"
	"github.com/bagy391/budget-tracker/models"
	"github.com/bagy391/budget-tracker/service"

	"github.com/gin-gonic/gin"
)

// BudgetHandler 预算处理器
type BudgetHandler struct{}

// NewBudgetHandler 创建预算处理器
func NewBudgetHandler() *BudgetHandler {
	return &BudgetHandler{}
}

// BudgetRequest 设置预算请求
type BudgetRequest struct {
	Amount    float64 `json:"amount" binding:"required,gt=0" example:"50000"`
	StartDate string  `json:"start_date" binding:"required" example:"2024-06-01"`
	EndDate   string  `json:"end_date" binding:"required" example:"2024-06-30"`
}

// BudgetResponse 当前预算及统计
type BudgetResponse struct {
	Budget *models.Budget      `json:"budget"`
	Stats  service.BudgetStats `json:"stats"`
	Health string              `json:"health"`
}

// Save 设置预算
// @Summary 设置预算
// @Description 若已有覆盖当前时刻的预算则更新该条，否则新建，保证同一时刻只有一条当前预算
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Param request body BudgetRequest true "预算信息"
// @Success 200 {object} Response{data=models.Budget} "保存成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 403 {object} Response "不是该家庭成员"
// @Router /api/v1/families/{id}/budget [post]
func (h *BudgetHandler) Save(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	startDate, err := time.ParseInLocation("2006-01-02", req.StartDate, time.Local)
	if err != nil {
		BadRequest(c, "时间格式错误，应为: 2006-01-02")
		return
	}
	endDate, err := time.ParseInLocation("2006-01-02", req.EndDate, time.Local)
	if err != nil {
		BadRequest(c, "时间格式错误，应为: 2006-01-02")
		return
	}
	// 区间终点取当天末尾，使结束日全天都在预算内
	endDate = endDate.Add(24*time.Hour - time.Second)
	if endDate.Before(startDate) {
		BadRequest(c, "结束时间不能早于开始时间")
		return
	}

	now := time.Now()

	var budgets []models.Budget
	if err := database.DB.
		Where("family_id = ?", familyID).
		Find(&budgets).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "获取预算失败"))
		return
	}

	if current := service.CurrentBudget(budgets, now); current != nil {
		updates := map[string]interface{}{
			"amount":     req.Amount,
			"start_date": startDate,
			"end_date":   endDate,
		}
		if err := database.DB.Model(current).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "更新预算失败"))
			return
		}
		database.DB.First(current, current.ID)
		SuccessWithMessage(c, "更新成功", current)
		return
	}

	budget := models.Budget{
		FamilyID:  familyID,
		Amount:    req.Amount,
		StartDate: startDate,
		EndDate:   endDate,
		CreatedBy: middleware.GetCurrentUserID(c),
	}
	if err := database.DB.Create(&budget).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建预算失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", budget)
}

// Current 获取当前预算及统计
// @Summary 获取当前预算及统计
// @Description 返回覆盖当前时刻的预算、已花费/剩余/每日可花等统计及健康度；无预算时 budget 为 null、统计全零
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Success 200 {object} Response{data=BudgetResponse} "获取成功"
// @Failure 403 {object} Response "不是该家庭成员"
// @Router /api/v1/families/{id}/budget [get]
func (h *BudgetHandler) Current(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	now := time.Now()

	var budgets []models.Budget
	if err := database.DB.
		Where("family_id = ?", familyID).
		Find(&budgets).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "获取预算失败"))
		return
	}

	current := service.CurrentBudget(budgets, now)

	var expenses []models.Expense
	if current != nil {
		if err := database.DB.
			Where("family_id = ? AND transaction_date >= ? AND transaction_date <= ?",
				familyID, current.StartDate, current.EndDate).
			Find(&expenses).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "获取消费记录失败"))
			return
		}
	}

	stats := service.CalculateBudgetStats(current, expenses, now)
	Success(c, BudgetResponse{
		Budget: current,
		Stats:  stats,
		Health: service.BudgetHealth(stats.Percentage),
	})
}

// History 获取预算历史
// @Summary 获取预算历史
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Success 200 {object} Response{data=[]models.Budget} "获取成功"
// @Failure 403 {object} Response "不是该家庭成员"
// @Router /api/v1/families/{id}/budget/history [get]
func (h *BudgetHandler) History(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	var budgets []models.Budget
	if err := database.DB.
		Where("family_id = ?", familyID).
		Order("start_date DESC").
		Find(&budgets).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "获取预算失败"))
		return
	}

	Success(c, budgets)
}
