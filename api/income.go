package api

import (
	"strconv"
	"time"

	"github.com/bagy391/budget-tracker/database"
	"github.com/bagy391/budget-tracker/middleware"
	"github.com/bagy391/budget-tracker/models"

	"github.com/gin-gonic/gin"
)

// IncomeHandler 收入记录处理器
type IncomeHandler struct{}

// NewIncomeHandler 创建收入记录处理器
func NewIncomeHandler() *IncomeHandler {
	return &IncomeHandler{}
}

// IncomeRequest 创建/更新收入记录请求
type IncomeRequest struct {
	Source string  `json:"source" binding:"required,max=100" example:"工资"`
	Amount float64 `json:"amount" binding:"required,gt=0" example:"50000"`
	Date   string  `json:"date" binding:"required" example:"2024-06-01"`
}

// IncomeListRequest 收入记录列表请求
type IncomeListRequest struct {
	Page      int    `form:"page" example:"1"`
	PageSize  int    `form:"page_size" example:"10"`
	StartTime string `form:"start_time" example:"2024-01-01"`
	EndTime   string `form:"end_time" example:"2024-12-31"`
}

// Create 创建收入记录
// @Summary 创建收入记录
// @Tags 收入记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Param request body IncomeRequest true "收入记录信息"
// @Success 200 {object} Response{data=models.Income} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 403 {object} Response "不是该家庭成员"
// @Router /api/v1/families/{id}/incomes [post]
func (h *IncomeHandler) Create(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	date, err := parseDateTime(req.Date)
	if err != nil {
		BadRequest(c, "时间格式错误，应为: 2006-01-02")
		return
	}

	income := models.Income{
		FamilyID: familyID,
		UserID:   middleware.GetCurrentUserID(c),
		Source:   req.Source,
		Amount:   req.Amount,
		Date:     date,
	}

	if err := database.DB.Create(&income).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建收入记录失败"))
		return
	}

	database.DB.First(&income, income.ID)
	SuccessWithMessage(c, "创建成功", income)
}

// List 获取收入记录列表
// @Summary 获取收入记录列表
// @Description 获取家庭收入记录，按日期倒序，支持分页和时间筛选
// @Tags 收入记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param start_time query string false "开始时间 (2024-01-01)"
// @Param end_time query string false "结束时间 (2024-12-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Income}} "获取成功"
// @Failure 403 {object} Response "不是该家庭成员"
// @Router /api/v1/families/{id}/incomes [get]
func (h *IncomeHandler) List(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	var req IncomeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	query := database.DB.Model(&models.Income{}).Where("family_id = ?", familyID)

	if req.StartTime != "" {
		if t, err := time.ParseInLocation("2006-01-02", req.StartTime, time.Local); err == nil {
			query = query.Where("date >= ?", t)
		}
	}
	if req.EndTime != "" {
		if t, err := time.ParseInLocation("2006-01-02", req.EndTime, time.Local); err == nil {
			t = t.Add(24*time.Hour - time.Second)
			query = query.Where("date <= ?", t)
		}
	}

	var total int64
	query.Count(&total)

	var incomes []models.Income
	if err := query.
		Order("date DESC").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&incomes).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "获取收入记录失败"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     incomes,
	})
}

// Update 更新收入记录
// @Summary 更新收入记录
// @Description 整行更新（最后写入者胜），返回更新后的权威行
// @Tags 收入记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Param iid path int true "收入记录ID"
// @Param request body IncomeRequest true "收入记录信息"
// @Success 200 {object} Response{data=models.Income} "更新成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/families/{id}/incomes/{iid} [put]
func (h *IncomeHandler) Update(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	iid, err := strconv.ParseUint(c.Param("iid"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的记录ID")
		return
	}

	var income models.Income
	if err := database.DB.
		Where("id = ? AND family_id = ?", uint(iid), familyID).
		First(&income).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	date, err := parseDateTime(req.Date)
	if err != nil {
		BadRequest(c, "时间格式错误，应为: 2006-01-02")
		return
	}

	updates := map[string]interface{}{
		"source": req.Source,
		"amount": req.Amount,
		"date":   date,
	}
	if err := database.DB.Model(&income).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新收入记录失败"))
		return
	}

	database.DB.First(&income, income.ID)
	SuccessWithMessage(c, "更新成功", income)
}

// Delete 删除收入记录
// @Summary 删除收入记录
// @Tags 收入记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Param iid path int true "收入记录ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/families/{id}/incomes/{iid} [delete]
func (h *IncomeHandler) Delete(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	iid, err := strconv.ParseUint(c.Param("iid"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的记录ID")
		return
	}

	result := database.DB.
		Where("id = ? AND family_id = ?", uint(iid), familyID).
		Delete(&models.Income{})
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "删除收入记录失败"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "记录不存在")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
