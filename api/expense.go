package api

import (
	"strconv"
	"time"

	"github.com/bagy391/budget-tracker/database"
	"github.com/bagy391/budget-tracker/middleware"
	"github.com/bagy391/budget-tracker/models"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler 消费记录处理器
type ExpenseHandler struct{}

// NewExpenseHandler 创建消费记录处理器
func NewExpenseHandler() *ExpenseHandler {
	return &ExpenseHandler{}
}

// ExpenseRequest 创建/更新消费记录请求
type ExpenseRequest struct {
	Title           string  `json:"title" binding:"required,max=100" example:"午餐"`
	Amount          float64 `json:"amount" binding:"required,gt=0" example:"99.99"`
	CategoryID      *uint   `json:"category_id" example:"1"`
	PaymentMethodID *uint   `json:"payment_method_id" example:"1"`
	Description     string  `json:"description" example:"公司楼下"`
	TransactionDate string  `json:"transaction_date" binding:"required" example:"2024-06-15 12:30:00"`
}

// ExpenseListRequest 消费记录列表请求
type ExpenseListRequest struct {
	Page       int    `form:"page" example:"1"`
	PageSize   int    `form:"page_size" example:"10"`
	CategoryID uint   `form:"category_id" example:"1"`
	StartTime  string `form:"start_time" example:"2024-01-01"`
	EndTime    string `form:"end_time" example:"2024-12-31"`
}

// parseDateTime 解析 "2006-01-02 15:04:05" 或 "2006-01-02"
func parseDateTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// validateExpenseRefs 校验类别、支付方式属于同一家庭
func validateExpenseRefs(c *gin.Context, familyID uint, req *ExpenseRequest) bool {
	if req.CategoryID != nil {
		var cat models.Category
		if err := database.DB.
			Where("id = ? AND family_id = ?", *req.CategoryID, familyID).
			First(&cat).Error; err != nil {
			BadRequest(c, "无效的类别")
			return false
		}
	}
	if req.PaymentMethodID != nil {
		var pm models.PaymentMethod
		if err := database.DB.
			Where("id = ? AND family_id = ?", *req.PaymentMethodID, familyID).
			First(&pm).Error; err != nil {
			BadRequest(c, "无效的支付方式")
			return false
		}
	}
	return true
}

// Create 创建消费记录
// @Summary 创建消费记录
// @Description 在家庭内创建一条消费记录，返回带关联数据的权威行
// @Tags 消费记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Param request body ExpenseRequest true "消费记录信息"
// @Success 200 {object} Response{data=models.Expense} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 403 {object} Response "不是该家庭成员"
// @Router /api/v1/families/{id}/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	if !validateExpenseRefs(c, familyID, &req) {
		return
	}

	transactionDate, err := parseDateTime(req.TransactionDate)
	if err != nil {
		BadRequest(c, "时间格式错误，应为: 2006-01-02 15:04:05")
		return
	}

	expense := models.Expense{
		FamilyID:        familyID,
		UserID:          middleware.GetCurrentUserID(c),
		CategoryID:      req.CategoryID,
		PaymentMethodID: req.PaymentMethodID,
		Title:           req.Title,
		Amount:          req.Amount,
		Description:     req.Description,
		TransactionDate: transactionDate,
	}

	if err := database.DB.Create(&expense).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建消费记录失败"))
		return
	}

	// 返回带关联的权威行，客户端按 id 整行替换
	database.DB.Preload("Category").Preload("PaymentMethod").First(&expense, expense.ID)
	SuccessWithMessage(c, "创建成功", expense)
}

// List 获取消费记录列表
// @Summary 获取消费记录列表
// @Description 获取家庭消费记录，按交易时间倒序，支持分页和筛选
// @Tags 消费记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param category_id query int false "类别筛选"
// @Param start_time query string false "开始时间 (2024-01-01)"
// @Param end_time query string false "结束时间 (2024-12-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Expense}} "获取成功"
// @Failure 403 {object} Response "不是该家庭成员"
// @Router /api/v1/families/{id}/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	var req ExpenseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 默认分页参数
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	query := database.DB.Model(&models.Expense{}).Where("family_id = ?", familyID)

	if req.CategoryID > 0 {
		query = query.Where("category_id = ?", req.CategoryID)
	}
	if req.StartTime != "" {
		if t, err := time.ParseInLocation("2006-01-02", req.StartTime, time.Local); err == nil {
			query = query.Where("transaction_date >= ?", t)
		}
	}
	if req.EndTime != "" {
		if t, err := time.ParseInLocation("2006-01-02", req.EndTime, time.Local); err == nil {
			t = t.Add(24*time.Hour - time.Second)
			query = query.Where("transaction_date <= ?", t)
		}
	}

	var total int64
	query.Count(&total)

	var expenses []models.Expense
	if err := query.
		Preload("Category").Preload("PaymentMethod").
		Order("transaction_date DESC").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "获取消费记录失败"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     expenses,
	})
}

// Get 获取单条消费记录
// @Summary 获取单条消费记录
// @Tags 消费记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Param eid path int true "消费记录ID"
// @Success 200 {object} Response{data=models.Expense} "获取成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/families/{id}/expenses/{eid} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	eid, err := strconv.ParseUint(c.Param("eid"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的记录ID")
		return
	}

	var expense models.Expense
	if err := database.DB.
		Preload("Category").Preload("PaymentMethod").
		Where("id = ? AND family_id = ?", uint(eid), familyID).
		First(&expense).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	Success(c, expense)
}

// Update 更新消费记录
// @Summary 更新消费记录
// @Description 整行更新（最后写入者胜），返回更新后的权威行
// @Tags 消费记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Param eid path int true "消费记录ID"
// @Param request body ExpenseRequest true "消费记录信息"
// @Success 200 {object} Response{data=models.Expense} "更新成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/families/{id}/expenses/{eid} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	eid, err := strconv.ParseUint(c.Param("eid"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的记录ID")
		return
	}

	var expense models.Expense
	if err := database.DB.
		Where("id = ? AND family_id = ?", uint(eid), familyID).
		First(&expense).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	if !validateExpenseRefs(c, familyID, &req) {
		return
	}

	transactionDate, err := parseDateTime(req.TransactionDate)
	if err != nil {
		BadRequest(c, "时间格式错误，应为: 2006-01-02 15:04:05")
		return
	}

	updates := map[string]interface{}{
		"title":             req.Title,
		"amount":            req.Amount,
		"category_id":       req.CategoryID,
		"payment_method_id": req.PaymentMethodID,
		"description":       req.Description,
		"transaction_date":  transactionDate,
	}
	if err := database.DB.Model(&expense).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新消费记录失败"))
		return
	}

	database.DB.Preload("Category").Preload("PaymentMethod").First(&expense, expense.ID)
	SuccessWithMessage(c, "更新成功", expense)
}

// Delete 删除消费记录
// @Summary 删除消费记录
// @Tags 消费记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Param eid path int true "消费记录ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/families/{id}/expenses/{eid} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	eid, err := strconv.ParseUint(c.Param("eid"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的记录ID")
		return
	}

	result := database.DB.
		Where("id = ? AND family_id = ?", uint(eid), familyID).
		Delete(&models.Expense{})
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "删除消费记录失败"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "记录不存在")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
