package api

import (
	"strconv"

	"github.com/bagy391/budget-tracker/database"
	"github.com/bagy391/budget-tracker/models"

	"github.com/gin-gonic/gin"
)

// PaymentMethodHandler 支付方式处理器
type PaymentMethodHandler struct{}

// NewPaymentMethodHandler 创建支付方式处理器
func NewPaymentMethodHandler() *PaymentMethodHandler {
	return &PaymentMethodHandler{}
}

// PaymentMethodRequest 创建/更新支付方式请求
type PaymentMethodRequest struct {
	Name string `json:"name" binding:"required,max=50" example:"HDFC Credit Card"`
	Type string `json:"type" binding:"omitempty,oneof=cash credit_card bank other" example:"credit_card"`
}

// List 获取支付方式列表
// @Summary 获取支付方式列表
// @Tags 支付方式
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Success 200 {object} Response{data=[]models.PaymentMethod} "获取成功"
// @Failure 403 {object} Response "不是该家庭成员"
// @Router /api/v1/families/{id}/payment-methods [get]
func (h *PaymentMethodHandler) List(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	var methods []models.PaymentMethod
	if err := database.DB.
		Where("family_id = ?", familyID).
		Order("id ASC").
		Find(&methods).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "获取支付方式失败"))
		return
	}

	Success(c, methods)
}

// Create 创建支付方式
// @Summary 创建支付方式
// @Tags 支付方式
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Param request body PaymentMethodRequest true "支付方式信息"
// @Success 200 {object} Response{data=models.PaymentMethod} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/families/{id}/payment-methods [post]
func (h *PaymentMethodHandler) Create(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	if req.Type == "" {
		req.Type = models.PaymentTypeOther
	}

	method := models.PaymentMethod{
		FamilyID: familyID,
		Name:     req.Name,
		Type:     req.Type,
	}
	if err := database.DB.Create(&method).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建支付方式失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", method)
}

// Update 更新支付方式
// @Summary 更新支付方式
// @Tags 支付方式
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Param pid path int true "支付方式ID"
// @Param request body PaymentMethodRequest true "支付方式信息"
// @Success 200 {object} Response{data=models.PaymentMethod} "更新成功"
// @Failure 404 {object} Response "支付方式不存在"
// @Router /api/v1/families/{id}/payment-methods/{pid} [put]
func (h *PaymentMethodHandler) Update(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	pid, err := strconv.ParseUint(c.Param("pid"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的支付方式ID")
		return
	}

	var method models.PaymentMethod
	if err := database.DB.
		Where("id = ? AND family_id = ?", uint(pid), familyID).
		First(&method).Error; err != nil {
		NotFound(c, "支付方式不存在")
		return
	}

	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	updates := map[string]interface{}{"name": req.Name}
	if req.Type != "" {
		updates["type"] = req.Type
	}
	if err := database.DB.Model(&method).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新支付方式失败"))
		return
	}

	database.DB.First(&method, method.ID)
	SuccessWithMessage(c, "更新成功", method)
}

// Delete 删除支付方式
// @Summary 删除支付方式
// @Description 删除支付方式不会级联删除消费记录
// @Tags 支付方式
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Param pid path int true "支付方式ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "支付方式不存在"
// @Router /api/v1/families/{id}/payment-methods/{pid} [delete]
func (h *PaymentMethodHandler) Delete(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	pid, err := strconv.ParseUint(c.Param("pid"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的支付方式ID")
		return
	}

	result := database.DB.
		Where("id = ? AND family_id = ?", uint(pid), familyID).
		Delete(&models.PaymentMethod{})
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "删除支付方式失败"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "支付方式不存在")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
