package api

import (
	"strconv"

	"github.com/bagy391/budget-tracker/database"
	"github.com/bagy391/budget-tracker/models"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 类别处理器
type CategoryHandler struct{}

// NewCategoryHandler 创建类别处理器
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CategoryRequest 创建/更新类别请求
type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=50" example:"Food & Dining"`
	Icon string `json:"icon" binding:"max=10" example:"🍔"`
	Type string `json:"type" binding:"omitempty,oneof=expense income" example:"expense"`
}

// List 获取类别列表
// @Summary 获取类别列表
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Failure 403 {object} Response "不是该家庭成员"
// @Router /api/v1/families/{id}/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	var categories []models.Category
	if err := database.DB.
		Where("family_id = ?", familyID).
		Order("id ASC").
		Find(&categories).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "获取类别失败"))
		return
	}

	Success(c, categories)
}

// Create 创建类别
// @Summary 创建类别
// @Tags 类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Param request body CategoryRequest true "类别信息"
// @Success 200 {object} Response{data=models.Category} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/families/{id}/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	if req.Icon == "" {
		req.Icon = "📦"
	}
	if req.Type == "" {
		req.Type = models.CategoryTypeExpense
	}

	category := models.Category{
		FamilyID: familyID,
		Name:     req.Name,
		Icon:     req.Icon,
		Type:     req.Type,
	}
	if err := database.DB.Create(&category).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建类别失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", category)
}

// Update 更新类别
// @Summary 更新类别
// @Tags 类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Param cid path int true "类别ID"
// @Param request body CategoryRequest true "类别信息"
// @Success 200 {object} Response{data=models.Category} "更新成功"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/families/{id}/categories/{cid} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	cid, err := strconv.ParseUint(c.Param("cid"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的类别ID")
		return
	}

	var category models.Category
	if err := database.DB.
		Where("id = ? AND family_id = ?", uint(cid), familyID).
		First(&category).Error; err != nil {
		NotFound(c, "类别不存在")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	updates := map[string]interface{}{"name": req.Name}
	if req.Icon != "" {
		updates["icon"] = req.Icon
	}
	if req.Type != "" {
		updates["type"] = req.Type
	}
	if err := database.DB.Model(&category).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新类别失败"))
		return
	}

	database.DB.First(&category, category.ID)
	SuccessWithMessage(c, "更新成功", category)
}

// Delete 删除类别
// @Summary 删除类别
// @Description 删除类别不会级联删除消费记录，相关记录在展示侧回退为 Uncategorized
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Param cid path int true "类别ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/families/{id}/categories/{cid} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	cid, err := strconv.ParseUint(c.Param("cid"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的类别ID")
		return
	}

	result := database.DB.
		Where("id = ? AND family_id = ?", uint(cid), familyID).
		Delete(&models.Category{})
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "删除类别失败"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "类别不存在")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
