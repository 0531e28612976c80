package api

import (
	"strconv"
	"strings"

	"github.com/bagy391/budget-tracker/config"
	"github.com/bagy391/budget-tracker/database"
	"github.com/bagy391/budget-tracker/middleware"
	"github.com/bagy391/budget-tracker/models"
	"github.com/bagy391/budget-tracker/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FamilyHandler 家庭管理处理器
type FamilyHandler struct {
	emailService *service.EmailService
}

// NewFamilyHandler 创建家庭管理处理器
func NewFamilyHandler(cfg *config.Config) *FamilyHandler {
	return &FamilyHandler{
		emailService: service.NewEmailService(&cfg.Email),
	}
}

// CreateFamilyRequest 创建家庭请求
type CreateFamilyRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"我们家"`
}

// FamilyInfo 家庭信息（带当前用户的角色）
type FamilyInfo struct {
	models.Family
	UserRole string `json:"user_role"`
}

// Create 创建家庭
// @Summary 创建家庭
// @Description 创建家庭并把当前用户设为管理员，同时初始化默认类别和支付方式
// @Tags 家庭
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateFamilyRequest true "家庭信息"
// @Success 200 {object} Response{data=FamilyInfo} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/families [post]
func (h *FamilyHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	family := models.Family{Name: strings.TrimSpace(req.Name), CreatedBy: userID}

	// 家庭、成员关系、默认数据在一个事务里建好
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&family).Error; err != nil {
			return err
		}
		member := models.FamilyMember{FamilyID: family.ID, UserID: userID, Role: models.RoleAdmin}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		cats := models.DefaultCategories(family.ID)
		if err := tx.Create(&cats).Error; err != nil {
			return err
		}
		pms := models.DefaultPaymentMethods(family.ID)
		return tx.Create(&pms).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "创建家庭失败"))
		return
	}

	// 首个家庭自动设为当前家庭
	database.DB.Model(&models.User{}).
		Where("id = ? AND last_family_id IS NULL", userID).
		Update("last_family_id", family.ID)

	SuccessWithMessage(c, "创建成功", FamilyInfo{Family: family, UserRole: models.RoleAdmin})
}

// List 获取我的家庭列表
// @Summary 获取我的家庭列表
// @Tags 家庭
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]FamilyInfo} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/families [get]
func (h *FamilyHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var memberships []models.FamilyMember
	if err := database.DB.
		Preload("Family").
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&memberships).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "获取家庭列表失败"))
		return
	}

	list := make([]FamilyInfo, 0, len(memberships))
	for _, m := range memberships {
		list = append(list, FamilyInfo{Family: m.Family, UserRole: m.Role})
	}
	Success(c, list)
}

// Delete 删除家庭
// @Summary 删除家庭
// @Description 仅管理员可删除，家庭域数据（消费、收入、预算、类别、支付方式、成员关系）一并删除
// @Tags 家庭
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Success 200 {object} Response "删除成功"
// @Failure 403 {object} Response "无权限"
// @Router /api/v1/families/{id} [delete]
func (h *FamilyHandler) Delete(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyAdmin(c, familyID); !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&models.Expense{}, &models.Income{}, &models.Budget{},
			&models.Category{}, &models.PaymentMethod{}, &models.FamilyMember{},
		} {
			if err := tx.Where("family_id = ?", familyID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Family{}, familyID).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "删除家庭失败"))
		return
	}

	// 清掉指向该家庭的当前家庭选择
	database.DB.Model(&models.User{}).
		Where("last_family_id = ?", familyID).
		Update("last_family_id", nil)

	SuccessWithMessage(c, "删除成功", nil)
}

// MemberInfo 成员信息（带用户资料）
type MemberInfo struct {
	models.FamilyMember
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// ListMembers 获取家庭成员列表
// @Summary 获取家庭成员列表
// @Tags 家庭
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Success 200 {object} Response{data=[]MemberInfo} "获取成功"
// @Failure 403 {object} Response "不是该家庭成员"
// @Router /api/v1/families/{id}/members [get]
func (h *FamilyHandler) ListMembers(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	var members []models.FamilyMember
	if err := database.DB.
		Preload("User").
		Where("family_id = ?", familyID).
		Order("created_at, id").
		Find(&members).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "获取成员列表失败"))
		return
	}

	list := make([]MemberInfo, 0, len(members))
	for _, m := range members {
		list = append(list, MemberInfo{
			FamilyMember: m,
			Email:        m.User.Email,
			FullName:     m.User.FullName,
		})
	}
	Success(c, list)
}

// AddMemberRequest 添加成员请求
type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email" example:"member@example.com"`
}

// AddMember 按邮箱添加成员
// @Summary 添加家庭成员
// @Description 按注册邮箱把用户加入家庭，新成员角色为 member；邮件服务可用时发送通知
// @Tags 家庭
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Param request body AddMemberRequest true "成员邮箱"
// @Success 200 {object} Response{data=MemberInfo} "添加成功"
// @Failure 400 {object} Response "用户不存在或已是成员"
// @Failure 403 {object} Response "不是该家庭成员"
// @Router /api/v1/families/{id}/members [post]
func (h *FamilyHandler) AddMember(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	actor, ok := requireFamilyMember(c, familyID)
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 被加的用户必须已注册
	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		BadRequest(c, "用户不存在，请先注册")
		return
	}

	// 不能重复添加
	var existing models.FamilyMember
	if err := database.DB.
		Where("family_id = ? AND user_id = ?", familyID, user.ID).
		First(&existing).Error; err == nil {
		BadRequest(c, "该用户已是家庭成员")
		return
	}

	member := models.FamilyMember{FamilyID: familyID, UserID: user.ID, Role: models.RoleMember}
	if err := database.DB.Create(&member).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "添加成员失败"))
		return
	}

	// 通知邮件失败不影响添加结果
	var family models.Family
	var inviter models.User
	if database.DB.First(&family, familyID).Error == nil &&
		database.DB.First(&inviter, actor.UserID).Error == nil {
		_ = h.emailService.SendFamilyInviteEmail(user.Email, family.Name, inviter.FullName)
	}

	SuccessWithMessage(c, "添加成功", MemberInfo{
		FamilyMember: member,
		Email:        user.Email,
		FullName:     user.FullName,
	})
}

// UpdateMemberRoleRequest 修改成员角色请求
type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=member admin" example:"admin"`
}

// UpdateMemberRole 修改成员角色
// @Summary 修改成员角色
// @Description 仅管理员可把成员提升为 admin 或降回 member
// @Tags 家庭
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Param uid path int true "成员用户ID"
// @Param request body UpdateMemberRoleRequest true "新角色"
// @Success 200 {object} Response "修改成功"
// @Failure 403 {object} Response "无权限"
// @Router /api/v1/families/{id}/members/{uid}/role [put]
func (h *FamilyHandler) UpdateMemberRole(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyAdmin(c, familyID); !ok {
		return
	}

	targetID, err := strconv.ParseUint(c.Param("uid"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的用户ID")
		return
	}

	var req UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	result := database.DB.Model(&models.FamilyMember{}).
		Where("family_id = ? AND user_id = ?", familyID, uint(targetID)).
		Update("role", req.Role)
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "修改角色失败"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "成员不存在")
		return
	}

	SuccessWithMessage(c, "修改成功", nil)
}

// RemoveMember 移除家庭成员
// @Summary 移除家庭成员
// @Description 仅管理员可移除成员；成员已记录的收支保留在家庭内
// @Tags 家庭
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Param uid path int true "成员用户ID"
// @Success 200 {object} Response "移除成功"
// @Failure 403 {object} Response "无权限"
// @Router /api/v1/families/{id}/members/{uid} [delete]
func (h *FamilyHandler) RemoveMember(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	admin, ok := requireFamilyAdmin(c, familyID)
	if !ok {
		return
	}

	targetID, err := strconv.ParseUint(c.Param("uid"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的用户ID")
		return
	}
	if uint(targetID) == admin.UserID {
		BadRequest(c, "不能移除自己")
		return
	}

	result := database.DB.
		Where("family_id = ? AND user_id = ?", familyID, uint(targetID)).
		Delete(&models.FamilyMember{})
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "移除成员失败"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "成员不存在")
		return
	}

	// 被移出的用户若把该家庭设为当前家庭，则清除
	database.DB.Model(&models.User{}).
		Where("id = ? AND last_family_id = ?", uint(targetID), familyID).
		Update("last_family_id", nil)

	SuccessWithMessage(c, "移除成功", nil)
}
