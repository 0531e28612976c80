package api

import (
	"strings"

	"github.com/bagy391/budget-tracker/config"
	"github.com/bagy391/budget-tracker/database"
	"github.com/bagy391/budget-tracker/middleware"
	"github.com/bagy391/budget-tracker/models"
	"github.com/bagy391/budget-tracker/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	cfg          *config.Config
	emailService *service.EmailService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		cfg:          cfg,
		emailService: service.NewEmailService(&cfg.Email),
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"test@example.com"`
	Password string `json:"password" binding:"required,min=6,max=50" example:"password123"`
	FullName string `json:"full_name" binding:"omitempty,max=100" example:"张三"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"test@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token    string      `json:"token"`
	UserInfo models.User `json:"user_info"`
}

// Register 用户注册
// @Summary 用户注册
// @Description 创建新用户账号，注册后即可登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册信息"
// @Success 200 {object} Response{data=LoginResponse} "注册成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 500 {object} Response "服务器错误"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	// 检查邮箱是否已注册
	var existingUser models.User
	if err := database.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		BadRequest(c, "该邮箱已注册")
		return
	}

	// 加密密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "密码加密失败")
		return
	}

	// 创建用户
	user := models.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建用户失败"))
		return
	}

	// 注册即登录
	token, err := middleware.GenerateToken(user.ID, user.Email, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, "生成 token 失败")
		return
	}

	SuccessWithMessage(c, "注册成功", LoginResponse{Token: token, UserInfo: user})
}

// Login 用户登录
// @Summary 用户登录
// @Description 邮箱密码登录，获取 JWT token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} Response{data=LoginResponse} "登录成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "邮箱或密码错误"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	// 查找用户
	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		Unauthorized(c, "邮箱或密码错误")
		return
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		Unauthorized(c, "邮箱或密码错误")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, "生成 token 失败")
		return
	}

	SuccessWithMessage(c, "登录成功", LoginResponse{Token: token, UserInfo: user})
}

// ProfileResponse 个人信息响应
type ProfileResponse struct {
	User            models.User `json:"user"`
	CurrentFamilyID *uint       `json:"current_family_id"` // 解析后的当前家庭
}

// GetProfile 获取个人信息
// @Summary 获取个人信息
// @Description 返回当前用户信息及解析后的当前家庭：优先使用上次选择的家庭，
// @Description 已失效（退出或被移出）则回退到最早加入的家庭
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=ProfileResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "用户不存在")
		return
	}

	Success(c, ProfileResponse{
		User:            user,
		CurrentFamilyID: resolveCurrentFamily(&user),
	})
}

// resolveCurrentFamily 解析当前家庭：保存的选择仍有效则沿用，
// 否则取最早加入的家庭；一个家庭都没有时返回 nil
func resolveCurrentFamily(user *models.User) *uint {
	if user.LastFamilyID != nil {
		var member models.FamilyMember
		err := database.DB.
			Where("family_id = ? AND user_id = ?", *user.LastFamilyID, user.ID).
			First(&member).Error
		if err == nil {
			return user.LastFamilyID
		}
	}

	var first models.FamilyMember
	if err := database.DB.
		Where("user_id = ?", user.ID).
		Order("created_at, id").
		First(&first).Error; err != nil {
		return nil
	}
	return &first.FamilyID
}

// SelectFamilyRequest 选择当前家庭请求
type SelectFamilyRequest struct {
	FamilyID uint `json:"family_id" binding:"required" example:"1"`
}

// SelectFamily 切换当前家庭
// @Summary 切换当前家庭
// @Description 持久化用户选择的家庭，后续会话默认恢复该上下文
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SelectFamilyRequest true "家庭ID"
// @Success 200 {object} Response "切换成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 403 {object} Response "不是该家庭成员"
// @Router /api/v1/me/family [put]
func (h *AuthHandler) SelectFamily(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req SelectFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 只能切到自己所属的家庭
	var member models.FamilyMember
	if err := database.DB.
		Where("family_id = ? AND user_id = ?", req.FamilyID, userID).
		First(&member).Error; err != nil {
		Forbidden(c, "您不是该家庭的成员")
		return
	}

	if err := database.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_family_id", req.FamilyID).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "切换家庭失败"))
		return
	}

	SuccessWithMessage(c, "切换成功", gin.H{"current_family_id": req.FamilyID})
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required" example:"password123"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=50" example:"newpassword456"`
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Description 校验旧密码后更新为新密码
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "新旧密码"
// @Success 200 {object} Response "修改成功"
// @Failure 400 {object} Response "旧密码错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "用户不存在")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		BadRequest(c, "旧密码错误")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "密码加密失败")
		return
	}

	if err := database.DB.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "修改密码失败"))
		return
	}

	SuccessWithMessage(c, "修改成功", nil)
}
