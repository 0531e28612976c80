package api

import (
	"strconv"

	"github.com/bagy391/budget-tracker/database"
	"github.com/bagy391/budget-tracker/middleware"
	"github.com/bagy391/budget-tracker/models"

	"github.com/gin-gonic/gin"
)

// familyIDParam 解析路径中的家庭ID
func familyIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, "无效的家庭ID")
		return 0, false
	}
	return uint(id), true
}

// requireFamilyMember 校验当前用户是该家庭成员（所有家庭域路由的访问前提）。
// 不是成员时返回 403 并终止请求。
func requireFamilyMember(c *gin.Context, familyID uint) (*models.FamilyMember, bool) {
	userID := middleware.GetCurrentUserID(c)

	var member models.FamilyMember
	err := database.DB.
		Where("family_id = ? AND user_id = ?", familyID, userID).
		First(&member).Error
	if err != nil {
		Forbidden(c, "您不是该家庭的成员")
		return nil, false
	}
	return &member, true
}

// requireFamilyAdmin 校验当前用户是该家庭管理员
func requireFamilyAdmin(c *gin.Context, familyID uint) (*models.FamilyMember, bool) {
	member, ok := requireFamilyMember(c, familyID)
	if !ok {
		return nil, false
	}
	if !member.IsAdmin() {
		Forbidden(c, "仅家庭管理员可执行该操作")
		return nil, false
	}
	return member, true
}
