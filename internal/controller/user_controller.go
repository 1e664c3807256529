package controller

import (
	"course_platform_backend/internal/service"
	"course_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

// @Summary 更新个人资料
// @Tags 用户
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param profile body UpdateProfileRequest true "资料"
// @Success 200 {object} util.Response
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	updated, err := c.UserService.UpdateProfile(user.UserID, req.Name)
	if err != nil {
		if err == util.ErrUserNotFound {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, updated)
}

// @Summary 上传头像
// @Tags 用户
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "头像文件"
// @Success 200 {object} util.Response
// @Router /api/user/avatar/upload [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "avatar file is required")
		return
	}

	photoURL, err := c.UserService.UploadAvatar(ctx.Request.Context(), user.UserID, file)
	if err != nil {
		if err == util.ErrInvalidImageType {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"photoUrl": photoURL})
}
