package controller

import (
	"strconv"

	"course_platform_backend/internal/service"
	"course_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContactController struct {
	ContactService *service.ContactService
}

func NewContactController(contactService *service.ContactService) *ContactController {
	return &ContactController{ContactService: contactService}
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// @Summary 提交联系表单
// @Description 保存留言并返回预填文案的 WhatsApp 跳转链接
// @Tags 联系
// @Accept json
// @Produce json
// @Param contact body ContactRequest true "联系内容"
// @Success 201 {object} util.Response
// @Router /api/contact [post]
func (c *ContactController) Submit(ctx *gin.Context) {
	var req ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	// 登录用户带上归属，匿名提交 userID 为 0
	var userID uint
	if user := util.GetUserFromContext(ctx); user != nil {
		userID = user.UserID
	}

	submission, link, err := c.ContactService.Submit(req.Name, req.Message, userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"submission":  submission,
		"whatsappUrl": link,
	})
}

// @Summary 管理员查看联系记录
// @Tags 联系
// @Security BearerAuth
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.PageResponse
// @Router /api/admin/contacts [get]
func (c *ContactController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	submissions, total, err := c.ContactService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.SuccessPage(ctx, submissions, total, page, limit)
}

// @Summary 管理员删除联系记录
// @Tags 联系
// @Security BearerAuth
// @Produce json
// @Param id path string true "记录ID"
// @Success 200 {object} util.Response
// @Router /api/admin/contacts/{id} [delete]
func (c *ContactController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.ContactService.Delete(id); err != nil {
		if err == util.ErrContactNotFound {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
