package controller

import (
	"errors"

	"course_platform_backend/internal/model"
	"course_platform_backend/internal/service"
	"course_platform_backend/internal/util"
	"course_platform_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CatalogService    *service.CatalogService
	ProgressService   *service.ProgressService
	NavigationService *service.NavigationService
}

func NewCourseController(catalog *service.CatalogService, progress *service.ProgressService, navigation *service.NavigationService) *CourseController {
	return &CourseController{
		CatalogService:    catalog,
		ProgressService:   progress,
		NavigationService: navigation,
	}
}

// CourseDetailResponse 课程详情：目录树 + 进度 + 导航游标，一次给全
// swagger:model CourseDetailResponse
type CourseDetailResponse struct {
	Course          *model.Course            `json:"course"`
	CompletedVideos []string                 `json:"completedVideos"`
	ModuleProgress  map[string]int           `json:"moduleProgress"`
	CourseProgress  int                      `json:"courseProgress"`
	Navigation      service.NavigationCursor `json:"navigation"`
}

// ListCourses godoc
// @Summary 课程列表
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course} "成功"
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.CatalogService.ListCourses(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary 课程详情
// @Description 返回课程目录树、当前用户的完成进度与导航游标
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path string true "课程ID"
// @Success 200 {object} util.Response{data=CourseDetailResponse} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{courseId} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	course, _ := c.loadCourse(ctx)
	if course == nil {
		return
	}

	completed, err := c.ProgressService.Load(ctx.Request.Context(), claims.UserID, course.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	cursor, err := c.NavigationService.Current(ctx.Request.Context(), claims.UserID, course)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	moduleProgress := make(map[string]int, len(course.Modules))
	for i := range course.Modules {
		moduleProgress[course.Modules[i].ID] = service.CalculateModuleProgress(course, course.Modules[i].ID, completed)
	}

	util.Success(ctx, CourseDetailResponse{
		Course:          course,
		CompletedVideos: completed,
		ModuleProgress:  moduleProgress,
		CourseProgress:  service.CalculateCourseProgress(course, completed),
		Navigation:      cursor,
	})
}

// GetProgress godoc
// @Summary 课程进度
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path string true "课程ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{courseId}/progress [get]
func (c *CourseController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	course, _ := c.loadCourse(ctx)
	if course == nil {
		return
	}

	completed, err := c.ProgressService.Load(ctx.Request.Context(), claims.UserID, course.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	moduleProgress := make(map[string]int, len(course.Modules))
	for i := range course.Modules {
		moduleProgress[course.Modules[i].ID] = service.CalculateModuleProgress(course, course.Modules[i].ID, completed)
	}

	util.Success(ctx, gin.H{
		"completedVideos": completed,
		"moduleProgress":  moduleProgress,
		"courseProgress":  service.CalculateCourseProgress(course, completed),
	})
}

// MarkVideoCompleted godoc
// @Summary 标记视频完成
// @Description 幂等：重复标记同一视频不改变完成集合
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path string true "课程ID"
// @Param   videoId path string true "视频ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "课程或视频不存在"
// @Router /api/courses/{courseId}/videos/{videoId}/complete [post]
func (c *CourseController) MarkVideoCompleted(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	course, _ := c.loadCourse(ctx)
	if course == nil {
		return
	}

	// 完成集合只收目录树里存在的视频ID
	videoID := ctx.Param("videoId")
	if _, video := course.FindVideo(videoID); video == nil {
		util.NotFound(ctx, util.ErrVideoNotFound.Error())
		return
	}

	completed, err := c.ProgressService.MarkCompleted(ctx.Request.Context(), claims.UserID, course.ID, videoID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	monitoring.VideoCompletionCounter.WithLabelValues(course.ID).Inc()

	util.Success(ctx, gin.H{
		"completedVideos": completed,
		"courseProgress":  service.CalculateCourseProgress(course, completed),
	})
}

// GetNavigation godoc
// @Summary 当前导航游标
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path string true "课程ID"
// @Success 200 {object} util.Response{data=service.NavigationCursor} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{courseId}/navigation [get]
func (c *CourseController) GetNavigation(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	course, _ := c.loadCourse(ctx)
	if course == nil {
		return
	}

	cursor, err := c.NavigationService.Current(ctx.Request.Context(), claims.UserID, course)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, cursor)
}

// SelectModule godoc
// @Summary 选中章节
// @Description 命中后当前视频切到该章节第一个视频；章节不存在返回404，游标不变
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path string true "课程ID"
// @Param   moduleId path string true "章节ID"
// @Success 200 {object} util.Response{data=service.NavigationCursor} "成功"
// @Failure 404 {object} util.Response "课程或章节不存在"
// @Router /api/courses/{courseId}/navigation/module/{moduleId} [put]
func (c *CourseController) SelectModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	course, _ := c.loadCourse(ctx)
	if course == nil {
		return
	}

	cursor, found, err := c.NavigationService.SelectModule(ctx.Request.Context(), claims.UserID, course, ctx.Param("moduleId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if !found {
		util.NotFound(ctx, util.ErrModuleNotFound.Error())
		return
	}

	util.Success(ctx, cursor)
}

// SelectVideo godoc
// @Summary 选中视频
// @Description 章节随视频成对切换，保证游标一致；视频不存在返回404，游标不变
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path string true "课程ID"
// @Param   videoId path string true "视频ID"
// @Success 200 {object} util.Response{data=service.NavigationCursor} "成功"
// @Failure 404 {object} util.Response "课程或视频不存在"
// @Router /api/courses/{courseId}/navigation/video/{videoId} [put]
func (c *CourseController) SelectVideo(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	course, _ := c.loadCourse(ctx)
	if course == nil {
		return
	}

	cursor, found, err := c.NavigationService.SelectVideo(ctx.Request.Context(), claims.UserID, course, ctx.Param("videoId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if !found {
		util.NotFound(ctx, util.ErrVideoNotFound.Error())
		return
	}

	util.Success(ctx, cursor)
}

// loadCourse 取路径参数里的课程，失败时已写响应，调用方判 nil 即可
func (c *CourseController) loadCourse(ctx *gin.Context) (*model.Course, error) {
	course, err := c.CatalogService.GetCourse(ctx.Request.Context(), ctx.Param("courseId"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, util.ErrCourseNotFound.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return nil, err
	}
	return course, nil
}
