package controller

import (
	"net/http"
	"strings"

	"brainforge/internal/client"
	"brainforge/internal/service"
	"brainforge/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	Store *service.CourseStore
	API   *client.API
}

func NewCourseController(store *service.CourseStore, api *client.API) *CourseController {
	return &CourseController{Store: store, API: api}
}

func (c *CourseController) listResponse(ctx *gin.Context, courses interface{}) {
	notice := c.Store.Error()
	util.Success(ctx, util.FallbackResponse{
		Items:  courses,
		Notice: notice,
		Mock:   notice != "",
	})
}

// @Summary 最近课程
// @Description 首次访问时从后端加载，失败时返回演示课程和横幅文本
// @Tags 课程
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	c.listResponse(ctx, c.Store.EnsureLoaded(ctx.Request.Context()))
}

// @Summary 刷新课程列表
// @Tags 课程
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/courses/refresh [post]
func (c *CourseController) RefreshCourses(ctx *gin.Context) {
	c.listResponse(ctx, c.Store.Refresh(ctx.Request.Context()))
}

func (c *CourseController) SearchCourses(ctx *gin.Context) {
	c.Store.EnsureLoaded(ctx.Request.Context())
	c.listResponse(ctx, c.Store.Search(strings.TrimSpace(ctx.Query("q"))))
}

// @Summary 课程详情
// @Description mock- 前缀不访问后端；后端失败时返回演示课程
// @Tags 课程
// @Produce json
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	util.Success(ctx, c.Store.GetByID(ctx.Request.Context(), ctx.Param("id")))
}

func (c *CourseController) GetCourseByContent(ctx *gin.Context) {
	util.Success(ctx, c.Store.GetByContentID(ctx.Request.Context(), ctx.Param("contentId")))
}

// GetContent 上传后提取的原文，直接透传后端结果
func (c *CourseController) GetContent(ctx *gin.Context) {
	res := c.API.Content(ctx.Request.Context(), ctx.Param("contentId"))
	if !res.Success {
		respondResult(ctx, res)
		return
	}
	util.Success(ctx, res.Data)
}

// respondResult 把失败的后端调用转换为响应
func respondResult(ctx *gin.Context, res client.Result) {
	switch res.Kind {
	case client.KindClient:
		util.ErrorWithData(ctx, http.StatusBadRequest, res.Error, res)
	case client.KindHTTP:
		status := res.Status
		if status < 400 {
			status = http.StatusBadGateway
		}
		util.ErrorWithData(ctx, status, res.Error, res)
	default:
		util.ErrorWithData(ctx, http.StatusBadGateway, res.Error, res)
	}
}
