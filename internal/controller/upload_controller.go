package controller

import (
	"brainforge/internal/model"
	"brainforge/internal/service"
	"brainforge/internal/util"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	UploadService *service.UploadService
}

func NewUploadController(uploadService *service.UploadService) *UploadController {
	return &UploadController{UploadService: uploadService}
}

// @Summary 上传文档生成课程
// @Description multipart/form-data，file 为文档，其余字段为生成参数，缺省使用默认设置
// @Tags 上传
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "文档"
// @Param difficulty formData string false "beginner | intermediate | advanced | expert"
// @Param modules formData int false "模块数"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response "Bad Request"
// @Failure 502 {object} util.Response "Backend unavailable"
// @Router /api/upload [post]
func (c *UploadController) Upload(ctx *gin.Context) {
	settings := model.DefaultCourseSettings()
	if err := ctx.ShouldBind(&settings); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "No file provided")
		return
	}
	if file.Size > util.MaxUploadSize {
		util.BadRequest(ctx, util.ErrInvalidUpload.Error()+": file too large")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	result, res := c.UploadService.Upload(ctx.Request.Context(), file.Filename, src, settings)
	if !res.Success {
		respondResult(ctx, res)
		return
	}
	util.Created(ctx, result)
}

type generateCourseRequest struct {
	ContentID string               `json:"content_id" binding:"required"`
	Settings  model.CourseSettings `json:"settings"`
}

func (c *UploadController) GenerateCourse(ctx *gin.Context) {
	var req generateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, res := c.UploadService.GenerateCourse(ctx.Request.Context(), req.ContentID, req.Settings)
	if !res.Success {
		respondResult(ctx, res)
		return
	}
	util.Created(ctx, result)
}

func (c *UploadController) SettingsOptions(ctx *gin.Context) {
	opts, local := c.UploadService.SettingsOptions(ctx.Request.Context())
	util.Success(ctx, gin.H{
		"options": opts,
		"local":   local,
	})
}
