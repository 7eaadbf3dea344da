package controller

import (
	"brainforge/internal/service"
	"brainforge/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

type markModuleRequest struct {
	// 缺省视为完成
	Complete *bool `json:"complete"`
}

func (c *ProgressController) GetProgress(ctx *gin.Context) {
	rec, err := c.ProgressService.GetProgress(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

// @Summary 标记模块完成
// @Tags 进度
// @Accept json
// @Produce json
// @Param id path string true "课程ID"
// @Param module path int true "模块编号"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/progress/{module} [put]
func (c *ProgressController) MarkModule(ctx *gin.Context) {
	module, ok := util.ParsePositiveInt(ctx.Param("module"))
	if !ok {
		util.BadRequest(ctx, "Invalid module number")
		return
	}

	var req markModuleRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}
	complete := req.Complete == nil || *req.Complete

	rec, err := c.ProgressService.MarkModule(ctx.Request.Context(), ctx.Param("id"), module, complete)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

func (c *ProgressController) ResetModule(ctx *gin.Context) {
	module, ok := util.ParsePositiveInt(ctx.Param("module"))
	if !ok {
		util.BadRequest(ctx, "Invalid module number")
		return
	}

	rec, err := c.ProgressService.MarkModule(ctx.Request.Context(), ctx.Param("id"), module, false)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

func (c *ProgressController) ResetProgress(ctx *gin.Context) {
	rec, err := c.ProgressService.ResetProgress(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}
