package controller

import (
	"context"
	"errors"

	"brainforge/internal/flashcard"
	"brainforge/internal/service"
	"brainforge/internal/util"

	"github.com/gin-gonic/gin"
)

type FlashcardController struct {
	FlashcardService *service.FlashcardService
}

func NewFlashcardController(flashcardService *service.FlashcardService) *FlashcardController {
	return &FlashcardController{FlashcardService: flashcardService}
}

type startReviewRequest struct {
	CourseID string `json:"course_id" binding:"required"`
}

type modeRequest struct {
	Mode flashcard.Mode `json:"mode" binding:"required"`
}

func reviewError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrReviewNotFound):
		util.NotFound(ctx)
	case errors.Is(err, flashcard.ErrInvalidMode):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, flashcard.ErrNoCard):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

func (c *FlashcardController) StartReview(ctx *gin.Context) {
	var req startReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.FlashcardService.Start(ctx.Request.Context(), req.CourseID)
	if err != nil {
		reviewError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

func (c *FlashcardController) GetReview(ctx *gin.Context) {
	c.do(ctx, c.FlashcardService.Get)
}

func (c *FlashcardController) Next(ctx *gin.Context) {
	c.do(ctx, c.FlashcardService.Next)
}

func (c *FlashcardController) Prev(ctx *gin.Context) {
	c.do(ctx, c.FlashcardService.Prev)
}

func (c *FlashcardController) Flip(ctx *gin.Context) {
	c.do(ctx, c.FlashcardService.Flip)
}

func (c *FlashcardController) Shuffle(ctx *gin.Context) {
	c.do(ctx, c.FlashcardService.Shuffle)
}

func (c *FlashcardController) MarkStudied(ctx *gin.Context) {
	c.do(ctx, c.FlashcardService.MarkStudied)
}

func (c *FlashcardController) MarkDifficult(ctx *gin.Context) {
	c.do(ctx, c.FlashcardService.MarkDifficult)
}

func (c *FlashcardController) ResetProgress(ctx *gin.Context) {
	c.do(ctx, c.FlashcardService.ResetProgress)
}

func (c *FlashcardController) SetMode(ctx *gin.Context) {
	var req modeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.FlashcardService.SetMode(ctx.Request.Context(), ctx.Param("rid"), req.Mode)
	if err != nil {
		reviewError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

func (c *FlashcardController) do(ctx *gin.Context, op func(context.Context, string) (service.ReviewView, error)) {
	view, err := op(ctx.Request.Context(), ctx.Param("rid"))
	if err != nil {
		reviewError(ctx, err)
		return
	}
	util.Success(ctx, view)
}
