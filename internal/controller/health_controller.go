package controller

import (
	"net/http"

	"brainforge/internal/client"
	"brainforge/internal/service"
	"brainforge/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	API        *client.API
	Store      *service.CourseStore
	Quizzes    *service.QuizService
	Flashcards *service.FlashcardService
}

func NewHealthController(api *client.API, store *service.CourseStore, quizzes *service.QuizService, flashcards *service.FlashcardService) *HealthController {
	return &HealthController{API: api, Store: store, Quizzes: quizzes, Flashcards: flashcards}
}

// @Summary 健康检查
// @Description 检查服务状态，后端不可用时仍返回 200，components.backend 为 down
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	backend := "up"
	res := c.API.Health(ctx.Request.Context())
	if !res.Success {
		backend = "down"
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"backend": backend,
		},
		"backend_url":          c.API.Client().BaseURL(),
		"backend_error":        res.Error,
		"courses_loaded":       len(c.Store.Courses()),
		"course_notice":        c.Store.Error(),
		"active_quiz_sessions": c.Quizzes.ActiveSessions(),
		"active_reviews":       c.Flashcards.ActiveReviews(),
	})
}

// Debug 透传后端 /debug 与 /debug/db
func (c *HealthController) Debug(ctx *gin.Context) {
	debug := c.API.Debug(ctx.Request.Context())
	db := c.API.DebugDB(ctx.Request.Context())

	if !debug.Success && !db.Success {
		util.ErrorWithData(ctx, http.StatusBadGateway, debug.Error, gin.H{"debug": debug, "db": db})
		return
	}
	util.Success(ctx, gin.H{"debug": debug, "db": db})
}
