package controller

import (
	"errors"
	"net/http"

	"brainforge/internal/quiz"
	"brainforge/internal/service"
	"brainforge/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

type startQuizRequest struct {
	CourseID string `json:"course_id" binding:"required"`
	// 0 或缺省表示课程综合测验
	ModuleNumber int `json:"module_number" binding:"min=0"`
}

type answerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// quizError 状态机错误映射为 HTTP 状态码
func quizError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, quiz.ErrNoAnswerSelected), errors.Is(err, quiz.ErrInvalidAnswer):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, quiz.ErrNotInProgress), errors.Is(err, quiz.ErrNotCompleted):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, quiz.ErrEmptyQuiz):
		util.BadGateway(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary 开始测验
// @Description module_number 为 0 时开始课程综合测验；没有真实题目时使用示例题并返回 notice
// @Tags 测验
// @Accept json
// @Produce json
// @Param request body startQuizRequest true "课程与模块"
// @Success 201 {object} util.Response
// @Router /api/quiz-sessions [post]
func (c *QuizController) StartQuiz(ctx *gin.Context) {
	var req startQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.QuizService.Start(ctx.Request.Context(), req.CourseID, req.ModuleNumber)
	if err != nil {
		quizError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

func (c *QuizController) GetSession(ctx *gin.Context) {
	view, err := c.QuizService.Get(ctx.Param("sid"))
	if err != nil {
		quizError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

func (c *QuizController) Answer(ctx *gin.Context) {
	var req answerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.QuizService.Answer(ctx.Param("sid"), req.Answer)
	if err != nil {
		quizError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

func (c *QuizController) Next(ctx *gin.Context) {
	c.transition(ctx, c.QuizService.Next)
}

func (c *QuizController) Back(ctx *gin.Context) {
	c.transition(ctx, c.QuizService.Back)
}

func (c *QuizController) Retake(ctx *gin.Context) {
	c.transition(ctx, c.QuizService.Retake)
}

func (c *QuizController) transition(ctx *gin.Context, op func(string) (service.QuizSessionView, error)) {
	view, err := op(ctx.Param("sid"))
	if err != nil {
		quizError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary 测验结果
// @Tags 测验
// @Produce json
// @Param sid path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/quiz-sessions/{sid}/result [get]
func (c *QuizController) Result(ctx *gin.Context) {
	res, err := c.QuizService.Result(ctx.Param("sid"))
	if err != nil {
		quizError(ctx, err)
		return
	}
	util.Success(ctx, res)
}
