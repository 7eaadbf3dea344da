package app

import (
	"brainforge/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.GET("/debug", c.health.Debug)
	}

	a.registerCourseRoutes(api, c)
	a.registerQuizRoutes(api, c)
	a.registerFlashcardRoutes(api, c)
	a.registerUploadRoutes(api, c)
}

func (a *App) registerCourseRoutes(api *gin.RouterGroup, c *controllers) {
	courses := api.Group("/courses")
	{
		courses.GET("", c.course.ListCourses)
		courses.POST("/refresh", c.course.RefreshCourses)
		courses.GET("/search", c.course.SearchCourses)
		courses.GET("/content/:contentId", c.course.GetCourseByContent)
		courses.GET("/:id", c.course.GetCourse)

		// 本地进度
		courses.GET("/:id/progress", c.progress.GetProgress)
		courses.DELETE("/:id/progress", c.progress.ResetProgress)
		courses.PUT("/:id/progress/:module", c.progress.MarkModule)
		courses.DELETE("/:id/progress/:module", c.progress.ResetModule)
	}

	api.GET("/content/:contentId", c.course.GetContent)
}

func (a *App) registerQuizRoutes(api *gin.RouterGroup, c *controllers) {
	quiz := api.Group("/quiz-sessions")
	{
		quiz.POST("", c.quiz.StartQuiz)
		quiz.GET("/:sid", c.quiz.GetSession)
		quiz.POST("/:sid/answer", c.quiz.Answer)
		quiz.POST("/:sid/next", c.quiz.Next)
		quiz.POST("/:sid/back", c.quiz.Back)
		quiz.POST("/:sid/retake", c.quiz.Retake)
		quiz.GET("/:sid/result", c.quiz.Result)
	}
}

func (a *App) registerFlashcardRoutes(api *gin.RouterGroup, c *controllers) {
	reviews := api.Group("/flashcard-reviews")
	{
		reviews.POST("", c.flashcard.StartReview)
		reviews.GET("/:rid", c.flashcard.GetReview)
		reviews.POST("/:rid/next", c.flashcard.Next)
		reviews.POST("/:rid/prev", c.flashcard.Prev)
		reviews.POST("/:rid/flip", c.flashcard.Flip)
		reviews.POST("/:rid/shuffle", c.flashcard.Shuffle)
		reviews.POST("/:rid/mode", c.flashcard.SetMode)
		reviews.POST("/:rid/studied", c.flashcard.MarkStudied)
		reviews.POST("/:rid/difficult", c.flashcard.MarkDifficult)
		reviews.POST("/:rid/reset", c.flashcard.ResetProgress)
	}
}

func (a *App) registerUploadRoutes(api *gin.RouterGroup, c *controllers) {
	api.POST("/upload", c.upload.Upload)
	api.POST("/generate-course", c.upload.GenerateCourse)
	api.GET("/course-settings/options", c.upload.SettingsOptions)
}
