package handlers

import (
	"log/slog"

	"github.com/azureprep/quiz-service/internal/questionbank"
	"github.com/azureprep/quiz-service/internal/services"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	sessionHandler *SessionHandler
	examHandler    *ExamHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	bank *questionbank.Bank,
	logger *slog.Logger,
) *HandlerManager {
	return &HandlerManager{
		sessionHandler: NewSessionHandler(serviceManager.Session(), serviceManager.Export(), logger),
		examHandler:    NewExamHandler(bank, serviceManager.Record(), serviceManager.Export(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.sessionHandler.CreateSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.POST("/:id/select", hm.sessionHandler.SelectAnswer)
			sessions.POST("/:id/submit", hm.sessionHandler.SubmitAnswer)
			sessions.POST("/:id/next", hm.sessionHandler.NextQuestion)
			sessions.POST("/:id/restart", hm.sessionHandler.RestartSession)
			sessions.POST("/:id/hint", hm.sessionHandler.ShowHint)
			sessions.PUT("/:id/mode", hm.sessionHandler.SetMode)
			sessions.PUT("/:id/settings", hm.sessionHandler.UpdateSettings)
			sessions.GET("/:id/summary", hm.sessionHandler.GetSummary)
			sessions.GET("/:id/missed/export", hm.sessionHandler.ExportMissedQuestions)
		}

		exams := v1.Group("/exams")
		{
			exams.GET("", hm.examHandler.ListExams)
			exams.GET("/:exam/best/:mode", hm.examHandler.GetBestRecords)
			exams.GET("/:exam/settings", hm.examHandler.GetSettings)
			exams.GET("/:exam/export", hm.examHandler.ExportQuestionBank)
			exams.DELETE("/:exam/records", hm.examHandler.ClearRecords)
		}

		v1.GET("/runs", hm.examHandler.ListRuns)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "quiz-service",
		})
	})
}
