package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/azureprep/quiz-service/internal/models"
	"github.com/azureprep/quiz-service/internal/questionbank"
	"github.com/azureprep/quiz-service/internal/repositories"
	"github.com/azureprep/quiz-service/internal/services"
	"github.com/gin-gonic/gin"
)

// ExamHandler serves exam metadata, best-run records and exports.
type ExamHandler struct {
	BaseHandler
	bank    *questionbank.Bank
	records services.RecordService
	export  services.ExportService
}

func NewExamHandler(bank *questionbank.Bank, records services.RecordService, export services.ExportService, logger *slog.Logger) *ExamHandler {
	return &ExamHandler{
		BaseHandler: NewBaseHandler(logger),
		bank:        bank,
		records:     records,
		export:      export,
	}
}

type examInfo struct {
	Exam      string `json:"exam"`
	Title     string `json:"title"`
	Questions int    `json:"questions"`
}

func (h *ExamHandler) ListExams(c *gin.Context) {
	exams := make([]examInfo, 0)
	for _, exam := range h.bank.Exams() {
		data, _ := h.bank.Get(exam)
		exams = append(exams, examInfo{
			Exam:      exam,
			Title:     data.Meta.Title,
			Questions: len(data.Questions),
		})
	}
	c.JSON(http.StatusOK, exams)
}

func (h *ExamHandler) GetBestRecords(c *gin.Context) {
	exam := c.Param("exam")
	if _, ok := h.bank.Get(exam); !ok {
		h.RespondWithError(c, http.StatusNotFound, "exam not found", services.ErrExamNotFound)
		return
	}

	mode := models.QuizMode(c.Param("mode"))
	if mode != models.ModePractice && mode != models.ModeExam {
		h.RespondWithError(c, http.StatusBadRequest, "invalid quiz mode", services.ErrInvalidMode)
		return
	}

	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"best_time":  h.records.BestRecord(ctx, exam, mode),
		"best_score": h.records.BestScoreRecord(ctx, exam, mode),
	})
}

func (h *ExamHandler) GetSettings(c *gin.Context) {
	exam := c.Param("exam")
	if _, ok := h.bank.Get(exam); !ok {
		h.RespondWithError(c, http.StatusNotFound, "exam not found", services.ErrExamNotFound)
		return
	}
	c.JSON(http.StatusOK, h.records.Settings(c.Request.Context(), exam))
}

func (h *ExamHandler) ClearRecords(c *gin.Context) {
	exam := c.Param("exam")
	if _, ok := h.bank.Get(exam); !ok {
		h.RespondWithError(c, http.StatusNotFound, "exam not found", services.ErrExamNotFound)
		return
	}

	if !h.records.ClearRecords(c.Request.Context(), exam) {
		h.RespondWithError(c, http.StatusServiceUnavailable, "record store unavailable", nil)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "records cleared", nil)
}

func (h *ExamHandler) ExportQuestionBank(c *gin.Context) {
	data, err := h.export.ExportQuestionBank(c.Request.Context(), c.Param("exam"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+c.Param("exam")+"-questions.xlsx")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *ExamHandler) ListRuns(c *gin.Context) {
	filters := repositories.RunRecordFilters{
		Exam: c.Query("exam"),
	}
	if mode := c.Query("mode"); mode != "" {
		quizMode := models.QuizMode(mode)
		filters.Mode = &quizMode
	}
	if c.Query("perfect") == "true" {
		filters.PerfectOnly = true
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil {
		filters.Offset = offset
	}

	runs, total, err := h.records.ListRuns(c.Request.Context(), filters)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to list runs", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs, "total": total})
}
