package handlers

import (
	"log/slog"
	"net/http"

	"github.com/azureprep/quiz-service/internal/services"
	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the quiz session state machine over HTTP. Invalid
// transitions are not HTTP errors: the service treats them as silent no-ops
// and the handler returns the unchanged session view.
type SessionHandler struct {
	BaseHandler
	sessions services.SessionService
	export   services.ExportService
}

func NewSessionHandler(sessions services.SessionService, export services.ExportService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler: NewBaseHandler(logger),
		sessions:    sessions,
		export:      export,
	}
}

func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req services.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	view, err := h.sessions.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	view, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) SelectAnswer(c *gin.Context) {
	var req services.SelectAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	view, err := h.sessions.Select(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	view, err := h.sessions.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) NextQuestion(c *gin.Context) {
	view, err := h.sessions.Next(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) RestartSession(c *gin.Context) {
	view, err := h.sessions.Restart(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) ShowHint(c *gin.Context) {
	view, err := h.sessions.ShowHint(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) SetMode(c *gin.Context) {
	var req services.SetModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	view, err := h.sessions.SetMode(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) UpdateSettings(c *gin.Context) {
	var req services.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	view, err := h.sessions.UpdateSettings(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) GetSummary(c *gin.Context) {
	summary, err := h.sessions.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *SessionHandler) ExportMissedQuestions(c *gin.Context) {
	data, err := h.export.ExportMissedQuestions(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=missed-questions.xlsx")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
