package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/supportbrain/backend/internal/application/feedback"
	"github.com/supportbrain/backend/internal/infrastructure/log"
	"github.com/supportbrain/backend/internal/interfaces/http/response"
)

// AuditHandler feedback endpoints
type AuditHandler struct {
	feedback FeedbackLogger
	logger   *slog.Logger
}

// NewAuditHandler creates the handler
func NewAuditHandler(svc FeedbackLogger) *AuditHandler {
	return &AuditHandler{
		feedback: svc,
		logger:   log.NewModuleLogger("http", "audit"),
	}
}

// Log records thumbs up/down feedback on a draft
// @Summary Log agent feedback
// @Tags Audit
// @Accept json
// @Produce json
// @Param request body feedback.LogRequest true "feedback"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /audit/log [post]
func (h *AuditHandler) Log(c *gin.Context) {
	var req feedback.LogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, 400, "invalid request: "+err.Error())
		return
	}

	fb, err := h.feedback.Log(c.Request.Context(), req)
	if errors.Is(err, feedback.ErrMissingOrg) {
		response.Error(c, http.StatusBadRequest, 400, err.Error())
		return
	}
	if err != nil {
		log.FromContext(c.Request.Context(), h.logger).Error("Failed to log feedback", "error", err)
		response.Error(c, http.StatusInternalServerError, 500, "failed to log feedback")
		return
	}

	response.Success(c, gin.H{
		"status": "received",
		"id":     fb.ID,
	})
}

// List returns recent feedback of an organization
// @Summary List agent feedback
// @Tags Audit
// @Produce json
// @Param org_id query string true "organization id"
// @Param limit query int false "max entries, default 50"
// @Success 200 {object} response.Response{data=[]audit.Feedback}
// @Failure 400 {object} response.ErrorResponse
// @Router /audit/log [get]
func (h *AuditHandler) List(c *gin.Context) {
	orgID := c.Query("org_id")
	if orgID == "" {
		response.Error(c, http.StatusBadRequest, 400, "org_id is required")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.feedback.List(c.Request.Context(), orgID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, 500, "failed to list feedback")
		return
	}
	response.Success(c, entries)
}
