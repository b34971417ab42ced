package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supportbrain/backend/internal/application/assist"
	"github.com/supportbrain/backend/internal/domain/knowledge"
	"github.com/supportbrain/backend/internal/infrastructure/log"
	"github.com/supportbrain/backend/internal/interfaces/http/response"
)

// defaultWidgetOrg org used when the widget URL carries no org_id
const defaultWidgetOrg = "1"

// InferenceHandler suggestion endpoints
type InferenceHandler struct {
	suggester Suggester
	widget    WidgetRunner
	logger    *slog.Logger
}

// NewInferenceHandler creates the handler
func NewInferenceHandler(suggester Suggester, widget WidgetRunner) *InferenceHandler {
	return &InferenceHandler{
		suggester: suggester,
		widget:    widget,
		logger:    log.NewModuleLogger("http", "inference"),
	}
}

// Suggest generates a reply draft for a ticket
// @Summary Generate a reply suggestion
// @Tags Inference
// @Accept json
// @Produce json
// @Param request body assist.SuggestRequest true "ticket to answer"
// @Success 200 {object} knowledge.SynthesisResult
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /v1/suggest [post]
func (h *InferenceHandler) Suggest(c *gin.Context) {
	var req assist.SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, 400, "invalid request: "+err.Error())
		return
	}

	ctx := log.WithTicketID(log.WithOrgID(c.Request.Context(), req.OrgID), req.TicketID)
	result, err := h.suggester.Suggest(ctx, req)
	if errors.Is(err, knowledge.ErrEmptyInput) {
		response.Error(c, http.StatusBadRequest, 400, "ticket body is empty and could not be fetched")
		return
	}
	if err != nil {
		log.FromContext(ctx, h.logger).Error("Suggestion failed", "error", err)
		response.Error(c, http.StatusInternalServerError, 500, "internal error during suggestion generation")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GorgiasWidget renders the sidebar widget text
// @Summary Gorgias sidebar widget
// @Description Ticket data comes from query parameters (Gorgias template variables), then the optional JSON body, then the Gorgias API.
// @Tags Inference
// @Accept json
// @Produce json
// @Param ticket_id query string false "ticket id"
// @Param subject query string false "ticket subject"
// @Param customer_email query string false "customer email"
// @Param org_id query string false "organization id, defaults to 1"
// @Param payload body assist.WidgetPayload false "Gorgias HTTP integration payload"
// @Success 200 {object} assist.WidgetResponse
// @Router /v1/gorgias-widget [get]
// @Router /v1/gorgias-widget [post]
func (h *InferenceHandler) GorgiasWidget(c *gin.Context) {
	req := assist.WidgetRequest{
		OrgID:         c.DefaultQuery("org_id", defaultWidgetOrg),
		TicketID:      c.Query("ticket_id"),
		Subject:       c.Query("subject"),
		CustomerEmail: c.Query("customer_email"),
	}

	if c.Request.Method == http.MethodPost && c.Request.ContentLength != 0 {
		var payload assist.WidgetPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			h.logger.Debug("Ignoring unreadable widget payload", "error", err)
		} else {
			req.Payload = &payload
		}
	}

	ctx := log.WithTicketID(c.Request.Context(), req.TicketID)
	c.JSON(http.StatusOK, h.widget.Run(ctx, req))
}
