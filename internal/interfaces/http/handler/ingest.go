package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supportbrain/backend/internal/application/ingest"
	"github.com/supportbrain/backend/internal/infrastructure/log"
	"github.com/supportbrain/backend/internal/interfaces/http/response"
)

// IngestHandler knowledge ingestion endpoints
type IngestHandler struct {
	historical HistoricalIngester
	web        WebIngester
	logger     *slog.Logger
}

// NewIngestHandler creates the handler
func NewIngestHandler(historical HistoricalIngester, web WebIngester) *IngestHandler {
	return &IngestHandler{
		historical: historical,
		web:        web,
		logger:     log.NewModuleLogger("http", "ingest"),
	}
}

// HistoricalRequest closed-ticket ingestion request
type HistoricalRequest struct {
	OrgID string `form:"org_id" json:"org_id" binding:"required"`
	Limit int    `form:"limit" json:"limit" binding:"gte=0"`
}

// Historical ingests closed tickets of an organization
// @Summary Ingest closed tickets
// @Tags Ingestion
// @Accept json
// @Produce json
// @Param request body HistoricalRequest true "organization and ticket limit"
// @Success 200 {object} response.Response{data=ingest.HistoricalReport}
// @Failure 400 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /ingest/historical [post]
func (h *IngestHandler) Historical(c *gin.Context) {
	var req HistoricalRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, 400, "invalid request: "+err.Error())
		return
	}

	ctx := log.WithOrgID(c.Request.Context(), req.OrgID)
	report, err := h.historical.Ingest(ctx, req.OrgID, req.Limit)
	if err != nil {
		log.FromContext(ctx, h.logger).Error("Historical ingestion failed", "error", err)
		status := http.StatusInternalServerError
		if errors.Is(err, ingest.ErrFetchFailed) {
			status = http.StatusBadGateway
		}
		response.ErrorWithDetail(c, status, status, "historical ingestion failed", err.Error())
		return
	}

	response.Success(c, report)
}

// WebRequest single page ingestion request
type WebRequest struct {
	OrgID string `form:"org_id" json:"org_id" binding:"required"`
	URL   string `form:"url" json:"url" binding:"required,url"`
}

// Web ingests one public web page
// @Summary Ingest a web page
// @Tags Ingestion
// @Accept json
// @Produce json
// @Param request body WebRequest true "organization and page URL"
// @Success 200 {object} response.Response{data=ingest.WebResult}
// @Failure 400 {object} response.ErrorResponse
// @Router /ingest/web [post]
func (h *IngestHandler) Web(c *gin.Context) {
	var req WebRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, 400, "invalid request: "+err.Error())
		return
	}

	ctx := log.WithOrgID(c.Request.Context(), req.OrgID)
	result := h.web.IngestURL(ctx, req.OrgID, req.URL)
	if result.Status == ingest.WebStatusError {
		response.ErrorWithDetail(c, http.StatusBadRequest, 400, "web ingestion failed", result.Error)
		return
	}

	response.Success(c, result)
}

// WebBatchRequest multi-page ingestion request
type WebBatchRequest struct {
	OrgID string   `json:"org_id" binding:"required"`
	URLs  []string `json:"urls" binding:"required,min=1,max=50,dive,url"`
}

// WebBatch ingests several web pages
// @Summary Ingest a batch of web pages
// @Tags Ingestion
// @Accept json
// @Produce json
// @Param request body WebBatchRequest true "organization and page URLs"
// @Success 200 {object} response.Response{data=ingest.WebBatchReport}
// @Failure 400 {object} response.ErrorResponse
// @Router /ingest/web/batch [post]
func (h *IngestHandler) WebBatch(c *gin.Context) {
	var req WebBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, 400, "invalid request: "+err.Error())
		return
	}

	ctx := log.WithOrgID(c.Request.Context(), req.OrgID)
	response.Success(c, h.web.IngestBatch(ctx, req.OrgID, req.URLs))
}
