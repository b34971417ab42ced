package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/supportbrain/backend/internal/application/assist"
	"github.com/supportbrain/backend/internal/domain/knowledge"
	"github.com/supportbrain/backend/internal/infrastructure/config"
	"github.com/supportbrain/backend/internal/infrastructure/log"
	"github.com/supportbrain/backend/internal/infrastructure/pii"
	"github.com/supportbrain/backend/internal/infrastructure/tokens"
	"github.com/supportbrain/backend/internal/infrastructure/webpage"
)

// WebStatus outcome of one page
type WebStatus string

const (
	WebStatusSuccess WebStatus = "success"
	WebStatusSkipped WebStatus = "skipped"
	WebStatusError   WebStatus = "error"
)

// WebResult ingestion result of a single URL
type WebResult struct {
	URL    string    `json:"url"`
	Status WebStatus `json:"status"`
	Title  string    `json:"title,omitempty"`
	Chunks int       `json:"chunks"`
	Error  string    `json:"error,omitempty"`
}

// WebBatchReport results of a URL batch
type WebBatchReport struct {
	Results   []WebResult `json:"results"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
}

// WebService ingests public web pages (FAQ, policies) as knowledge
type WebService struct {
	fetcher     *webpage.Fetcher
	scrubber    *pii.Scrubber
	estimator   *tokens.Estimator
	writer      *assist.IngestionWriter
	chunkTokens int
	logger      *slog.Logger
}

// NewWebService creates the service
func NewWebService(fetcher *webpage.Fetcher, scrubber *pii.Scrubber, estimator *tokens.Estimator, writer *assist.IngestionWriter, cfg *config.IngestConfig) *WebService {
	return &WebService{
		fetcher:     fetcher,
		scrubber:    scrubber,
		estimator:   estimator,
		writer:      writer,
		chunkTokens: cfg.ChunkTokens,
		logger:      log.NewModuleLogger("ingest", "web"),
	}
}

// IngestURL fetches one page and stores its chunks in the org namespace
// Fetch and storage failures are reported in the result, not as an error.
func (s *WebService) IngestURL(ctx context.Context, orgID, url string) WebResult {
	result := WebResult{URL: url}

	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger.Warn("Failed to fetch page", "org_id", orgID, "url", url, "error", err)
		result.Status = WebStatusError
		result.Error = err.Error()
		return result
	}
	result.Title = page.Title

	chunks := s.estimator.Split(s.scrubber.Scrub(page.Content), s.chunkTokens)
	if len(chunks) == 0 {
		result.Status = WebStatusSkipped
		return result
	}

	metas := make([]knowledge.Metadata, len(chunks))
	for i := range chunks {
		metas[i] = knowledge.Metadata{
			OrgID:      orgID,
			SourceType: knowledge.SourceWebPage,
			SourceID:   fmt.Sprintf("%s#%d", url, i),
			SourceURL:  url,
			Subject:    strings.TrimSpace(page.Title),
			ChunkIndex: i,
		}
	}

	report, err := s.writer.EmbedAndStore(ctx, chunks, metas, knowledge.Namespace(orgID))
	if err != nil {
		result.Status = WebStatusError
		result.Error = err.Error()
		return result
	}
	if report.Stored == 0 {
		result.Status = WebStatusError
		result.Error = "no chunks stored"
		return result
	}

	result.Status = WebStatusSuccess
	result.Chunks = report.Stored
	s.logger.Info("Web page ingested", "org_id", orgID, "url", url, "chunks", report.Stored)
	return result
}

// IngestBatch ingests urls sequentially; one failing page does not stop the rest
func (s *WebService) IngestBatch(ctx context.Context, orgID string, urls []string) *WebBatchReport {
	report := &WebBatchReport{Results: make([]WebResult, 0, len(urls))}
	for _, url := range urls {
		if ctx.Err() != nil {
			report.Results = append(report.Results, WebResult{URL: url, Status: WebStatusError, Error: ctx.Err().Error()})
			report.Failed++
			continue
		}
		res := s.IngestURL(ctx, orgID, url)
		report.Results = append(report.Results, res)
		if res.Status == WebStatusError {
			report.Failed++
		} else {
			report.Succeeded++
		}
	}
	return report
}
