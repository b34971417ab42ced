package handler

import (
	"context"

	"github.com/supportbrain/backend/internal/application/assist"
	"github.com/supportbrain/backend/internal/application/feedback"
	"github.com/supportbrain/backend/internal/application/ingest"
	"github.com/supportbrain/backend/internal/domain/audit"
	"github.com/supportbrain/backend/internal/domain/knowledge"
)

// Suggester full-draft suggestion service
type Suggester interface {
	Suggest(ctx context.Context, req assist.SuggestRequest) (knowledge.SynthesisResult, error)
}

// WidgetRunner deadline-bounded widget pipeline
type WidgetRunner interface {
	Run(ctx context.Context, req assist.WidgetRequest) assist.WidgetResponse
}

// HistoricalIngester closed-ticket ingestion
type HistoricalIngester interface {
	Ingest(ctx context.Context, orgID string, limit int) (*ingest.HistoricalReport, error)
}

// WebIngester web page ingestion
type WebIngester interface {
	IngestURL(ctx context.Context, orgID, url string) ingest.WebResult
	IngestBatch(ctx context.Context, orgID string, urls []string) *ingest.WebBatchReport
}

// FeedbackLogger agent feedback storage
type FeedbackLogger interface {
	Log(ctx context.Context, req feedback.LogRequest) (*audit.Feedback, error)
	List(ctx context.Context, orgID string, limit int) ([]*audit.Feedback, error)
}

// Pinger dependency reachability check
type Pinger interface {
	Ping(ctx context.Context) error
}
