package handler

import (
	"github.com/google/wire"

	"github.com/supportbrain/backend/internal/application/assist"
	"github.com/supportbrain/backend/internal/application/feedback"
	"github.com/supportbrain/backend/internal/application/ingest"
	"github.com/supportbrain/backend/internal/domain/knowledge"
)

// ProviderSet handler providers
var ProviderSet = wire.NewSet(
	NewInferenceHandler,
	NewIngestHandler,
	NewAuditHandler,
	NewHealthHandler,
	wire.Bind(new(Suggester), new(*assist.Assistant)),
	wire.Bind(new(WidgetRunner), new(*assist.Orchestrator)),
	wire.Bind(new(HistoricalIngester), new(*ingest.HistoricalService)),
	wire.Bind(new(WebIngester), new(*ingest.WebService)),
	wire.Bind(new(FeedbackLogger), new(*feedback.Service)),
	wire.Bind(new(Pinger), new(knowledge.VectorIndex)),
)
