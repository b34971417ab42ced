package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/supportbrain/backend/internal/application/assist"
	"github.com/supportbrain/backend/internal/domain/connector"
	"github.com/supportbrain/backend/internal/domain/knowledge"
	"github.com/supportbrain/backend/internal/infrastructure/config"
	"github.com/supportbrain/backend/internal/infrastructure/log"
)

// ErrFetchFailed the ticketing platform could not be listed
var ErrFetchFailed = errors.New("failed to fetch tickets")

// HistoricalReport ingestion statistics
type HistoricalReport struct {
	Fetched       int                    `json:"fetched"`
	Closed        int                    `json:"closed"`
	ModeCounts    map[ExtractionMode]int `json:"mode_counts"`
	Stored        int                    `json:"stored"`
	FailedBatches int                    `json:"failed_batches"`
}

// HistoricalService turns closed tickets into knowledge
type HistoricalService struct {
	resolver  assist.ConnectorResolver
	extractor *TicketExtractor
	writer    *assist.IngestionWriter
	pageSize  int
	maxPages  int
	logger    *slog.Logger
}

// NewHistoricalService creates the service
func NewHistoricalService(resolver assist.ConnectorResolver, extractor *TicketExtractor, writer *assist.IngestionWriter, cfg *config.IngestConfig) *HistoricalService {
	return &HistoricalService{
		resolver:  resolver,
		extractor: extractor,
		writer:    writer,
		pageSize:  cfg.PageSize,
		maxPages:  cfg.MaxPages,
		logger:    log.NewModuleLogger("ingest", "historical"),
	}
}

// Ingest pages through up to limit tickets of orgID and stores the closed ones
// limit <= 0 reads the maximum number of pages.
func (s *HistoricalService) Ingest(ctx context.Context, orgID string, limit int) (*HistoricalReport, error) {
	conn, tenantCfg, err := s.resolver.Connector(ctx, orgID)
	if err != nil {
		return nil, err
	}

	tickets, err := s.listTickets(ctx, conn, limit)
	if err != nil {
		return nil, err
	}

	report := &HistoricalReport{
		Fetched:    len(tickets),
		ModeCounts: make(map[ExtractionMode]int),
	}

	var (
		texts []string
		metas []knowledge.Metadata
	)
	for _, ticket := range tickets {
		if !ticket.IsClosed() {
			continue
		}
		report.Closed++

		full, err := conn.FetchTicket(ctx, ticket.ID)
		if err != nil {
			s.logger.Warn("Failed to fetch ticket details", "org_id", orgID, "ticket_id", ticket.ID, "error", err)
			full = nil
		}

		text, mode := s.extractor.Extract(ticket, full)
		report.ModeCounts[mode]++
		if mode == ModeSkipped {
			continue
		}

		texts = append(texts, text)
		metas = append(metas, knowledge.Metadata{
			OrgID:          orgID,
			SourceType:     knowledge.SourceTicket,
			SourceID:       ticket.ID,
			SourceURL:      ticketURL(tenantCfg.Integration.BaseURL, ticket.ID),
			Subject:        ticket.Subject,
			ExtractionMode: string(mode),
		})
	}

	if len(texts) == 0 {
		s.logger.Info("Nothing to ingest", "org_id", orgID, "fetched", report.Fetched, "closed", report.Closed)
		return report, nil
	}

	stored, err := s.writer.EmbedAndStore(ctx, texts, metas, tenantCfg.Namespace)
	if stored != nil {
		report.Stored = stored.Stored
		report.FailedBatches = stored.FailedBatches
	}
	if err != nil {
		return report, err
	}

	s.logger.Info("Historical ingestion finished",
		"org_id", orgID,
		"fetched", report.Fetched,
		"closed", report.Closed,
		"stored", report.Stored,
		"modes", report.ModeCounts,
	)
	return report, nil
}

// listTickets cursor pagination, ceil(limit/pageSize) pages capped at maxPages
func (s *HistoricalService) listTickets(ctx context.Context, conn connector.Connector, limit int) ([]connector.Ticket, error) {
	pages := s.maxPages
	if limit > 0 {
		pages = min((limit+s.pageSize-1)/s.pageSize, s.maxPages)
	}

	var (
		tickets []connector.Ticket
		cursor  string
	)
	for i := 0; i < pages; i++ {
		page, err := conn.FetchTickets(ctx, cursor, s.pageSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
		}
		tickets = append(tickets, page.Tickets...)
		cursor = page.NextCursor
		if cursor == "" || len(page.Tickets) == 0 {
			break
		}
	}

	if limit > 0 && len(tickets) > limit {
		tickets = tickets[:limit]
	}
	return tickets, nil
}

// ticketURL agent-facing link of a Gorgias ticket
func ticketURL(baseURL, ticketID string) string {
	if baseURL == "" {
		return ""
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return ""
	}
	domain, _, _ := strings.Cut(u.Hostname(), ".")
	return fmt.Sprintf("https://%s.gorgias.com/app/ticket/%s", domain, ticketID)
}
