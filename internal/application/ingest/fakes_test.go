package ingest

import (
	"context"
	"sync"

	"github.com/supportbrain/backend/internal/domain/connector"
	"github.com/supportbrain/backend/internal/domain/knowledge"
	"github.com/supportbrain/backend/internal/domain/tenant"
	"github.com/supportbrain/backend/internal/infrastructure/config"
)

type constantEmbedder struct {
	mu    sync.Mutex
	calls int
	texts []string
}

func (e *constantEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	e.texts = append(e.texts, texts...)
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

type memoryLedger struct {
	mu      sync.Mutex
	records []knowledge.IngestionRecord
}

func (l *memoryLedger) Record(_ context.Context, records []knowledge.IngestionRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, records...)
	return nil
}

func (l *memoryLedger) ListByOrg(_ context.Context, orgID string, _ int) ([]knowledge.IngestionRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []knowledge.IngestionRecord
	for _, r := range l.records {
		if r.OrgID == orgID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (l *memoryLedger) CountByOrg(ctx context.Context, orgID string) (int, error) {
	records, err := l.ListByOrg(ctx, orgID, 0)
	return len(records), err
}

// pagedConnector serves tickets in pages keyed by cursor
type pagedConnector struct {
	connector.Connector

	pages     [][]connector.Ticket
	details   map[string]*connector.Ticket
	detailErr map[string]error
	listErr   error

	mu        sync.Mutex
	pageCalls int
	limits    []int
}

func (c *pagedConnector) Platform() connector.Platform { return connector.PlatformGorgias }

func (c *pagedConnector) FetchTickets(_ context.Context, cursor string, limit int) (*connector.TicketPage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listErr != nil {
		return nil, c.listErr
	}
	c.pageCalls++
	c.limits = append(c.limits, limit)

	idx := 0
	if cursor != "" {
		idx = int(cursor[0] - '0')
	}
	if idx >= len(c.pages) {
		return &connector.TicketPage{}, nil
	}
	page := &connector.TicketPage{Tickets: c.pages[idx]}
	if idx+1 < len(c.pages) {
		page.NextCursor = string(rune('0' + idx + 1))
	}
	return page, nil
}

func (c *pagedConnector) FetchTicket(_ context.Context, id string) (*connector.Ticket, error) {
	if err := c.detailErr[id]; err != nil {
		return nil, err
	}
	return c.details[id], nil
}

type staticResolver struct {
	conn connector.Connector
	cfg  tenant.Config
	err  error
}

func (r *staticResolver) Connector(context.Context, string) (connector.Connector, tenant.Config, error) {
	return r.conn, r.cfg, r.err
}

func testIngestConfig() *config.IngestConfig {
	return &config.IngestConfig{
		BatchSize:          10,
		MaxRetries:         0,
		MinResolutionChars: 30,
		PageSize:           100,
		MaxPages:           5,
		ChunkTokens:        40,
	}
}

func boolPtr(b bool) *bool { return &b }

func customer(body string) connector.Message {
	return connector.Message{BodyText: body, FromAgent: boolPtr(false)}
}

func agent(body string) connector.Message {
	return connector.Message{BodyText: body, FromAgent: boolPtr(true)}
}
