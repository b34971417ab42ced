package ingest

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportbrain/backend/internal/application/assist"
	"github.com/supportbrain/backend/internal/domain/connector"
	"github.com/supportbrain/backend/internal/domain/knowledge"
	"github.com/supportbrain/backend/internal/domain/tenant"
	"github.com/supportbrain/backend/internal/infrastructure/pii"
	"github.com/supportbrain/backend/internal/infrastructure/vector"
)

type historicalFixture struct {
	service  *HistoricalService
	conn     *pagedConnector
	index    *vector.MemoryStore
	ledger   *memoryLedger
	embedder *constantEmbedder
}

func newHistoricalFixture(conn *pagedConnector) *historicalFixture {
	cfg := testIngestConfig()
	index := vector.NewMemoryStore()
	ledger := &memoryLedger{}
	embedder := &constantEmbedder{}
	resolver := &staticResolver{
		conn: conn,
		cfg: tenant.NewConfig("7", tenant.Integration{
			OrgID:    "7",
			Platform: connector.PlatformGorgias,
			BaseURL:  "https://acme.gorgias.com/api",
		}),
	}
	writer := assist.NewIngestionWriter(embedder, index, ledger, cfg)
	return &historicalFixture{
		service:  NewHistoricalService(resolver, NewTicketExtractor(cfg, pii.NewScrubber()), writer, cfg),
		conn:     conn,
		index:    index,
		ledger:   ledger,
		embedder: embedder,
	}
}

func closedTicket(id string) connector.Ticket {
	return connector.Ticket{ID: id, Subject: "Subject " + id, Status: "closed"}
}

func TestHistoricalService_Ingest(t *testing.T) {
	conn := &pagedConnector{
		pages: [][]connector.Ticket{
			{closedTicket("1"), {ID: "2", Status: "open"}},
			{closedTicket("3")},
		},
		details: map[string]*connector.Ticket{
			"1": {ID: "1", Messages: []connector.Message{
				customer("Can I change my shipping address?"),
				agent("Yes, I have updated the shipping address on your order."),
			}},
		},
		detailErr: map[string]error{"3": assert.AnError},
	}
	f := newHistoricalFixture(conn)

	report, err := f.service.Ingest(context.Background(), "7", 0)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Fetched)
	assert.Equal(t, 2, report.Closed)
	assert.Equal(t, 2, report.Stored)
	assert.Equal(t, 0, report.FailedBatches)
	assert.Equal(t, map[ExtractionMode]int{ModePaired: 1, ModeFallback: 1}, report.ModeCounts)
	assert.Equal(t, 2, conn.pageCalls)

	assert.Equal(t, 2, f.index.Count("org_7"))
	results, err := f.index.Query(context.Background(), "org_7", []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	byID := make(map[string]knowledge.Chunk)
	for _, r := range results {
		byID[r.ID] = knowledge.ChunkFromPayload(r.ID, r.Metadata)
	}

	first := byID["1"]
	assert.Equal(t, "https://acme.gorgias.com/app/ticket/1", first.Metadata.SourceURL)
	assert.Equal(t, knowledge.SourceTicket, first.Metadata.SourceType)
	assert.Equal(t, "paired", first.Metadata.ExtractionMode)
	assert.Equal(t, "7", first.Metadata.OrgID)
	assert.Contains(t, first.Text, "### RESOLUTION:")

	assert.Equal(t, "fallback", byID["3"].Metadata.ExtractionMode)

	count, err := f.ledger.CountByOrg(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestHistoricalService_PageCount(t *testing.T) {
	pages := make([][]connector.Ticket, 8)
	for i := range pages {
		pages[i] = []connector.Ticket{closedTicket(fmt.Sprint(i))}
	}

	tests := []struct {
		name  string
		limit int
		calls int
	}{
		{"default reads max pages", 0, 5},
		{"one page", 100, 1},
		{"rounds up", 101, 2},
		{"capped", 10000, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := &pagedConnector{pages: pages}
			f := newHistoricalFixture(conn)

			_, err := f.service.Ingest(context.Background(), "7", tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.calls, conn.pageCalls)
			for _, l := range conn.limits {
				assert.Equal(t, 100, l)
			}
		})
	}
}

func TestHistoricalService_LimitTrimsTickets(t *testing.T) {
	conn := &pagedConnector{pages: [][]connector.Ticket{
		{closedTicket("1"), closedTicket("2"), closedTicket("3")},
	}}
	f := newHistoricalFixture(conn)

	report, err := f.service.Ingest(context.Background(), "7", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Fetched)
	assert.Equal(t, 2, report.Stored)
}

func TestHistoricalService_NoClosedTickets(t *testing.T) {
	conn := &pagedConnector{pages: [][]connector.Ticket{{{ID: "1", Status: "open"}}}}
	f := newHistoricalFixture(conn)

	report, err := f.service.Ingest(context.Background(), "7", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Fetched)
	assert.Zero(t, report.Closed)
	assert.Zero(t, f.embedder.calls)
}

func TestHistoricalService_ListFailure(t *testing.T) {
	conn := &pagedConnector{listErr: connector.ErrNotSupported}
	f := newHistoricalFixture(conn)

	_, err := f.service.Ingest(context.Background(), "7", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, connector.ErrNotSupported)
}

func TestHistoricalService_ResolverFailure(t *testing.T) {
	cfg := testIngestConfig()
	service := NewHistoricalService(&staticResolver{err: assert.AnError}, NewTicketExtractor(cfg, pii.NewScrubber()), nil, cfg)

	_, err := service.Ingest(context.Background(), "7", 0)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestTicketURL(t *testing.T) {
	assert.Equal(t, "https://shop.gorgias.com/app/ticket/9", ticketURL("https://shop.gorgias.com", "9"))
	assert.Equal(t, "https://shop.gorgias.com/app/ticket/9", ticketURL("https://shop.gorgias.com/api/", "9"))
	assert.Empty(t, ticketURL("", "9"))
	assert.Empty(t, ticketURL("not a url", "9"))
}
