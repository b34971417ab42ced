package assist

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportbrain/backend/internal/domain/connector"
	"github.com/supportbrain/backend/internal/domain/knowledge"
)

func TestAssistant_SuggestHydratesFromConnector(t *testing.T) {
	cfg := defaultAssistConfig()
	conn := &fakeConnector{
		ticket: &connector.Ticket{
			Subject:  "Strap",
			Excerpt:  "My strap broke after a week",
			Customer: connector.Customer{Email: "jane@example.com"},
		},
		orders: []connector.Order{{ID: "55", Status: "Completed"}},
	}
	searcher := &fakeSearcher{matches: []knowledge.Match{ticketMatch("7", 0.8, "strap guide")}}
	drafter := &fakeDrafter{result: knowledge.SynthesisResult{Draft: "We will send a new strap.", Confidence: 0.8}}
	a := NewAssistant(&fakeResolver{conn: conn}, searcher, drafter, cfg)

	result, err := a.Suggest(context.Background(), SuggestRequest{OrgID: "2", TicketID: "99"})
	require.NoError(t, err)

	assert.Equal(t, "We will send a new strap.", result.Draft)
	assert.Equal(t, "My strap broke after a week", searcher.query())
	assert.Equal(t, cfg.SynthesisTopK, searcher.lastK)
	assert.Equal(t, "org_2", searcher.lastNS)

	in := drafter.input()
	assert.Equal(t, "jane@example.com", in.CustomerEmail)
	assert.Equal(t, []connector.Order{{ID: "55", Status: "Completed"}}, in.Orders)
	assert.Equal(t, []string{"jane@example.com"}, conn.orderEmails)
}

func TestAssistant_SuggestUsesProvidedFields(t *testing.T) {
	conn := &fakeConnector{ticket: &connector.Ticket{Excerpt: "ignored"}}
	searcher := &fakeSearcher{}
	a := NewAssistant(&fakeResolver{conn: conn}, searcher, &fakeDrafter{}, defaultAssistConfig())

	_, err := a.Suggest(context.Background(), SuggestRequest{
		OrgID: "1", TicketID: "9", TicketBody: "given body", CustomerEmail: "a@b.c",
	})
	require.NoError(t, err)
	assert.Equal(t, "given body", searcher.query())
}

func TestAssistant_SuggestEmptyInput(t *testing.T) {
	tests := []struct {
		name string
		conn *fakeConnector
	}{
		{"ticket not found", &fakeConnector{}},
		{"fetch error", &fakeConnector{fetchErr: assert.AnError}},
		{"blank ticket", &fakeConnector{ticket: &connector.Ticket{Subject: "  "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAssistant(&fakeResolver{conn: tt.conn}, &fakeSearcher{}, &fakeDrafter{}, defaultAssistConfig())
			_, err := a.Suggest(context.Background(), SuggestRequest{OrgID: "1", TicketID: "9"})
			assert.ErrorIs(t, err, knowledge.ErrEmptyInput)
		})
	}
}

func TestAssistant_SuggestSearchFailure(t *testing.T) {
	drafter := &fakeDrafter{}
	a := NewAssistant(&fakeResolver{conn: &fakeConnector{}}, &fakeSearcher{err: assert.AnError}, drafter, defaultAssistConfig())

	result, err := a.Suggest(context.Background(), SuggestRequest{OrgID: "1", TicketBody: "help"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Draft, "Error generating response:"))
	assert.Zero(t, result.Confidence)
	assert.Zero(t, drafter.calls.Load())
}

func TestAssistant_SuggestResolverFailure(t *testing.T) {
	a := NewAssistant(&fakeResolver{err: assert.AnError}, &fakeSearcher{}, &fakeDrafter{}, defaultAssistConfig())

	_, err := a.Suggest(context.Background(), SuggestRequest{OrgID: "1", TicketBody: "help"})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestAssistant_SearchClampsK(t *testing.T) {
	searcher := &fakeSearcher{}
	a := NewAssistant(&fakeResolver{}, searcher, &fakeDrafter{}, defaultAssistConfig())

	_, err := a.Search(context.Background(), "4", "returns", 500)
	require.NoError(t, err)
	assert.Equal(t, 50, searcher.lastK)
	assert.Equal(t, "org_4", searcher.lastNS)

	_, err = a.Search(context.Background(), "4", "returns", 0)
	require.NoError(t, err)
	assert.Equal(t, 10, searcher.lastK)
}
