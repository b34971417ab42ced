package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/supportbrain/backend/internal/domain/connector"
	"github.com/supportbrain/backend/internal/infrastructure/pii"
)

func newExtractor() *TicketExtractor {
	return NewTicketExtractor(testIngestConfig(), pii.NewScrubber())
}

func TestTicketExtractor_Paired(t *testing.T) {
	summary := connector.Ticket{ID: "1", Subject: "Refund"}
	full := &connector.Ticket{Messages: []connector.Message{
		customer("I want a refund for order 1234"),
		agent("Sure, I have issued a full refund to your original payment method."),
		agent("Thanks!"),
	}}

	text, mode := newExtractor().Extract(summary, full)

	assert.Equal(t, ModePaired, mode)
	assert.Equal(t, "### QUESTION: Refund\nI want a refund for order 1234\n\n### RESOLUTION:\nSure, I have issued a full refund to your original payment method.", text)
}

func TestTicketExtractor_ShortRepliesFallBackToLastAgentMessage(t *testing.T) {
	full := &connector.Ticket{Messages: []connector.Message{
		customer("Where is my parcel?"),
		agent("Checking."),
		agent("Shipped today."),
	}}

	text, mode := newExtractor().Extract(connector.Ticket{Subject: "Parcel"}, full)

	assert.Equal(t, ModePaired, mode)
	assert.Contains(t, text, "### RESOLUTION:\nShipped today.")
}

func TestTicketExtractor_QuestionOnly(t *testing.T) {
	full := &connector.Ticket{Messages: []connector.Message{customer("Do you ship to Canada?")}}

	text, mode := newExtractor().Extract(connector.Ticket{Subject: "Shipping"}, full)

	assert.Equal(t, ModeQuestionOnly, mode)
	assert.Equal(t, "### QUESTION: Shipping\nDo you ship to Canada?\n\n"+closedContext, text)
}

func TestTicketExtractor_Fallback(t *testing.T) {
	tests := []struct {
		name    string
		summary connector.Ticket
		full    *connector.Ticket
		want    string
	}{
		{"excerpt", connector.Ticket{Subject: "S", Excerpt: "from excerpt"}, nil, "from excerpt"},
		{"subject", connector.Ticket{Subject: "only subject"}, &connector.Ticket{}, "only subject"},
		{"nothing", connector.Ticket{}, nil, "No content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, mode := newExtractor().Extract(tt.summary, tt.full)
			assert.Equal(t, ModeFallback, mode)
			assert.Contains(t, text, "\n"+tt.want+"\n\n")
		})
	}
}

func TestTicketExtractor_ScrubsPII(t *testing.T) {
	full := &connector.Ticket{Messages: []connector.Message{
		customer("Reach me at jane@example.com"),
		agent("We emailed jane@example.com with a return label for your order."),
	}}

	text, _ := newExtractor().Extract(connector.Ticket{Subject: "Return"}, full)

	assert.NotContains(t, text, "jane@example.com")
	assert.Contains(t, text, pii.EmailToken)
}

func TestTicketExtractor_StrippedTextUsed(t *testing.T) {
	full := &connector.Ticket{Messages: []connector.Message{
		{StrippedText: "stripped question", SenderType: "customer"},
		{BodyHTML: "<p>html only</p>", SenderType: "internal"},
	}}

	text, mode := newExtractor().Extract(connector.Ticket{Subject: "S"}, full)

	assert.Equal(t, ModeQuestionOnly, mode)
	assert.Contains(t, text, "stripped question")
	assert.NotContains(t, text, "html only")
}
