package connector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestTicketBestText(t *testing.T) {
	tests := []struct {
		name   string
		ticket Ticket
		want   string
	}{
		{"excerpt first", Ticket{Excerpt: "ex", Description: "desc", Subject: "sub"}, "ex"},
		{"description", Ticket{Description: "desc", Subject: "sub"}, "desc"},
		{"subject", Ticket{Subject: "sub", Messages: []Message{{BodyText: "body"}}}, "sub"},
		{"first message text", Ticket{Messages: []Message{{BodyText: "body"}, {BodyText: "other"}}}, "body"},
		{"first message html", Ticket{Messages: []Message{{BodyHTML: "<p>hi</p>"}}}, "<p>hi</p>"},
		{"blank subject skipped", Ticket{Subject: "   ", Messages: []Message{{StrippedText: "stripped"}}}, "stripped"},
		{"empty", Ticket{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ticket.BestText())
		})
	}
}

func TestMessageSender(t *testing.T) {
	assert.True(t, Message{SenderType: "customer"}.IsCustomer())
	assert.True(t, Message{FromAgent: boolPtr(false)}.IsCustomer())
	assert.False(t, Message{}.IsCustomer())

	assert.True(t, Message{SenderType: "internal"}.IsAgent())
	assert.True(t, Message{FromAgent: boolPtr(true)}.IsAgent())
	assert.False(t, Message{FromAgent: boolPtr(false)}.IsAgent())
}

func TestTicketIsClosed(t *testing.T) {
	assert.True(t, (&Ticket{Status: "Closed"}).IsClosed())
	assert.False(t, (&Ticket{Status: "open"}).IsClosed())
}
