package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	domainConnector "github.com/supportbrain/backend/internal/domain/connector"
	"github.com/supportbrain/backend/internal/infrastructure/log"
)

// GorgiasClient helpdesk connector over the Gorgias REST API
type GorgiasClient struct {
	api *apiClient
}

var _ domainConnector.Connector = (*GorgiasClient)(nil)

// NewGorgiasClient basic auth with the account email and API key
func NewGorgiasClient(baseURL, username, apiKey string) *GorgiasClient {
	authorize := func(req *http.Request) {
		req.SetBasicAuth(username, apiKey)
	}
	return &GorgiasClient{
		api: newAPIClient("gorgias", baseURL, authorize, log.NewModuleLogger("connector", "gorgias")),
	}
}

// Platform implements Connector
func (c *GorgiasClient) Platform() domainConnector.Platform {
	return domainConnector.PlatformGorgias
}

// HealthCheck calls /api/users/me
func (c *GorgiasClient) HealthCheck(ctx context.Context) error {
	found, err := c.api.getJSON(ctx, "/api/users/me", nil, nil)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("gorgias health check: current user not found")
	}
	return nil
}

type gorgiasCustomer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type gorgiasMessage struct {
	BodyText     string `json:"body_text"`
	StrippedText string `json:"stripped_text"`
	BodyHTML     string `json:"body_html"`
	FromAgent    *bool  `json:"from_agent"`
	Sender       struct {
		Type string `json:"type"`
	} `json:"sender"`
}

// gorgiasMessages is either a list or {"data": [...]}
type gorgiasMessages []gorgiasMessage

// UnmarshalJSON accepts both message list shapes
func (m *gorgiasMessages) UnmarshalJSON(data []byte) error {
	var list []gorgiasMessage
	if err := json.Unmarshal(data, &list); err == nil {
		*m = list
		return nil
	}
	var wrapped struct {
		Data []gorgiasMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		*m = nil
		return nil
	}
	*m = wrapped.Data
	return nil
}

type gorgiasTicket struct {
	ID              flexID          `json:"id"`
	Subject         string          `json:"subject"`
	Excerpt         string          `json:"excerpt"`
	Status          string          `json:"status"`
	Customer        gorgiasCustomer `json:"customer"`
	Messages        gorgiasMessages `json:"messages"`
	CreatedDatetime string          `json:"created_datetime"`
}

func (t gorgiasTicket) toDomain() domainConnector.Ticket {
	ticket := domainConnector.Ticket{
		ID:      string(t.ID),
		Subject: t.Subject,
		Excerpt: t.Excerpt,
		Status:  t.Status,
		Customer: domainConnector.Customer{
			Email: t.Customer.Email,
			Name:  t.Customer.Name,
		},
	}
	if created, err := time.Parse(time.RFC3339, t.CreatedDatetime); err == nil {
		ticket.CreatedAt = created
	}
	for _, m := range t.Messages {
		ticket.Messages = append(ticket.Messages, domainConnector.Message{
			BodyText:     m.BodyText,
			StrippedText: m.StrippedText,
			BodyHTML:     m.BodyHTML,
			FromAgent:    m.FromAgent,
			SenderType:   m.Sender.Type,
		})
	}
	return ticket
}

// FetchTickets lists one cursor page of /api/tickets
func (c *GorgiasClient) FetchTickets(ctx context.Context, cursor string, limit int) (*domainConnector.TicketPage, error) {
	query := url.Values{}
	query.Set("limit", limitParam(limit))
	if cursor != "" {
		query.Set("cursor", cursor)
	}

	var resp struct {
		Data []gorgiasTicket `json:"data"`
		Meta struct {
			NextCursor *string `json:"next_cursor"`
		} `json:"meta"`
	}
	found, err := c.api.getJSON(ctx, "/api/tickets", query, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	page := &domainConnector.TicketPage{}
	if !found {
		return page, nil
	}
	for _, t := range resp.Data {
		page.Tickets = append(page.Tickets, t.toDomain())
	}
	if resp.Meta.NextCursor != nil {
		page.NextCursor = *resp.Meta.NextCursor
	}
	return page, nil
}

// FetchTicket loads /api/tickets/{id} with messages
func (c *GorgiasClient) FetchTicket(ctx context.Context, id string) (*domainConnector.Ticket, error) {
	var resp gorgiasTicket
	found, err := c.api.getJSON(ctx, "/api/tickets/"+url.PathEscape(id), nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ticket %s: %w", id, err)
	}
	if !found {
		return nil, nil
	}
	ticket := resp.toDomain()
	if ticket.ID == "" {
		ticket.ID = id
	}
	return &ticket, nil
}

// FetchOrders Gorgias is not a commerce platform
func (c *GorgiasClient) FetchOrders(context.Context, int) ([]domainConnector.Order, error) {
	return []domainConnector.Order{}, nil
}

// FetchProducts Gorgias has no catalog
func (c *GorgiasClient) FetchProducts(context.Context, int) ([]domainConnector.Product, error) {
	return []domainConnector.Product{}, nil
}

// GetOrderStatus always empty for Gorgias
func (c *GorgiasClient) GetOrderStatus(context.Context, string) []domainConnector.Order {
	return []domainConnector.Order{}
}
