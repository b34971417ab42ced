package connector

import (
	"context"

	domainConnector "github.com/supportbrain/backend/internal/domain/connector"
)

// NoopConnector stands in for tenants without an integration
type NoopConnector struct{}

var _ domainConnector.Connector = NoopConnector{}

// Platform implements Connector
func (NoopConnector) Platform() domainConnector.Platform {
	return domainConnector.PlatformNone
}

// HealthCheck nothing to reach
func (NoopConnector) HealthCheck(context.Context) error {
	return nil
}

// FetchTickets no helpdesk configured
func (NoopConnector) FetchTickets(context.Context, string, int) (*domainConnector.TicketPage, error) {
	return nil, domainConnector.ErrNotSupported
}

// FetchTicket no helpdesk configured
func (NoopConnector) FetchTicket(context.Context, string) (*domainConnector.Ticket, error) {
	return nil, nil
}

// FetchOrders no store configured
func (NoopConnector) FetchOrders(context.Context, int) ([]domainConnector.Order, error) {
	return []domainConnector.Order{}, nil
}

// FetchProducts no store configured
func (NoopConnector) FetchProducts(context.Context, int) ([]domainConnector.Product, error) {
	return []domainConnector.Product{}, nil
}

// GetOrderStatus always empty
func (NoopConnector) GetOrderStatus(context.Context, string) []domainConnector.Order {
	return []domainConnector.Order{}
}
