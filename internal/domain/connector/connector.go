package connector

import (
	"context"
	"errors"
)

// ErrNotSupported the platform has no such capability
var ErrNotSupported = errors.New("operation not supported by platform")

// Connector capability set of a ticketing or commerce platform
type Connector interface {
	// Platform returns the platform this connector talks to
	Platform() Platform
	// HealthCheck verifies credentials and reachability
	HealthCheck(ctx context.Context) error
	// FetchTickets lists one page of tickets; empty cursor starts from the top
	FetchTickets(ctx context.Context, cursor string, limit int) (*TicketPage, error)
	// FetchTicket loads a ticket with its messages; nil when not found
	FetchTicket(ctx context.Context, id string) (*Ticket, error)
	// FetchOrders lists recent orders
	FetchOrders(ctx context.Context, limit int) ([]Order, error)
	// FetchProducts lists catalog products
	FetchProducts(ctx context.Context, limit int) ([]Product, error)
	// GetOrderStatus returns recent orders for a customer.
	// Never fails: unsupported platforms and errors yield an empty list.
	GetOrderStatus(ctx context.Context, email string) []Order
}
