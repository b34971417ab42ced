package connector

import (
	"strings"
	"time"
)

// Platform external platform identifier
type Platform string

const (
	PlatformGorgias     Platform = "gorgias"
	PlatformBigCommerce Platform = "bigcommerce"
	PlatformNone        Platform = "none"
)

// Customer ticket requester
type Customer struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Message a single ticket message
type Message struct {
	BodyText     string `json:"body_text,omitempty"`
	StrippedText string `json:"stripped_text,omitempty"`
	BodyHTML     string `json:"body_html,omitempty"`
	FromAgent    *bool  `json:"from_agent,omitempty"`
	SenderType   string `json:"sender_type,omitempty"` // customer / internal
}

// Body returns the best plain body of the message
func (m Message) Body() string {
	if m.BodyText != "" {
		return m.BodyText
	}
	if m.StrippedText != "" {
		return m.StrippedText
	}
	return m.BodyHTML
}

// IsCustomer reports whether the customer wrote the message
func (m Message) IsCustomer() bool {
	return m.SenderType == "customer" || (m.FromAgent != nil && !*m.FromAgent)
}

// IsAgent reports whether an agent wrote the message
func (m Message) IsAgent() bool {
	return m.SenderType == "internal" || (m.FromAgent != nil && *m.FromAgent)
}

// Ticket support ticket
type Ticket struct {
	ID          string    `json:"id"`
	Subject     string    `json:"subject,omitempty"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status,omitempty"`
	Customer    Customer  `json:"customer"`
	Messages    []Message `json:"messages,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// BestText hydration order: excerpt, description, subject, first message body
func (t *Ticket) BestText() string {
	for _, s := range []string{t.Excerpt, t.Description, t.Subject} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	if len(t.Messages) > 0 {
		return t.Messages[0].Body()
	}
	return ""
}

// IsClosed reports whether the ticket is closed
func (t *Ticket) IsClosed() bool {
	return strings.EqualFold(t.Status, "closed")
}

// TicketPage one page of a cursor-paginated ticket listing
type TicketPage struct {
	Tickets    []Ticket
	NextCursor string
}

// Order commerce order record
type Order struct {
	ID            string  `json:"id"`
	Status        string  `json:"status"`
	DateCreated   string  `json:"date_created,omitempty"`
	DateShipped   string  `json:"date_shipped,omitempty"`
	TotalIncTax   string  `json:"total_inc_tax,omitempty"`
	ItemsTotal    int     `json:"items_total,omitempty"`
	PaymentStatus string  `json:"payment_status,omitempty"`
	CustomerEmail string  `json:"customer_email,omitempty"`
	Tracking      *string `json:"tracking,omitempty"`
}

// Product catalog product
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	SKU         string  `json:"sku,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Description string  `json:"description,omitempty"`
	URL         string  `json:"url,omitempty"`
}
