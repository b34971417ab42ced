package connector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	domainConnector "github.com/supportbrain/backend/internal/domain/connector"
	"github.com/supportbrain/backend/internal/infrastructure/log"
)

// BigCommerceAPIBase public API host
const BigCommerceAPIBase = "https://api.bigcommerce.com"

// orderStatusLimit recent orders returned for a customer
const orderStatusLimit = 3

// BigCommerceClient commerce connector over the BigCommerce REST API
type BigCommerceClient struct {
	api       *apiClient
	storeHash string
}

var _ domainConnector.Connector = (*BigCommerceClient)(nil)

// NewBigCommerceClient X-Auth-Token client for one store; empty baseURL uses the public API host
func NewBigCommerceClient(baseURL, storeHash, accessToken string) *BigCommerceClient {
	if baseURL == "" {
		baseURL = BigCommerceAPIBase
	}
	authorize := func(req *http.Request) {
		req.Header.Set("X-Auth-Token", accessToken)
	}
	return &BigCommerceClient{
		api:       newAPIClient("bigcommerce", baseURL, authorize, log.NewModuleLogger("connector", "bigcommerce")),
		storeHash: storeHash,
	}
}

// Platform implements Connector
func (c *BigCommerceClient) Platform() domainConnector.Platform {
	return domainConnector.PlatformBigCommerce
}

func (c *BigCommerceClient) storePath(suffix string) string {
	return "/stores/" + url.PathEscape(c.storeHash) + suffix
}

// HealthCheck reads the store profile
func (c *BigCommerceClient) HealthCheck(ctx context.Context) error {
	found, err := c.api.getJSON(ctx, c.storePath("/v2/store"), nil, nil)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("bigcommerce health check: store %s not found", c.storeHash)
	}
	return nil
}

type bigCommerceOrder struct {
	ID             flexID `json:"id"`
	Status         string `json:"status"`
	DateCreated    string `json:"date_created"`
	DateShipped    string `json:"date_shipped"`
	TotalIncTax    string `json:"total_inc_tax"`
	ItemsTotal     int    `json:"items_total"`
	PaymentStatus  string `json:"payment_status"`
	BillingAddress struct {
		Email string `json:"email"`
	} `json:"billing_address"`
}

func (o bigCommerceOrder) toDomain() domainConnector.Order {
	return domainConnector.Order{
		ID:            string(o.ID),
		Status:        o.Status,
		DateCreated:   o.DateCreated,
		DateShipped:   o.DateShipped,
		TotalIncTax:   o.TotalIncTax,
		ItemsTotal:    o.ItemsTotal,
		PaymentStatus: o.PaymentStatus,
		CustomerEmail: o.BillingAddress.Email,
	}
}

// FetchTickets BigCommerce has no helpdesk
func (c *BigCommerceClient) FetchTickets(context.Context, string, int) (*domainConnector.TicketPage, error) {
	return &domainConnector.TicketPage{}, nil
}

// FetchTicket BigCommerce has no helpdesk
func (c *BigCommerceClient) FetchTicket(context.Context, string) (*domainConnector.Ticket, error) {
	return nil, nil
}

// FetchOrders lists the newest orders
func (c *BigCommerceClient) FetchOrders(ctx context.Context, limit int) ([]domainConnector.Order, error) {
	query := url.Values{}
	query.Set("sort", "date_created:desc")
	query.Set("limit", limitParam(limit))
	return c.listOrders(ctx, query)
}

func (c *BigCommerceClient) listOrders(ctx context.Context, query url.Values) ([]domainConnector.Order, error) {
	var resp []bigCommerceOrder
	found, err := c.api.getJSON(ctx, c.storePath("/v2/orders"), query, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	orders := make([]domainConnector.Order, 0, len(resp))
	if !found {
		return orders, nil
	}
	for _, o := range resp {
		orders = append(orders, o.toDomain())
	}
	return orders, nil
}

// FetchProducts lists catalog products from the v3 catalog
func (c *BigCommerceClient) FetchProducts(ctx context.Context, limit int) ([]domainConnector.Product, error) {
	query := url.Values{}
	query.Set("limit", limitParam(limit))

	var resp struct {
		Data []struct {
			ID          flexID  `json:"id"`
			Name        string  `json:"name"`
			SKU         string  `json:"sku"`
			Price       float64 `json:"price"`
			Description string  `json:"description"`
			CustomURL   struct {
				URL string `json:"url"`
			} `json:"custom_url"`
		} `json:"data"`
	}
	found, err := c.api.getJSON(ctx, c.storePath("/v3/catalog/products"), query, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]domainConnector.Product, 0, len(resp.Data))
	if !found {
		return products, nil
	}
	for _, p := range resp.Data {
		products = append(products, domainConnector.Product{
			ID:          string(p.ID),
			Name:        p.Name,
			SKU:         p.SKU,
			Price:       p.Price,
			Description: p.Description,
			URL:         p.CustomURL.URL,
		})
	}
	return products, nil
}

// GetOrderStatus returns the customer's three newest orders; failures are logged and yield an empty list
func (c *BigCommerceClient) GetOrderStatus(ctx context.Context, email string) []domainConnector.Order {
	if email == "" {
		return []domainConnector.Order{}
	}

	query := url.Values{}
	query.Set("email", email)
	query.Set("sort", "date_created:desc")
	query.Set("limit", strconv.Itoa(orderStatusLimit))

	orders, err := c.listOrders(ctx, query)
	if err != nil {
		c.api.logger.Warn("Order status lookup failed",
			"store_hash", c.storeHash,
			"error", err,
		)
		return []domainConnector.Order{}
	}
	return orders
}
