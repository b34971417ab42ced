package assist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/supportbrain/backend/internal/domain/connector"
	"github.com/supportbrain/backend/internal/domain/knowledge"
	"github.com/supportbrain/backend/internal/infrastructure/config"
	"github.com/supportbrain/backend/internal/infrastructure/log"
)

// SuggestRequest full-draft request
type SuggestRequest struct {
	OrgID         string `json:"org_id" binding:"required"`
	TicketID      string `json:"ticket_id"`
	TicketBody    string `json:"ticket_body,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
}

// Assistant suggest path without the widget deadline
type Assistant struct {
	resolver ConnectorResolver
	searcher Searcher
	drafter  Drafter
	cfg      *config.AssistConfig
	logger   *slog.Logger
}

// NewAssistant creates the assistant
func NewAssistant(resolver ConnectorResolver, searcher Searcher, drafter Drafter, cfg *config.AssistConfig) *Assistant {
	return &Assistant{
		resolver: resolver,
		searcher: searcher,
		drafter:  drafter,
		cfg:      cfg,
		logger:   log.NewModuleLogger("assist", "assistant"),
	}
}

// Suggest hydrates missing ticket fields, then retrieves and synthesizes
// Returns knowledge.ErrEmptyInput when no ticket text can be resolved.
func (a *Assistant) Suggest(ctx context.Context, req SuggestRequest) (knowledge.SynthesisResult, error) {
	conn, tenantCfg, err := a.resolver.Connector(ctx, req.OrgID)
	if err != nil {
		return knowledge.SynthesisResult{}, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	body, email := req.TicketBody, req.CustomerEmail
	if (body == "" || email == "") && req.TicketID != "" {
		ticket, err := conn.FetchTicket(ctx, req.TicketID)
		if err != nil {
			a.logger.Warn("Ticket hydration failed", "org_id", req.OrgID, "ticket_id", req.TicketID, "error", err)
		} else if ticket != nil {
			if body == "" {
				body = ticket.BestText()
			}
			if email == "" {
				email = ticket.Customer.Email
			}
		}
	}
	if strings.TrimSpace(body) == "" {
		return knowledge.SynthesisResult{}, knowledge.ErrEmptyInput
	}

	var (
		matches []knowledge.Match
		orders  []connector.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = a.searcher.Search(gctx, body, a.cfg.SynthesisTopK, tenantCfg.Namespace)
		return err
	})
	g.Go(func() error {
		orders = lookupOrders(gctx, conn, email, a.cfg.ConnectorFetchTimeout)
		return nil
	})
	if err := g.Wait(); err != nil {
		a.logger.Error("Retrieval failed", "org_id", req.OrgID, "error", err)
		return apologyResult(err), nil
	}

	return a.drafter.Synthesize(ctx, SynthesisInput{
		TicketText:    body,
		CustomerEmail: email,
		Namespace:     tenantCfg.Namespace,
		Matches:       matches,
		Orders:        orders,
	}), nil
}

// Search knowledge lookup for one organization, k clamped to [1, 50]
func (a *Assistant) Search(ctx context.Context, orgID, query string, k int) ([]knowledge.Match, error) {
	if k <= 0 {
		k = a.cfg.SynthesisTopK
	}
	if k > 50 {
		k = 50
	}
	return a.searcher.Search(ctx, query, k, knowledge.Namespace(orgID))
}
