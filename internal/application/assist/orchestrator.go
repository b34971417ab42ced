package assist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/supportbrain/backend/internal/domain/connector"
	"github.com/supportbrain/backend/internal/domain/knowledge"
	"github.com/supportbrain/backend/internal/domain/tenant"
	"github.com/supportbrain/backend/internal/infrastructure/config"
	"github.com/supportbrain/backend/internal/infrastructure/log"
)

// ConnectorResolver resolves the tenant and its platform connector per request
type ConnectorResolver interface {
	Connector(ctx context.Context, orgID string) (connector.Connector, tenant.Config, error)
}

// Searcher retrieval stage
type Searcher interface {
	Search(ctx context.Context, query string, k int, namespace string) ([]knowledge.Match, error)
}

// Drafter synthesis stage
type Drafter interface {
	Synthesize(ctx context.Context, in SynthesisInput) knowledge.SynthesisResult
}

// WidgetPayload optional inline body posted by the ticketing widget
type WidgetPayload struct {
	Ticket struct {
		Subject  string `json:"subject"`
		Excerpt  string `json:"excerpt"`
		Customer struct {
			Email string `json:"email"`
		} `json:"customer"`
	} `json:"ticket"`
	Message struct {
		BodyText string `json:"body_text"`
	} `json:"message"`
}

// WidgetRequest widget call; query parameters take priority over the payload
type WidgetRequest struct {
	OrgID         string
	TicketID      string
	Subject       string
	CustomerEmail string
	Payload       *WidgetPayload
}

// Orchestrator deadline-bounded widget pipeline
type Orchestrator struct {
	resolver  ConnectorResolver
	searcher  Searcher
	drafter   Drafter
	formatter *Formatter
	cfg       *config.AssistConfig
	now       func() time.Time
	logger    *slog.Logger
}

// NewOrchestrator creates an orchestrator
func NewOrchestrator(resolver ConnectorResolver, searcher Searcher, drafter Drafter, formatter *Formatter, cfg *config.AssistConfig) *Orchestrator {
	return &Orchestrator{
		resolver:  resolver,
		searcher:  searcher,
		drafter:   drafter,
		formatter: formatter,
		cfg:       cfg,
		now:       time.Now,
		logger:    log.NewModuleLogger("assist", "orchestrator"),
	}
}

// unitOutcome result of the search+synthesize unit
type unitOutcome struct {
	matches   []knowledge.Match
	result    *knowledge.SynthesisResult
	searchErr error
}

// retrieved matches shared between the unit goroutine and the deadline path
type retrieved struct {
	mu      sync.Mutex
	matches []knowledge.Match
}

func (r *retrieved) set(matches []knowledge.Match) {
	r.mu.Lock()
	r.matches = matches
	r.mu.Unlock()
}

func (r *retrieved) get() []knowledge.Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.matches
}

// Run always returns a response within the total budget
func (o *Orchestrator) Run(ctx context.Context, req WidgetRequest) (resp WidgetResponse) {
	budget := NewBudget(o.cfg.TotalBudget, o.now)
	ctx = log.WithOrgID(ctx, req.OrgID)
	logger := log.FromContext(ctx, o.logger)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Widget pipeline panicked", "panic", r)
			resp = o.formatter.Error(fmt.Sprint(r))
		}
		logger.Info("Widget response",
			"tier", resp.Tier,
			"elapsed_ms", budget.Elapsed().Milliseconds(),
		)
	}()

	conn, tenantCfg := o.connectorFor(ctx, req.OrgID)

	text, email := o.resolveInput(ctx, conn, req)
	if text == "" {
		return o.formatter.NoInput()
	}

	remaining := budget.Remaining()
	if remaining <= o.cfg.MinSearchBudget {
		logger.Warn("Budget exhausted before search", "remaining", remaining)
		return o.formatter.Degraded(nil)
	}

	return o.searchAndSynthesize(ctx, budget, remaining, conn, tenantCfg.Namespace, text, email)
}

// connectorFor a resolution failure only costs the live data sources
func (o *Orchestrator) connectorFor(ctx context.Context, orgID string) (connector.Connector, tenant.Config) {
	conn, cfg, err := o.resolver.Connector(ctx, orgID)
	if err != nil {
		o.logger.Warn("Tenant resolution failed, continuing without connector", "org_id", orgID, "error", err)
		return nil, tenant.NewConfig(orgID, tenant.Integration{})
	}
	return conn, cfg
}

// resolveInput query params, then inline payload, then a time-boxed connector fetch
func (o *Orchestrator) resolveInput(ctx context.Context, conn connector.Connector, req WidgetRequest) (string, string) {
	text := req.Subject
	email := req.CustomerEmail

	if text == "" && req.Payload != nil {
		p := req.Payload
		text = firstNonEmpty(p.Message.BodyText, p.Ticket.Excerpt, p.Ticket.Subject)
		if email == "" {
			email = p.Ticket.Customer.Email
		}
	}

	if (text == "" || email == "") && req.TicketID != "" && conn != nil {
		ticket := o.fetchTicket(ctx, conn, req.TicketID)
		if ticket != nil {
			if text == "" {
				text = ticket.BestText()
			}
			if email == "" {
				email = ticket.Customer.Email
			}
		}
	}
	return text, email
}

// fetchTicket bounded by the connector fetch timeout; timeouts are not fatal
func (o *Orchestrator) fetchTicket(ctx context.Context, conn connector.Connector, ticketID string) *connector.Ticket {
	fetchCtx, cancel := context.WithTimeout(ctx, o.cfg.ConnectorFetchTimeout)
	defer cancel()

	type fetched struct {
		ticket *connector.Ticket
		err    error
	}
	ch := make(chan fetched, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- fetched{err: fmt.Errorf("connector panicked: %v", r)}
			}
		}()
		ticket, err := conn.FetchTicket(fetchCtx, ticketID)
		ch <- fetched{ticket: ticket, err: err}
	}()

	select {
	case <-fetchCtx.Done():
		o.logger.Warn("Ticket fetch timed out", "ticket_id", ticketID, "timeout", o.cfg.ConnectorFetchTimeout)
		return nil
	case f := <-ch:
		if f.err != nil {
			o.logger.Warn("Ticket fetch failed", "ticket_id", ticketID, "error", f.err)
			return nil
		}
		return f.ticket
	}
}

// searchAndSynthesize one cancellable unit bounded by remaining
// Matches computed before a timeout are reused for the degraded tier.
func (o *Orchestrator) searchAndSynthesize(ctx context.Context, budget *Budget, remaining time.Duration, conn connector.Connector, namespace, text, email string) WidgetResponse {
	unitCtx, cancel := context.WithTimeout(ctx, remaining)
	defer cancel()

	state := &retrieved{}
	done := make(chan unitOutcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- unitOutcome{searchErr: fmt.Errorf("search panicked: %v", r)}
			}
		}()
		done <- o.runUnit(unitCtx, budget, state, conn, namespace, text, email)
	}()

	select {
	case <-unitCtx.Done():
		return o.onTimeout(ctx, state.get())
	case out := <-done:
		if unitCtx.Err() != nil {
			return o.onTimeout(ctx, state.get())
		}
		switch {
		case out.searchErr != nil:
			o.logger.Error("Retrieval failed", "namespace", namespace, "error", out.searchErr)
			return o.formatter.NoResult()
		case len(out.matches) == 0:
			return o.formatter.NoResult()
		case out.result == nil:
			return o.formatter.Degraded(out.matches)
		default:
			return o.formatter.Full(*out.result)
		}
	}
}

func (o *Orchestrator) onTimeout(ctx context.Context, matches []knowledge.Match) WidgetResponse {
	if ctx.Err() != nil && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		o.logger.Warn("Request canceled", "error", ctx.Err())
	} else {
		o.logger.Warn("Budget exhausted, answering from search results", "matches", len(matches))
	}
	return o.formatter.Degraded(matches)
}

// runUnit retrieval then, time permitting, synthesis
// The order lookup runs alongside retrieval; neither depends on the other.
func (o *Orchestrator) runUnit(ctx context.Context, budget *Budget, state *retrieved, conn connector.Connector, namespace, text, email string) unitOutcome {
	var (
		matches []knowledge.Match
		orders  []connector.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = o.searcher.Search(gctx, text, o.cfg.WidgetTopK, namespace)
		if err != nil {
			return err
		}
		state.set(matches)
		return nil
	})
	g.Go(func() error {
		orders = lookupOrders(gctx, conn, email, o.cfg.ConnectorFetchTimeout)
		return nil
	})
	if err := g.Wait(); err != nil {
		return unitOutcome{searchErr: err}
	}

	if len(matches) == 0 {
		return unitOutcome{}
	}
	if budget.Past(o.cfg.SynthesisCutoff) {
		o.logger.Info("Past synthesis cutoff, skipping synthesis", "elapsed", budget.Elapsed())
		return unitOutcome{matches: matches}
	}

	result := o.drafter.Synthesize(ctx, SynthesisInput{
		TicketText:    text,
		CustomerEmail: email,
		Namespace:     namespace,
		Matches:       matches,
		Orders:        orders,
	})
	return unitOutcome{matches: matches, result: &result}
}

// lookupOrders live order data; empty on any failure
func lookupOrders(ctx context.Context, conn connector.Connector, email string, timeout time.Duration) []connector.Order {
	if conn == nil || email == "" {
		return nil
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return conn.GetOrderStatus(ctx, email)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
