package assist

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/supportbrain/backend/internal/domain/connector"
	"github.com/supportbrain/backend/internal/domain/knowledge"
	"github.com/supportbrain/backend/internal/domain/tenant"
	"github.com/supportbrain/backend/internal/infrastructure/config"
)

// MockEmbedder testify mock of knowledge.Embedder
type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

// vectors n unit vectors of dimension 3
func vectors(n int) [][]float32 {
	out := make([][]float32, n)
	for i := range out {
		out[i] = []float32{1, float32(i), 0}
	}
	return out
}

func textsOfLen(n int) any {
	return mock.MatchedBy(func(texts []string) bool { return len(texts) == n })
}

// stubIndex returns fixed hits
type stubIndex struct {
	hits []knowledge.ScoredRecord
	err  error
}

func (s *stubIndex) Upsert(context.Context, string, []knowledge.Record) error { return nil }

func (s *stubIndex) Query(context.Context, string, []float32, int) ([]knowledge.ScoredRecord, error) {
	return s.hits, s.err
}

func (s *stubIndex) Ping(context.Context) error { return nil }

// stubModel records prompts and returns a canned reply
type stubModel struct {
	reply  string
	err    error
	system string
	user   string
}

func (s *stubModel) CompleteJSON(_ context.Context, system, user string) (string, error) {
	s.system = system
	s.user = user
	return s.reply, s.err
}

// fakeConnector connector with an optional slow ticket fetch
type fakeConnector struct {
	ticket     *connector.Ticket
	fetchErr   error
	fetchDelay time.Duration
	orders     []connector.Order

	mu          sync.Mutex
	orderEmails []string
}

func (f *fakeConnector) Platform() connector.Platform      { return connector.PlatformGorgias }
func (f *fakeConnector) HealthCheck(context.Context) error { return nil }
func (f *fakeConnector) FetchOrders(context.Context, int) ([]connector.Order, error) {
	return nil, nil
}
func (f *fakeConnector) FetchProducts(context.Context, int) ([]connector.Product, error) {
	return nil, nil
}
func (f *fakeConnector) FetchTickets(context.Context, string, int) (*connector.TicketPage, error) {
	return &connector.TicketPage{}, nil
}

func (f *fakeConnector) FetchTicket(context.Context, string) (*connector.Ticket, error) {
	if f.fetchDelay > 0 {
		// ignores ctx to simulate a connector that does not honor cancellation
		time.Sleep(f.fetchDelay)
	}
	return f.ticket, f.fetchErr
}

func (f *fakeConnector) GetOrderStatus(_ context.Context, email string) []connector.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orderEmails = append(f.orderEmails, email)
	return f.orders
}

// fakeResolver always resolves to conn
type fakeResolver struct {
	conn  connector.Connector
	err   error
	panic bool
}

func (f *fakeResolver) Connector(_ context.Context, orgID string) (connector.Connector, tenant.Config, error) {
	if f.panic {
		panic("boom")
	}
	if f.err != nil {
		return nil, tenant.Config{}, f.err
	}
	return f.conn, tenant.NewConfig(orgID, tenant.Integration{OrgID: orgID, Active: true}), nil
}

// fakeSearcher counts calls and returns fixed matches
type fakeSearcher struct {
	matches []knowledge.Match
	err     error
	delay   time.Duration
	calls   atomic.Int32

	mu        sync.Mutex
	lastQuery string
	lastK     int
	lastNS    string
}

func (f *fakeSearcher) Search(_ context.Context, query string, k int, namespace string) ([]knowledge.Match, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.lastQuery, f.lastK, f.lastNS = query, k, namespace
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.matches, f.err
}

func (f *fakeSearcher) query() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery
}

// fakeDrafter returns a fixed result after delay, ignoring ctx
type fakeDrafter struct {
	result knowledge.SynthesisResult
	delay  time.Duration
	calls  atomic.Int32

	mu   sync.Mutex
	last SynthesisInput
}

func (f *fakeDrafter) Synthesize(_ context.Context, in SynthesisInput) knowledge.SynthesisResult {
	f.calls.Add(1)
	f.mu.Lock()
	f.last = in
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.result
}

func (f *fakeDrafter) input() SynthesisInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// stepClock returns start for the first n calls, then start+jump
type stepClock struct {
	start time.Time
	n     int32
	jump  time.Duration
	calls atomic.Int32
}

func (c *stepClock) now() time.Time {
	if c.calls.Add(1) <= c.n {
		return c.start
	}
	return c.start.Add(c.jump)
}

func defaultAssistConfig() *config.AssistConfig {
	cfg := config.NewConfig().Assist
	return &cfg
}

// fastAssistConfig shrinks every deadline so timing tests stay quick
func fastAssistConfig() *config.AssistConfig {
	cfg := defaultAssistConfig()
	cfg.TotalBudget = 400 * time.Millisecond
	cfg.ConnectorFetchTimeout = 50 * time.Millisecond
	cfg.MinSearchBudget = 50 * time.Millisecond
	cfg.SynthesisCutoff = 300 * time.Millisecond
	return cfg
}

func ticketMatch(id string, score float64, text string) knowledge.Match {
	return knowledge.Match{
		Chunk: knowledge.Chunk{
			ID:   id,
			Text: text,
			Metadata: knowledge.Metadata{
				SourceType: knowledge.SourceTicket,
				SourceID:   id,
			},
		},
		Score:        score,
		BoostedScore: score,
	}
}
