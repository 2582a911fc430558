package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"storefront/internal/infra/kv/memory"
	"storefront/internal/store"
	"storefront/pkg/domain"
)

type seqIDs struct {
	mu   sync.Mutex
	next int64
}

func (g *seqIDs) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return g.next
}

var fixedNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

type harness struct {
	svc      *Service
	durable  *memory.Store
	sessions *memory.Store
}

func newHarness(t *testing.T, opts ...Option) harness {
	t.Helper()
	h := harness{durable: memory.New(), sessions: memory.New()}
	h.svc = h.open(t, opts...)
	return h
}

// open builds a service over the harness media, as a restart would.
func (h harness) open(t *testing.T, opts ...Option) *Service {
	t.Helper()
	base := []Option{
		WithClock(ClockFunc(func() time.Time { return fixedNow })),
		WithIDGenerator(&seqIDs{next: 1000}),
	}
	svc, err := Open(context.Background(),
		store.NewDurable(h.durable, "", nil),
		store.NewSession(h.sessions, nil),
		append(base, opts...)...)
	require.NoError(t, err)
	return svc
}

func seedProduct(t *testing.T, svc *Service) (domain.Product, domain.ProductVariant) {
	t.Helper()
	p, ok := svc.Product(1)
	require.True(t, ok)
	v, ok := p.Variant(101)
	require.True(t, ok)
	return p, v
}

func loginCustomer(t *testing.T, svc *Service) {
	t.Helper()
	require.NoError(t, svc.Login(context.Background(), domain.Credentials{
		Email: "customer@example.com", Password: "password123",
	}))
}

type captureLogger struct {
	mu    sync.Mutex
	calls []string
}

func (c *captureLogger) add(s string) { c.mu.Lock(); c.calls = append(c.calls, s); c.mu.Unlock() }

func (c *captureLogger) Debug(msg string, _ ...any) { c.add("d:" + msg) }
func (c *captureLogger) Info(msg string, _ ...any)  { c.add("i:" + msg) }
func (c *captureLogger) Warn(msg string, _ ...any)  { c.add("w:" + msg) }
func (c *captureLogger) Error(msg string, _ ...any) { c.add("e:" + msg) }

func (c *captureLogger) has(entry string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, call := range c.calls {
		if call == entry {
			return true
		}
	}
	return false
}

type metricsCall struct {
	op      string
	success bool
}

type captureMetrics struct {
	mu    sync.Mutex
	calls []metricsCall
}

func (c *captureMetrics) Observe(_ context.Context, op string, success bool, _ time.Duration) {
	c.mu.Lock()
	c.calls = append(c.calls, metricsCall{op: op, success: success})
	c.mu.Unlock()
}
