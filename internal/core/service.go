// Package core implements the storefront data and session layer: catalog,
// identity, cart, orders, site configuration and reset, exposed as one Service.
package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"

	"storefront/internal/logging"
	"storefront/internal/seed"
	"storefront/pkg/domain"
)

// Service is the single state container consulted by every page. Each
// operation runs to completion under one lock, then persists whatever it
// changed before the next operation can observe the state.
type Service struct {
	mu       sync.Mutex
	durable  domain.DurableStore
	sessions domain.SessionStore

	snapshot domain.Snapshot
	origin   domain.SnapshotOrigin
	session  domain.Session
	cart     []domain.CartLineItem
	admins   []domain.AdminAccount

	clock       Clock
	logger      Logger
	metrics     MetricsRecorder
	tracer      Tracer
	ids         IDGenerator
	bus         EventBus.Bus
	strictAdmin bool

	dispatchMu  sync.Mutex
	dispatching bool
	pending     []Event
}

// Open loads the durable snapshot (or seed) and the session flags, repairs a
// session that no longer matches the loaded accounts, and returns the service.
func Open(ctx context.Context, durable domain.DurableStore, sessions domain.SessionStore, opts ...Option) (*Service, error) {
	if durable == nil || sessions == nil {
		return nil, fmt.Errorf("durable and session stores are required")
	}
	s := &Service{
		durable:  durable,
		sessions: sessions,
		admins:   seed.Administrators(),
		clock:    ClockFunc(func() time.Time { return time.Now().UTC() }),
		logger:   logging.Nop(),
		metrics:  noopMetrics{},
		tracer:   noopTracer{},
		bus:      newBus(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ids == nil {
		ids, err := NewSnowflakeIDs(1)
		if err != nil {
			return nil, err
		}
		s.ids = ids
	}

	s.snapshot, s.origin = durable.Load(ctx)
	s.session = sessions.Load(ctx)
	if reason := s.sessionDefect(); reason != "" {
		s.logger.Warn("discarding restored session", "reason", reason)
		s.session = domain.Session{}
		s.persistSession(ctx)
	}
	s.logger.Info("storefront state loaded",
		"origin", s.origin,
		"products", len(s.snapshot.Products),
		"accounts", len(s.snapshot.Accounts),
		"orders", len(s.snapshot.Orders),
		"logged_in", s.session.IsLoggedIn,
	)
	return s, nil
}

func (s *Service) sessionDefect() string {
	if !s.session.Consistent() {
		return "inconsistent session flags"
	}
	if acct := s.session.CurrentAccount; acct != nil {
		if _, ok := s.findAccount(acct.ID); !ok {
			return "current account no longer exists"
		}
	}
	return ""
}

// Origin reports whether the snapshot came from storage or the seed.
func (s *Service) Origin() domain.SnapshotOrigin {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.origin
}

// Snapshot returns a deep copy of the durable record.
func (s *Service) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Clone()
}

// Flush rewrites the snapshot and session flags. Nothing is buffered, so this
// only matters to callers that swapped the medium underneath.
func (s *Service) Flush(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persist(ctx)
	s.persistSession(ctx)
}

// run wraps one operation: tracing, the lock, explicit persistence of what fn
// reports as changed, metrics, logging and change events.
func (s *Service) run(ctx context.Context, op string, fn func() (effect, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx, span := s.tracer.Start(ctx, op)
	start := s.clock.Now()

	s.mu.Lock()
	changed, err := fn()
	if err == nil {
		if changed&changedSnapshot != 0 {
			s.persist(ctx)
		}
		if changed&changedSession != 0 {
			s.persistSession(ctx)
		}
	}
	s.mu.Unlock()

	s.metrics.Observe(ctx, op, err == nil, s.clock.Now().Sub(start))
	span.End(err)
	if err != nil {
		s.logger.Debug("operation rejected", "operation", op, "error", err)
		return err
	}
	s.logger.Debug("operation completed", "operation", op)
	s.publish(op, changed)
	return nil
}

func (s *Service) persist(ctx context.Context) {
	s.durable.Save(ctx, s.snapshot)
}

func (s *Service) persistSession(ctx context.Context) {
	s.sessions.Save(ctx, s.session.Clone())
}
