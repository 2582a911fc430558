package core

import (
	"context"
	"time"

	"storefront/internal/logging"
	"storefront/pkg/domain"
)

// Clock supplies the current time; tests pin it.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// Logger is the structured logger used by the service.
type Logger = logging.Logger

// MetricsRecorder observes the outcome and latency of every service operation.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Tracer opens a span around every service operation.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan is closed with the operation error (nil on success).
type TraceSpan interface {
	End(err error)
}

// IDGenerator issues unique, increasing, time-derived identifiers.
type IDGenerator interface {
	NextID() int64
}

type noopMetrics struct{}

func (noopMetrics) Observe(context.Context, string, bool, time.Duration) {}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error) {}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(c Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger overrides the logger.
func WithLogger(l Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics installs a metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithTracer installs a tracer.
func WithTracer(t Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithIDGenerator overrides the identifier source.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Service) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithAdministrators replaces the seed administrator list. Empty lists are ignored
// so the one-administrator floor holds from the start.
func WithAdministrators(admins []domain.AdminAccount) Option {
	return func(s *Service) {
		if len(admins) > 0 {
			s.admins = append([]domain.AdminAccount(nil), admins...)
		}
	}
}

// WithStrictAdminLogin makes the admin login path check the administrator list.
func WithStrictAdminLogin(strict bool) Option {
	return func(s *Service) { s.strictAdmin = strict }
}
