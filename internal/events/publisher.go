package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/finacct/accrual_subledger_app/internal/core/domain"
	portssvc "github.com/finacct/accrual_subledger_app/internal/core/ports/services"
	"github.com/finacct/accrual_subledger_app/internal/middleware"
)

// Subscriber receives domain events. Subscribers must not block; long work
// belongs in the subscriber's own goroutine or queue.
type Subscriber func(ctx context.Context, event domain.AccrualEvent)

// InProcessPublisher fans events out to registered subscribers and logs each
// event. It is the default wiring; external brokers sit behind the same port.
type InProcessPublisher struct {
	mu          sync.RWMutex
	subscribers []Subscriber
}

// NewInProcessPublisher creates an empty publisher.
func NewInProcessPublisher() *InProcessPublisher {
	return &InProcessPublisher{}
}

var _ portssvc.EventPublisher = (*InProcessPublisher)(nil)

// Subscribe registers a subscriber for all subsequent events.
func (p *InProcessPublisher) Subscribe(s Subscriber) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, s)
}

// Publish delivers the event to every subscriber. A panicking subscriber is
// logged and skipped; event delivery never fails the lifecycle operation
// that produced it.
func (p *InProcessPublisher) Publish(ctx context.Context, event domain.AccrualEvent) {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Info("Domain event published",
		slog.String("event", string(event.Name)),
		slog.String("accrual_id", event.AccrualID),
		slog.String("accrual_number", event.AccrualNumber),
		slog.String("status", string(event.Status)),
		slog.String("amount", event.Amount.String()),
		slog.String("outstanding", event.Outstanding.String()),
		slog.String("actor", event.Actor),
	)

	p.mu.RLock()
	subs := make([]Subscriber, len(p.subscribers))
	copy(subs, p.subscribers)
	p.mu.RUnlock()

	for _, s := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Event subscriber panicked", slog.String("event", string(event.Name)), slog.Any("panic", r))
				}
			}()
			s(ctx, event)
		}()
	}
}
