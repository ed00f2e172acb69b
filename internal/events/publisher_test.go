package events

import (
	"context"
	"testing"

	"github.com/finacct/accrual_subledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPublishFansOutToSubscribers(t *testing.T) {
	p := NewInProcessPublisher()

	var received []domain.EventName
	p.Subscribe(func(ctx context.Context, e domain.AccrualEvent) {
		received = append(received, e.Name)
	})
	p.Subscribe(func(ctx context.Context, e domain.AccrualEvent) {
		received = append(received, e.Name)
	})

	p.Publish(context.Background(), domain.AccrualEvent{
		Name:        domain.EventAccrualCreated,
		AccrualID:   "acc-1",
		Amount:      decimal.NewFromInt(100),
		Outstanding: decimal.NewFromInt(100),
	})

	assert.Len(t, received, 2)
	assert.Equal(t, domain.EventAccrualCreated, received[0])
}

func TestPublishSurvivesPanickingSubscriber(t *testing.T) {
	p := NewInProcessPublisher()

	called := false
	p.Subscribe(func(ctx context.Context, e domain.AccrualEvent) {
		panic("broken subscriber")
	})
	p.Subscribe(func(ctx context.Context, e domain.AccrualEvent) {
		called = true
	})

	assert.NotPanics(t, func() {
		p.Publish(context.Background(), domain.AccrualEvent{Name: domain.EventAccrualApproved})
	})
	assert.True(t, called)
}
