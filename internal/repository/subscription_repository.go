package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"newsletter-go/internal/models"
)

var ErrDuplicateSubscription = errors.New("subscription already exists")

type SubscriptionRepository interface {
	Insert(ctx context.Context, subscription *models.Subscription) error
}

// InMemorySubscriptionRepository keeps rows in insertion order. It rejects a
// second row for the same email, mirroring the UNIQUE constraint in Postgres.
type InMemorySubscriptionRepository struct {
	mu            sync.RWMutex
	subscriptions []*models.Subscription
	tracer        trace.Tracer
}

func NewInMemorySubscriptionRepository() *InMemorySubscriptionRepository {
	return &InMemorySubscriptionRepository{
		tracer: otel.Tracer("subscription-repository"),
	}
}

func (r *InMemorySubscriptionRepository) Insert(ctx context.Context, subscription *models.Subscription) error {
	_, span := r.tracer.Start(ctx, "subscription.repository.insert",
		trace.WithAttributes(
			attribute.String("subscription.id", subscription.ID.String()),
			attribute.String("operation", "database.write"),
			attribute.String("storage.backend", "memory"),
		))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.subscriptions {
		if existing.Email == subscription.Email {
			err := fmt.Errorf("%w: %s", ErrDuplicateSubscription, subscription.Email)
			span.RecordError(err)
			return err
		}
	}

	stored := *subscription
	r.subscriptions = append(r.subscriptions, &stored)
	span.SetAttributes(attribute.Bool("success", true))
	return nil
}

// All returns a copy of every stored row.
func (r *InMemorySubscriptionRepository) All() []models.Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Subscription, 0, len(r.subscriptions))
	for _, s := range r.subscriptions {
		result = append(result, *s)
	}
	return result
}
