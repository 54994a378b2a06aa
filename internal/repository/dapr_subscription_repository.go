package repository

import (
	"context"
	"encoding/json"
	"fmt"

	dapr "github.com/dapr/go-sdk/client"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"newsletter-go/internal/models"
)

// StateSaver is the part of dapr.Client the repository needs.
type StateSaver interface {
	SaveState(ctx context.Context, storeName, key string, data []byte, meta map[string]string, so ...dapr.StateOption) error
}

// DaprSubscriptionRepository stores each subscription as a JSON document keyed
// by its ID. Dapr state stores have no unique indexes, so duplicate emails are
// not detected here.
type DaprSubscriptionRepository struct {
	client    StateSaver
	tracer    trace.Tracer
	storeName string
}

func NewDaprSubscriptionRepository(client StateSaver, storeName string) *DaprSubscriptionRepository {
	return &DaprSubscriptionRepository{
		client:    client,
		tracer:    otel.Tracer("dapr.repository"),
		storeName: storeName,
	}
}

func (r *DaprSubscriptionRepository) Insert(ctx context.Context, subscription *models.Subscription) error {
	ctx, span := r.tracer.Start(ctx, "subscription.repository.insert",
		trace.WithAttributes(
			attribute.String("subscription.id", subscription.ID.String()),
			attribute.String("operation", "database.write"),
			attribute.String("storage.backend", "dapr"),
			attribute.String("dapr.store", r.storeName),
		))
	defer span.End()

	data, err := json.Marshal(subscription)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to marshal subscription: %w", err)
	}

	err = r.client.SaveState(ctx, r.storeName, StateKey(subscription), data, nil)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to save subscription to dapr state store: %w", err)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return nil
}

func StateKey(subscription *models.Subscription) string {
	return "subscription:" + subscription.ID.String()
}
