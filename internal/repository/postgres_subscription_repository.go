package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"newsletter-go/internal/database"
	"newsletter-go/internal/models"
)

const insertSubscriptionQuery = `INSERT INTO subscriptions (id, email, name, subscribed_at) VALUES ($1, $2, $3, $4)`

type PostgresSubscriptionRepository struct {
	db     *sql.DB
	tracer trace.Tracer
}

func NewPostgresSubscriptionRepository(db *sql.DB) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{
		db:     db,
		tracer: otel.Tracer("postgres.repository"),
	}
}

func (r *PostgresSubscriptionRepository) Insert(ctx context.Context, subscription *models.Subscription) error {
	ctx, span := r.tracer.Start(ctx, "subscription.repository.insert",
		trace.WithAttributes(
			attribute.String("subscription.id", subscription.ID.String()),
			attribute.String("operation", "database.write"),
			attribute.String("storage.backend", "postgres"),
		))
	defer span.End()

	_, err := r.db.ExecContext(ctx, insertSubscriptionQuery,
		subscription.ID,
		subscription.Email,
		subscription.Name,
		subscription.SubscribedAt,
	)
	if err != nil {
		span.RecordError(err)
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateSubscription, subscription.Email)
		}
		return fmt.Errorf("failed to insert subscription: %w", err)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return nil
}
