package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"newsletter-go/internal/domain"
	"newsletter-go/internal/logging"
	"newsletter-go/internal/models"
	"newsletter-go/internal/repository"
)

const (
	welcomeSubject  = "Welcome!"
	welcomeHTMLBody = "<p>Welcome to our newsletter!</p>"
	welcomeTextBody = "Welcome to our newsletter!"
)

type EmailSender interface {
	SendEmail(ctx context.Context, recipient domain.SubscriberEmail, subject, htmlBody, textBody string) error
}

type SubscriptionService struct {
	repo            repository.SubscriptionRepository
	email           EmailSender
	sendOnSubscribe bool
	logger          *logging.ContextLogger
	tracer          trace.Tracer
}

// NewSubscriptionService wires the intake path. email may be nil, in which
// case no welcome email is sent regardless of sendOnSubscribe.
func NewSubscriptionService(repo repository.SubscriptionRepository, email EmailSender, sendOnSubscribe bool, logger *logging.ContextLogger) *SubscriptionService {
	return &SubscriptionService{
		repo:            repo,
		email:           email,
		sendOnSubscribe: sendOnSubscribe && email != nil,
		logger:          logger,
		tracer:          otel.Tracer("subscription-service"),
	}
}

func (s *SubscriptionService) Subscribe(ctx context.Context, sub domain.NewSubscriber) (*models.Subscription, error) {
	ctx, span := s.tracer.Start(ctx, "subscription.service.subscribe",
		trace.WithAttributes(
			attribute.String("subscriber.email", sub.Email.String()),
			attribute.String("subscriber.name", sub.Name.String()),
		))
	defer span.End()

	subscription := models.NewSubscription(sub)

	s.logger.InfoWithTracing(ctx, "Saving new subscriber details in the database", logrus.Fields{
		"subscription_id": subscription.ID.String(),
		"email":           subscription.Email,
	})

	if err := s.repo.Insert(ctx, subscription); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if s.sendOnSubscribe {
		if err := s.email.SendEmail(ctx, sub.Email, welcomeSubject, welcomeHTMLBody, welcomeTextBody); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("subscription %s saved but welcome email failed: %w", subscription.ID, err)
		}
		span.SetAttributes(attribute.Bool("email.sent", true))
	} else {
		s.logger.DebugWithTracing(ctx, "Welcome email disabled, skipping", logrus.Fields{
			"subscription_id": subscription.ID.String(),
		})
	}

	span.SetAttributes(
		attribute.String("subscription.id", subscription.ID.String()),
		attribute.Bool("success", true),
	)
	return subscription, nil
}
