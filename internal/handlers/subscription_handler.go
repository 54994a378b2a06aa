package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"newsletter-go/internal/domain"
	"newsletter-go/internal/logging"
	"newsletter-go/internal/models"
	"newsletter-go/internal/service"
)

const subscribeEndpoint = "POST /subscriptions"

type SubscriptionHandler struct {
	service *service.SubscriptionService
	logger  *logging.ContextLogger
	tracer  trace.Tracer
}

func NewSubscriptionHandler(service *service.SubscriptionService, logger *logging.ContextLogger) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: service,
		logger:  logger,
		tracer:  otel.Tracer("subscription-handler"),
	}
}

func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "subscription.handler.subscribe")
	defer span.End()

	var form models.SubscribeForm
	if err := c.ShouldBindWith(&form, binding.FormPost); err != nil {
		h.logger.WarnWithTracing(ctx, "Missing subscription form fields", logrus.Fields{
			"endpoint": subscribeEndpoint,
			"error":    err.Error(),
		})
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and email are required"})
		return
	}

	subscriber, err := domain.ParseNewSubscriber(form.Name, form.Email)
	if err != nil {
		h.logger.WarnWithTracing(ctx, "Invalid subscription form", logrus.Fields{
			"endpoint": subscribeEndpoint,
			"error":    err.Error(),
		})
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.InfoWithTracing(ctx, "Adding a new subscriber", logrus.Fields{
		"email":    subscriber.Email.String(),
		"name":     subscriber.Name.String(),
		"endpoint": subscribeEndpoint,
	})

	subscription, err := h.service.Subscribe(ctx, subscriber)
	if err != nil {
		h.logger.ErrorWithTracing(ctx, "Failed to create subscription", err, logrus.Fields{
			"email":    subscriber.Email.String(),
			"endpoint": subscribeEndpoint,
		})
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
		return
	}

	h.logger.InfoWithTracing(ctx, "New subscriber details have been saved", logrus.Fields{
		"subscription_id": subscription.ID.String(),
		"endpoint":        subscribeEndpoint,
	})

	span.SetAttributes(
		attribute.String("subscription.id", subscription.ID.String()),
		attribute.Bool("success", true),
	)

	c.Status(http.StatusOK)
}
