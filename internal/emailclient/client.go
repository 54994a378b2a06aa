package emailclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mrz1836/postmark"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"newsletter-go/internal/domain"
)

var ErrSendFailed = errors.New("failed to send email")

// Client sends transactional email through the Postmark HTTP API. Each call
// is a single request bounded by the configured timeout; nothing is retried.
type Client struct {
	client *postmark.Client
	sender domain.SubscriberEmail
	tracer trace.Tracer
}

func New(baseURL string, sender domain.SubscriberEmail, authorizationToken string, timeout time.Duration) *Client {
	client := postmark.NewClient(authorizationToken, "")
	client.BaseURL = strings.TrimRight(baseURL, "/")
	client.HTTPClient = &http.Client{Timeout: timeout}

	return &Client{
		client: client,
		sender: sender,
		tracer: otel.Tracer("email-client"),
	}
}

func (c *Client) SendEmail(ctx context.Context, recipient domain.SubscriberEmail, subject, htmlBody, textBody string) error {
	ctx, span := c.tracer.Start(ctx, "email.client.send",
		trace.WithAttributes(
			attribute.String("email.recipient", recipient.String()),
			attribute.String("operation", "email.send"),
		))
	defer span.End()

	resp, err := c.client.SendEmail(ctx, postmark.Email{
		From:     c.sender.String(),
		To:       recipient.String(),
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
	if err != nil {
		span.RecordError(err)
		return errors.Join(ErrSendFailed, err)
	}
	if resp.ErrorCode > 0 {
		err := fmt.Errorf("postmark error %d: %s", resp.ErrorCode, resp.Message)
		span.RecordError(err)
		return errors.Join(ErrSendFailed, err)
	}

	span.SetAttributes(
		attribute.String("email.message_id", resp.MessageID),
		attribute.Bool("success", true),
	)
	return nil
}
