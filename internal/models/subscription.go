package models

import (
	"time"

	"github.com/google/uuid"

	"newsletter-go/internal/domain"
)

type Subscription struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// SubscribeForm is the urlencoded body of POST /subscriptions.
type SubscribeForm struct {
	Name  string `form:"name" binding:"required"`
	Email string `form:"email" binding:"required"`
}

func NewSubscription(sub domain.NewSubscriber) *Subscription {
	return &Subscription{
		ID:           uuid.New(),
		Email:        sub.Email.String(),
		Name:         sub.Name.String(),
		SubscribedAt: time.Now().UTC(),
	}
}
