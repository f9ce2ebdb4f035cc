package domain

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

// Notification subjects
const (
	SubjectProductDeleted = "product.deleted"
)

// Notification is the envelope published to the external notification bus.
// It is built deterministically from the entity at the moment of the action.
type Notification struct {
	ID         string    `json:"id"`
	Subject    string    `json:"subject"`
	EntityID   string    `json:"entity_id"`
	EntityName string    `json:"entity_name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewProductDeletedNotification builds the envelope for a deleted product
func NewProductDeletedNotification(product *Product) *Notification {
	return &Notification{
		ID:         ulid.Make().String(),
		Subject:    SubjectProductDeleted,
		EntityID:   product.ID,
		EntityName: product.Name,
		OccurredAt: time.Now().UTC(),
	}
}

// NotificationPublisher abstracts the external notification bus. Publish
// returns the broker's opaque message identifier. Publish failures on delete
// notifications are logged by callers, never escalated to the admin
// operation's result.
type NotificationPublisher interface {
	Publish(ctx context.Context, notification *Notification) (string, error)
}
