package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotRecipient         = errors.New("no permission to access this notification")
)

type Repository interface {
	Create(ctx context.Context, userID uuid.UUID, message string) (*Notification, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	ListUnreadByUser(ctx context.Context, userID uuid.UUID) ([]Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*Notification, error)
	MarkAllReadByUser(ctx context.Context, userID uuid.UUID) ([]Notification, error)
}
