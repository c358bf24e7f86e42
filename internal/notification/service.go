package notification

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sink is what the lifecycle services use to inform a party about a state
// change. Delivery is best effort: a failed notification must never abort the
// transition that triggered it, so the contract has no error return.
type Sink interface {
	Notify(ctx context.Context, userID uuid.UUID, message string)
}

type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) Notify(ctx context.Context, userID uuid.UUID, message string) {
	if _, err := s.repo.Create(ctx, userID, message); err != nil {
		s.log.Error("notification write failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}

func (s *Service) ListUnread(ctx context.Context, userID uuid.UUID) ([]Notification, error) {
	return s.repo.ListUnreadByUser(ctx, userID)
}

// MarkRead flips the read flag, recipient only.
func (s *Service) MarkRead(ctx context.Context, id, userID uuid.UUID) (*Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if n.UserID != userID {
		return nil, ErrNotRecipient
	}

	return s.repo.MarkRead(ctx, id)
}

func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) ([]Notification, error) {
	return s.repo.MarkAllReadByUser(ctx, userID)
}
