package availability

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSlotNotFound = errors.New("availability slot not found")
	ErrNotSlotOwner = errors.New("no permission to modify this availability slot")
)

type Repository interface {
	Create(ctx context.Context, s *Slot) (*Slot, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Slot, error)
	UpdateAvailable(ctx context.Context, id uuid.UUID, available bool) (*Slot, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]Slot, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]Slot, error)
	ListOpenAfter(ctx context.Context, doctorID uuid.UUID, after time.Time) ([]Slot, error)
}
