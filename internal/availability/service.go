package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carelane/healthcare-appointments/internal/identity"
)

type AddInput struct {
	Date      time.Time
	TimeSlot  string
	Available bool
}

// Service owns the availability ledger. Ledger entries are weakly correlated
// with appointments on purpose; nothing here blocks or reserves a booking.
type Service struct {
	repo      Repository
	directory identity.Directory
}

func NewService(repo Repository, directory identity.Directory) *Service {
	return &Service{repo: repo, directory: directory}
}

// Add declares a slot for the calling doctor. Duplicate (date, time slot)
// declarations are allowed.
func (s *Service) Add(ctx context.Context, doctorUserID uuid.UUID, in AddInput) (*Slot, error) {
	doctor, err := s.directory.FindDoctorByUser(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}

	slot := &Slot{
		ID:        uuid.New(),
		DoctorID:  doctor.ID,
		Date:      in.Date,
		TimeSlot:  in.TimeSlot,
		Available: in.Available,
	}

	created, err := s.repo.Create(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("create availability slot: %w", err)
	}
	return created, nil
}

func (s *Service) ListForDate(ctx context.Context, doctorUserID uuid.UUID, date time.Time) ([]Slot, error) {
	doctor, err := s.directory.FindDoctorByUser(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}

	slots, err := s.repo.ListByDoctorAndDate(ctx, doctor.ID, date)
	if err != nil {
		return nil, fmt.Errorf("list slots for date: %w", err)
	}
	return slots, nil
}

func (s *Service) ListAll(ctx context.Context, doctorUserID uuid.UUID) ([]Slot, error) {
	doctor, err := s.directory.FindDoctorByUser(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}

	slots, err := s.repo.ListByDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, fmt.Errorf("list all slots: %w", err)
	}
	return slots, nil
}

func (s *Service) Update(ctx context.Context, doctorUserID, slotID uuid.UUID, available bool) (*Slot, error) {
	if _, err := s.findOwned(ctx, doctorUserID, slotID); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateAvailable(ctx, slotID, available)
	if err != nil {
		return nil, fmt.Errorf("update availability slot: %w", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, doctorUserID, slotID uuid.UUID) error {
	if _, err := s.findOwned(ctx, doctorUserID, slotID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, slotID); err != nil {
		return fmt.Errorf("delete availability slot: %w", err)
	}
	return nil
}

func (s *Service) findOwned(ctx context.Context, doctorUserID, slotID uuid.UUID) (*Slot, error) {
	slot, err := s.repo.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}

	doctor, err := s.directory.GetDoctorByID(ctx, slot.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor.UserID != doctorUserID {
		return nil, ErrNotSlotOwner
	}

	return slot, nil
}

// PublicSlotSource adapts the ledger to the identity package's public doctor
// directory.
type PublicSlotSource struct {
	repo Repository
}

func NewPublicSlotSource(repo Repository) *PublicSlotSource {
	return &PublicSlotSource{repo: repo}
}

// ListPubliclyAvailable returns open slots strictly after the given date.
// Callers pass yesterday to include today and later.
func (p *PublicSlotSource) ListPubliclyAvailable(ctx context.Context, doctorID uuid.UUID, after time.Time) ([]identity.PublicSlot, error) {
	slots, err := p.repo.ListOpenAfter(ctx, doctorID, after)
	if err != nil {
		return nil, err
	}

	public := make([]identity.PublicSlot, 0, len(slots))
	for _, s := range slots {
		public = append(public, identity.PublicSlot{
			ID:       s.ID,
			Date:     s.Date,
			TimeSlot: s.TimeSlot,
		})
	}

	return public, nil
}
