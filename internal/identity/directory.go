package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDoctorNotFound  = errors.New("doctor profile not found")
	ErrPatientNotFound = errors.New("patient profile not found")
)

// Directory resolves authenticated user references to their Doctor or Patient
// profile. Every domain service goes through this contract instead of joining
// the profile tables itself.
type Directory interface {
	FindDoctorByUser(ctx context.Context, userID uuid.UUID) (*Doctor, error)
	FindPatientByUser(ctx context.Context, userID uuid.UUID) (*Patient, error)
	GetDoctorByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	GetPatientByID(ctx context.Context, id uuid.UUID) (*Patient, error)
}

// Repository extends the Directory with the writes and listings the profile
// service needs.
type Repository interface {
	Directory

	UpdateDoctor(ctx context.Context, d *Doctor) (*Doctor, error)
	UpdatePatient(ctx context.Context, p *Patient) (*Patient, error)
	ListDoctors(ctx context.Context) ([]Doctor, error)
	ListTopRatedDoctors(ctx context.Context, limit int) ([]Doctor, error)
}

// SlotSource feeds open availability slots into the public doctor directory.
// It is implemented by the availability package.
type SlotSource interface {
	ListPubliclyAvailable(ctx context.Context, doctorID uuid.UUID, after time.Time) ([]PublicSlot, error)
}
