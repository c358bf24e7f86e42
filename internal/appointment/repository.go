package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/carelane/healthcare-appointments/internal/identity"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrNotAppointmentOwner  = errors.New("no permission to modify this appointment")
	ErrAppointmentFinalized = errors.New("appointment is already finalized")
)

// Repository contains all DB interactions needed by the lifecycle service and
// the patient history aggregator.
type Repository interface {
	Create(ctx context.Context, a *Appointment) (*Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) (*Appointment, error)

	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]Appointment, error)
	ListByPatientFromDate(ctx context.Context, patientID uuid.UUID, date time.Time) ([]Appointment, error)
	ListByPatientBeforeDate(ctx context.Context, patientID uuid.UUID, date time.Time) ([]Appointment, error)

	// Shared-history evidence for the doctor/patient relationship.
	ListByDoctorAndPatient(ctx context.Context, doctorID, patientID uuid.UUID) ([]Appointment, error)
	ListDistinctPatientsByDoctor(ctx context.Context, doctorID uuid.UUID) ([]identity.Patient, error)
}
