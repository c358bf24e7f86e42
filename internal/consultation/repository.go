package consultation

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrConsultationNotFound = errors.New("consultation not found for this appointment")
	ErrNotAppointmentDoctor = errors.New("no permission to create a consultation for this appointment")
	ErrNotConsultationParty = errors.New("no permission to view this consultation")
	ErrAppointmentNotBooked = errors.New("consultation can only be created for Booked appointments")
)

type Repository interface {
	// CreateCompleting inserts the consultation and moves its appointment
	// from Booked to Completed in a single transaction. If the appointment
	// is no longer Booked the whole operation fails with
	// ErrAppointmentNotBooked and nothing is written.
	CreateCompleting(ctx context.Context, c *Consultation) (*Consultation, error)

	GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*Consultation, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Consultation, error)
}
