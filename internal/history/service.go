package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/carelane/healthcare-appointments/internal/appointment"
	"github.com/carelane/healthcare-appointments/internal/consultation"
	"github.com/carelane/healthcare-appointments/internal/identity"
)

var ErrNoSharedHistory = errors.New("no permission to view this patient's history")

// AppointmentStore is the slice of the appointment repository the aggregator
// reads.
type AppointmentStore interface {
	ListByDoctorAndPatient(ctx context.Context, doctorID, patientID uuid.UUID) ([]appointment.Appointment, error)
	ListDistinctPatientsByDoctor(ctx context.Context, doctorID uuid.UUID) ([]identity.Patient, error)
}

type ConsultationStore interface {
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]consultation.Consultation, error)
}

// PatientHistory is the read-only composition a treating doctor sees: the
// patient profile, the appointments shared with the caller, and the patient's
// complete consultation record across all doctors.
type PatientHistory struct {
	Patient       identity.Patient
	Appointments  []appointment.Appointment
	Consultations []consultation.Consultation
}

type Service struct {
	directory     identity.Directory
	appointments  AppointmentStore
	consultations ConsultationStore
}

func NewService(directory identity.Directory, appointments AppointmentStore, consultations ConsultationStore) *Service {
	return &Service{
		directory:     directory,
		appointments:  appointments,
		consultations: consultations,
	}
}

// GetHistory authorizes by business evidence: the caller may view the patient
// only if at least one appointment links them. An absent relationship and an
// absent permission are deliberately indistinguishable.
func (s *Service) GetHistory(ctx context.Context, doctorUserID, patientID uuid.UUID) (*PatientHistory, error) {
	doctor, err := s.directory.FindDoctorByUser(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}

	patient, err := s.directory.GetPatientByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	shared, err := s.appointments.ListByDoctorAndPatient(ctx, doctor.ID, patient.ID)
	if err != nil {
		return nil, fmt.Errorf("list shared appointments: %w", err)
	}
	if len(shared) == 0 {
		return nil, ErrNoSharedHistory
	}

	consultations, err := s.consultations.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, fmt.Errorf("list patient consultations: %w", err)
	}

	return &PatientHistory{
		Patient:       *patient,
		Appointments:  shared,
		Consultations: consultations,
	}, nil
}

// ListAssociatedPatients returns the distinct patients who have ever had an
// appointment with the calling doctor.
func (s *Service) ListAssociatedPatients(ctx context.Context, doctorUserID uuid.UUID) ([]identity.Patient, error) {
	doctor, err := s.directory.FindDoctorByUser(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}

	patients, err := s.appointments.ListDistinctPatientsByDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, fmt.Errorf("list associated patients: %w", err)
	}
	return patients, nil
}
