package consultation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carelane/healthcare-appointments/internal/appointment"
	"github.com/carelane/healthcare-appointments/internal/identity"
	"github.com/carelane/healthcare-appointments/internal/notification"
)

// AppointmentStore is the slice of the appointment repository the recorder
// needs.
type AppointmentStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
}

type CreateInput struct {
	Symptoms      string
	BloodPressure string
	Height        int
	Weight        int
	Description   string
	Notes         string
	Status        string
}

type Service struct {
	repo         Repository
	appointments AppointmentStore
	directory    identity.Directory
	notifier     notification.Sink
	log          *zap.Logger
}

func NewService(repo Repository, appointments AppointmentStore, directory identity.Directory, notifier notification.Sink, log *zap.Logger) *Service {
	return &Service{
		repo:         repo,
		appointments: appointments,
		directory:    directory,
		notifier:     notifier,
		log:          log,
	}
}

// Create records the clinical outcome of a Booked appointment. The insert and
// the Booked to Completed transition commit together; a second attempt finds
// the appointment Completed and fails.
func (s *Service) Create(ctx context.Context, appointmentID, doctorUserID uuid.UUID, in CreateInput) (*Consultation, error) {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	doctor, err := s.directory.GetDoctorByID(ctx, appt.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor.UserID != doctorUserID {
		return nil, ErrNotAppointmentDoctor
	}

	if appt.Status != appointment.StatusBooked {
		return nil, ErrAppointmentNotBooked
	}

	cons := &Consultation{
		ID:            uuid.New(),
		AppointmentID: appt.ID,
		DoctorID:      appt.DoctorID,
		PatientID:     appt.PatientID,
		Date:          appointment.Today(),
		Symptoms:      in.Symptoms,
		BloodPressure: in.BloodPressure,
		Height:        in.Height,
		Weight:        in.Weight,
		Description:   in.Description,
		Notes:         in.Notes,
		Status:        in.Status,
	}

	created, err := s.repo.CreateCompleting(ctx, cons)
	if err != nil {
		return nil, err
	}

	s.notifyPatient(ctx, appt, doctor)

	return created, nil
}

func (s *Service) notifyPatient(ctx context.Context, appt *appointment.Appointment, doctor *identity.Doctor) {
	patient, err := s.directory.GetPatientByID(ctx, appt.PatientID)
	if err != nil {
		s.log.Error("patient lookup for consultation notification failed",
			zap.String("appointment_id", appt.ID.String()),
			zap.Error(err),
		)
		return
	}

	s.notifier.Notify(ctx, patient.UserID, fmt.Sprintf(
		"Your consultation notes from Dr. %s for your appointment on %s are now available",
		doctor.Name, appt.Date.Format(appointment.DateLayout),
	))
}

// GetForAppointment returns the consultation to the appointment's patient or
// doctor; anyone else is refused.
func (s *Service) GetForAppointment(ctx context.Context, appointmentID, currentUserID uuid.UUID) (*Consultation, error) {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	cons, err := s.repo.GetByAppointment(ctx, appt.ID)
	if err != nil {
		return nil, err
	}

	doctor, err := s.directory.GetDoctorByID(ctx, appt.DoctorID)
	if err != nil {
		return nil, err
	}
	patient, err := s.directory.GetPatientByID(ctx, appt.PatientID)
	if err != nil {
		return nil, err
	}

	if currentUserID != doctor.UserID && currentUserID != patient.UserID {
		return nil, ErrNotConsultationParty
	}

	return cons, nil
}

func (s *Service) ListForPatient(ctx context.Context, patientUserID uuid.UUID) ([]Consultation, error) {
	patient, err := s.directory.FindPatientByUser(ctx, patientUserID)
	if err != nil {
		return nil, err
	}

	consultations, err := s.repo.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, fmt.Errorf("list consultations by patient: %w", err)
	}
	return consultations, nil
}
