package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carelane/healthcare-appointments/internal/identity"
	"github.com/carelane/healthcare-appointments/internal/notification"
)

type BookInput struct {
	DoctorID uuid.UUID
	Date     time.Time
	TimeSlot string
	Reason   string
}

// Service is the appointment lifecycle engine. It owns the status state
// machine, the ownership checks gating each transition and the notification
// side effects. It deliberately does NOT cross-check bookings against the
// availability ledger or other appointments for the same slot; slot uniqueness
// is not guaranteed at this layer.
type Service struct {
	repo      Repository
	directory identity.Directory
	notifier  notification.Sink
	log       *zap.Logger
}

func NewService(repo Repository, directory identity.Directory, notifier notification.Sink, log *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		notifier:  notifier,
		log:       log,
	}
}

// Book creates an appointment in Waiting for the calling patient, copying the
// doctor's current specialization, and notifies the doctor.
func (s *Service) Book(ctx context.Context, patientUserID uuid.UUID, in BookInput) (*Appointment, error) {
	patient, err := s.directory.FindPatientByUser(ctx, patientUserID)
	if err != nil {
		return nil, err
	}

	doctor, err := s.directory.GetDoctorByID(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}

	appt := &Appointment{
		ID:        uuid.New(),
		DoctorID:  doctor.ID,
		PatientID: patient.ID,
		Date:      in.Date,
		TimeSlot:  in.TimeSlot,
		Status:    StatusWaiting,
		Reason:    in.Reason,
		Specialty: doctor.Specialization,
	}

	created, err := s.repo.Create(ctx, appt)
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.notifier.Notify(ctx, doctor.UserID, fmt.Sprintf(
		"You have a new appointment request from %s for %s",
		patient.Name, created.Date.Format(DateLayout),
	))

	return created, nil
}

func (s *Service) ListForDoctor(ctx context.Context, doctorUserID uuid.UUID) ([]Appointment, error) {
	doctor, err := s.directory.FindDoctorByUser(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}

	appts, err := s.repo.ListByDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, fmt.Errorf("list appointments by doctor: %w", err)
	}
	return appts, nil
}

// SetStatus moves an appointment to newStatus on behalf of its doctor. Any
// valid status is accepted as a target, including Waiting, but nothing moves
// out of a terminal state.
func (s *Service) SetStatus(ctx context.Context, appointmentID, doctorUserID uuid.UUID, newStatus Status) (*Appointment, error) {
	if _, err := ParseStatus(string(newStatus)); err != nil {
		return nil, err
	}

	doctor, err := s.directory.FindDoctorByUser(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}

	appt, err := s.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if appt.DoctorID != doctor.ID {
		return nil, ErrNotAppointmentOwner
	}

	if appt.Status.Terminal() {
		return nil, fmt.Errorf("cannot update an appointment that is already %s: %w", appt.Status, ErrAppointmentFinalized)
	}

	appt.Status = newStatus

	updated, err := s.repo.Update(ctx, appt)
	if err != nil {
		return nil, fmt.Errorf("update appointment status: %w", err)
	}

	s.notifyPatientOfStatus(ctx, updated, doctor)

	return updated, nil
}

func (s *Service) notifyPatientOfStatus(ctx context.Context, appt *Appointment, doctor *identity.Doctor) {
	patient, err := s.directory.GetPatientByID(ctx, appt.PatientID)
	if err != nil {
		s.log.Error("patient lookup for status notification failed",
			zap.String("appointment_id", appt.ID.String()),
			zap.Error(err),
		)
		return
	}

	var message string
	if appt.Status == StatusBooked {
		message = fmt.Sprintf("Dr. %s has confirmed your appointment for %s",
			doctor.Name, appt.Date.Format(DateLayout))
	} else {
		message = fmt.Sprintf("Dr. %s has changed your appointment for %s to %s",
			doctor.Name, appt.Date.Format(DateLayout), appt.Status)
	}

	s.notifier.Notify(ctx, patient.UserID, message)
}

func (s *Service) ListUpcomingForPatient(ctx context.Context, patientUserID uuid.UUID) ([]Appointment, error) {
	patient, err := s.directory.FindPatientByUser(ctx, patientUserID)
	if err != nil {
		return nil, err
	}

	appts, err := s.repo.ListByPatientFromDate(ctx, patient.ID, Today())
	if err != nil {
		return nil, fmt.Errorf("list upcoming appointments: %w", err)
	}
	return appts, nil
}

func (s *Service) ListHistoryForPatient(ctx context.Context, patientUserID uuid.UUID) ([]Appointment, error) {
	patient, err := s.directory.FindPatientByUser(ctx, patientUserID)
	if err != nil {
		return nil, err
	}

	appts, err := s.repo.ListByPatientBeforeDate(ctx, patient.ID, Today())
	if err != nil {
		return nil, fmt.Errorf("list appointment history: %w", err)
	}
	return appts, nil
}

// UpdateReason edits the free-text reason while the appointment is still
// Waiting or Booked.
func (s *Service) UpdateReason(ctx context.Context, appointmentID, patientUserID uuid.UUID, newReason string) (*Appointment, error) {
	appt, err := s.findOwnedByPatient(ctx, appointmentID, patientUserID)
	if err != nil {
		return nil, err
	}

	if appt.Status.Terminal() {
		return nil, fmt.Errorf("cannot update an appointment that is already %s: %w", appt.Status, ErrAppointmentFinalized)
	}

	appt.Reason = newReason

	updated, err := s.repo.Update(ctx, appt)
	if err != nil {
		return nil, fmt.Errorf("update appointment reason: %w", err)
	}
	return updated, nil
}

// CancelByPatient cancels a Waiting or Booked appointment and notifies the
// doctor.
func (s *Service) CancelByPatient(ctx context.Context, appointmentID, patientUserID uuid.UUID) (*Appointment, error) {
	appt, err := s.findOwnedByPatient(ctx, appointmentID, patientUserID)
	if err != nil {
		return nil, err
	}

	if appt.Status.Terminal() {
		return nil, fmt.Errorf("cannot cancel an appointment that is already %s: %w", appt.Status, ErrAppointmentFinalized)
	}

	appt.Status = StatusCancelled

	updated, err := s.repo.Update(ctx, appt)
	if err != nil {
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}

	patient, err := s.directory.GetPatientByID(ctx, updated.PatientID)
	if err != nil {
		s.log.Error("patient lookup for cancel notification failed",
			zap.String("appointment_id", updated.ID.String()),
			zap.Error(err),
		)
		return updated, nil
	}

	doctor, err := s.directory.GetDoctorByID(ctx, updated.DoctorID)
	if err != nil {
		s.log.Error("doctor lookup for cancel notification failed",
			zap.String("appointment_id", updated.ID.String()),
			zap.Error(err),
		)
		return updated, nil
	}

	s.notifier.Notify(ctx, doctor.UserID, fmt.Sprintf(
		"Appointment with %s on %s has been cancelled by the patient",
		patient.Name, updated.Date.Format(DateLayout),
	))

	return updated, nil
}

func (s *Service) findOwnedByPatient(ctx context.Context, appointmentID, patientUserID uuid.UUID) (*Appointment, error) {
	patient, err := s.directory.FindPatientByUser(ctx, patientUserID)
	if err != nil {
		return nil, err
	}

	appt, err := s.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if appt.PatientID != patient.ID {
		return nil, ErrNotAppointmentOwner
	}

	return appt, nil
}
