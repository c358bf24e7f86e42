package consultation

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carelane/healthcare-appointments/internal/appointment"
	"github.com/carelane/healthcare-appointments/internal/identity"
)

// fakeStore backs both the consultation repository and the appointment store so
// CreateCompleting can flip the appointment status the way the transactional
// implementation does.
type fakeStore struct {
	appointments  map[uuid.UUID]appointment.Appointment
	consultations map[uuid.UUID]Consultation
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		appointments:  make(map[uuid.UUID]appointment.Appointment),
		consultations: make(map[uuid.UUID]Consultation),
	}
}

func (f *fakeStore) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	return &a, nil
}

func (f *fakeStore) CreateCompleting(ctx context.Context, c *Consultation) (*Consultation, error) {
	appt, ok := f.appointments[c.AppointmentID]
	if !ok || appt.Status != appointment.StatusBooked {
		return nil, ErrAppointmentNotBooked
	}

	appt.Status = appointment.StatusCompleted
	f.appointments[appt.ID] = appt

	stored := *c
	stored.CreatedAt = time.Now()
	f.consultations[stored.ID] = stored
	return &stored, nil
}

func (f *fakeStore) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*Consultation, error) {
	for _, c := range f.consultations {
		if c.AppointmentID == appointmentID {
			return &c, nil
		}
	}
	return nil, ErrConsultationNotFound
}

func (f *fakeStore) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Consultation, error) {
	var out []Consultation
	for _, c := range f.consultations {
		if c.PatientID == patientID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

type fakeDirectory struct {
	doctors  map[uuid.UUID]identity.Doctor
	patients map[uuid.UUID]identity.Patient
}

func (f *fakeDirectory) FindDoctorByUser(ctx context.Context, userID uuid.UUID) (*identity.Doctor, error) {
	for _, d := range f.doctors {
		if d.UserID == userID {
			return &d, nil
		}
	}
	return nil, identity.ErrDoctorNotFound
}

func (f *fakeDirectory) FindPatientByUser(ctx context.Context, userID uuid.UUID) (*identity.Patient, error) {
	for _, p := range f.patients {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, identity.ErrPatientNotFound
}

func (f *fakeDirectory) GetDoctorByID(ctx context.Context, id uuid.UUID) (*identity.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, identity.ErrDoctorNotFound
	}
	return &d, nil
}

func (f *fakeDirectory) GetPatientByID(ctx context.Context, id uuid.UUID) (*identity.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, identity.ErrPatientNotFound
	}
	return &p, nil
}

type sentNotification struct {
	UserID  uuid.UUID
	Message string
}

type fakeSink struct {
	sent []sentNotification
}

func (f *fakeSink) Notify(ctx context.Context, userID uuid.UUID, message string) {
	f.sent = append(f.sent, sentNotification{UserID: userID, Message: message})
}

type consultationFixture struct {
	store   *fakeStore
	dir     *fakeDirectory
	sink    *fakeSink
	svc     *Service
	doctor  identity.Doctor
	patient identity.Patient
	appt    appointment.Appointment
}

func newConsultationFixture(t *testing.T, status appointment.Status) *consultationFixture {
	t.Helper()

	store := newFakeStore()
	doctor := identity.Doctor{ID: uuid.New(), UserID: uuid.New(), Name: "Grey"}
	patient := identity.Patient{ID: uuid.New(), UserID: uuid.New(), Name: "Poe"}
	dir := &fakeDirectory{
		doctors:  map[uuid.UUID]identity.Doctor{doctor.ID: doctor},
		patients: map[uuid.UUID]identity.Patient{patient.ID: patient},
	}

	appt := appointment.Appointment{
		ID:        uuid.New(),
		DoctorID:  doctor.ID,
		PatientID: patient.ID,
		Date:      appointment.Today().AddDate(0, 0, 1),
		TimeSlot:  "09:00",
		Status:    status,
	}
	store.appointments[appt.ID] = appt

	sink := &fakeSink{}
	return &consultationFixture{
		store:   store,
		dir:     dir,
		sink:    sink,
		svc:     NewService(store, store, dir, sink, zap.NewNop()),
		doctor:  doctor,
		patient: patient,
		appt:    appt,
	}
}

func TestCreateCompletesAppointmentAndNotifies(t *testing.T) {
	fx := newConsultationFixture(t, appointment.StatusBooked)

	cons, err := fx.svc.Create(context.Background(), fx.appt.ID, fx.doctor.UserID, CreateInput{
		Symptoms:    "cough",
		Description: "mild cold",
		Status:      "stable",
	})
	require.NoError(t, err)

	assert.Equal(t, fx.appt.ID, cons.AppointmentID)
	assert.Equal(t, fx.patient.ID, cons.PatientID)
	assert.Equal(t, appointment.Today(), cons.Date)

	stored := fx.store.appointments[fx.appt.ID]
	assert.Equal(t, appointment.StatusCompleted, stored.Status, "recording a consultation must complete the appointment")

	require.Len(t, fx.sink.sent, 1)
	assert.Equal(t, fx.patient.UserID, fx.sink.sent[0].UserID)
	assert.Contains(t, fx.sink.sent[0].Message, "Dr. Grey")
	assert.Contains(t, fx.sink.sent[0].Message, "now available")
}

func TestCreateForbiddenForOtherDoctor(t *testing.T) {
	fx := newConsultationFixture(t, appointment.StatusBooked)

	_, err := fx.svc.Create(context.Background(), fx.appt.ID, uuid.New(), CreateInput{})
	assert.ErrorIs(t, err, ErrNotAppointmentDoctor)

	stored := fx.store.appointments[fx.appt.ID]
	assert.Equal(t, appointment.StatusBooked, stored.Status)
	assert.Empty(t, fx.sink.sent)
}

func TestCreateRequiresBookedStatus(t *testing.T) {
	for _, status := range []appointment.Status{
		appointment.StatusWaiting,
		appointment.StatusCompleted,
		appointment.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			fx := newConsultationFixture(t, status)

			_, err := fx.svc.Create(context.Background(), fx.appt.ID, fx.doctor.UserID, CreateInput{})
			assert.ErrorIs(t, err, ErrAppointmentNotBooked)
			assert.Empty(t, fx.store.consultations)
		})
	}
}

func TestCreateSecondAttemptFails(t *testing.T) {
	fx := newConsultationFixture(t, appointment.StatusBooked)

	_, err := fx.svc.Create(context.Background(), fx.appt.ID, fx.doctor.UserID, CreateInput{Notes: "first"})
	require.NoError(t, err)

	_, err = fx.svc.Create(context.Background(), fx.appt.ID, fx.doctor.UserID, CreateInput{Notes: "second"})
	assert.ErrorIs(t, err, ErrAppointmentNotBooked)
	assert.Len(t, fx.store.consultations, 1, "an appointment carries at most one consultation")
}

func TestGetForAppointmentAuthorization(t *testing.T) {
	fx := newConsultationFixture(t, appointment.StatusBooked)

	created, err := fx.svc.Create(context.Background(), fx.appt.ID, fx.doctor.UserID, CreateInput{})
	require.NoError(t, err)

	got, err := fx.svc.GetForAppointment(context.Background(), fx.appt.ID, fx.patient.UserID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = fx.svc.GetForAppointment(context.Background(), fx.appt.ID, fx.doctor.UserID)
	assert.NoError(t, err, "the appointment's doctor may read it too")

	_, err = fx.svc.GetForAppointment(context.Background(), fx.appt.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotConsultationParty)
}

func TestGetForAppointmentMissingConsultation(t *testing.T) {
	fx := newConsultationFixture(t, appointment.StatusBooked)

	_, err := fx.svc.GetForAppointment(context.Background(), fx.appt.ID, fx.patient.UserID)
	assert.ErrorIs(t, err, ErrConsultationNotFound)
}

func TestListForPatient(t *testing.T) {
	fx := newConsultationFixture(t, appointment.StatusBooked)

	_, err := fx.svc.Create(context.Background(), fx.appt.ID, fx.doctor.UserID, CreateInput{})
	require.NoError(t, err)

	list, err := fx.svc.ListForPatient(context.Background(), fx.patient.UserID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = fx.svc.ListForPatient(context.Background(), uuid.New())
	assert.ErrorIs(t, err, identity.ErrPatientNotFound)
}
