package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/carelane/healthcare-appointments/internal/appointment"
	"github.com/carelane/healthcare-appointments/internal/availability"
	"github.com/carelane/healthcare-appointments/internal/consultation"
	"github.com/carelane/healthcare-appointments/internal/identity"
	"github.com/carelane/healthcare-appointments/internal/notification"
)

const dateLayout = "2006-01-02"

type BookAppointmentRequest struct {
	DoctorID string `json:"doctor_id"`
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
	Reason   string `json:"reason"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type UpdateReasonRequest struct {
	Reason string `json:"reason"`
}

type AppointmentResponse struct {
	ID        uuid.UUID `json:"id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	PatientID uuid.UUID `json:"patient_id"`
	Date      string    `json:"date"`
	TimeSlot  string    `json:"time_slot"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason"`
	Specialty string    `json:"specialty"`
}

func toAppointmentResponse(a *appointment.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:        a.ID,
		DoctorID:  a.DoctorID,
		PatientID: a.PatientID,
		Date:      a.Date.Format(dateLayout),
		TimeSlot:  a.TimeSlot,
		Status:    string(a.Status),
		Reason:    a.Reason,
		Specialty: a.Specialty,
	}
}

func toAppointmentResponses(appts []appointment.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(appts))
	for i := range appts {
		out = append(out, toAppointmentResponse(&appts[i]))
	}
	return out
}

type CreateConsultationRequest struct {
	Symptoms      string `json:"symptoms"`
	BloodPressure string `json:"blood_pressure"`
	Height        int    `json:"height"`
	Weight        int    `json:"weight"`
	Description   string `json:"description"`
	Notes         string `json:"notes"`
	Status        string `json:"status"`
}

type ConsultationResponse struct {
	ID            uuid.UUID `json:"id"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	DoctorID      uuid.UUID `json:"doctor_id"`
	PatientID     uuid.UUID `json:"patient_id"`
	Date          string    `json:"date"`
	Symptoms      string    `json:"symptoms"`
	BloodPressure string    `json:"blood_pressure"`
	Height        int       `json:"height"`
	Weight        int       `json:"weight"`
	Description   string    `json:"description"`
	Notes         string    `json:"notes"`
	Status        string    `json:"status"`
}

func toConsultationResponse(c *consultation.Consultation) ConsultationResponse {
	return ConsultationResponse{
		ID:            c.ID,
		AppointmentID: c.AppointmentID,
		DoctorID:      c.DoctorID,
		PatientID:     c.PatientID,
		Date:          c.Date.Format(dateLayout),
		Symptoms:      c.Symptoms,
		BloodPressure: c.BloodPressure,
		Height:        c.Height,
		Weight:        c.Weight,
		Description:   c.Description,
		Notes:         c.Notes,
		Status:        c.Status,
	}
}

func toConsultationResponses(cons []consultation.Consultation) []ConsultationResponse {
	out := make([]ConsultationResponse, 0, len(cons))
	for i := range cons {
		out = append(out, toConsultationResponse(&cons[i]))
	}
	return out
}

type AddAvailabilityRequest struct {
	Date        string `json:"date"`
	TimeSlot    string `json:"time_slot"`
	IsAvailable bool   `json:"is_available"`
}

type UpdateAvailabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}

type AvailabilityResponse struct {
	ID          uuid.UUID `json:"id"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	Date        string    `json:"date"`
	TimeSlot    string    `json:"time_slot"`
	IsAvailable bool      `json:"is_available"`
}

func toAvailabilityResponse(s *availability.Slot) AvailabilityResponse {
	return AvailabilityResponse{
		ID:          s.ID,
		DoctorID:    s.DoctorID,
		Date:        s.Date.Format(dateLayout),
		TimeSlot:    s.TimeSlot,
		IsAvailable: s.Available,
	}
}

func toAvailabilityResponses(slots []availability.Slot) []AvailabilityResponse {
	out := make([]AvailabilityResponse, 0, len(slots))
	for i := range slots {
		out = append(out, toAvailabilityResponse(&slots[i]))
	}
	return out
}

type NotificationResponse struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
	IsRead  bool      `json:"is_read"`
}

func toNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{ID: n.ID, Message: n.Message, IsRead: n.Read}
}

func toNotificationResponses(ns []notification.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(ns))
	for i := range ns {
		out = append(out, toNotificationResponse(&ns[i]))
	}
	return out
}

type DoctorProfileResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	Qualification  string    `json:"qualification"`
	Exp            int       `json:"exp"`
	Rating         float64   `json:"rating"`
}

func toDoctorProfileResponse(d *identity.Doctor) DoctorProfileResponse {
	return DoctorProfileResponse{
		ID:             d.ID,
		Name:           d.Name,
		Specialization: d.Specialization,
		Qualification:  d.Qualification,
		Exp:            d.Exp,
		Rating:         d.Rating,
	}
}

type UpdateDoctorProfileRequest struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Qualification  string `json:"qualification"`
	Exp            int    `json:"exp"`
}

type PatientProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	BloodGroup  string    `json:"blood_group"`
	PhoneNumber string    `json:"phone_number"`
	Address     string    `json:"address"`
	Gender      string    `json:"gender"`
}

func toPatientProfileResponse(p *identity.Patient) PatientProfileResponse {
	return PatientProfileResponse{
		ID:          p.ID,
		Name:        p.Name,
		Age:         p.Age,
		BloodGroup:  p.BloodGroup,
		PhoneNumber: p.PhoneNumber,
		Address:     p.Address,
		Gender:      p.Gender,
	}
}

type UpdatePatientProfileRequest struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	BloodGroup  string `json:"blood_group"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

type PatientHistoryResponse struct {
	Patient       PatientProfileResponse `json:"patient"`
	Appointments  []AppointmentResponse  `json:"appointments"`
	Consultations []ConsultationResponse `json:"consultations"`
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse(dateLayout, raw)
}
