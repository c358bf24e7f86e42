package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carelane/healthcare-appointments/internal/appointment"
	"github.com/carelane/healthcare-appointments/internal/availability"
	"github.com/carelane/healthcare-appointments/internal/consultation"
	"github.com/carelane/healthcare-appointments/internal/history"
	"github.com/carelane/healthcare-appointments/internal/identity"
	"github.com/carelane/healthcare-appointments/internal/notification"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{Error: code, Details: details})
}

// writeDomainError maps every sentinel the core can return to an HTTP status:
// not-found 404, ownership 403, state conflicts 409, bad input 400.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identity.ErrDoctorNotFound):
		writeError(w, http.StatusNotFound, "doctor_not_found", err.Error())
	case errors.Is(err, identity.ErrPatientNotFound):
		writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
	case errors.Is(err, appointment.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
	case errors.Is(err, consultation.ErrConsultationNotFound):
		writeError(w, http.StatusNotFound, "consultation_not_found", err.Error())
	case errors.Is(err, availability.ErrSlotNotFound):
		writeError(w, http.StatusNotFound, "slot_not_found", err.Error())
	case errors.Is(err, notification.ErrNotificationNotFound):
		writeError(w, http.StatusNotFound, "notification_not_found", err.Error())

	case errors.Is(err, appointment.ErrNotAppointmentOwner):
		writeError(w, http.StatusForbidden, "not_appointment_owner", err.Error())
	case errors.Is(err, consultation.ErrNotAppointmentDoctor),
		errors.Is(err, consultation.ErrNotConsultationParty):
		writeError(w, http.StatusForbidden, "not_consultation_party", err.Error())
	case errors.Is(err, availability.ErrNotSlotOwner):
		writeError(w, http.StatusForbidden, "not_slot_owner", err.Error())
	case errors.Is(err, notification.ErrNotRecipient):
		writeError(w, http.StatusForbidden, "not_notification_recipient", err.Error())
	case errors.Is(err, history.ErrNoSharedHistory):
		writeError(w, http.StatusForbidden, "no_shared_history", err.Error())

	case errors.Is(err, appointment.ErrAppointmentFinalized):
		writeError(w, http.StatusConflict, "appointment_finalized", err.Error())
	case errors.Is(err, consultation.ErrAppointmentNotBooked):
		writeError(w, http.StatusConflict, "appointment_not_booked", err.Error())

	case errors.Is(err, appointment.ErrUnknownStatus):
		writeError(w, http.StatusBadRequest, "unknown_status", err.Error())

	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
