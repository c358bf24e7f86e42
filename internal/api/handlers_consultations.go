package api

import (
	"encoding/json"
	"net/http"

	"github.com/carelane/healthcare-appointments/internal/consultation"
)

func createConsultationHandler(svc *consultation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := mustUserID(w, r)
		if !ok {
			return
		}
		appointmentID, ok := parseIDParam(w, r, "id")
		if !ok {
			return
		}

		var req CreateConsultationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		cons, err := svc.Create(r.Context(), appointmentID, userID, consultation.CreateInput{
			Symptoms:      req.Symptoms,
			BloodPressure: req.BloodPressure,
			Height:        req.Height,
			Weight:        req.Weight,
			Description:   req.Description,
			Notes:         req.Notes,
			Status:        req.Status,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toConsultationResponse(cons))
	}
}

func getConsultationHandler(svc *consultation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := mustUserID(w, r)
		if !ok {
			return
		}
		appointmentID, ok := parseIDParam(w, r, "id")
		if !ok {
			return
		}

		cons, err := svc.GetForAppointment(r.Context(), appointmentID, userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toConsultationResponse(cons))
	}
}

func listPatientConsultationsHandler(svc *consultation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := mustUserID(w, r)
		if !ok {
			return
		}

		cons, err := svc.ListForPatient(r.Context(), userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toConsultationResponses(cons))
	}
}
