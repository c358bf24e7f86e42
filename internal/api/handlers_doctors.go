package api

import (
	"encoding/json"
	"net/http"

	"github.com/carelane/healthcare-appointments/internal/history"
	"github.com/carelane/healthcare-appointments/internal/identity"
)

func listPublicDoctorsHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profiles, err := svc.ListDoctorsPublic(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, profiles)
	}
}

func listTopRatedDoctorsHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctors, err := svc.TopRatedDoctors(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := make([]DoctorProfileResponse, 0, len(doctors))
		for i := range doctors {
			out = append(out, toDoctorProfileResponse(&doctors[i]))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getDoctorProfileHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := mustUserID(w, r)
		if !ok {
			return
		}

		doctor, err := svc.DoctorProfile(r.Context(), userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toDoctorProfileResponse(doctor))
	}
}

func updateDoctorProfileHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := mustUserID(w, r)
		if !ok {
			return
		}

		var req UpdateDoctorProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		doctor, err := svc.UpdateDoctorProfile(r.Context(), userID, identity.UpdateDoctorProfileInput{
			Name:           req.Name,
			Specialization: req.Specialization,
			Qualification:  req.Qualification,
			Exp:            req.Exp,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toDoctorProfileResponse(doctor))
	}
}

func getPatientProfileHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := mustUserID(w, r)
		if !ok {
			return
		}

		patient, err := svc.PatientProfile(r.Context(), userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPatientProfileResponse(patient))
	}
}

func updatePatientProfileHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := mustUserID(w, r)
		if !ok {
			return
		}

		var req UpdatePatientProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		patient, err := svc.UpdatePatientProfile(r.Context(), userID, identity.UpdatePatientProfileInput{
			Name:        req.Name,
			Age:         req.Age,
			BloodGroup:  req.BloodGroup,
			PhoneNumber: req.PhoneNumber,
			Address:     req.Address,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPatientProfileResponse(patient))
	}
}

func listAssociatedPatientsHandler(svc *history.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := mustUserID(w, r)
		if !ok {
			return
		}

		patients, err := svc.ListAssociatedPatients(r.Context(), userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := make([]PatientProfileResponse, 0, len(patients))
		for i := range patients {
			out = append(out, toPatientProfileResponse(&patients[i]))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getPatientHistoryHandler(svc *history.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := mustUserID(w, r)
		if !ok {
			return
		}
		patientID, ok := parseIDParam(w, r, "id")
		if !ok {
			return
		}

		h, err := svc.GetHistory(r.Context(), userID, patientID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := PatientHistoryResponse{
			Patient:       toPatientProfileResponse(&h.Patient),
			Appointments:  toAppointmentResponses(h.Appointments),
			Consultations: toConsultationResponses(h.Consultations),
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
