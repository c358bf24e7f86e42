package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/carelane/healthcare-appointments/internal/appointment"
	"github.com/carelane/healthcare-appointments/internal/availability"
	"github.com/carelane/healthcare-appointments/internal/consultation"
	"github.com/carelane/healthcare-appointments/internal/history"
	"github.com/carelane/healthcare-appointments/internal/identity"
	"github.com/carelane/healthcare-appointments/internal/notification"
)

type RouterConfig struct {
	Appointments  *appointment.Service
	Consultations *consultation.Service
	Availability  *availability.Service
	History       *history.Service
	Identity      *identity.Service
	Notifications *notification.Service

	PgPool    *pgxpool.Pool
	Redis     *redis.Client
	Logger    *zap.Logger
	JWTSecret string
	Env       string
	Version   string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))

	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Public doctor directory
	r.Get("/doctors", listPublicDoctorsHandler(cfg.Identity))
	r.Get("/doctors/top", listTopRatedDoctorsHandler(cfg.Identity))

	// Everything else requires an authenticated user.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.JWTSecret))

		// Patient-facing appointment lifecycle
		r.Post("/appointments", bookAppointmentHandler(cfg.Appointments))
		r.Get("/appointments/upcoming", listUpcomingAppointmentsHandler(cfg.Appointments))
		r.Get("/appointments/history", listAppointmentHistoryHandler(cfg.Appointments))
		r.Patch("/appointments/{id}/reason", updateAppointmentReasonHandler(cfg.Appointments))
		r.Post("/appointments/{id}/cancel", cancelAppointmentHandler(cfg.Appointments))
		r.Get("/appointments/{id}/consultation", getConsultationHandler(cfg.Consultations))
		r.Get("/consultations", listPatientConsultationsHandler(cfg.Consultations))

		// Doctor-facing lifecycle and recorder
		r.Get("/doctor/appointments", listDoctorAppointmentsHandler(cfg.Appointments))
		r.Patch("/doctor/appointments/{id}/status", updateAppointmentStatusHandler(cfg.Appointments))
		r.Post("/doctor/appointments/{id}/consultation", createConsultationHandler(cfg.Consultations))

		// Availability ledger
		r.Post("/doctor/availability", addAvailabilityHandler(cfg.Availability))
		r.Get("/doctor/availability", listAvailabilityForDateHandler(cfg.Availability))
		r.Get("/doctor/availability/all", listAllAvailabilityHandler(cfg.Availability))
		r.Patch("/doctor/availability/{id}", updateAvailabilityHandler(cfg.Availability))
		r.Delete("/doctor/availability/{id}", deleteAvailabilityHandler(cfg.Availability))

		// Patient history aggregation
		r.Get("/doctor/patients", listAssociatedPatientsHandler(cfg.History))
		r.Get("/doctor/patients/{id}/history", getPatientHistoryHandler(cfg.History))

		// Profiles
		r.Get("/doctor/profile", getDoctorProfileHandler(cfg.Identity))
		r.Put("/doctor/profile", updateDoctorProfileHandler(cfg.Identity))
		r.Get("/patient/profile", getPatientProfileHandler(cfg.Identity))
		r.Put("/patient/profile", updatePatientProfileHandler(cfg.Identity))

		// Notifications
		r.Get("/notifications", listNotificationsHandler(cfg.Notifications))
		r.Post("/notifications/{id}/read", markNotificationReadHandler(cfg.Notifications))
		r.Post("/notifications/read-all", markAllNotificationsReadHandler(cfg.Notifications))
	})

	return r
}
