package consultation

import (
	"time"

	"github.com/google/uuid"
)

// Consultation is the clinical record a doctor writes for a Booked
// appointment. Creating one completes the appointment; the record itself is
// immutable afterwards.
type Consultation struct {
	ID            uuid.UUID
	AppointmentID uuid.UUID
	DoctorID      uuid.UUID
	PatientID     uuid.UUID
	Date          time.Time
	Symptoms      string
	BloodPressure string
	Height        int
	Weight        int
	Description   string
	Notes         string
	Status        string
	CreatedAt     time.Time
}
