package availability

import (
	"time"

	"github.com/google/uuid"
)

// Slot is a doctor-declared (date, time label) unit of potential availability.
// Slots are independent of actual bookings: booking an appointment neither
// consults nor mutates the ledger, and duplicate (doctor, date, time slot)
// rows are allowed.
type Slot struct {
	ID        uuid.UUID
	DoctorID  uuid.UUID
	Date      time.Time
	TimeSlot  string
	Available bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
