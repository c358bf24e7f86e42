package appointment

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the appointment lifecycle state. Waiting can move to Booked or
// Cancelled, Booked can move to Completed or Cancelled. Completed and
// Cancelled are terminal.
type Status string

const (
	StatusWaiting   Status = "Waiting"
	StatusBooked    Status = "Booked"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

var ErrUnknownStatus = errors.New("unknown appointment status")

func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusWaiting, StatusBooked, StatusCompleted, StatusCancelled:
		return Status(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
}

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type Appointment struct {
	ID        uuid.UUID
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Date      time.Time
	TimeSlot  string
	Status    Status
	Reason    string
	Specialty string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DateLayout renders calendar dates in notification messages.
const DateLayout = "2006-01-02"

// Today is the canonical clock for the upcoming/history partition: the current
// calendar date in UTC.
func Today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
