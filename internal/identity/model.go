package identity

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is the professional profile owned by exactly one directory user.
type Doctor struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	Specialization string
	Qualification  string
	Exp            int
	Rating         float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Patient struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Age         int
	BloodGroup  string
	PhoneNumber string
	Address     string
	Gender      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PublicSlot is the availability projection shown on public doctor profiles.
type PublicSlot struct {
	ID       uuid.UUID `json:"id"`
	Date     time.Time `json:"date"`
	TimeSlot string    `json:"time_slot"`
}

// DoctorPublicProfile is what unauthenticated callers see when browsing
// doctors: the profile plus every open slot from today onward.
type DoctorPublicProfile struct {
	ID             uuid.UUID    `json:"id"`
	Name           string       `json:"name"`
	Specialization string       `json:"specialization"`
	Qualification  string       `json:"qualification"`
	Exp            int          `json:"exp"`
	Rating         float64      `json:"rating"`
	Slots          []PublicSlot `json:"available_slots"`
}
