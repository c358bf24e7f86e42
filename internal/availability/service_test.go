package availability

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelane/healthcare-appointments/internal/identity"
)

type fakeRepo struct {
	slots map[uuid.UUID]Slot
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{slots: make(map[uuid.UUID]Slot)}
}

func (f *fakeRepo) Create(ctx context.Context, s *Slot) (*Slot, error) {
	stored := *s
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.slots[stored.ID] = stored
	return &stored, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Slot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return &s, nil
}

func (f *fakeRepo) UpdateAvailable(ctx context.Context, id uuid.UUID, available bool) (*Slot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, ErrSlotNotFound
	}
	s.Available = available
	s.UpdatedAt = time.Now()
	f.slots[id] = s
	return &s, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.slots[id]; !ok {
		return ErrSlotNotFound
	}
	delete(f.slots, id)
	return nil
}

func (f *fakeRepo) ListByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]Slot, error) {
	var out []Slot
	for _, s := range f.slots {
		if s.DoctorID == doctorID && s.Date.Equal(date) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]Slot, error) {
	var out []Slot
	for _, s := range f.slots {
		if s.DoctorID == doctorID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].TimeSlot < out[j].TimeSlot
	})
	return out, nil
}

func (f *fakeRepo) ListOpenAfter(ctx context.Context, doctorID uuid.UUID, after time.Time) ([]Slot, error) {
	var out []Slot
	for _, s := range f.slots {
		if s.DoctorID == doctorID && s.Available && s.Date.After(after) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

type fakeDirectory struct {
	doctors map[uuid.UUID]identity.Doctor
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
	return nil, identity.ErrPatientNotFound
}

func newAvailabilityFixture(t *testing.T) (*Service, *fakeRepo, identity.Doctor) {
	t.Helper()

	repo := newFakeRepo()
	doctor := identity.Doctor{ID: uuid.New(), UserID: uuid.New(), Name: "Grey"}
	dir := &fakeDirectory{doctors: map[uuid.UUID]identity.Doctor{doctor.ID: doctor}}
	return NewService(repo, dir), repo, doctor
}

func day(offset int) time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, offset)
}

func TestAddSlot(t *testing.T) {
	svc, repo, doctor := newAvailabilityFixture(t)

	slot, err := svc.Add(context.Background(), doctor.UserID, AddInput{
		Date: day(1), TimeSlot: "09:00", Available: true,
	})
	require.NoError(t, err)
	assert.Equal(t, doctor.ID, slot.DoctorID)
	assert.True(t, slot.Available)
	assert.Len(t, repo.slots, 1)

	_, err = svc.Add(context.Background(), uuid.New(), AddInput{Date: day(1), TimeSlot: "09:00"})
	assert.ErrorIs(t, err, identity.ErrDoctorNotFound)
}

func TestAddAllowsDuplicateSlots(t *testing.T) {
	svc, repo, doctor := newAvailabilityFixture(t)

	for i := 0; i < 2; i++ {
		_, err := svc.Add(context.Background(), doctor.UserID, AddInput{
			Date: day(1), TimeSlot: "09:00", Available: true,
		})
		require.NoError(t, err)
	}

	assert.Len(t, repo.slots, 2, "duplicate declarations produce independent rows")
}

func TestUpdateOwnershipAndFlip(t *testing.T) {
	svc, _, doctor := newAvailabilityFixture(t)

	slot, err := svc.Add(context.Background(), doctor.UserID, AddInput{
		Date: day(1), TimeSlot: "09:00", Available: true,
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), doctor.UserID, slot.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Available)

	_, err = svc.Update(context.Background(), uuid.New(), slot.ID, true)
	assert.ErrorIs(t, err, ErrNotSlotOwner)
}

func TestDelete(t *testing.T) {
	svc, repo, doctor := newAvailabilityFixture(t)

	slot, err := svc.Add(context.Background(), doctor.UserID, AddInput{
		Date: day(1), TimeSlot: "09:00", Available: true,
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), uuid.New(), slot.ID)
	assert.ErrorIs(t, err, ErrNotSlotOwner)
	assert.Len(t, repo.slots, 1)

	require.NoError(t, svc.Delete(context.Background(), doctor.UserID, slot.ID))
	assert.Empty(t, repo.slots)

	err = svc.Delete(context.Background(), doctor.UserID, slot.ID)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestListForDateAndAll(t *testing.T) {
	svc, _, doctor := newAvailabilityFixture(t)

	for _, in := range []AddInput{
		{Date: day(1), TimeSlot: "10:00", Available: true},
		{Date: day(1), TimeSlot: "09:00", Available: false},
		{Date: day(2), TimeSlot: "09:00", Available: true},
	} {
		_, err := svc.Add(context.Background(), doctor.UserID, in)
		require.NoError(t, err)
	}

	forDate, err := svc.ListForDate(context.Background(), doctor.UserID, day(1))
	require.NoError(t, err)
	assert.Len(t, forDate, 2)

	all, err := svc.ListAll(context.Background(), doctor.UserID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "09:00", all[0].TimeSlot)
	assert.Equal(t, "10:00", all[1].TimeSlot)
}

func TestPublicSlotSourceFiltersClosedAndPast(t *testing.T) {
	svc, repo, doctor := newAvailabilityFixture(t)

	for _, in := range []AddInput{
		{Date: day(0), TimeSlot: "09:00", Available: true},
		{Date: day(1), TimeSlot: "09:00", Available: true},
		{Date: day(1), TimeSlot: "10:00", Available: false},
		{Date: day(-1), TimeSlot: "09:00", Available: true},
	} {
		_, err := svc.Add(context.Background(), doctor.UserID, in)
		require.NoError(t, err)
	}

	source := NewPublicSlotSource(repo)
	yesterday := day(-1)

	public, err := source.ListPubliclyAvailable(context.Background(), doctor.ID, yesterday)
	require.NoError(t, err)

	require.Len(t, public, 2, "only open slots from today onward are public")
	assert.Equal(t, day(0), public[0].Date)
	assert.Equal(t, day(1), public[1].Date)
}
