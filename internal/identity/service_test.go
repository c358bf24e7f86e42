package identity

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	redisclient "github.com/carelane/healthcare-appointments/internal/redis"
)

type fakeRepo struct {
	doctors     map[uuid.UUID]Doctor
	patients    map[uuid.UUID]Patient
	listedCount int
}

func newIdentityFakeRepo() *fakeRepo {
	return &fakeRepo{
		doctors:  make(map[uuid.UUID]Doctor),
		patients: make(map[uuid.UUID]Patient),
	}
}

func (f *fakeRepo) FindDoctorByUser(ctx context.Context, userID uuid.UUID) (*Doctor, error) {
	for _, d := range f.doctors {
		if d.UserID == userID {
			return &d, nil
		}
	}
	return nil, ErrDoctorNotFound
}

func (f *fakeRepo) FindPatientByUser(ctx context.Context, userID uuid.UUID) (*Patient, error) {
	for _, p := range f.patients {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, ErrPatientNotFound
}

func (f *fakeRepo) GetDoctorByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, ErrDoctorNotFound
	}
	return &d, nil
}

func (f *fakeRepo) GetPatientByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, ErrPatientNotFound
	}
	return &p, nil
}

func (f *fakeRepo) UpdateDoctor(ctx context.Context, d *Doctor) (*Doctor, error) {
	stored, ok := f.doctors[d.ID]
	if !ok {
		return nil, ErrDoctorNotFound
	}
	stored.Name = d.Name
	stored.Specialization = d.Specialization
	stored.Qualification = d.Qualification
	stored.Exp = d.Exp
	stored.UpdatedAt = time.Now()
	f.doctors[d.ID] = stored
	return &stored, nil
}

func (f *fakeRepo) UpdatePatient(ctx context.Context, p *Patient) (*Patient, error) {
	stored, ok := f.patients[p.ID]
	if !ok {
		return nil, ErrPatientNotFound
	}
	stored.Name = p.Name
	stored.Age = p.Age
	stored.BloodGroup = p.BloodGroup
	stored.PhoneNumber = p.PhoneNumber
	stored.Address = p.Address
	stored.UpdatedAt = time.Now()
	f.patients[p.ID] = stored
	return &stored, nil
}

func (f *fakeRepo) ListDoctors(ctx context.Context) ([]Doctor, error) {
	f.listedCount++
	out := make([]Doctor, 0, len(f.doctors))
	for _, d := range f.doctors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRepo) ListTopRatedDoctors(ctx context.Context, limit int) ([]Doctor, error) {
	out, _ := f.ListDoctors(ctx)
	sort.Slice(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeSlotSource struct {
	slots map[uuid.UUID][]PublicSlot
}

func (f *fakeSlotSource) ListPubliclyAvailable(ctx context.Context, doctorID uuid.UUID, after time.Time) ([]PublicSlot, error) {
	var out []PublicSlot
	for _, s := range f.slots[doctorID] {
		if s.Date.After(after) {
			out = append(out, s)
		}
	}
	return out, nil
}

type identityFixture struct {
	repo  *fakeRepo
	slots *fakeSlotSource
	redis *miniredis.Miniredis
	svc   *Service
}

func newIdentityFixture(t *testing.T) *identityFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := newIdentityFakeRepo()
	slots := &fakeSlotSource{slots: make(map[uuid.UUID][]PublicSlot)}

	return &identityFixture{
		repo:  repo,
		slots: slots,
		redis: mr,
		svc:   NewService(repo, slots, redisclient.NewCache(client), time.Minute, zap.NewNop()),
	}
}

func (fx *identityFixture) addDoctor(name string, rating float64) Doctor {
	d := Doctor{ID: uuid.New(), UserID: uuid.New(), Name: name, Specialization: "Cardiology", Rating: rating}
	fx.repo.doctors[d.ID] = d
	return d
}

func TestDoctorProfileRoundTrip(t *testing.T) {
	fx := newIdentityFixture(t)
	doctor := fx.addDoctor("Grey", 4.2)

	got, err := fx.svc.DoctorProfile(context.Background(), doctor.UserID)
	require.NoError(t, err)
	assert.Equal(t, doctor.ID, got.ID)

	updated, err := fx.svc.UpdateDoctorProfile(context.Background(), doctor.UserID, UpdateDoctorProfileInput{
		Name:           "Grey-Sloan",
		Specialization: "Cardiothoracic Surgery",
		Qualification:  "MD, FACS",
		Exp:            12,
	})
	require.NoError(t, err)
	assert.Equal(t, "Grey-Sloan", updated.Name)
	assert.Equal(t, 12, updated.Exp)
	assert.Equal(t, doctor.Rating, updated.Rating, "rating is not client-editable")
}

func TestPatientProfileRoundTrip(t *testing.T) {
	fx := newIdentityFixture(t)
	patient := Patient{ID: uuid.New(), UserID: uuid.New(), Name: "Poe", Gender: "Other"}
	fx.repo.patients[patient.ID] = patient

	updated, err := fx.svc.UpdatePatientProfile(context.Background(), patient.UserID, UpdatePatientProfileInput{
		Name:        "Edgar Poe",
		Age:         40,
		BloodGroup:  "O-",
		PhoneNumber: "555-0100",
		Address:     "Baltimore",
	})
	require.NoError(t, err)
	assert.Equal(t, "Edgar Poe", updated.Name)
	assert.Equal(t, "Other", updated.Gender, "gender is not part of the update surface")

	_, err = fx.svc.UpdatePatientProfile(context.Background(), uuid.New(), UpdatePatientProfileInput{})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestTopRatedDoctorsCapsAtThree(t *testing.T) {
	fx := newIdentityFixture(t)
	fx.addDoctor("A", 3.0)
	fx.addDoctor("B", 4.9)
	fx.addDoctor("C", 4.1)
	fx.addDoctor("D", 2.2)

	top, err := fx.svc.TopRatedDoctors(context.Background())
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "B", top[0].Name)
}

func TestListDoctorsPublicCachesResult(t *testing.T) {
	fx := newIdentityFixture(t)
	doctor := fx.addDoctor("Grey", 4.2)
	fx.slots.slots[doctor.ID] = []PublicSlot{
		{ID: uuid.New(), Date: time.Now().UTC().AddDate(0, 0, 1), TimeSlot: "09:00"},
	}

	first, err := fx.svc.ListDoctorsPublic(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Len(t, first[0].Slots, 1)
	assert.Equal(t, 1, fx.repo.listedCount)

	// A doctor added after the first call stays invisible until the TTL runs
	// out.
	fx.addDoctor("House", 4.9)

	second, err := fx.svc.ListDoctorsPublic(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, 1, fx.repo.listedCount, "second call must be served from the cache")

	fx.redis.FastForward(2 * time.Minute)

	third, err := fx.svc.ListDoctorsPublic(context.Background())
	require.NoError(t, err)
	assert.Len(t, third, 2)
	assert.Equal(t, 2, fx.repo.listedCount)
}

func TestUpdateDoctorProfileInvalidatesPublicCache(t *testing.T) {
	fx := newIdentityFixture(t)
	doctor := fx.addDoctor("Grey", 4.2)

	_, err := fx.svc.ListDoctorsPublic(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, fx.repo.listedCount)

	_, err = fx.svc.UpdateDoctorProfile(context.Background(), doctor.UserID, UpdateDoctorProfileInput{
		Name: "Grey-Sloan", Specialization: "Cardiology", Qualification: "MD", Exp: 9,
	})
	require.NoError(t, err)

	refreshed, err := fx.svc.ListDoctorsPublic(context.Background())
	require.NoError(t, err)
	require.Len(t, refreshed, 1)
	assert.Equal(t, "Grey-Sloan", refreshed[0].Name)
	assert.Equal(t, 2, fx.repo.listedCount, "profile edits must drop the cached directory")
}

func TestListDoctorsPublicSurvivesRedisOutage(t *testing.T) {
	fx := newIdentityFixture(t)
	fx.addDoctor("Grey", 4.2)

	fx.redis.Close()

	profiles, err := fx.svc.ListDoctorsPublic(context.Background())
	require.NoError(t, err, "a dead cache degrades to a direct read")
	assert.Len(t, profiles, 1)
}
