package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	redisclient "github.com/carelane/healthcare-appointments/internal/redis"
)

const (
	topRatedLimit = 3

	publicDoctorsCacheKey = "doctors:public"
)

type UpdateDoctorProfileInput struct {
	Name           string
	Specialization string
	Qualification  string
	Exp            int
}

type UpdatePatientProfileInput struct {
	Name        string
	Age         int
	BloodGroup  string
	PhoneNumber string
	Address     string
}

// Service owns profile management and the public doctor views.
type Service struct {
	repo     Repository
	slots    SlotSource
	cache    redisclient.Cache
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewService(repo Repository, slots SlotSource, cache redisclient.Cache, cacheTTL time.Duration, log *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		slots:    slots,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func (s *Service) DoctorProfile(ctx context.Context, userID uuid.UUID) (*Doctor, error) {
	return s.repo.FindDoctorByUser(ctx, userID)
}

func (s *Service) UpdateDoctorProfile(ctx context.Context, userID uuid.UUID, in UpdateDoctorProfileInput) (*Doctor, error) {
	doctor, err := s.repo.FindDoctorByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	doctor.Name = in.Name
	doctor.Specialization = in.Specialization
	doctor.Qualification = in.Qualification
	doctor.Exp = in.Exp

	updated, err := s.repo.UpdateDoctor(ctx, doctor)
	if err != nil {
		return nil, fmt.Errorf("update doctor profile: %w", err)
	}

	s.invalidatePublicDoctors(ctx)

	return updated, nil
}

func (s *Service) PatientProfile(ctx context.Context, userID uuid.UUID) (*Patient, error) {
	return s.repo.FindPatientByUser(ctx, userID)
}

func (s *Service) UpdatePatientProfile(ctx context.Context, userID uuid.UUID, in UpdatePatientProfileInput) (*Patient, error) {
	patient, err := s.repo.FindPatientByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	patient.Name = in.Name
	patient.Age = in.Age
	patient.BloodGroup = in.BloodGroup
	patient.PhoneNumber = in.PhoneNumber
	patient.Address = in.Address

	updated, err := s.repo.UpdatePatient(ctx, patient)
	if err != nil {
		return nil, fmt.Errorf("update patient profile: %w", err)
	}

	return updated, nil
}

// TopRatedDoctors returns the three best rated doctors for the landing page.
func (s *Service) TopRatedDoctors(ctx context.Context) ([]Doctor, error) {
	doctors, err := s.repo.ListTopRatedDoctors(ctx, topRatedLimit)
	if err != nil {
		return nil, fmt.Errorf("list top rated doctors: %w", err)
	}
	return doctors, nil
}

// ListDoctorsPublic builds the browsable doctor directory: every doctor plus
// their open slots from today onward. The result is cached in Redis because it
// fans out one availability query per doctor.
func (s *Service) ListDoctorsPublic(ctx context.Context) ([]DoctorPublicProfile, error) {
	var cached []DoctorPublicProfile
	if err := s.cache.GetJSON(ctx, publicDoctorsCacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, redisclient.ErrCacheMiss) {
		s.log.Warn("public doctors cache read failed", zap.Error(err))
	}

	doctors, err := s.repo.ListDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}

	// Passing yesterday makes the strict date comparison include today.
	yesterday := time.Now().UTC().AddDate(0, 0, -1)

	profiles := make([]DoctorPublicProfile, 0, len(doctors))
	for _, d := range doctors {
		slots, err := s.slots.ListPubliclyAvailable(ctx, d.ID, yesterday)
		if err != nil {
			return nil, fmt.Errorf("list open slots for doctor %s: %w", d.ID, err)
		}

		profiles = append(profiles, DoctorPublicProfile{
			ID:             d.ID,
			Name:           d.Name,
			Specialization: d.Specialization,
			Qualification:  d.Qualification,
			Exp:            d.Exp,
			Rating:         d.Rating,
			Slots:          slots,
		})
	}

	if err := s.cache.SetJSON(ctx, publicDoctorsCacheKey, profiles, s.cacheTTL); err != nil {
		s.log.Warn("public doctors cache write failed", zap.Error(err))
	}

	return profiles, nil
}

func (s *Service) invalidatePublicDoctors(ctx context.Context) {
	if err := s.cache.Delete(ctx, publicDoctorsCacheKey); err != nil {
		s.log.Warn("public doctors cache invalidation failed", zap.Error(err))
	}
}
