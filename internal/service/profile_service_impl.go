package service

import (
	"context"
	"errors"
	"time"

	"github.com/avandeursen/mosaic/internal/domain"
	"github.com/avandeursen/mosaic/internal/repository"
)

type profileService struct {
	profiles repository.ProfileRepo
}

func NewProfileService(profiles repository.ProfileRepo) ProfileService {
	return &profileService{profiles: profiles}
}

// Get returns the stored profile. Before first setup there is no row, so a
// default en-US/USD profile is returned instead of an error.
func (s *profileService) Get(ctx context.Context) (*domain.Profile, error) {
	p, err := s.profiles.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return defaultProfile(), nil
		}
		return nil, err
	}
	return p, nil
}

func (s *profileService) Upsert(ctx context.Context, p *domain.Profile) error {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.Locale == "" {
		p.Locale = "en-US"
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	return s.profiles.Upsert(ctx, p)
}

func defaultProfile() *domain.Profile {
	return &domain.Profile{
		OwnerID:  "local",
		Locale:   "en-US",
		Currency: "USD",
	}
}
