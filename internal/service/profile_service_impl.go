package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/alexanderramin/ripasso/internal/repository"
)

type profileService struct {
	profiles repository.ProfileRepo
	observer UseCaseObserver
}

func NewProfileService(profiles repository.ProfileRepo, observers ...UseCaseObserver) ProfileService {
	return &profileService{profiles: profiles, observer: useCaseObserverOrNoop(observers)}
}

// Save stores the profile under its trimmed name. Finite weights and counts
// are kept as given; the simulator normalises them when it reads the profile.
func (s *profileService) Save(ctx context.Context, p *domain.ExaminationProfile) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "save-profile", startedAt, &err, map[string]any{"profile": p.Name})

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("profile name is required: %w", ErrInvalidInput)
	}
	for _, w := range []float64{p.OralWeight, p.WrittenWeight, p.PracticalWeight} {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("profile weights must be finite numbers: %w", ErrInvalidInput)
		}
	}
	return s.profiles.Upsert(ctx, p)
}

func (s *profileService) Get(ctx context.Context, name string) (*domain.ExaminationProfile, error) {
	return s.profiles.Get(ctx, strings.TrimSpace(name))
}

func (s *profileService) List(ctx context.Context) ([]*domain.ExaminationProfile, error) {
	return s.profiles.List(ctx)
}

func (s *profileService) Delete(ctx context.Context, name string) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "delete-profile", startedAt, &err, map[string]any{"profile": name})

	return s.profiles.Delete(ctx, strings.TrimSpace(name))
}
