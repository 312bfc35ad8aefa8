package memory

import (
	"context"
	"sync"
	"time"

	"github.com/yigit/careerportal/internal/app/models"
	"github.com/yigit/careerportal/internal/pkg/apperrors"
	"github.com/yigit/careerportal/internal/pkg/helpers"
)

// ProfileStore keeps profiles in a map keyed by uid
type ProfileStore struct {
	mu       sync.Mutex
	profiles map[string]models.Profile
	clock    helpers.Clock
}

// NewProfileStore creates an empty ProfileStore
func NewProfileStore(clock helpers.Clock) *ProfileStore {
	return &ProfileStore{
		profiles: make(map[string]models.Profile),
		clock:    clock,
	}
}

func copyProfile(p models.Profile) *models.Profile {
	if p.GraduationYear != nil {
		year := *p.GraduationYear
		p.GraduationYear = &year
	}
	return &p
}

func (s *ProfileStore) Get(_ context.Context, id string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[id]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	if profile.Role == "" {
		profile.Role = models.RoleStudent
	}
	return copyProfile(profile), nil
}

func (s *ProfileStore) Upsert(_ context.Context, id string, patch models.ProfilePatch, createdAt time.Time) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[id]
	if !ok {
		profile = models.Profile{ID: id, Role: models.RoleStudent, CreatedAt: createdAt}
	}
	patch.Apply(&profile)
	profile.UpdatedAt = s.clock().UTC()
	s.profiles[id] = profile
	return copyProfile(profile), nil
}
