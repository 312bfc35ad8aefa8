package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/yigit/careerportal/internal/app/models"
	"github.com/yigit/careerportal/internal/pkg/apperrors"
	"github.com/yigit/careerportal/internal/pkg/helpers"
)

// ApplicationStore keeps applications in a map
type ApplicationStore struct {
	mu   sync.RWMutex
	apps map[int64]models.Application
}

// NewApplicationStore creates an empty ApplicationStore
func NewApplicationStore() *ApplicationStore {
	return &ApplicationStore{apps: make(map[int64]models.Application)}
}

func (s *ApplicationStore) List(_ context.Context, userID string) ([]*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	apps := make([]*models.Application, 0, len(s.apps))
	for _, app := range s.apps {
		if userID != "" && app.UserID != userID {
			continue
		}
		app := app
		apps = append(apps, &app)
	}
	helpers.SortByID(apps, func(a *models.Application) int64 { return a.ID })
	return apps, nil
}

func (s *ApplicationStore) GetByID(_ context.Context, id int64) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	app, ok := s.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	return &app, nil
}

func (s *ApplicationStore) Create(_ context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.apps[app.ID]; exists {
		return apperrors.NewCustomError(apperrors.ErrConflict, fmt.Sprintf("Application %d already exists", app.ID))
	}
	s.apps[app.ID] = *app
	return nil
}

func (s *ApplicationStore) Update(_ context.Context, id int64, patch models.ApplicationPatch) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	patch.Apply(&app)
	s.apps[id] = app
	return &app, nil
}

func (s *ApplicationStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.apps[id]; !ok {
		return apperrors.ErrApplicationNotFound
	}
	delete(s.apps, id)
	return nil
}
