package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/yigit/careerportal/internal/app/models"
	"github.com/yigit/careerportal/internal/pkg/apperrors"
	"github.com/yigit/careerportal/internal/pkg/helpers"
)

// JobStore keeps job postings in a map
type JobStore struct {
	mu   sync.RWMutex
	jobs map[int64]models.Job
}

// NewJobStore creates an empty JobStore
func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[int64]models.Job)}
}

func copyJob(job models.Job) *models.Job {
	job.Requirements = append([]string{}, job.Requirements...)
	return &job
}

func (s *JobStore) List(_ context.Context) ([]*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]*models.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, copyJob(job))
	}
	helpers.SortByID(jobs, func(j *models.Job) int64 { return j.ID })
	return jobs, nil
}

func (s *JobStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.jobs)), nil
}

func (s *JobStore) GetByID(_ context.Context, id int64) (*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, apperrors.ErrJobNotFound
	}
	return copyJob(job), nil
}

func (s *JobStore) Create(_ context.Context, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.ID]; exists {
		return apperrors.NewCustomError(apperrors.ErrConflict, fmt.Sprintf("Job %d already exists", job.ID))
	}
	s.jobs[job.ID] = *copyJob(*job)
	return nil
}

func (s *JobStore) Update(_ context.Context, id int64, patch models.JobPatch) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, apperrors.ErrJobNotFound
	}
	patch.Apply(&job)
	s.jobs[id] = job
	return copyJob(job), nil
}

func (s *JobStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; !ok {
		return apperrors.ErrJobNotFound
	}
	delete(s.jobs, id)
	return nil
}

func (s *JobStore) AdjustApplicationsCount(_ context.Context, id int64, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil
	}
	job.ApplicationsCount += delta
	if job.ApplicationsCount < 0 {
		job.ApplicationsCount = 0
	}
	s.jobs[id] = job
	return nil
}
