package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/careerportal/internal/app/models"
	appRepos "github.com/yigit/careerportal/internal/app/repositories"
	"github.com/yigit/careerportal/internal/pkg/helpers"
)

// sampleJobs are written on an empty catalog so a fresh install has something to browse
func sampleJobs(today string) []*appModels.Job {
	return []*appModels.Job{
		{
			Title:        "Backend Engineering Intern",
			Company:      "Northwind Systems",
			Location:     "Remote",
			Type:         appModels.JobTypeInternship,
			Salary:       "$25/h",
			PostedDate:   today,
			Status:       appModels.JobStatusActive,
			Description:  "Build and operate internal APIs alongside the platform team.",
			Requirements: []string{"Go or Java", "SQL basics", "Git"},
			Featured:     true,
		},
		{
			Title:        "Junior Data Analyst",
			Company:      "Contoso Health",
			Location:     "Istanbul",
			Type:         appModels.JobTypeFullTime,
			Salary:       "Competitive",
			PostedDate:   today,
			Status:       appModels.JobStatusActive,
			Description:  "Prepare weekly reporting and support clinical data projects.",
			Requirements: []string{"Python", "Statistics", "Dashboards"},
		},
		{
			Title:        "Campus Brand Ambassador",
			Company:      "Fabrikam",
			Location:     "On campus",
			Type:         appModels.JobTypePartTime,
			PostedDate:   today,
			Status:       appModels.JobStatusDraft,
			Description:  "Represent the company at career fairs and student events.",
			Requirements: []string{},
		},
	}
}

// CreateDefaultData writes the sample job catalog when no job exists yet.
// Errors for individual jobs are collected and returned together.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, clock helpers.Clock, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Jobs)...")

	count, err := repos.Jobs.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count jobs: %w", err)
	}
	if count > 0 {
		lgr.Info().Int64("jobs", count).Msg("Jobs already present, skipping seed")
		return nil
	}

	var finalErr error
	for _, job := range sampleJobs(helpers.FormatDate(clock())) {
		id, err := repos.Sequences.Next(ctx, appModels.CollectionJobs)
		if err != nil {
			lgr.Error().Err(err).Str("title", job.Title).Msg("Error allocating job id")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		job.ID = id
		if err := repos.Jobs.Create(ctx, job); err != nil {
			lgr.Error().Err(err).Str("title", job.Title).Msg("Error creating sample job")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Info().Int64("jobID", id).Str("title", job.Title).Msg("Sample job created")
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
