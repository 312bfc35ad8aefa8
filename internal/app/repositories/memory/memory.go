// Package memory provides in-process stores for local development and tests.
package memory

import (
	"github.com/yigit/careerportal/internal/app/repositories"
	"github.com/yigit/careerportal/internal/pkg/helpers"
)

// NewRepositories initializes in-memory repositories sharing nothing but their lifetime
func NewRepositories(clock helpers.Clock) *repositories.Repositories {
	return &repositories.Repositories{
		Sequences:    NewSequenceAllocator(),
		Jobs:         NewJobStore(),
		Applications: NewApplicationStore(),
		Profiles:     NewProfileStore(clock),
	}
}
