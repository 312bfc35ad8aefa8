package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/careerportal/internal/app/controllers"
	"github.com/yigit/careerportal/internal/middleware"
)

// requestBodyMargin leaves room for the JSON fields around a base64 resume
const requestBodyMargin = 64 * 1024

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Jobs         *controllers.JobController
	Applications *controllers.ApplicationController
	Profiles     *controllers.ProfileController
	Sessions     *controllers.SessionController
}

// Options carries the per-route settings taken from configuration
type Options struct {
	// PublicJobWrites lets anonymous callers create, patch and delete jobs
	PublicJobWrites bool
	// MaxResumeBytes is the decoded resume cap; the request body cap is derived from it
	MaxResumeBytes int64
	Limiter        middleware.Limiter
	RateLimit      int
	RateWindow     time.Duration
}

// applicationBodyLimit is the base64 size of the largest resume plus the JSON envelope
func applicationBodyLimit(maxResumeBytes int64) int64 {
	return (maxResumeBytes+2)/3*4 + requestBodyMargin
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl Controllers,
	authMiddleware *middleware.AuthMiddleware,
	opts Options,
) {
	router.GET("/health", controllers.Health)

	// Session routes
	auth := router.Group("/auth")
	{
		auth.POST("/session",
			middleware.RateLimit(opts.Limiter, "session", opts.RateLimit, opts.RateWindow),
			ctrl.Sessions.CreateSession)
		auth.DELETE("/session", ctrl.Sessions.DestroySession)
		auth.POST("/register-admin",
			middleware.RateLimit(opts.Limiter, "register-admin", opts.RateLimit, opts.RateWindow),
			ctrl.Sessions.RegisterAdmin)
	}

	router.GET("/me", authMiddleware.OptionalSession(), ctrl.Profiles.Me)

	profile := router.Group("/profile")
	profile.Use(authMiddleware.SessionAuth())
	{
		profile.GET("", ctrl.Profiles.GetProfile)
		profile.PUT("", ctrl.Profiles.UpdateProfile)
	}

	// Job catalog: reads are public, writes need the career office unless public writes are on
	jobWriteAuth := authMiddleware.SessionAuth()
	if opts.PublicJobWrites {
		jobWriteAuth = authMiddleware.OptionalSession()
	}
	jobs := router.Group("/jobs")
	{
		jobs.GET("", ctrl.Jobs.ListJobs)
		jobs.GET("/:id", ctrl.Jobs.GetJob)
		jobs.POST("", jobWriteAuth, ctrl.Jobs.CreateJob)
		jobs.PATCH("/:id", jobWriteAuth, ctrl.Jobs.UpdateJob)
		jobs.DELETE("/:id", jobWriteAuth, ctrl.Jobs.DeleteJob)
	}

	applications := router.Group("/applications")
	applications.Use(authMiddleware.SessionAuth())
	{
		applications.GET("", ctrl.Applications.ListApplications)
		applications.POST("", middleware.BodyLimit(applicationBodyLimit(opts.MaxResumeBytes)), ctrl.Applications.CreateApplication)
		applications.PUT("", ctrl.Applications.UpdateApplication)
		applications.DELETE("", ctrl.Applications.DeleteApplication)
		applications.GET("/:id", ctrl.Applications.GetApplication)
		applications.PATCH("/:id/status", ctrl.Applications.UpdateApplicationStatus)
		applications.GET("/:id/resume", ctrl.Applications.DownloadResume)
	}
}
