package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/careerportal/internal/app/models/dto"
	"github.com/yigit/careerportal/internal/app/services"
	"github.com/yigit/careerportal/internal/middleware"
	"github.com/yigit/careerportal/internal/pkg/apperrors"
)

// JobController handles job posting endpoints
type JobController struct {
	jobService services.JobService
}

// NewJobController creates a new JobController
func NewJobController(jobService services.JobService) *JobController {
	return &JobController{
		jobService: jobService,
	}
}

// parseIDParam reads the numeric :id path parameter
func parseIDParam(ctx *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequestError("Invalid id")
	}
	return id, nil
}

// ListJobs returns every job posting
// @Summary List job postings
// @Description Returns all job postings ordered by id
// @Tags jobs
// @Produce json
// @Success 200 {array} models.Job
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /jobs [get]
func (c *JobController) ListJobs(ctx *gin.Context) {
	jobs, err := c.jobService.ListJobs(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, jobs)
}

// CreateJob creates a job posting
// @Summary Create a job posting
// @Description Allocates the next job id and stores the posting. Requires the career office role unless public writes are enabled.
// @Tags jobs
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param request body dto.CreateJobRequest true "Job posting"
// @Success 201 {object} models.Job
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /jobs [post]
func (c *JobController) CreateJob(ctx *gin.Context) {
	var req dto.CreateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindError(err))
		return
	}

	job, err := c.jobService.CreateJob(ctx.Request.Context(), middleware.CurrentIdentity(ctx), req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, job)
}

// GetJob returns one job posting
// @Summary Get a job posting
// @Tags jobs
// @Produce json
// @Param id path int true "Job ID" Format(int64) minimum(1)
// @Success 200 {object} models.Job
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{id} [get]
func (c *JobController) GetJob(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	job, err := c.jobService.GetJob(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, job)
}

// UpdateJob applies a partial update
// @Summary Update a job posting
// @Description Writes only the supplied fields. The path id always wins over any id in the body.
// @Tags jobs
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param id path int true "Job ID" Format(int64) minimum(1)
// @Param request body dto.UpdateJobRequest true "Fields to change"
// @Success 200 {object} models.Job
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{id} [patch]
func (c *JobController) UpdateJob(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindError(err))
		return
	}

	job, err := c.jobService.UpdateJob(ctx.Request.Context(), middleware.CurrentIdentity(ctx), id, req.ToPatch())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, job)
}

// DeleteJob removes a job posting
// @Summary Delete a job posting
// @Tags jobs
// @Produce json
// @Security SessionCookie
// @Param id path int true "Job ID" Format(int64) minimum(1)
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{id} [delete]
func (c *JobController) DeleteJob(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.jobService.DeleteJob(ctx.Request.Context(), middleware.CurrentIdentity(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
